// package repositories persists catalog snapshots for offline inspection
package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/leilabk/shelfctl/internal/models"
	"github.com/leilabk/shelfctl/internal/shared"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id TEXT PRIMARY KEY,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_categories (
	snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
	category_id TEXT NOT NULL,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_items (
	snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
	item_id TEXT NOT NULL,
	title TEXT NOT NULL,
	type TEXT NOT NULL,
	abbreviation TEXT NOT NULL DEFAULT '',
	is_borrowable INTEGER NOT NULL DEFAULT 0,
	category_id TEXT NOT NULL,
	borrower TEXT NOT NULL DEFAULT '',
	borrow_date TEXT,
	author TEXT NOT NULL DEFAULT '',
	nbr_pages INTEGER NOT NULL DEFAULT 0,
	run_time_minutes INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_snapshot_items_snapshot ON snapshot_items(snapshot_id);
CREATE INDEX IF NOT EXISTS idx_snapshot_categories_snapshot ON snapshot_categories(snapshot_id);
`

// Snapshot is one persisted capture of the remote catalog. A diagnostic
// record of what the server returned at a point in time, not an offline
// browsing source.
type Snapshot struct {
	ID         string
	CreatedAt  time.Time
	Categories []models.Category
	Items      []models.LibraryItem
}

// SnapshotMeta summarizes a stored snapshot for listings.
type SnapshotMeta struct {
	ID            string
	CreatedAt     time.Time
	CategoryCount int
	ItemCount     int
}

// SnapshotRepository stores catalog snapshots in SQLite.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a SnapshotRepository with the given database connection
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Init creates the snapshot tables if they don't exist.
func (r *SnapshotRepository) Init() error {
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create snapshot schema: %w", err)
	}
	return nil
}

// Save stores a new snapshot of the given categories and items and returns it
// with a generated ID.
func (r *SnapshotRepository) Save(categories []models.Category, items []models.LibraryItem) (*Snapshot, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	snap := &Snapshot{
		ID:         shared.GenerateID(),
		CreatedAt:  time.Now().UTC(),
		Categories: categories,
		Items:      items,
	}

	if _, err := tx.Exec(`INSERT INTO snapshots (id, created_at) VALUES (?, ?)`, snap.ID, snap.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	for _, c := range categories {
		if _, err := tx.Exec(
			`INSERT INTO snapshot_categories (snapshot_id, category_id, name) VALUES (?, ?, ?)`,
			snap.ID, c.ID, c.Name,
		); err != nil {
			return nil, fmt.Errorf("failed to insert category: %w", err)
		}
	}

	for _, item := range items {
		var borrowDate sql.NullString
		if item.BorrowDate != nil {
			borrowDate = sql.NullString{String: item.BorrowDate.UTC().Format(time.RFC3339Nano), Valid: true}
		}

		if _, err := tx.Exec(
			`INSERT INTO snapshot_items
				(snapshot_id, item_id, title, type, abbreviation, is_borrowable, category_id, borrower, borrow_date, author, nbr_pages, run_time_minutes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			snap.ID, item.ID, item.Title, string(item.Type), item.Abbreviation, item.IsBorrowable,
			item.CategoryID, item.Borrower, borrowDate, item.Author, item.NbrPages, item.RunTimeMinutes,
		); err != nil {
			return nil, fmt.Errorf("failed to insert item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return snap, nil
}

// List returns stored snapshots, newest first.
func (r *SnapshotRepository) List() ([]SnapshotMeta, error) {
	rows, err := r.db.Query(`
		SELECT s.id, s.created_at,
			(SELECT COUNT(*) FROM snapshot_categories c WHERE c.snapshot_id = s.id),
			(SELECT COUNT(*) FROM snapshot_items i WHERE i.snapshot_id = s.id)
		FROM snapshots s
		ORDER BY s.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var metas []SnapshotMeta
	for rows.Next() {
		var m SnapshotMeta
		if err := rows.Scan(&m.ID, &m.CreatedAt, &m.CategoryCount, &m.ItemCount); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		metas = append(metas, m)
	}

	return metas, rows.Err()
}

// Get retrieves a snapshot by ID with its categories and items.
func (r *SnapshotRepository) Get(id string) (*Snapshot, error) {
	snap := &Snapshot{ID: id}

	err := r.db.QueryRow(`SELECT created_at FROM snapshots WHERE id = ?`, id).Scan(&snap.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	catRows, err := r.db.Query(`SELECT category_id, name FROM snapshot_categories WHERE snapshot_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	defer catRows.Close()

	for catRows.Next() {
		var c models.Category
		if err := catRows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		snap.Categories = append(snap.Categories, c)
	}
	if err := catRows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.db.Query(`
		SELECT item_id, title, type, abbreviation, is_borrowable, category_id, borrower, borrow_date, author, nbr_pages, run_time_minutes
		FROM snapshot_items WHERE snapshot_id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.LibraryItem
		var typ string
		var borrowDate sql.NullString

		if err := itemRows.Scan(
			&item.ID, &item.Title, &typ, &item.Abbreviation, &item.IsBorrowable,
			&item.CategoryID, &item.Borrower, &borrowDate, &item.Author, &item.NbrPages, &item.RunTimeMinutes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}

		item.Type = models.ItemType(typ)
		if borrowDate.Valid {
			t, err := time.Parse(time.RFC3339Nano, borrowDate.String)
			if err != nil {
				return nil, fmt.Errorf("invalid stored borrow date: %w", err)
			}
			item.BorrowDate = models.NewDate(t)
		}

		snap.Items = append(snap.Items, item)
	}

	return snap, itemRows.Err()
}

// Latest returns the most recent snapshot, or nil when none are stored.
func (r *SnapshotRepository) Latest() (*Snapshot, error) {
	var id string
	err := r.db.QueryRow(`SELECT id FROM snapshots ORDER BY created_at DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find latest snapshot: %w", err)
	}
	return r.Get(id)
}

// Clear removes all stored snapshots.
func (r *SnapshotRepository) Clear() error {
	for _, table := range []string{"snapshot_items", "snapshot_categories", "snapshots"} {
		if _, err := r.db.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}
