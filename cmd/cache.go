package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/leilabk/shelfctl/internal/repositories"
	"github.com/leilabk/shelfctl/internal/shared"
	"github.com/leilabk/shelfctl/internal/tasks"
	"github.com/urfave/cli/v3"
)

// openSnapshotRepo opens the snapshot database and ensures the schema exists.
// The caller closes the returned handle.
func (r *Runner) openSnapshotRepo() (*repositories.SnapshotRepository, *sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	repo := repositories.NewSnapshotRepository(db)
	if err := repo.Init(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to initialize snapshot schema: %w", err)
	}
	return repo, db, nil
}

// CacheSave fetches the catalog and stores a snapshot as the server returned
// it, without per-item detail requests.
func (r *Runner) CacheSave(ctx context.Context, cmd *cli.Command) error {
	repo, db, err := r.openSnapshotRepo()
	if err != nil {
		return err
	}
	defer db.Close()

	categories, err := r.categories.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	items, err := r.items.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list library items: %w", err)
	}

	snap, err := repo.Save(categories, items)
	if err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	r.logger.Info("snapshot stored", "id", snap.ID, "categories", len(categories), "items", len(items))
	return r.writePlain("✓ Snapshot %s stored (%d categories, %d items)\n", snap.ID, len(categories), len(items))
}

// CacheSync stores a snapshot built from per-item detail requests, paced by
// the rate limiter.
func (r *Runner) CacheSync(ctx context.Context, cmd *cli.Command) error {
	repo, db, err := r.openSnapshotRepo()
	if err != nil {
		return err
	}
	defer db.Close()

	engine := tasks.NewSyncEngine(r.categories, r.items, repo, r.logger)
	result, err := engine.Run(ctx, tasks.SyncOpts{RateLimit: cmd.Float("rate")})
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	r.writePlain("✓ Snapshot %s stored (%d categories, %d items)\n",
		result.SnapshotID, result.CategoryCount, result.ItemCount)
	if result.FailedCount > 0 {
		r.writePlain("%d item detail fetches failed, listed versions stored instead:\n", result.FailedCount)
		for _, id := range result.Failed {
			r.writePlain("  %s\n", id)
		}
	}
	return nil
}

// CacheList prints stored snapshots, newest first.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	repo, db, err := r.openSnapshotRepo()
	if err != nil {
		return err
	}
	defer db.Close()

	metas, err := repo.List()
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	if len(metas) == 0 {
		return r.writePlain("No snapshots stored\n")
	}

	for _, m := range metas {
		r.writePlain("%s  %s  %d categories, %d items\n",
			m.ID, m.CreatedAt.Format("2006-01-02 15:04:05"), m.CategoryCount, m.ItemCount)
	}
	return nil
}

// CacheShow prints a stored snapshot, defaulting to the most recent one.
func (r *Runner) CacheShow(ctx context.Context, cmd *cli.Command) error {
	repo, db, err := r.openSnapshotRepo()
	if err != nil {
		return err
	}
	defer db.Close()

	var snap *repositories.Snapshot
	if id := cmd.StringArg("id"); id != "" {
		snap, err = repo.Get(id)
	} else {
		snap, err = repo.Latest()
	}
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	if snap == nil {
		return r.writePlain("No snapshots stored\n")
	}

	return r.writeJSON(snap, cmd.Bool("pretty"))
}

// CacheClear deletes all stored snapshots.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	repo, db, err := r.openSnapshotRepo()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repo.Clear(); err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}
	return r.writePlain("✓ Snapshots cleared\n")
}
