package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/leilabk/shelfctl/internal/models"
	"github.com/leilabk/shelfctl/internal/repositories"
	"github.com/leilabk/shelfctl/internal/shared"
)

type fakeCategories struct {
	categories []models.Category
	err        error
}

func (f *fakeCategories) List(ctx context.Context) ([]models.Category, error) {
	return f.categories, f.err
}

type fakeItems struct {
	items    []models.LibraryItem
	listErr  error
	failGets map[string]bool
	gets     int
}

func (f *fakeItems) List(ctx context.Context) ([]models.LibraryItem, error) {
	return f.items, f.listErr
}

func (f *fakeItems) Get(ctx context.Context, id string) (*models.LibraryItem, error) {
	f.gets++
	if f.failGets[id] {
		return nil, errors.New("detail fetch failed")
	}
	for _, item := range f.items {
		if item.ID == id {
			detail := item
			detail.Author = "detailed"
			return &detail, nil
		}
	}
	return nil, errors.New("not found")
}

func newTestRepo(t *testing.T) *repositories.SnapshotRepository {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := repositories.NewSnapshotRepository(db)
	if err := repo.Init(); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	return repo
}

func testItems() []models.LibraryItem {
	a := models.NewBook("Dune", "1", "Frank Herbert", 412)
	a.ID = "a"
	b := models.NewBook("Dune Messiah", "1", "Frank Herbert", 256)
	b.ID = "b"
	return []models.LibraryItem{a, b}
}

func TestSyncEngine(t *testing.T) {
	t.Run("Full Sync Stores Details", func(t *testing.T) {
		repo := newTestRepo(t)
		items := &fakeItems{items: testItems()}
		categories := &fakeCategories{categories: []models.Category{{ID: "1", Name: "Fiction"}}}

		engine := NewSyncEngine(categories, items, repo, nil)
		result, err := engine.Run(context.Background(), SyncOpts{RateLimit: 1000})
		if err != nil {
			t.Fatalf("sync failed: %v", err)
		}

		if result.ItemCount != 2 || result.FailedCount != 0 {
			t.Errorf("unexpected result %+v", result)
		}
		if items.gets != 2 {
			t.Errorf("expected a detail fetch per item, got %d", items.gets)
		}

		snap, err := repo.Get(result.SnapshotID)
		if err != nil {
			t.Fatalf("failed to load stored snapshot: %v", err)
		}
		for _, item := range snap.Items {
			if item.Author != "detailed" {
				t.Errorf("expected detail version stored, got %+v", item)
			}
		}
	})

	t.Run("Detail Failure Keeps Listed Item", func(t *testing.T) {
		repo := newTestRepo(t)
		items := &fakeItems{items: testItems(), failGets: map[string]bool{"b": true}}
		categories := &fakeCategories{categories: []models.Category{{ID: "1", Name: "Fiction"}}}

		engine := NewSyncEngine(categories, items, repo, nil)
		result, err := engine.Run(context.Background(), SyncOpts{RateLimit: 1000})
		if err != nil {
			t.Fatalf("sync failed: %v", err)
		}

		if result.FailedCount != 1 || len(result.Failed) != 1 || result.Failed[0] != "b" {
			t.Errorf("expected one tolerated failure, got %+v", result)
		}

		snap, err := repo.Get(result.SnapshotID)
		if err != nil {
			t.Fatalf("failed to load snapshot: %v", err)
		}
		if len(snap.Items) != 2 {
			t.Errorf("expected both items stored, got %d", len(snap.Items))
		}
	})

	t.Run("List Failure Is Terminal", func(t *testing.T) {
		repo := newTestRepo(t)
		items := &fakeItems{listErr: errors.New("boom")}
		categories := &fakeCategories{categories: []models.Category{{ID: "1", Name: "Fiction"}}}

		engine := NewSyncEngine(categories, items, repo, nil)
		if _, err := engine.Run(context.Background(), SyncOpts{}); err == nil {
			t.Error("expected error when item list fails")
		}
	})

	t.Run("Cancelled Context Stops Sync", func(t *testing.T) {
		repo := newTestRepo(t)
		items := &fakeItems{items: testItems()}
		categories := &fakeCategories{categories: []models.Category{{ID: "1", Name: "Fiction"}}}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		engine := NewSyncEngine(categories, items, repo, nil)
		if _, err := engine.Run(ctx, SyncOpts{RateLimit: 0.001}); err == nil {
			t.Error("expected cancelled sync to error")
		}
	})
}
