// package tasks implements multi-step operations over the API client
package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/leilabk/shelfctl/internal/catalog"
	"github.com/leilabk/shelfctl/internal/models"
	"github.com/leilabk/shelfctl/internal/repositories"
	"github.com/leilabk/shelfctl/internal/shared"
	"golang.org/x/time/rate"
)

// ItemGetter extends the list source with per-item detail fetches.
type ItemGetter interface {
	catalog.ItemSource
	Get(ctx context.Context, id string) (*models.LibraryItem, error)
}

// SyncOpts configures a catalog sync run.
type SyncOpts struct {
	RateLimit float64 // Detail requests per second (default: 5)
}

// SyncResult summarizes a completed sync.
type SyncResult struct {
	SnapshotID    string
	CategoryCount int
	ItemCount     int
	FailedCount   int
	Failed        []string // item IDs whose detail fetch failed
}

// SyncEngine walks the remote catalog and stores a snapshot: one category
// list call, one item list call, then a rate-limited GET per item to pick up
// fields the list response may omit. Detail failures are tolerated; the
// listed version of the item is stored instead.
type SyncEngine struct {
	categories catalog.CategorySource
	items      ItemGetter
	repo       *repositories.SnapshotRepository
	logger     *log.Logger
}

// NewSyncEngine creates a SyncEngine over the given sources and store.
func NewSyncEngine(categories catalog.CategorySource, items ItemGetter, repo *repositories.SnapshotRepository, logger *log.Logger) *SyncEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &SyncEngine{
		categories: categories,
		items:      items,
		repo:       repo,
		logger:     logger,
	}
}

// Run performs a full sync and returns the stored snapshot's summary.
func (e *SyncEngine) Run(ctx context.Context, opts SyncOpts) (*SyncResult, error) {
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	categories, err := e.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	listed, err := e.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	result := &SyncResult{
		CategoryCount: len(categories),
		ItemCount:     len(listed),
	}

	items := make([]models.LibraryItem, 0, len(listed))
	for _, item := range listed {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("sync cancelled: %w", err)
		}

		detail, err := e.items.Get(ctx, item.ID)
		if err != nil {
			e.logger.Warn("detail fetch failed, keeping listed item", "id", item.ID, "error", err)
			result.FailedCount++
			result.Failed = append(result.Failed, item.ID)
			items = append(items, item)
			continue
		}
		items = append(items, *detail)
	}

	snap, err := e.repo.Save(categories, items)
	if err != nil {
		return nil, fmt.Errorf("failed to store snapshot: %w", err)
	}

	result.SnapshotID = snap.ID
	return result, nil
}
