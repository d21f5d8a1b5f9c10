// package catalog implements the pure derivations behind the browse and list screens
package catalog

import (
	"context"
	"sort"

	"github.com/leilabk/shelfctl/internal/models"
)

// UnknownCategory is the display name for items whose categoryId has no
// matching category. Deleting a category in use degrades its items to this
// name rather than blocking or cascading.
const UnknownCategory = "Unknown"

// AllCategories is the virtual pseudo-category selecting every item. It is
// always first in the category selector, independent of server order.
var AllCategories = models.Category{ID: "", Name: "All Categories"}

// SortKey selects the secondary ordering applied to the filtered item set.
type SortKey int

const (
	SortByCategory SortKey = iota
	SortByType
)

// Entry is a library item annotated with display-only derivations: the joined
// category name and the recomputed abbreviation. Entries are rebuilt from
// immutable inputs on every fetch, never mutated in place.
type Entry struct {
	models.LibraryItem
	CategoryName string
}

// CategorySource lists categories from the server.
type CategorySource interface {
	List(ctx context.Context) ([]models.Category, error)
}

// ItemSource lists library items from the server.
type ItemSource interface {
	List(ctx context.Context) ([]models.LibraryItem, error)
}

// ItemWriter persists item mutations.
type ItemWriter interface {
	Save(ctx context.Context, item models.LibraryItem) (*models.LibraryItem, error)
	Update(ctx context.Context, item models.LibraryItem) (*models.LibraryItem, error)
	Delete(ctx context.Context, id string) error
}

// Annotate joins items with their category names, falling back to
// [UnknownCategory] for unresolved references, and recomputes each entry's
// abbreviation from its title.
func Annotate(items []models.LibraryItem, categories []models.Category) []Entry {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	entries := make([]Entry, len(items))
	for i, item := range items {
		item.Abbreviation = models.Abbreviate(item.Title)
		name, ok := names[item.CategoryID]
		if !ok {
			name = UnknownCategory
		}
		entries[i] = Entry{LibraryItem: item, CategoryName: name}
	}
	return entries
}

// WithAllCategories prepends the [AllCategories] pseudo-category.
func WithAllCategories(categories []models.Category) []models.Category {
	out := make([]models.Category, 0, len(categories)+1)
	out = append(out, AllCategories)
	return append(out, categories...)
}

// FilterByCategory keeps entries whose categoryId matches exactly. The empty
// id selects everything.
func FilterByCategory(entries []Entry, categoryID string) []Entry {
	if categoryID == "" {
		return entries
	}

	var out []Entry
	for _, e := range entries {
		if e.CategoryID == categoryID {
			out = append(out, e)
		}
	}
	return out
}

// Sort returns a new slice ordered lexicographically by the chosen key.
// The sort is stable, so equal keys keep their fetched order.
func Sort(entries []Entry, key SortKey) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)

	sort.SliceStable(out, func(i, j int) bool {
		if key == SortByType {
			return out[i].Type < out[j].Type
		}
		return out[i].CategoryID < out[j].CategoryID
	})
	return out
}

// Snapshot is the browse screen's view of the catalog at one fetch.
type Snapshot struct {
	Categories []models.Category
	Entries    []Entry
}

// Load fetches categories and items concurrently and assembles a Snapshot.
// The two fetches fail fast: if either errors the combined load errors, with
// no partial result.
func Load(ctx context.Context, categories CategorySource, items ItemSource) (*Snapshot, error) {
	type catResult struct {
		categories []models.Category
		err        error
	}
	type itemResult struct {
		items []models.LibraryItem
		err   error
	}

	catCh := make(chan catResult, 1)
	itemCh := make(chan itemResult, 1)

	go func() {
		c, err := categories.List(ctx)
		catCh <- catResult{categories: c, err: err}
	}()
	go func() {
		i, err := items.List(ctx)
		itemCh <- itemResult{items: i, err: err}
	}()

	cats := <-catCh
	its := <-itemCh
	if cats.err != nil {
		return nil, cats.err
	}
	if its.err != nil {
		return nil, its.err
	}

	return &Snapshot{
		Categories: WithAllCategories(cats.categories),
		Entries:    Annotate(its.items, cats.categories),
	}, nil
}

// Remove returns entries without the item carrying id. Used for optimistic
// local removal after a successful remote delete; callers keep the original
// slice when the remote call fails.
func Remove(entries []Entry, id string) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}
