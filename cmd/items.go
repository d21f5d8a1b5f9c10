package main

import (
	"context"
	"fmt"
	"time"

	"github.com/leilabk/shelfctl/internal/catalog"
	"github.com/leilabk/shelfctl/internal/models"
	"github.com/leilabk/shelfctl/internal/shared"
	"github.com/urfave/cli/v3"
)

// ItemsList prints the catalog joined with category names, filtered and
// sorted like the browse screen.
func (r *Runner) ItemsList(ctx context.Context, cmd *cli.Command) error {
	snap, err := catalog.Load(ctx, r.categories, r.items)
	if err != nil {
		return fmt.Errorf("failed to fetch catalog: %w", err)
	}

	entries := catalog.FilterByCategory(snap.Entries, cmd.String("category"))

	sortKey := catalog.SortByCategory
	switch cmd.String("sort") {
	case "category", "":
	case "type":
		sortKey = catalog.SortByType
	default:
		return fmt.Errorf("%w: sort must be category or type", shared.ErrInvalidFlag)
	}
	entries = catalog.Sort(entries, sortKey)

	if cmd.Bool("json") {
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}

	for _, e := range entries {
		r.writePlain("%-24s  %-5s  %-12s  %-20s  %s (%s)\n",
			e.ID, e.Abbreviation, e.Type, e.CategoryName, e.Title, itemStatus(e.LibraryItem))
	}
	return nil
}

// ItemsGet prints a single library item.
func (r *Runner) ItemsGet(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: item id", shared.ErrMissingArgument)
	}

	item, err := r.items.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch library item: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(item, true)
	}

	r.writePlain("ID:          %s\n", item.ID)
	r.writePlain("Title:       %s\n", item.Title)
	r.writePlain("Type:        %s\n", item.Type.Label())
	r.writePlain("Category:    %s\n", item.CategoryID)
	r.writePlain("Borrowable:  %t\n", item.IsBorrowable)
	if item.Type.HasAuthor() {
		r.writePlain("Author:      %s\n", item.Author)
		r.writePlain("Pages:       %d\n", item.NbrPages)
	}
	if item.Type.HasRunTime() {
		r.writePlain("Run time:    %d min\n", item.RunTimeMinutes)
	}
	r.writePlain("Status:      %s\n", itemStatus(*item))
	return nil
}

// ItemsCreate creates a library item of the requested type.
func (r *Runner) ItemsCreate(ctx context.Context, cmd *cli.Command) error {
	title := cmd.String("title")
	categoryID := cmd.String("category")

	var item models.LibraryItem
	switch models.ItemType(cmd.String("type")) {
	case models.TypeBook:
		item = models.NewBook(title, categoryID, cmd.String("author"), cmd.Int("pages"))
	case models.TypeReferenceBook:
		item = models.NewReferenceBook(title, categoryID, cmd.String("author"), cmd.Int("pages"))
	case models.TypeDVD:
		item = models.NewDVD(title, categoryID, cmd.Int("runtime"))
	case models.TypeAudiobook:
		item = models.NewAudiobook(title, categoryID, cmd.Int("runtime"))
	default:
		return fmt.Errorf("%w: unknown item type %q", shared.ErrInvalidFlag, cmd.String("type"))
	}
	item.IsBorrowable = cmd.Bool("borrowable")

	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	r.logger.Info("creating library item", "title", title, "type", item.Type)

	created, err := r.items.Save(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to create library item: %w", err)
	}

	return r.writePlain("✓ Created %s: %s (%s)\n", created.Type.Label(), created.Title, created.ID)
}

// ItemsUpdate fetches an item, applies the provided flags and persists it.
// Changing the type clears the fields of the previous variant.
func (r *Runner) ItemsUpdate(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: item id", shared.ErrMissingArgument)
	}

	item, err := r.items.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch library item: %w", err)
	}

	if t := cmd.String("type"); t != "" && models.ItemType(t) != item.Type {
		typ := models.ItemType(t)
		if !typ.Valid() {
			return fmt.Errorf("%w: unknown item type %q", shared.ErrInvalidFlag, t)
		}
		form := catalog.EditForm(*item)
		form.SetType(typ)
		*item = form.Item
	}
	if title := cmd.String("title"); title != "" {
		item.Title = title
	}
	if categoryID := cmd.String("category"); categoryID != "" {
		item.CategoryID = categoryID
	}
	if author := cmd.String("author"); author != "" {
		item.Author = author
	}
	if pages := cmd.Int("pages"); pages >= 0 {
		item.NbrPages = pages
	}
	if runtime := cmd.Int("runtime"); runtime >= 0 {
		item.RunTimeMinutes = runtime
	}

	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	updated, err := r.items.Update(ctx, *item)
	if err != nil {
		return fmt.Errorf("failed to update library item: %w", err)
	}

	return r.writePlain("✓ Updated %s: %s\n", updated.Type.Label(), updated.Title)
}

// ItemsCheckout checks an item out to a borrower, stamping the borrow date.
func (r *Runner) ItemsCheckout(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: item id", shared.ErrMissingArgument)
	}

	item, err := r.items.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch library item: %w", err)
	}

	form := catalog.EditForm(*item)
	form.BorrowerName = cmd.String("borrower")
	if err := form.Checkout(ctx, r.items, time.Now); err != nil {
		return fmt.Errorf("checkout failed: %w", err)
	}

	return r.writePlain("✓ %s checked out to %s\n", form.Item.Title, form.Item.Borrower)
}

// ItemsReturn checks an item back in. Returning an item that is not out is
// harmless.
func (r *Runner) ItemsReturn(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: item id", shared.ErrMissingArgument)
	}

	item, err := r.items.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch library item: %w", err)
	}

	form := catalog.EditForm(*item)
	if err := form.Return(ctx, r.items); err != nil {
		return fmt.Errorf("return failed: %w", err)
	}

	return r.writePlain("✓ %s checked in\n", form.Item.Title)
}

// ItemsDelete removes a library item.
func (r *Runner) ItemsDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: item id", shared.ErrMissingArgument)
	}

	r.logger.Info("deleting library item", "id", id)

	if err := r.items.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete library item: %w", err)
	}

	return r.writePlain("✓ Library item deleted\n")
}

func itemStatus(item models.LibraryItem) string {
	if item.Borrowed() {
		when := "-"
		if item.BorrowDate != nil {
			when = item.BorrowDate.Format("2006-01-02")
		}
		return fmt.Sprintf("borrowed by %s on %s", item.Borrower, when)
	}
	if !item.IsBorrowable {
		return "not borrowable"
	}
	return "available"
}
