package main

import (
	"context"
	"fmt"

	"github.com/leilabk/shelfctl/internal/models"
	"github.com/leilabk/shelfctl/internal/shared"
	"github.com/urfave/cli/v3"
)

// CategoriesList prints all categories.
func (r *Runner) CategoriesList(ctx context.Context, cmd *cli.Command) error {
	categories, err := r.categories.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(categories, cmd.Bool("pretty"))
	}

	for _, c := range categories {
		r.writePlain("%-24s  %s\n", c.ID, c.Name)
	}
	return nil
}

// CategoriesGet prints a single category.
func (r *Runner) CategoriesGet(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: category id", shared.ErrMissingArgument)
	}

	category, err := r.categories.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch category: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(category, true)
	}

	r.writePlain("ID:   %s\n", category.ID)
	r.writePlain("Name: %s\n", category.Name)
	return nil
}

// CategoriesCreate creates a new category.
func (r *Runner) CategoriesCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: category name", shared.ErrMissingArgument)
	}

	r.logger.Info("creating category", "name", name)

	category, err := r.categories.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return r.writePlain("✓ Category created: %s (%s)\n", category.Name, category.ID)
}

// CategoriesRename updates a category's name.
func (r *Runner) CategoriesRename(ctx context.Context, cmd *cli.Command) error {
	category := models.Category{ID: cmd.String("id"), Name: cmd.String("name")}

	r.logger.Info("renaming category", "id", category.ID, "name", category.Name)

	updated, err := r.categories.Update(ctx, category)
	if err != nil {
		return fmt.Errorf("failed to rename category: %w", err)
	}

	return r.writePlain("✓ Category renamed: %s\n", updated.Name)
}

// CategoriesDelete removes a category. Items referencing it keep their
// category id and display as Unknown until reassigned.
func (r *Runner) CategoriesDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: category id", shared.ErrMissingArgument)
	}

	r.logger.Info("deleting category", "id", id)

	if err := r.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return r.writePlain("✓ Category deleted\n")
}
