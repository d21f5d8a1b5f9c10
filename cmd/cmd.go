// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in and store the session token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "username",
						Aliases: []string{"u"},
						Usage:   "Username to sign in with",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create an account and sign in",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Display name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Username for the new account",
						Required: true,
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Discard the stored session token",
				Action: r.AuthLogout,
			},
			{
				Name:   "whoami",
				Usage:  "Show the signed-in user",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}},
				Action: r.AuthWhoami,
			},
		},
	}
}

// categoriesCommand handles category administration
func categoriesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "categories",
		Aliases: []string{"cat"},
		Usage:   "Manage catalog categories",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all categories",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output", Value: true},
				},
				Action: r.CategoriesList,
			},
			{
				Name:      "get",
				Usage:     "Show a single category",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.CategoriesGet,
			},
			{
				Name:      "create",
				Usage:     "Create a category",
				Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
				Action:    r.CategoriesCreate,
			},
			{
				Name:  "rename",
				Usage: "Rename a category",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Category ID to rename",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "name",
						Usage:    "New category name",
						Required: true,
					},
				},
				Action: r.CategoriesRename,
			},
			{
				Name:      "delete",
				Usage:     "Delete a category",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.CategoriesDelete,
			},
		},
	}
}

// itemsCommand handles library item operations
func itemsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "items",
		Usage: "Manage library items",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List library items with category names",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "category",
						Aliases: []string{"c"},
						Usage:   "Filter by category ID",
					},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort order: category or type",
						Value: "category",
					},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output", Value: true},
				},
				Action: r.ItemsList,
			},
			{
				Name:      "get",
				Usage:     "Show a single library item",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.ItemsGet,
			},
			{
				Name:  "create",
				Usage: "Create a library item",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "type",
						Usage:    "Item type: book, referencebook, dvd or audiobook",
						Value:    "book",
						Required: false,
					},
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Item title",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "category",
						Aliases:  []string{"c"},
						Usage:    "Category ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "author",
						Usage: "Author (books and reference books)",
					},
					&cli.IntFlag{
						Name:  "pages",
						Usage: "Page count (books and reference books)",
					},
					&cli.IntFlag{
						Name:  "runtime",
						Usage: "Run time in minutes (DVDs and audiobooks)",
					},
					&cli.BoolFlag{
						Name:  "borrowable",
						Usage: "Whether the item can be checked out",
						Value: true,
					},
				},
				Action: r.ItemsCreate,
			},
			{
				Name:      "update",
				Usage:     "Update a library item's fields",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Usage: "Change item type"},
					&cli.StringFlag{Name: "title", Usage: "New title"},
					&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "New category ID"},
					&cli.StringFlag{Name: "author", Usage: "New author"},
					&cli.IntFlag{Name: "pages", Usage: "New page count", Value: -1},
					&cli.IntFlag{Name: "runtime", Usage: "New run time in minutes", Value: -1},
				},
				Action: r.ItemsUpdate,
			},
			{
				Name:      "checkout",
				Usage:     "Check an item out to a borrower",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "borrower",
						Aliases:  []string{"b"},
						Usage:    "Borrower's name",
						Required: true,
					},
				},
				Action: r.ItemsCheckout,
			},
			{
				Name:      "return",
				Usage:     "Check an item back in",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.ItemsReturn,
			},
			{
				Name:      "delete",
				Usage:     "Delete a library item",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.ItemsDelete,
			},
		},
	}
}

// cacheCommand handles local catalog snapshots for diagnostics
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Store catalog snapshots locally",
		Commands: []*cli.Command{
			{
				Name:   "save",
				Usage:  "Fetch the catalog and store a snapshot",
				Action: r.CacheSave,
			},
			{
				Name:  "sync",
				Usage: "Store a snapshot with per-item details, rate limited",
				Flags: []cli.Flag{
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Maximum item detail requests per second",
						Value: 5.0,
					},
				},
				Action: r.CacheSync,
			},
			{
				Name:   "list",
				Usage:  "List stored snapshots",
				Action: r.CacheList,
			},
			{
				Name:      "show",
				Usage:     "Show a stored snapshot (latest when no id given)",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output", Value: true},
				},
				Action: r.CacheShow,
			},
			{
				Name:   "clear",
				Usage:  "Delete all stored snapshots",
				Action: r.CacheClear,
			},
		},
	}
}

// setupCommand handles setup operations for config and the snapshot database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a config file from the template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the snapshot database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive catalog management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for catalog management",
		Action:  r.TUI,
	}
}
