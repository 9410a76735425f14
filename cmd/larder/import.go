package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/larder/internal/cli"
	"github.com/Veraticus/larder/internal/common"
	"github.com/Veraticus/larder/internal/seed"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import seed data from YAML",
		Long: `Import canonical ingredients, recipes or inventory from a YAML seed file.

A seed file may hold any of the top-level lists canonical_ingredients, recipes
and inventory. Each subcommand imports only its own list.`,
		Example: `  # Load the ingredient catalog first
  larder import catalog catalog.yaml

  # Then recipes and what's in the kitchen
  larder import recipes recipes.yaml
  larder import inventory pantry.yaml`,
	}

	cmd.AddCommand(importCatalogCmd())
	cmd.AddCommand(importRecipesCmd())
	cmd.AddCommand(importInventoryCmd())

	return cmd
}

func importCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog <file.yaml>",
		Short: "Import canonical ingredients",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}
			if len(data.Catalog) == 0 {
				return common.NewUserError(fmt.Sprintf("%s has no canonical_ingredients", args[0]), nil)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveCanonicalIngredients(ctx, data.Catalog); err != nil {
				return fmt.Errorf("failed to import catalog: %w", err)
			}

			slog.Info("Imported canonical ingredients", "count", len(data.Catalog), "file", args[0])
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Imported %d canonical ingredients", len(data.Catalog))))
			return nil
		},
	}
}

func importRecipesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recipes <file.yaml>",
		Short: "Import recipes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}
			if len(data.Recipes) == 0 {
				return common.NewUserError(fmt.Sprintf("%s has no recipes", args[0]), nil)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveRecipes(ctx, data.Recipes); err != nil {
				return fmt.Errorf("failed to import recipes: %w", err)
			}

			lines := 0
			for _, r := range data.Recipes {
				lines += len(r.Ingredients)
			}
			slog.Info("Imported recipes", "count", len(data.Recipes), "lines", lines, "file", args[0])
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Imported %d recipes (%d ingredient lines)", len(data.Recipes), lines)))
			return nil
		},
	}
}

func importInventoryCmd() *cobra.Command {
	var noResolve bool

	cmd := &cobra.Command{
		Use:   "inventory <file.yaml>",
		Short: "Import inventory items",
		Long: `Import inventory items. Items without a canonical_id are resolved against
the ingredient catalog by name; names that resolve below the confidence floor
are imported unresolved and matched again at scoring time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			data, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}
			if len(data.Inventory) == 0 {
				return common.NewUserError(fmt.Sprintf("%s has no inventory", args[0]), nil)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			resolved := 0
			if !noResolve {
				e, err := initEngine(ctx, store)
				switch {
				case errors.Is(err, common.ErrEmptyCatalog):
					fmt.Fprintln(out, cli.FormatWarning("No catalog yet; importing items unresolved"))
				case err != nil:
					return err
				default:
					for i := range data.Inventory {
						if resolveItem(e, &data.Inventory[i]) {
							resolved++
						}
					}
				}
			}

			var version int64
			for i := range data.Inventory {
				if version, err = store.SaveInventoryItem(ctx, &data.Inventory[i]); err != nil {
					return fmt.Errorf("failed to import inventory: %w", err)
				}
			}

			slog.Info("Imported inventory", "count", len(data.Inventory), "resolved", resolved, "version", version)
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d items (%d resolved to the catalog), inventory version %d",
				len(data.Inventory), resolved, version)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noResolve, "no-resolve", false, "Do not resolve item names to canonical ingredients")

	return cmd
}
