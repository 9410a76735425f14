package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Veraticus/larder/internal/cli"
	"github.com/Veraticus/larder/internal/common"
	"github.com/Veraticus/larder/internal/model"
	"github.com/Veraticus/larder/internal/seed"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func inventoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Manage what's in the kitchen",
		Long:  `List, add and remove inventory items. Every change bumps the inventory version.`,
	}

	cmd.AddCommand(inventoryListCmd())
	cmd.AddCommand(inventoryAddCmd())
	cmd.AddCommand(inventoryRemoveCmd())

	return cmd
}

func inventoryListCmd() *cobra.Command {
	var expiring time.Duration

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List inventory items",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			snapshot, err := store.Inventory(ctx)
			if err != nil {
				return fmt.Errorf("failed to get inventory: %w", err)
			}

			now := time.Now()
			items := snapshot.Items
			if expiring > 0 {
				items = items[:0:0]
				for _, item := range snapshot.Items {
					if item.ExpiresWithin(now, expiring) {
						items = append(items, item)
					}
				}
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No inventory items found. Use 'larder inventory add' to add one."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Name"),
				headerStyle.Render("Quantity"),
				headerStyle.Render("Canonical"),
				headerStyle.Render("Expires"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 12),
				strings.Repeat("-", 20),
				strings.Repeat("-", 10),
				strings.Repeat("-", 16),
				strings.Repeat("-", 10))

			subtle := lipgloss.NewStyle().Foreground(cli.SubtleColor)
			for _, item := range items {
				canonical := subtle.Render("(unresolved)")
				if item.CanonicalID != nil {
					canonical = *item.CanonicalID
				}
				expires := subtle.Render("-")
				if item.ExpiresAt != nil {
					style := cli.ExpiryStyle(item.ExpiresWithin(now, 0), item.ExpiresWithin(now, 7*24*time.Hour))
					expires = style.Render(item.ExpiresAt.Format(time.DateOnly))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					item.ID, item.Name, formatQuantity(item.Quantity, item.Unit), canonical, expires)
			}

			fmt.Fprintf(w, "\n%s\n", subtle.Render(fmt.Sprintf("inventory version %d", snapshot.Version)))
			return nil
		},
	}

	cmd.Flags().DurationVar(&expiring, "expiring", 0, "Only show items expiring within this window (e.g. 72h)")

	return cmd
}

func inventoryAddCmd() *cobra.Command {
	var (
		id        string
		canonical string
		category  string
		location  string
		expires   string
	)

	cmd := &cobra.Command{
		Use:   "add <name> <quantity> [unit]",
		Short: "Add or update an inventory item",
		Long: `Add an inventory item, or update it when an item with the same id exists.
The id defaults to one derived from the name, so adding "milk" twice updates
the same item.`,
		Example: `  larder inventory add milk 1 l --expires 2024-06-05
  larder inventory add "green onions" 1 bunch --location fridge`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			quantity, err := strconv.ParseFloat(args[1], 64)
			if err != nil || quantity < 0 {
				return common.NewUserError(fmt.Sprintf("quantity must be a non-negative number, got %q", args[1]), err)
			}

			item := model.InventoryItem{
				ID:       id,
				Name:     args[0],
				Quantity: quantity,
				Category: category,
				Location: location,
			}
			if len(args) == 3 {
				item.Unit = args[2]
			}
			if item.ID == "" {
				item.ID = seed.ItemID(item.Name)
			}
			if canonical != "" {
				item.CanonicalID = &canonical
			}
			if expires != "" {
				t, err := time.ParseInLocation(time.DateOnly, expires, time.Local)
				if err != nil {
					return common.NewUserError(fmt.Sprintf("expiry must look like 2006-01-02, got %q", expires), err)
				}
				item.ExpiresAt = &t
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if item.CanonicalID == nil {
				e, err := initEngine(ctx, store)
				if err != nil && !errors.Is(err, common.ErrEmptyCatalog) {
					return err
				}
				if e != nil {
					resolveItem(e, &item)
				}
			}

			version, err := store.SaveInventoryItem(ctx, &item)
			if err != nil {
				return fmt.Errorf("failed to save inventory item: %w", err)
			}

			msg := fmt.Sprintf("Saved %s (%s)", item.Name, formatQuantity(item.Quantity, item.Unit))
			if item.CanonicalID != nil {
				msg += " as " + *item.CanonicalID
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(msg))
			fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render(fmt.Sprintf("inventory version %d", version)))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Item id (default: derived from the name)")
	cmd.Flags().StringVar(&canonical, "canonical", "", "Canonical ingredient id (default: resolved from the name)")
	cmd.Flags().StringVar(&category, "category", "", "Item category")
	cmd.Flags().StringVar(&location, "location", "", "Where the item is kept")
	cmd.Flags().StringVar(&expires, "expires", "", "Expiry date (YYYY-MM-DD)")

	return cmd
}

func inventoryRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an inventory item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			version, err := store.DeleteInventoryItem(ctx, args[0])
			if errors.Is(err, common.ErrNotFound) {
				return common.NewUserError(fmt.Sprintf("No inventory item with id %q. See 'larder inventory list'", args[0]), err)
			}
			if err != nil {
				return fmt.Errorf("failed to remove inventory item: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Removed %s", args[0])))
			fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render(fmt.Sprintf("inventory version %d", version)))
			return nil
		},
	}
}

func formatQuantity(quantity float64, unit string) string {
	q := strconv.FormatFloat(quantity, 'f', -1, 64)
	if unit == "" {
		return q
	}
	return q + " " + unit
}
