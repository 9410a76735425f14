package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/Veraticus/larder/internal/tui"
	"github.com/spf13/cobra"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse discovery sections while recipes are scored",
		Long: `Open an interactive browser over the discovery sections. Sections fill in
as recipes are scored; press r to rescore after the inventory changes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			e, err := initEngine(ctx, store)
			if err != nil {
				return err
			}
			defer e.Cancel()

			// Log lines would tear the alternate screen.
			prev := slog.Default()
			slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
			defer slog.SetDefault(prev)

			return tui.Run(ctx, tui.Config{
				Engine: e,
				Refresh: func(ctx context.Context) (int64, error) {
					return e.Refresh(ctx, store, store)
				},
			})
		},
	}
}
