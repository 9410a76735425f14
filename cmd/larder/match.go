package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Veraticus/larder/internal/cli"
	"github.com/Veraticus/larder/internal/common"
	"github.com/Veraticus/larder/internal/engine"
	"github.com/Veraticus/larder/internal/model"
	"github.com/spf13/cobra"
)

func matchCmd() *cobra.Command {
	var (
		recipeID string
		asJSON   bool
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Score every recipe against the current inventory",
		Long: `Score every recipe against the current inventory and show the results in
discovery sections: Ready to Cook, Use It Up, Almost There, Discoveries and Quick.

Press Ctrl+C to stop early; recipes scored so far are still shown.`,
		Example: `  larder match
  larder match --recipe aglio-olio
  larder match --json > sections.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx := handler.HandleInterrupts(cmd.Context(), "Showing the recipes scored so far.")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var opts []engine.Option
			if !quiet && !asJSON && isTerminal(os.Stderr) {
				opts = append(opts, engine.WithProgressFunc(cli.NewMatchProgress(cmd.ErrOrStderr()).Update))
			}
			e, err := initEngine(ctx, store, opts...)
			if err != nil {
				return err
			}

			version, err := e.Refresh(ctx, store, store)
			if err != nil {
				return err
			}

			if err := e.Wait(ctx); err != nil {
				e.Cancel()
				if !errors.Is(err, context.Canceled) {
					return err
				}
			}

			progress := e.Progress()
			slog.Debug("Match finished",
				"status", e.Status(),
				"done", progress.Done,
				"total", progress.Total,
				"inventory_version", version,
				"cache_hit_rate", e.CacheStats().HitRate())

			if recipeID != "" {
				score, ok := e.Result(recipeID, version)
				if !ok {
					return common.NewUserError(fmt.Sprintf("No scored recipe with id %q", recipeID), nil)
				}
				return printScore(out, score, asJSON)
			}

			sections := e.Categorize(version)
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(sections)
			}

			fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("What to cook (%d of %d recipes scored)", progress.Done, progress.Total)))
			fmt.Fprintln(out, cli.RenderSections(sections))
			if e.Status() == model.JobCancelled {
				fmt.Fprintln(out, cli.FormatWarning("Matching was interrupted; results are partial"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&recipeID, "recipe", "", "Show the full score breakdown for one recipe")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not show a progress bar")

	return cmd
}

func printScore(w io.Writer, score model.RecipeScore, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(score)
	}
	_, err := fmt.Fprintln(w, cli.RenderScore(score))
	return err
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
