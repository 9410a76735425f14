package main

import (
	"fmt"

	"github.com/Veraticus/larder/internal/cli"
	"github.com/spf13/cobra"
)

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <name>",
		Short: "Show how an ingredient name resolves to the catalog",
		Long: `Resolve an ingredient name against the canonical catalog and print every
matcher tier that was tried: exact, alias, category and fuzzy.`,
		Example: `  larder resolve "green onions"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			name := joinArgs(args)
			result := e.Match(name)
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderTrace(name, result))

			if result.Matched() && result.Confidence < e.Config().Scoring.ConfidenceFloor {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning(fmt.Sprintf(
					"Confidence %.2f is below the scoring floor %.2f; recipes treat this as missing",
					result.Confidence, e.Config().Scoring.ConfidenceFloor)))
			}
			return nil
		},
	}
}
