package main

import (
	"encoding/json"
	"fmt"

	"github.com/Veraticus/larder/internal/parser"
	"github.com/spf13/cobra"
)

func parseCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse <line>...",
		Short: "Parse recipe ingredient lines",
		Long: `Parse one or more recipe ingredient lines into quantity, unit, ingredient
and preparation. Each argument is one line.`,
		Example: `  larder parse "1 1/2 cups flour, sifted" "2 cloves garlic"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			parsed := parser.ParseAll(args)

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(parsed)
			}

			for i, p := range parsed {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s\n", p.Raw)
				quantity := "-"
				if p.Quantity != nil {
					quantity = formatQuantity(*p.Quantity, p.UnitOrEmpty())
				}
				fmt.Fprintf(out, "  quantity:    %s\n", quantity)
				fmt.Fprintf(out, "  ingredient:  %s\n", p.Ingredient)
				if p.Preparation != "" {
					fmt.Fprintf(out, "  preparation: %s\n", p.Preparation)
				}
				fmt.Fprintf(out, "  confidence:  %.2f\n", p.Confidence)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")

	return cmd
}
