package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Veraticus/larder/internal/cli"
	"github.com/Veraticus/larder/internal/common"
	"github.com/Veraticus/larder/internal/units"
	"github.com/spf13/cobra"
)

func convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <value> <from> <to> [ingredient]",
		Short: "Convert a quantity between units",
		Long: `Convert a quantity between units. Volume and mass convert into each other
only for an ingredient whose catalog entry has a density and allows it.
The ingredient may be a canonical id or any name the catalog resolves.`,
		Example: `  larder convert 2 cups ml
  larder convert 1 cup g flour`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return common.NewUserError(fmt.Sprintf("value must be a number, got %q", args[0]), err)
			}

			var result units.ConversionResult
			if len(args) == 3 {
				result = units.Convert(value, args[1], args[2], nil)
			} else {
				store, err := initStorage(ctx)
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()

				e, err := initEngine(ctx, store)
				if err != nil {
					return err
				}

				id := args[3]
				if _, ok := e.Lookup(id); !ok {
					match := e.Match(id)
					if !match.Matched() {
						return common.NewUserError(fmt.Sprintf("No catalog ingredient matches %q", id), nil)
					}
					id = match.ID()
				}
				result = e.Convert(value, args[1], args[2], id)
			}

			if !result.OK {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%s (%s)", result.Reason, result.Failure)))
				return nil
			}

			to, _ := units.Canonical(args[2])
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s %s = %s",
				args[0], args[1], formatQuantity(roundTo(result.Value, 4), to))))
			return nil
		},
	}
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
