package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/pumpcarbon/internal/report"
	"github.com/rshade/pumpcarbon/internal/scenario"
)

func (a *app) referenceCmd() *cobra.Command {
	var (
		pump   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Describe every input of a pump variant with its range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			variant, err := scenario.ParseVariant(pump)
			if err != nil {
				return err
			}
			page := scenario.Reference(variant)

			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}
			if format != report.FormatText {
				return report.Write(cmd.OutOrStdout(), format, page)
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			fmt.Fprintf(w, "%s\n\n", page.Title)
			for _, f := range page.Fields {
				fmt.Fprintf(w, "%d. %s\n   Range: %s\n   %s\n", f.Index, f.Title, f.Range, f.Description)
			}
			fmt.Fprintf(w, "\nEmission grids: %s\n", strings.Join(page.EmissionGrids, ", "))
			fmt.Fprintf(w, "Share: ?%s\n", page.Query)
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&pump, "pump", "normal", "pump variant: normal or booster")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or msgpack")
	return cmd
}
