package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/pumpcarbon/internal/report"
	"github.com/rshade/pumpcarbon/internal/units"
)

// asymmetryTolerance flags reverse pairs that are not exact reciprocals.
const asymmetryTolerance = 1e-9

func (a *app) unitsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "units",
		Short: "List the conversion table and its asymmetric pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := a.converter.Table()
			pairs := table.Pairs()
			asym := table.Asymmetries(asymmetryTolerance)

			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}
			if format != report.FormatText {
				return report.Write(cmd.OutOrStdout(), format, struct {
					Pairs       []units.Pair      `json:"pairs" msgpack:"pairs"`
					Asymmetries []units.Asymmetry `json:"asymmetries" msgpack:"asymmetries"`
				}{pairs, asym})
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "FROM\tTO\tFACTOR")
			for _, p := range pairs {
				fmt.Fprintf(tw, "%s\t%s\t%g\n", p.From, p.To, p.Factor)
			}
			if len(asym) > 0 {
				fmt.Fprintln(tw, "\nASYMMETRIC PAIR\tREVERSE\tPRODUCT")
				for _, as := range asym {
					fmt.Fprintf(tw, "%s\t%s\t%.9f\n",
						units.Key(as.Forward.From, as.Forward.To),
						units.Key(as.Reverse.From, as.Reverse.To),
						as.Product)
				}
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or msgpack")
	return cmd
}
