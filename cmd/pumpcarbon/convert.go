package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rshade/pumpcarbon/internal/report"
)

func (a *app) convertCmd() *cobra.Command {
	var (
		strict    bool
		roundTrip bool
		output    string
	)

	cmd := &cobra.Command{
		Use:   "convert VALUE FROM TO",
		Short: "Convert a value between units using the conversion table",
		Long: "Convert looks up \"FROM to TO\" in the conversion table. Pairs with no entry\n" +
			"pass the value through unchanged unless --strict is set.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[0], err)
			}
			from, to := args[1], args[2]

			if strict {
				if _, err := a.converter.ConvertStrict(value, from, to); err != nil {
					return err
				}
			}
			res := a.converter.Resolve(value, from, to)

			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}
			if format != report.FormatText {
				return report.Write(cmd.OutOrStdout(), format, res)
			}

			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%.10g %s = %.10g %s (%s)\n",
				value, from, res.Value, to, res.Status); err != nil {
				return err
			}
			if !roundTrip {
				return nil
			}

			back, exact := a.converter.Table().RoundTrip(value, from, to)
			verdict := "exact"
			if !exact {
				verdict = "not reciprocal"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "round trip: %.10g %s -> %.10g %s (%s)\n",
				value, from, back, from, verdict)
			return err
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when the pair has no conversion factor")
	cmd.Flags().BoolVar(&roundTrip, "round-trip", false, "also convert back and report whether the pair is reciprocal")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or msgpack")
	return cmd
}
