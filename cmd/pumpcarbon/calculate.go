package main

import (
	"github.com/spf13/cobra"

	"github.com/rshade/pumpcarbon/internal/carbon"
	"github.com/rshade/pumpcarbon/internal/report"
	"github.com/rshade/pumpcarbon/internal/scenario"
)

func (a *app) calculateCmd() *cobra.Command {
	var (
		output      string
		strictUnits bool
		pump        string
	)

	cmd := &cobra.Command{
		Use:   "calculate [scenario.yaml]",
		Short: "Calculate energy, losses, emissions and cost for a scenario",
		Long: "Calculate reads a YAML scenario document. Without a file every input takes\n" +
			"its default value for the pump selected with --pump.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("output") {
				output = a.cfg.Output
			}
			if !cmd.Flags().Changed("strict-units") {
				strictUnits = a.cfg.StrictUnits
			}
			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}

			var doc scenario.Document
			if len(args) == 1 {
				if doc, err = scenario.Load(args[0]); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("pump") || doc.Pump == "" {
				doc.Pump = pump
			}

			builder := scenario.NewBuilder(a.converter, a.logger, scenario.WithStrictUnits(strictUnits))
			built, err := builder.Build(doc)
			if err != nil {
				return err
			}

			res, err := carbon.NewCalculator(a.cfg.Constants).Calculate(built.Params)
			if err != nil {
				return err
			}

			a.logger.Info().
				Str("variant", string(built.Variant)).
				Float64("total_co2_t_day", res.TotalCO2).
				Msg("calculation complete")

			return report.Write(cmd.OutOrStdout(), format, report.New(built, res))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or msgpack")
	cmd.Flags().BoolVar(&strictUnits, "strict-units", false, "fail on unit pairs with no conversion factor")
	cmd.Flags().StringVar(&pump, "pump", "normal", "pump variant when the scenario does not name one")
	return cmd
}
