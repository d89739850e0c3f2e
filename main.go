package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"winehypo/adapters/charts"
	"winehypo/adapters/dataset"
	"winehypo/adapters/stats/distributions"
	"winehypo/app"
	"winehypo/domain/core"
	"winehypo/domain/stats"
	"winehypo/internal"
	"winehypo/internal/config"
	"winehypo/internal/errors"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "winehypo",
		Short: "One-sample t-test on the mean pH of red wines",
		Long: `Runs a two-tailed one-sample t-test of the red-wine pH column against a
hypothesized mean, prints the narrative report and writes the diagnostic plots
question2_assumptions.png and question2_test_visualization.png.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd)
		},
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err))
		os.Exit(1)
	}
}

// errorLine prefixes application errors with their code
func errorLine(err error) string {
	if errors.IsAppError(err) {
		return fmt.Sprintf("Error [%s]: %v", errors.GetCode(err), err)
	}
	return fmt.Sprintf("Error: %v", err)
}

func run(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level), os.Stderr)

	variable, err := core.ParseVariableKey(cfg.Data.Variable)
	if err != nil {
		return err
	}

	dist := distributions.NewGonumDistributions()
	plotter := charts.NewPlotter(dist, charts.Options{
		AssumptionsPath:       cfg.Output.AssumptionsPlotPath(),
		TestVisualizationPath: cfg.Output.TestVisualizationPath(),
		DPI:                   cfg.Output.DPI,
	}, log)

	svc := app.NewOneSampleService(dataset.NewDataReader(log), dist, plotter, cmd.OutOrStdout(), log)

	_, err = svc.Run(cmd.Context(), app.OneSampleRequest{
		DataFile: cfg.Data.File,
		Variable: variable,
		Hypothesis: stats.Hypothesis{
			Mu0:   cfg.Test.HypothesizedMean,
			Alpha: cfg.Test.Alpha,
		},
	})
	return err
}
