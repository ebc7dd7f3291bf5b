package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/costlab/costwise/internal/cli"
	"github.com/costlab/costwise/internal/common"
	"github.com/costlab/costwise/internal/engine"
	"github.com/costlab/costwise/internal/report"
	"github.com/costlab/costwise/internal/storage"
)

func sweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate every model against every cost scenario",
		Long: `Run the full model x scenario sweep: for each dataset and each cost
scenario, find the cost-minimizing decision threshold and report the
operating point. Scenarios come from the config file; without any, the
--fp-cost/--fn-cost flags define a single scenario.`,
		RunE: runSweep,
	}

	cmd.Flags().StringSliceP("data", "d", nil, "dataset files (JSON or CSV, repeatable)")
	cmd.Flags().Float64("fp-cost", 1, "false positive cost for the fallback scenario")
	cmd.Flags().Float64("fn-cost", 1, "false negative cost for the fallback scenario")
	cmd.Flags().Bool("calibrated", false, "also report cost at the calibrated threshold C_FP/(C_FN+C_FP)")
	cmd.Flags().Int("workers", 4, "concurrent evaluations")
	cmd.Flags().Bool("no-progress", false, "disable the progress bar")
	cmd.Flags().String("db", "", "SQLite database to persist results to")
	cmd.Flags().String("chart", "", "write cost-vs-threshold curves to this HTML file")
	cmd.Flags().String("json", "", "write the sweep summary to this JSON file")

	_ = viper.BindPFlag("sweep.data", cmd.Flags().Lookup("data"))
	_ = viper.BindPFlag("sweep.fp_cost", cmd.Flags().Lookup("fp-cost"))
	_ = viper.BindPFlag("sweep.fn_cost", cmd.Flags().Lookup("fn-cost"))
	_ = viper.BindPFlag("sweep.calibrated", cmd.Flags().Lookup("calibrated"))
	_ = viper.BindPFlag("sweep.workers", cmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("sweep.db", cmd.Flags().Lookup("db"))

	return cmd
}

func runSweep(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	datasets, err := loadDatasets(viper.GetStringSlice("sweep.data"))
	if err != nil {
		return err
	}

	scenarios, err := loadScenarios(
		viper.GetFloat64("sweep.fp_cost"),
		viper.GetFloat64("sweep.fn_cost"),
		viper.GetBool("sweep.calibrated"))
	if err != nil {
		return err
	}

	noProgress, _ := cmd.Flags().GetBool("no-progress")
	sweeper := engine.NewWithConfig(engine.Config{
		Workers:      viper.GetInt("sweep.workers"),
		ShowProgress: !noProgress,
	})

	summary, err := sweeper.Sweep(ctx, datasets, scenarios)
	if err != nil {
		return err
	}

	fmt.Println(report.SummaryTable(summary))

	if jsonPath, _ := cmd.Flags().GetString("json"); jsonPath != "" {
		file, createErr := os.Create(jsonPath)
		if createErr != nil {
			return fmt.Errorf("failed to create %s: %w", jsonPath, createErr)
		}
		writeErr := report.WriteJSON(file, summary)
		_ = file.Close()
		if writeErr != nil {
			return writeErr
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Summary written to %s", jsonPath)))
	}

	if chartPath, _ := cmd.Flags().GetString("chart"); chartPath != "" {
		if chartErr := report.SaveCostChart(chartPath, datasets, scenarios); chartErr != nil {
			return chartErr
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Cost curves written to %s", chartPath)))
	}

	if dbPath := viper.GetString("sweep.db"); dbPath != "" {
		store, storeErr := storage.NewSQLiteStorage(dbPath)
		if storeErr != nil {
			return storeErr
		}
		defer func() { _ = store.Close() }()

		if migrateErr := store.Migrate(ctx); migrateErr != nil {
			return migrateErr
		}

		// Another costwise process may hold the database; retry busy writes.
		var sweepID int64
		saveErr := common.WithRetry(ctx, func() error {
			var err error
			sweepID, err = store.SaveSweep(ctx, summary)
			return err
		}, common.RetryOptions{MaxAttempts: 3})
		if saveErr != nil {
			return saveErr
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Sweep saved as run %d in %s", sweepID, dbPath)))
	}

	return nil
}
