package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/costlab/costwise/internal/cli"
	"github.com/costlab/costwise/internal/report"
	"github.com/costlab/costwise/internal/service"
	"github.com/costlab/costwise/internal/storage"
)

func resultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Inspect stored sweep results",
	}

	cmd.PersistentFlags().String("db", "", "SQLite database holding sweep results")
	_ = viper.BindPFlag("results.db", cmd.PersistentFlags().Lookup("db"))

	cmd.AddCommand(resultsListCmd())
	cmd.AddCommand(resultsShowCmd())

	return cmd
}

func openResultsStorage() (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("results.db")
	if dbPath == "" {
		return nil, fmt.Errorf("no database given; pass --db or set results.db in config")
	}
	return storage.NewSQLiteStorage(dbPath)
}

func resultsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored sweeps",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openResultsStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			infos, err := store.ListSweeps(cmd.Context())
			if err != nil {
				return err
			}

			if len(infos) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No sweeps stored yet."))
				return nil
			}

			fmt.Println(cli.TableHeaderStyle.Render(fmt.Sprintf("%6s  %-20s  %7s  %10s  %9s", "ID", "Completed", "Models", "Scenarios", "Failures")))
			for _, info := range infos {
				fmt.Printf("%6d  %-20s  %7d  %10d  %9d\n",
					info.ID,
					info.CompletedAt.Format("2006-01-02 15:04:05"),
					info.Models, info.Scenarios, info.Failures)
			}
			return nil
		},
	}
}

func resultsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <sweep-id>",
		Short: "Show one sweep's summary table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid sweep id %q: %w", args[0], err)
			}

			store, err := openResultsStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			modelFilter, _ := cmd.Flags().GetString("model")
			scenarioFilter, _ := cmd.Flags().GetString("scenario")

			if modelFilter != "" || scenarioFilter != "" {
				evaluations, evalErr := store.GetEvaluations(cmd.Context(), id, service.EvaluationFilter{
					Model:    modelFilter,
					Scenario: scenarioFilter,
				})
				if evalErr != nil {
					return evalErr
				}
				for i := range evaluations {
					fmt.Println(report.ResultDetail(&evaluations[i]))
				}
				return nil
			}

			summary, err := store.GetSweep(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Println(report.SummaryTable(summary))
			return nil
		},
	}

	cmd.Flags().String("model", "", "only show this model")
	cmd.Flags().String("scenario", "", "only show this scenario")

	return cmd
}
