package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/costlab/costwise/internal/engine"
	"github.com/costlab/costwise/internal/model"
	"github.com/costlab/costwise/internal/report"
	"github.com/costlab/costwise/internal/samples"
)

func optimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize <dataset>",
		Short: "Find the cost-optimal threshold for one model",
		Long: `Build the threshold curve for a single dataset and find the decision
threshold that minimizes total misclassification cost under the given
false positive and false negative costs.`,
		Args: cobra.ExactArgs(1),
		RunE: runOptimize,
	}

	cmd.Flags().Float64("fp-cost", 1, "cost per false positive")
	cmd.Flags().Float64("fn-cost", 1, "cost per false negative")
	cmd.Flags().Bool("calibrated", false, "also report cost at the calibrated threshold C_FP/(C_FN+C_FP)")

	return cmd
}

func runOptimize(cmd *cobra.Command, args []string) error {
	dataset, err := samples.LoadDataset(args[0])
	if err != nil {
		return err
	}

	fpCost, _ := cmd.Flags().GetFloat64("fp-cost")
	fnCost, _ := cmd.Flags().GetFloat64("fn-cost")
	calibrated, _ := cmd.Flags().GetBool("calibrated")

	scenario := model.Scenario{
		Name:              "cli",
		FalsePositiveCost: fpCost,
		FalseNegativeCost: fnCost,
		CompareCalibrated: calibrated,
	}
	if err := scenario.Validate(); err != nil {
		return err
	}

	result, err := engine.Evaluate(dataset.Samples, scenario)
	if err != nil {
		return err
	}

	fmt.Println(report.ResultDetail(&model.Evaluation{
		Model:    dataset.Model,
		Scenario: scenario,
		Result:   result,
	}))

	return nil
}
