// Package report renders sweep results as terminal tables, JSON exports,
// and HTML cost-curve charts.
package report

import (
	"fmt"
	"strings"

	"github.com/costlab/costwise/internal/cli"
	"github.com/costlab/costwise/internal/model"
)

// SummaryTable renders a sweep as a cross-model, cross-scenario table.
// Each cell shows the optimal threshold and minimum cost, with precision and
// recall beneath; failed pairs show their error instead.
func SummaryTable(summary *model.SweepSummary) string {
	if summary == nil || len(summary.Evaluations) == 0 {
		return cli.SubtleStyle.Render("No evaluations to display.")
	}

	models := summary.Models()
	scenarios := summary.Scenarios()

	var b strings.Builder
	b.WriteString(cli.FormatTitle("Threshold sweep summary"))
	b.WriteString("\n\n")

	header := cli.TableHeaderStyle.Render(fmt.Sprintf("%-24s", "Model"))
	for _, name := range scenarios {
		header += cli.TableHeaderStyle.Render(fmt.Sprintf("%-28s", name))
	}
	header += cli.TableHeaderStyle.Render(fmt.Sprintf("%8s", "AUC"))
	b.WriteString(header)
	b.WriteString("\n")

	for _, modelName := range models {
		row := cli.TableCellStyle.Render(fmt.Sprintf("%-24s", modelName))
		for _, scenarioName := range scenarios {
			row += cli.TableCellStyle.Render(fmt.Sprintf("%-28s", formatCell(summary.Lookup(modelName, scenarioName))))
		}
		if auc, ok := summary.AUC[modelName]; ok {
			row += fmt.Sprintf("%8.3f", auc)
		} else {
			row += fmt.Sprintf("%8s", "-")
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	if failures := summary.FailureCount(); failures > 0 {
		b.WriteString("\n")
		b.WriteString(cli.FormatWarning(fmt.Sprintf("%d pair(s) could not be evaluated", failures)))
		b.WriteString("\n")
	}

	return b.String()
}

func formatCell(ev *model.Evaluation) string {
	if ev == nil {
		return "-"
	}
	if ev.Failed() {
		return cli.ErrorStyle.Render("error")
	}
	r := ev.Result
	return fmt.Sprintf("t=%.3f cost=%.2f P=%.2f R=%.2f",
		r.OptimalThreshold, r.MinCost, r.Precision, r.Recall)
}

// ResultDetail renders one evaluation in full, including the confusion
// matrix and the calibrated comparison when present.
func ResultDetail(ev *model.Evaluation) string {
	if ev == nil {
		return cli.SubtleStyle.Render("No result.")
	}
	if ev.Failed() {
		return cli.FormatError(fmt.Sprintf("%s / %s: %s", ev.Model, ev.Scenario.Name, ev.Error))
	}

	r := ev.Result
	var b strings.Builder
	fmt.Fprintf(&b, "Optimal threshold: %.4f\n", r.OptimalThreshold)
	fmt.Fprintf(&b, "Minimum cost:      %.4f\n", r.MinCost)
	fmt.Fprintf(&b, "Precision:         %.4f\n", r.Precision)
	fmt.Fprintf(&b, "Recall:            %.4f\n", r.Recall)
	fmt.Fprintf(&b, "Confusion:         TP=%d FP=%d FN=%d TN=%d (total %d)\n",
		r.TruePositives, r.FalsePositives, r.FalseNegatives, r.TrueNegatives, r.TotalExamples())

	if r.Calibrated != nil {
		fmt.Fprintf(&b, "Calibrated:        threshold=%.4f cost=%.4f\n",
			r.Calibrated.Threshold, r.Calibrated.Cost)
	} else if ev.Scenario.CompareCalibrated {
		b.WriteString("Calibrated:        comparison unavailable (threshold outside observed scores)\n")
	}

	return cli.RenderBox(fmt.Sprintf("%s / %s", ev.Model, ev.Scenario.Name), strings.TrimRight(b.String(), "\n"))
}
