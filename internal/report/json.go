package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/costlab/costwise/internal/model"
)

// evaluationJSON is the export shape for one (model, scenario) pair.
type evaluationJSON struct {
	Model               string   `json:"model"`
	Scenario            string   `json:"scenario"`
	FalsePositiveCost   float64  `json:"fp_cost"`
	FalseNegativeCost   float64  `json:"fn_cost"`
	Error               string   `json:"error,omitempty"`
	OptimalThreshold    *float64 `json:"optimal_threshold,omitempty"`
	MinCost             *float64 `json:"min_cost,omitempty"`
	Precision           *float64 `json:"precision,omitempty"`
	Recall              *float64 `json:"recall,omitempty"`
	TruePositives       *int     `json:"true_positives,omitempty"`
	FalsePositives      *int     `json:"false_positives,omitempty"`
	FalseNegatives      *int     `json:"false_negatives,omitempty"`
	TrueNegatives       *int     `json:"true_negatives,omitempty"`
	CalibratedThreshold *float64 `json:"calibrated_threshold,omitempty"`
	CalibratedCost      *float64 `json:"calibrated_cost,omitempty"`
}

type summaryJSON struct {
	AUC         map[string]float64 `json:"auc,omitempty"`
	Evaluations []evaluationJSON   `json:"evaluations"`
}

// WriteJSON exports a sweep summary for downstream tooling.
func WriteJSON(w io.Writer, summary *model.SweepSummary) error {
	out := summaryJSON{
		AUC:         summary.AUC,
		Evaluations: make([]evaluationJSON, 0, len(summary.Evaluations)),
	}

	for i := range summary.Evaluations {
		ev := &summary.Evaluations[i]
		item := evaluationJSON{
			Model:             ev.Model,
			Scenario:          ev.Scenario.Name,
			FalsePositiveCost: ev.Scenario.FalsePositiveCost,
			FalseNegativeCost: ev.Scenario.FalseNegativeCost,
		}

		if ev.Failed() {
			item.Error = ev.Error
		} else {
			r := ev.Result
			item.OptimalThreshold = &r.OptimalThreshold
			item.MinCost = &r.MinCost
			item.Precision = &r.Precision
			item.Recall = &r.Recall
			item.TruePositives = &r.TruePositives
			item.FalsePositives = &r.FalsePositives
			item.FalseNegatives = &r.FalseNegatives
			item.TrueNegatives = &r.TrueNegatives
			if r.Calibrated != nil {
				item.CalibratedThreshold = &r.Calibrated.Threshold
				item.CalibratedCost = &r.Calibrated.Cost
			}
		}

		out.Evaluations = append(out.Evaluations, item)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return nil
}
