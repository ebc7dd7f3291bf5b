package model

import (
	"fmt"
)

// CalibratedComparison reports the cost achieved at the analytically
// calibrated threshold C_FP/(C_FN+C_FP). It is diagnostic: when the
// calibrated threshold falls outside the observed score range the comparison
// is simply absent from the result.
type CalibratedComparison struct {
	Threshold float64
	Cost      float64
}

// ThresholdResult is the output of cost optimization for one (model,
// scenario) pair.
type ThresholdResult struct {
	Calibrated       *CalibratedComparison
	OptimalThreshold float64
	MinCost          float64
	Precision        float64
	Recall           float64
	TruePositives    int
	FalsePositives   int
	FalseNegatives   int
	TrueNegatives    int
}

// TotalExamples returns the confusion matrix total.
func (r *ThresholdResult) TotalExamples() int {
	return r.TruePositives + r.FalsePositives + r.FalseNegatives + r.TrueNegatives
}

// Validate ensures the result's internal accounting is consistent.
func (r *ThresholdResult) Validate() error {
	if r.TruePositives < 0 || r.FalsePositives < 0 || r.FalseNegatives < 0 || r.TrueNegatives < 0 {
		return fmt.Errorf("negative confusion count")
	}
	if r.MinCost < 0 {
		return fmt.Errorf("negative minimum cost %.4f", r.MinCost)
	}
	if r.Precision < 0 || r.Precision > 1 {
		return fmt.Errorf("precision %.4f out of range", r.Precision)
	}
	if r.Recall < 0 || r.Recall > 1 {
		return fmt.Errorf("recall %.4f out of range", r.Recall)
	}
	return nil
}
