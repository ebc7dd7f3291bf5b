// Package cost turns a threshold curve into a total-cost curve and picks the
// cost-minimizing decision threshold for a business-cost scenario.
package cost

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/costlab/costwise/internal/common"
	"github.com/costlab/costwise/internal/model"
)

// TotalCosts computes the total misclassification cost at every candidate
// threshold: C_FP*FP[i] + C_FN*FN[i].
func TotalCosts(curve *model.ThresholdCurve, scenario model.Scenario) ([]float64, error) {
	if curve == nil || curve.Len() == 0 {
		return nil, fmt.Errorf("%w: empty threshold curve", common.ErrInvalidInput)
	}
	if scenario.FalsePositiveCost < 0 || scenario.FalseNegativeCost < 0 {
		return nil, fmt.Errorf("%w: costs must be non-negative, got C_FP=%.4f C_FN=%.4f",
			common.ErrInvalidCostParameters, scenario.FalsePositiveCost, scenario.FalseNegativeCost)
	}

	costs := make([]float64, curve.Len())
	for i := range costs {
		costs[i] = scenario.FalsePositiveCost*float64(curve.FalsePositives[i]) +
			scenario.FalseNegativeCost*float64(curve.FalseNegatives[i])
	}
	return costs, nil
}

// Optimize locates the cost-minimizing threshold on the curve and derives
// the confusion counts, precision, and recall at that point. When several
// thresholds tie for minimum cost the highest threshold wins: it appears
// first in the descending sequence, and predicting fewer positives is the
// preferable behavior when costs are equal.
//
// When the scenario requests a calibrated comparison, the result also
// carries the cost at the threshold C_FP/(C_FN+C_FP). If that threshold
// lies above every observed score the comparison is omitted rather than
// treated as an error.
func Optimize(curve *model.ThresholdCurve, totalExamples int, scenario model.Scenario) (*model.ThresholdResult, error) {
	costs, err := TotalCosts(curve, scenario)
	if err != nil {
		return nil, err
	}
	if scenario.CompareCalibrated && scenario.FalsePositiveCost+scenario.FalseNegativeCost == 0 {
		return nil, fmt.Errorf("%w: calibrated threshold is undefined when both costs are zero", common.ErrInvalidCostParameters)
	}

	// floats.MinIdx returns the first minimum, which in descending threshold
	// order is the highest tied threshold.
	best := floats.MinIdx(costs)

	tp := curve.TruePositives[best]
	fp := curve.FalsePositives[best]
	fn := curve.FalseNegatives[best]
	tn := totalExamples - tp - fp - fn
	if tn < 0 {
		return nil, fmt.Errorf("%w: total of %d examples is smaller than the %d on the curve",
			common.ErrInvalidInput, totalExamples, tp+fp+fn)
	}

	result := &model.ThresholdResult{
		OptimalThreshold: curve.Thresholds[best],
		MinCost:          costs[best],
		Precision:        safeRatio(tp, tp+fp),
		Recall:           safeRatio(tp, tp+fn),
		TruePositives:    tp,
		FalsePositives:   fp,
		FalseNegatives:   fn,
		TrueNegatives:    tn,
	}

	if scenario.CompareCalibrated {
		calibrated, calErr := scenario.CalibratedThreshold()
		if calErr != nil {
			return nil, calErr
		}
		if j, ok := calibratedIndex(curve.Thresholds, calibrated); ok {
			result.Calibrated = &model.CalibratedComparison{
				Threshold: calibrated,
				Cost:      costs[j],
			}
		}
	}

	return result, nil
}

// calibratedIndex finds the rightmost index whose threshold is still at or
// above the calibrated value. The thresholds descend, so the qualifying
// indices form a prefix; when the calibrated threshold exceeds every
// observed score there is no decision boundary to compare against.
func calibratedIndex(thresholds []float64, calibrated float64) (int, bool) {
	end := sort.Search(len(thresholds), func(i int) bool {
		return thresholds[i] < calibrated
	})
	if end == 0 {
		return 0, false
	}
	return end - 1, true
}

// safeRatio resolves an undefined ratio to 0 rather than failing: a model
// with no positive predictions simply has precision 0.
func safeRatio(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}
