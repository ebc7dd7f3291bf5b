// Package model defines the core value types for threshold analysis.
package model

import (
	"fmt"
)

// ThresholdCurve holds, for every distinct score value in descending order,
// the confusion counts that would result from using that score as the
// decision threshold. All four slices are aligned and equal in length.
type ThresholdCurve struct {
	Thresholds     []float64
	TruePositives  []int
	FalsePositives []int
	FalseNegatives []int
}

// Len returns the number of candidate thresholds on the curve.
func (c *ThresholdCurve) Len() int {
	return len(c.Thresholds)
}

// TotalPositives returns the number of positive examples in the underlying
// data. The last curve entry classifies every example positive, so its true
// positive count is the positive total.
func (c *ThresholdCurve) TotalPositives() int {
	if len(c.TruePositives) == 0 {
		return 0
	}
	return c.TruePositives[len(c.TruePositives)-1]
}

// Validate ensures the curve invariants hold: aligned slice lengths, strictly
// descending thresholds, and counts that move monotonically as the threshold
// drops.
func (c *ThresholdCurve) Validate() error {
	k := len(c.Thresholds)
	if k == 0 {
		return fmt.Errorf("threshold curve is empty")
	}
	if len(c.TruePositives) != k || len(c.FalsePositives) != k || len(c.FalseNegatives) != k {
		return fmt.Errorf("misaligned curve: %d thresholds, %d/%d/%d counts",
			k, len(c.TruePositives), len(c.FalsePositives), len(c.FalseNegatives))
	}

	for i := 0; i < k; i++ {
		if c.TruePositives[i] < 0 || c.FalsePositives[i] < 0 || c.FalseNegatives[i] < 0 {
			return fmt.Errorf("negative count at index %d", i)
		}
		if i == 0 {
			continue
		}
		if c.Thresholds[i] >= c.Thresholds[i-1] {
			return fmt.Errorf("thresholds not strictly descending at index %d: %v >= %v",
				i, c.Thresholds[i], c.Thresholds[i-1])
		}
		if c.TruePositives[i] < c.TruePositives[i-1] {
			return fmt.Errorf("true positives decrease at index %d", i)
		}
		if c.FalsePositives[i] < c.FalsePositives[i-1] {
			return fmt.Errorf("false positives decrease at index %d", i)
		}
		if c.FalseNegatives[i] > c.FalseNegatives[i-1] {
			return fmt.Errorf("false negatives increase at index %d", i)
		}
	}

	return nil
}
