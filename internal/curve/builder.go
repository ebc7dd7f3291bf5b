// Package curve builds threshold curves: the cumulative confusion counts
// obtained by treating every distinct classifier score as a candidate
// decision threshold.
package curve

import (
	"sort"

	"github.com/costlab/costwise/internal/model"
	"github.com/costlab/costwise/internal/samples"
)

// Build enumerates every distinct score in labels/scores as a candidate
// threshold, in descending order, and computes the cumulative true positive,
// false positive, and false negative counts at each.
//
// A maximal run of tied scores collapses into a single candidate threshold:
// every example at a tied score lands in the same cumulative bucket, so ties
// never split across two curve entries.
func Build(labels []int, scores []float64) (*model.ThresholdCurve, error) {
	set, err := samples.New(labels, scores)
	if err != nil {
		return nil, err
	}
	return FromSet(set), nil
}

// FromSet builds the threshold curve for an already-validated sample set.
func FromSet(set *samples.Set) *model.ThresholdCurve {
	n := set.Len()
	totalPositives := set.Positives()

	// Rank examples by score descending. The sort is stable so tied scores
	// keep their original relative order, which keeps intermediate state
	// deterministic; the merged per-threshold counts do not depend on it.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return set.Scores[order[i]] > set.Scores[order[j]]
	})

	curve := &model.ThresholdCurve{}
	cumulativePositives := 0

	for rank, idx := range order {
		cumulativePositives += set.Labels[idx]

		// Emit a curve entry only at the last example of each run of equal
		// scores (and at the final example).
		if rank+1 < n && set.Scores[order[rank+1]] == set.Scores[idx] {
			continue
		}

		curve.Thresholds = append(curve.Thresholds, set.Scores[idx])
		curve.TruePositives = append(curve.TruePositives, cumulativePositives)
		curve.FalsePositives = append(curve.FalsePositives, (rank+1)-cumulativePositives)
		curve.FalseNegatives = append(curve.FalseNegatives, totalPositives-cumulativePositives)
	}

	return curve
}
