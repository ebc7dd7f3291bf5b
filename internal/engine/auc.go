package engine

import (
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"

	"github.com/costlab/costwise/internal/samples"
)

// AUC computes the area under the ROC curve for a sample set. It is a
// threshold-agnostic diagnostic reported alongside the cost-based results so
// degenerate rankings are visible in the summary. Sets with only one class
// have no ROC curve; they report 0.
func AUC(set *samples.Set) float64 {
	if set == nil || set.Len() == 0 {
		return 0
	}

	positives := set.Positives()
	if positives == 0 || positives == set.Len() {
		return 0
	}

	// stat.ROC wants scores ascending with classes kept aligned.
	scores := make([]float64, set.Len())
	classes := make([]bool, set.Len())
	copy(scores, set.Scores)
	for i, label := range set.Labels {
		classes[i] = label == 1
	}
	stat.SortWeightedLabeled(scores, classes, nil)

	tpr, fpr, _ := stat.ROC(nil, scores, classes, nil)
	return integrate.Trapezoidal(fpr, tpr)
}
