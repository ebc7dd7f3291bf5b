// Package samples normalizes and validates the aligned (label, score) inputs
// consumed by threshold analysis. All shape checking lives here so the
// algorithmic packages can assume clean input.
package samples

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/costlab/costwise/internal/common"
)

// Set is a validated, aligned sequence of binary labels and classifier
// scores. Construct it with New; a Set built by hand skips validation.
type Set struct {
	Labels []int
	Scores []float64
}

// New validates labels and scores and returns them as a Set. Labels must be
// 0 or 1, scores must be finite, and both slices must have the same non-zero
// length.
func New(labels []int, scores []float64) (*Set, error) {
	if len(labels) == 0 && len(scores) == 0 {
		return nil, fmt.Errorf("%w: no examples", common.ErrEmptyInput)
	}
	if len(labels) != len(scores) {
		return nil, fmt.Errorf("%w: %d labels but %d scores", common.ErrInvalidInput, len(labels), len(scores))
	}

	for i, label := range labels {
		if label != 0 && label != 1 {
			return nil, fmt.Errorf("%w: label at index %d is %d, want 0 or 1", common.ErrInvalidInput, i, label)
		}
	}
	for i, score := range scores {
		if math.IsNaN(score) || math.IsInf(score, 0) {
			return nil, fmt.Errorf("%w: score at index %d is not finite", common.ErrInvalidInput, i)
		}
	}

	return &Set{Labels: labels, Scores: scores}, nil
}

// Len returns the number of examples.
func (s *Set) Len() int {
	return len(s.Labels)
}

// Positives returns the number of positive labels.
func (s *Set) Positives() int {
	count := 0
	for _, label := range s.Labels {
		count += label
	}
	return count
}

// ScoresFromMatrix reduces a single-column score matrix, the shape in which
// tabular model output typically arrives, to a flat score slice. Matrices
// with more than one column are rejected with the offending shape.
func ScoresFromMatrix(m mat.Matrix) ([]float64, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil score matrix", common.ErrInvalidInput)
	}

	rows, cols := m.Dims()
	if cols != 1 {
		return nil, fmt.Errorf("%w: score matrix has shape %dx%d, want a single column", common.ErrInvalidInput, rows, cols)
	}

	scores := make([]float64, rows)
	for i := 0; i < rows; i++ {
		scores[i] = m.At(i, 0)
	}
	return scores, nil
}

// FlattenScores flattens a nested score array to one dimension, preserving
// row-major order.
func FlattenScores(rows [][]float64) []float64 {
	total := 0
	for _, row := range rows {
		total += len(row)
	}

	flat := make([]float64, 0, total)
	for _, row := range rows {
		flat = append(flat, row...)
	}
	return flat
}
