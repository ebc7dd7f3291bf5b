package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costlab/costwise/internal/samples"
)

func TestAUC(t *testing.T) {
	tests := []struct {
		name   string
		labels []int
		scores []float64
		want   float64
	}{
		{
			name:   "perfect ranking",
			labels: []int{0, 0, 1, 1},
			scores: []float64{0.1, 0.2, 0.8, 0.9},
			want:   1.0,
		},
		{
			name:   "inverted ranking",
			labels: []int{1, 1, 0, 0},
			scores: []float64{0.1, 0.2, 0.8, 0.9},
			want:   0.0,
		},
		{
			name:   "partial ranking",
			labels: []int{0, 0, 1, 1},
			scores: []float64{0.1, 0.4, 0.35, 0.8},
			want:   0.75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := samples.New(tt.labels, tt.scores)
			require.NoError(t, err)

			assert.InDelta(t, tt.want, AUC(set), 1e-9)
		})
	}
}

func TestAUCDegenerate(t *testing.T) {
	allNegative, err := samples.New([]int{0, 0, 0}, []float64{0.1, 0.5, 0.9})
	require.NoError(t, err)
	assert.Zero(t, AUC(allNegative))

	allPositive, err := samples.New([]int{1, 1}, []float64{0.3, 0.7})
	require.NoError(t, err)
	assert.Zero(t, AUC(allPositive))

	assert.Zero(t, AUC(nil))
}

func TestAUCDoesNotMutateInput(t *testing.T) {
	set, err := samples.New([]int{1, 0, 1, 0}, []float64{0.9, 0.8, 0.2, 0.1})
	require.NoError(t, err)

	_ = AUC(set)

	assert.Equal(t, []float64{0.9, 0.8, 0.2, 0.1}, set.Scores)
	assert.Equal(t, []int{1, 0, 1, 0}, set.Labels)
}
