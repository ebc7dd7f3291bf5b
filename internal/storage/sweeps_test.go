package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costlab/costwise/internal/common"
	"github.com/costlab/costwise/internal/model"
	"github.com/costlab/costwise/internal/service"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))

	return store
}

func testSweepSummary() *model.SweepSummary {
	started := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	return &model.SweepSummary{
		StartedAt:   started,
		CompletedAt: started.Add(3 * time.Second),
		AUC:         map[string]float64{"gbm": 0.91, "forest": 0.84},
		Evaluations: []model.Evaluation{
			{
				Model:    "gbm",
				Scenario: model.Scenario{Name: "strict", FalsePositiveCost: 1, FalseNegativeCost: 10, CompareCalibrated: true},
				Result: &model.ThresholdResult{
					OptimalThreshold: 0.4,
					MinCost:          0,
					Precision:        1,
					Recall:           1,
					TruePositives:    2,
					TrueNegatives:    2,
					Calibrated:       &model.CalibratedComparison{Threshold: 1.0 / 11.0, Cost: 2},
				},
			},
			{
				Model:    "forest",
				Scenario: model.Scenario{Name: "strict", FalsePositiveCost: 1, FalseNegativeCost: 10},
				Result: &model.ThresholdResult{
					OptimalThreshold: 0.35,
					MinCost:          1,
					Precision:        2.0 / 3.0,
					Recall:           1,
					TruePositives:    2,
					FalsePositives:   1,
					TrueNegatives:    1,
				},
			},
			{
				Model:    "forest",
				Scenario: model.Scenario{Name: "broken", FalsePositiveCost: -1, FalseNegativeCost: 1},
				Error:    "invalid cost parameters: costs must be non-negative",
			},
		},
	}
}

func TestSaveAndGetSweep(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	sweepID, err := store.SaveSweep(ctx, testSweepSummary())
	require.NoError(t, err)
	assert.Positive(t, sweepID)

	loaded, err := store.GetSweep(ctx, sweepID)
	require.NoError(t, err)

	require.Len(t, loaded.Evaluations, 3)
	assert.Equal(t, 1, loaded.FailureCount())
	assert.InDelta(t, 0.91, loaded.AUC["gbm"], 1e-9)
	assert.InDelta(t, 0.84, loaded.AUC["forest"], 1e-9)

	best := loaded.Lookup("gbm", "strict")
	require.NotNil(t, best)
	require.False(t, best.Failed())
	assert.InDelta(t, 0.4, best.Result.OptimalThreshold, 1e-9)
	assert.InDelta(t, 1.0, best.Result.Precision, 1e-9)
	assert.Equal(t, 2, best.Result.TruePositives)
	require.NotNil(t, best.Result.Calibrated)
	assert.InDelta(t, 1.0/11.0, best.Result.Calibrated.Threshold, 1e-9)
	assert.InDelta(t, 2.0, best.Result.Calibrated.Cost, 1e-9)

	failed := loaded.Lookup("forest", "broken")
	require.NotNil(t, failed)
	assert.True(t, failed.Failed())
	assert.Contains(t, failed.Error, "invalid cost parameters")
}

func TestGetSweepNotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetSweep(context.Background(), 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveSweepValidation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		summary *model.SweepSummary
		name    string
	}{
		{name: "nil summary", summary: nil},
		{name: "no evaluations", summary: &model.SweepSummary{}},
		{
			name: "evaluation without model",
			summary: &model.SweepSummary{Evaluations: []model.Evaluation{
				{Scenario: model.Scenario{Name: "s"}, Error: "x"},
			}},
		},
		{
			name: "evaluation with neither result nor error",
			summary: &model.SweepSummary{Evaluations: []model.Evaluation{
				{Model: "m", Scenario: model.Scenario{Name: "s"}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.SaveSweep(ctx, tt.summary)
			require.Error(t, err)
		})
	}
}

func TestListSweeps(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	first, err := store.SaveSweep(ctx, testSweepSummary())
	require.NoError(t, err)
	second, err := store.SaveSweep(ctx, testSweepSummary())
	require.NoError(t, err)

	infos, err := store.ListSweeps(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	// Newest first.
	assert.Equal(t, second, infos[0].ID)
	assert.Equal(t, first, infos[1].ID)
	assert.Equal(t, 2, infos[0].Models)
	assert.Equal(t, 2, infos[0].Scenarios)
	assert.Equal(t, 1, infos[0].Failures)
}

func TestGetEvaluationsFiltered(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	sweepID, err := store.SaveSweep(ctx, testSweepSummary())
	require.NoError(t, err)

	byModel, err := store.GetEvaluations(ctx, sweepID, service.EvaluationFilter{Model: "forest"})
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	for _, ev := range byModel {
		assert.Equal(t, "forest", ev.Model)
	}

	byBoth, err := store.GetEvaluations(ctx, sweepID, service.EvaluationFilter{Model: "forest", Scenario: "strict"})
	require.NoError(t, err)
	require.Len(t, byBoth, 1)
	assert.False(t, byBoth[0].Failed())

	none, err := store.GetEvaluations(ctx, sweepID, service.EvaluationFilter{Model: "missing"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetEvaluationsInvalidID(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetEvaluations(context.Background(), 0, service.EvaluationFilter{})
	require.Error(t, err)
}
