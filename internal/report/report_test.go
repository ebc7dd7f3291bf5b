package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costlab/costwise/internal/model"
	"github.com/costlab/costwise/internal/samples"
)

func reportTestSummary() *model.SweepSummary {
	started := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	return &model.SweepSummary{
		StartedAt:   started,
		CompletedAt: started.Add(time.Second),
		AUC:         map[string]float64{"gbm": 0.917},
		Evaluations: []model.Evaluation{
			{
				Model:    "gbm",
				Scenario: model.Scenario{Name: "strict", FalsePositiveCost: 1, FalseNegativeCost: 10, CompareCalibrated: true},
				Result: &model.ThresholdResult{
					OptimalThreshold: 0.4,
					Precision:        1,
					Recall:           1,
					TruePositives:    2,
					TrueNegatives:    2,
					Calibrated:       &model.CalibratedComparison{Threshold: 1.0 / 11.0, Cost: 2},
				},
			},
			{
				Model:    "gbm",
				Scenario: model.Scenario{Name: "broken", FalsePositiveCost: -1, FalseNegativeCost: 1},
				Error:    "invalid cost parameters",
			},
		},
	}
}

func TestSummaryTable(t *testing.T) {
	table := SummaryTable(reportTestSummary())

	assert.Contains(t, table, "gbm")
	assert.Contains(t, table, "strict")
	assert.Contains(t, table, "t=0.400")
	assert.Contains(t, table, "0.917")
	assert.Contains(t, table, "1 pair(s) could not be evaluated")
}

func TestSummaryTableEmpty(t *testing.T) {
	assert.Contains(t, SummaryTable(nil), "No evaluations")
	assert.Contains(t, SummaryTable(&model.SweepSummary{}), "No evaluations")
}

func TestResultDetail(t *testing.T) {
	summary := reportTestSummary()

	detail := ResultDetail(&summary.Evaluations[0])
	assert.Contains(t, detail, "Optimal threshold: 0.4000")
	assert.Contains(t, detail, "TP=2 FP=0 FN=0 TN=2 (total 4)")
	assert.Contains(t, detail, "Calibrated:")

	failed := ResultDetail(&summary.Evaluations[1])
	assert.Contains(t, failed, "invalid cost parameters")
}

func TestResultDetailCalibrationUnavailable(t *testing.T) {
	ev := &model.Evaluation{
		Model:    "gbm",
		Scenario: model.Scenario{Name: "s", FalsePositiveCost: 10, FalseNegativeCost: 1, CompareCalibrated: true},
		Result:   &model.ThresholdResult{OptimalThreshold: 0.4},
	}

	assert.Contains(t, ResultDetail(ev), "comparison unavailable")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, reportTestSummary()))

	var decoded struct {
		AUC         map[string]float64 `json:"auc"`
		Evaluations []struct {
			Model               string   `json:"model"`
			Scenario            string   `json:"scenario"`
			Error               string   `json:"error"`
			OptimalThreshold    *float64 `json:"optimal_threshold"`
			CalibratedThreshold *float64 `json:"calibrated_threshold"`
		} `json:"evaluations"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Evaluations, 2)
	assert.InDelta(t, 0.917, decoded.AUC["gbm"], 1e-9)

	ok := decoded.Evaluations[0]
	assert.Equal(t, "gbm", ok.Model)
	assert.Equal(t, "strict", ok.Scenario)
	require.NotNil(t, ok.OptimalThreshold)
	assert.InDelta(t, 0.4, *ok.OptimalThreshold, 1e-9)
	require.NotNil(t, ok.CalibratedThreshold)

	failed := decoded.Evaluations[1]
	assert.Equal(t, "invalid cost parameters", failed.Error)
	assert.Nil(t, failed.OptimalThreshold)
}

func TestWriteCostChart(t *testing.T) {
	set, err := samples.New([]int{0, 1, 0, 1}, []float64{0.1, 0.4, 0.35, 0.8})
	require.NoError(t, err)

	datasets := []*samples.Dataset{{Model: "gbm", Samples: set}}
	scenarios := []model.Scenario{
		{Name: "strict", FalsePositiveCost: 1, FalseNegativeCost: 10},
		{Name: "lenient", FalsePositiveCost: 10, FalseNegativeCost: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCostChart(&buf, datasets, scenarios))

	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "strict")
	assert.Contains(t, html, "lenient")
}

func TestWriteCostChartRejectsBadScenario(t *testing.T) {
	set, err := samples.New([]int{0, 1}, []float64{0.2, 0.8})
	require.NoError(t, err)

	datasets := []*samples.Dataset{{Model: "gbm", Samples: set}}
	scenarios := []model.Scenario{{Name: "bad", FalsePositiveCost: -1, FalseNegativeCost: 1}}

	var buf bytes.Buffer
	require.Error(t, WriteCostChart(&buf, datasets, scenarios))
}
