package model

import (
	"math"
	"testing"
)

func TestScenario_Validate(t *testing.T) {
	tests := []struct {
		name     string
		scenario Scenario
		wantErr  bool
	}{
		{
			name:     "valid scenario",
			scenario: Scenario{Name: "fraud", FalsePositiveCost: 1, FalseNegativeCost: 10},
			wantErr:  false,
		},
		{
			name:     "zero costs without calibration",
			scenario: Scenario{Name: "free"},
			wantErr:  false,
		},
		{
			name:     "missing name",
			scenario: Scenario{FalsePositiveCost: 1, FalseNegativeCost: 1},
			wantErr:  true,
		},
		{
			name:     "negative false positive cost",
			scenario: Scenario{Name: "s", FalsePositiveCost: -0.5, FalseNegativeCost: 1},
			wantErr:  true,
		},
		{
			name:     "negative false negative cost",
			scenario: Scenario{Name: "s", FalsePositiveCost: 1, FalseNegativeCost: -2},
			wantErr:  true,
		},
		{
			name:     "zero costs with calibration requested",
			scenario: Scenario{Name: "s", CompareCalibrated: true},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scenario.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestScenario_CalibratedThreshold(t *testing.T) {
	tests := []struct {
		name     string
		scenario Scenario
		want     float64
		wantErr  bool
	}{
		{
			name:     "asymmetric costs",
			scenario: Scenario{Name: "s", FalsePositiveCost: 1, FalseNegativeCost: 10},
			want:     1.0 / 11.0,
		},
		{
			name:     "equal costs give one half",
			scenario: Scenario{Name: "s", FalsePositiveCost: 5, FalseNegativeCost: 5},
			want:     0.5,
		},
		{
			name:     "free false positives give zero",
			scenario: Scenario{Name: "s", FalsePositiveCost: 0, FalseNegativeCost: 3},
			want:     0,
		},
		{
			name:     "both zero is undefined",
			scenario: Scenario{Name: "s"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.scenario.CalibratedThreshold()
			if (err != nil) != tt.wantErr {
				t.Fatalf("CalibratedThreshold() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("CalibratedThreshold() = %v, want %v", got, tt.want)
			}
		})
	}
}
