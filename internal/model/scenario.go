package model

import (
	"fmt"

	"github.com/costlab/costwise/internal/common"
)

// Scenario is one business-cost assumption: what a false positive and a
// false negative each cost, plus whether the sweep should also report the
// cost achieved at the calibrated probability threshold.
type Scenario struct {
	Name              string
	FalsePositiveCost float64
	FalseNegativeCost float64
	CompareCalibrated bool
}

// Validate ensures the scenario's cost parameters are usable.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: scenario name is required", common.ErrInvalidInput)
	}
	if s.FalsePositiveCost < 0 {
		return fmt.Errorf("%w: false positive cost %.4f is negative", common.ErrInvalidCostParameters, s.FalsePositiveCost)
	}
	if s.FalseNegativeCost < 0 {
		return fmt.Errorf("%w: false negative cost %.4f is negative", common.ErrInvalidCostParameters, s.FalseNegativeCost)
	}
	if s.CompareCalibrated && s.FalsePositiveCost+s.FalseNegativeCost == 0 {
		return fmt.Errorf("%w: calibrated threshold is undefined when both costs are zero", common.ErrInvalidCostParameters)
	}
	return nil
}

// CalibratedThreshold returns C_FP/(C_FN+C_FP), the threshold that is
// cost-optimal when scores are well-calibrated probabilities of the positive
// class.
func (s *Scenario) CalibratedThreshold() (float64, error) {
	total := s.FalsePositiveCost + s.FalseNegativeCost
	if total == 0 {
		return 0, fmt.Errorf("%w: calibrated threshold is undefined when both costs are zero", common.ErrInvalidCostParameters)
	}
	return s.FalsePositiveCost / total, nil
}
