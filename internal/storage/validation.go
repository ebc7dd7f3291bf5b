package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/costlab/costwise/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrEmptySlice       = errors.New("slice cannot be empty")
	ErrInvalidSweep     = errors.New("invalid sweep summary")
	ErrInvalidSweepID   = errors.New("sweep id must be positive")
	ErrInvalidEvaluated = errors.New("invalid evaluation")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateSweepID ensures an identifier refers to a stored sweep.
func validateSweepID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSweepID, id)
	}
	return nil
}

// validateSummary validates a sweep summary before persisting it.
func validateSummary(summary *model.SweepSummary) error {
	if summary == nil {
		return fmt.Errorf("%w: summary", ErrNilParameter)
	}
	if len(summary.Evaluations) == 0 {
		return fmt.Errorf("%w: evaluations", ErrEmptySlice)
	}

	for i := range summary.Evaluations {
		if err := validateEvaluation(&summary.Evaluations[i]); err != nil {
			return fmt.Errorf("evaluation at index %d: %w", i, err)
		}
	}
	return nil
}

// validateEvaluation validates a single evaluation record.
func validateEvaluation(ev *model.Evaluation) error {
	if ev.Model == "" {
		return fmt.Errorf("%w: missing model name", ErrInvalidEvaluated)
	}
	if ev.Scenario.Name == "" {
		return fmt.Errorf("%w: missing scenario name", ErrInvalidEvaluated)
	}
	if ev.Result == nil && ev.Error == "" {
		return fmt.Errorf("%w: neither result nor error recorded", ErrInvalidEvaluated)
	}
	if ev.Result != nil {
		if err := ev.Result.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidEvaluated, err)
		}
	}
	return nil
}
