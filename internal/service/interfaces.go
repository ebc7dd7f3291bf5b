// Package service defines the interfaces between the application layers.
package service

import (
	"context"
	"time"

	"github.com/costlab/costwise/internal/model"
)

// SweepInfo summarizes one stored sweep for listings.
type SweepInfo struct {
	StartedAt   time.Time
	CompletedAt time.Time
	ID          int64
	Models      int
	Scenarios   int
	Failures    int
}

// EvaluationFilter narrows which evaluations of a sweep are returned.
type EvaluationFilter struct {
	Model    string
	Scenario string
}

// Storage defines the contract for the results persistence layer.
type Storage interface {
	// Sweep operations
	SaveSweep(ctx context.Context, summary *model.SweepSummary) (int64, error)
	GetSweep(ctx context.Context, id int64) (*model.SweepSummary, error)
	ListSweeps(ctx context.Context) ([]SweepInfo, error)
	GetEvaluations(ctx context.Context, sweepID int64, filter EvaluationFilter) ([]model.Evaluation, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
