// Package engine orchestrates batch threshold sweeps across models and cost
// scenarios.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/costlab/costwise/internal/common"
	"github.com/costlab/costwise/internal/cost"
	"github.com/costlab/costwise/internal/curve"
	"github.com/costlab/costwise/internal/model"
	"github.com/costlab/costwise/internal/samples"
)

// SweepEngine runs every (model, scenario) pair through threshold analysis
// on a bounded worker pool.
type SweepEngine struct {
	progressWriter io.Writer
	workers        int
	showProgress   bool
}

// Config holds configuration options for the sweep engine.
type Config struct {
	Workers      int
	ShowProgress bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Workers:      4,
		ShowProgress: true,
	}
}

// New creates a new sweep engine with the default configuration.
func New() *SweepEngine {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a new sweep engine with custom configuration.
func NewWithConfig(config Config) *SweepEngine {
	workers := config.Workers
	if workers <= 0 {
		workers = 1
	}
	return &SweepEngine{
		workers:        workers,
		showProgress:   config.ShowProgress,
		progressWriter: os.Stderr,
	}
}

// Evaluate runs one (samples, scenario) pair through the threshold curve
// builder and cost optimizer. It is pure and safe to call concurrently.
func Evaluate(set *samples.Set, scenario model.Scenario) (*model.ThresholdResult, error) {
	if set == nil {
		return nil, fmt.Errorf("%w: nil sample set", common.ErrInvalidInput)
	}

	thresholdCurve, err := curve.Build(set.Labels, set.Scores)
	if err != nil {
		return nil, err
	}

	return cost.Optimize(thresholdCurve, set.Len(), scenario)
}

type job struct {
	dataset  *samples.Dataset
	scenario model.Scenario
	index    int
}

// Sweep evaluates every (dataset, scenario) pair concurrently and collects
// the outcomes into a summary. A pair that fails is recorded with its error
// and never aborts the rest of the sweep.
func (e *SweepEngine) Sweep(ctx context.Context, datasets []*samples.Dataset, scenarios []model.Scenario) (*model.SweepSummary, error) {
	if len(datasets) == 0 {
		return nil, fmt.Errorf("%w: no datasets", common.ErrEmptyInput)
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("%w: no scenarios", common.ErrEmptyInput)
	}
	if err := checkDistinctNames(datasets, scenarios); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := &model.SweepSummary{
		StartedAt:   time.Now(),
		AUC:         make(map[string]float64),
		Evaluations: make([]model.Evaluation, len(datasets)*len(scenarios)),
	}

	slog.Info("Starting sweep",
		"models", len(datasets),
		"scenarios", len(scenarios),
		"workers", e.workers)

	bar := e.newProgressBar(len(summary.Evaluations))

	jobs := make(chan job)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				ev := model.Evaluation{
					Model:    j.dataset.Model,
					Scenario: j.scenario,
				}

				result, err := Evaluate(j.dataset.Samples, j.scenario)
				if err != nil {
					ev.Error = err.Error()
					common.LogError(err, "Evaluation failed", common.Fields{
						"model":    j.dataset.Model,
						"scenario": j.scenario.Name,
					})
				} else {
					ev.Result = result
				}

				mu.Lock()
				summary.Evaluations[j.index] = ev
				mu.Unlock()
				_ = bar.Add(1)
			}
		}()
	}

	var dispatchErr error
dispatch:
	for di, dataset := range datasets {
		for si, scenario := range scenarios {
			select {
			case <-ctx.Done():
				dispatchErr = ctx.Err()
				break dispatch
			case jobs <- job{dataset: dataset, scenario: scenario, index: di*len(scenarios) + si}:
			}
		}
	}
	close(jobs)
	wg.Wait()
	_ = bar.Finish()

	if dispatchErr != nil {
		return nil, dispatchErr
	}

	for _, dataset := range datasets {
		summary.AUC[dataset.Model] = AUC(dataset.Samples)
	}

	summary.CompletedAt = time.Now()

	slog.Info("Sweep complete",
		"evaluations", len(summary.Evaluations),
		"failures", summary.FailureCount(),
		"duration", summary.CompletedAt.Sub(summary.StartedAt))

	return summary, nil
}

func (e *SweepEngine) newProgressBar(total int) *progressbar.ProgressBar {
	writer := e.progressWriter
	if !e.showProgress {
		writer = io.Discard
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Evaluating model/scenario pairs..."),
	)
}

func checkDistinctNames(datasets []*samples.Dataset, scenarios []model.Scenario) error {
	seenModels := make(map[string]bool, len(datasets))
	for _, dataset := range datasets {
		if dataset == nil || dataset.Samples == nil {
			return fmt.Errorf("%w: nil dataset", common.ErrInvalidInput)
		}
		if seenModels[dataset.Model] {
			return fmt.Errorf("%w: duplicate model name %q", common.ErrInvalidInput, dataset.Model)
		}
		seenModels[dataset.Model] = true
	}

	seenScenarios := make(map[string]bool, len(scenarios))
	for _, scenario := range scenarios {
		if scenario.Name == "" {
			return fmt.Errorf("%w: scenario without a name", common.ErrInvalidInput)
		}
		if seenScenarios[scenario.Name] {
			return fmt.Errorf("%w: duplicate scenario name %q", common.ErrInvalidInput, scenario.Name)
		}
		seenScenarios[scenario.Name] = true
	}

	return nil
}
