package model

import (
	"sort"
	"time"
)

// Evaluation records the outcome of one (model, scenario) pair within a
// sweep. Exactly one of Result and Error is populated: a failed pair keeps
// its error message so reporting can show why it was unevaluable without
// aborting the rest of the sweep.
type Evaluation struct {
	Model    string
	Scenario Scenario
	Result   *ThresholdResult
	Error    string
}

// Failed reports whether this pair could not be evaluated.
func (e *Evaluation) Failed() bool {
	return e.Error != ""
}

// SweepSummary aggregates every (model, scenario) evaluation of one batch
// run, plus a per-model AUC diagnostic.
type SweepSummary struct {
	StartedAt   time.Time
	CompletedAt time.Time
	AUC         map[string]float64
	Evaluations []Evaluation
}

// Models returns the distinct model names in the sweep, sorted.
func (s *SweepSummary) Models() []string {
	seen := make(map[string]bool)
	var names []string
	for _, ev := range s.Evaluations {
		if !seen[ev.Model] {
			seen[ev.Model] = true
			names = append(names, ev.Model)
		}
	}
	sort.Strings(names)
	return names
}

// Scenarios returns the distinct scenario names in the sweep, sorted.
func (s *SweepSummary) Scenarios() []string {
	seen := make(map[string]bool)
	var names []string
	for _, ev := range s.Evaluations {
		if !seen[ev.Scenario.Name] {
			seen[ev.Scenario.Name] = true
			names = append(names, ev.Scenario.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Lookup returns the evaluation for a (model, scenario) pair, or nil if the
// sweep never ran that combination.
func (s *SweepSummary) Lookup(modelName, scenarioName string) *Evaluation {
	for i := range s.Evaluations {
		if s.Evaluations[i].Model == modelName && s.Evaluations[i].Scenario.Name == scenarioName {
			return &s.Evaluations[i]
		}
	}
	return nil
}

// FailureCount returns how many pairs could not be evaluated.
func (s *SweepSummary) FailureCount() int {
	count := 0
	for i := range s.Evaluations {
		if s.Evaluations[i].Failed() {
			count++
		}
	}
	return count
}
