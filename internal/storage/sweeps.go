package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/costlab/costwise/internal/common"
	"github.com/costlab/costwise/internal/model"
	"github.com/costlab/costwise/internal/service"
)

// SaveSweep persists a sweep summary and all of its evaluations in one
// transaction, returning the new sweep's identifier.
func (s *SQLiteStorage) SaveSweep(ctx context.Context, summary *model.SweepSummary) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateSummary(summary); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sweeps (started_at, completed_at) VALUES (?, ?)`,
		summary.StartedAt, summary.CompletedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert sweep: %w", err)
	}

	sweepID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get sweep id: %w", err)
	}

	for i := range summary.Evaluations {
		if err := insertEvaluation(ctx, tx, sweepID, &summary.Evaluations[i]); err != nil {
			return 0, fmt.Errorf("failed to insert evaluation %d: %w", i, err)
		}
	}

	for modelName, auc := range summary.AUC {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sweep_model_auc (sweep_id, model, auc) VALUES (?, ?, ?)`,
			sweepID, modelName, auc); err != nil {
			return 0, fmt.Errorf("failed to insert AUC for model %s: %w", modelName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sweep: %w", err)
	}

	common.LogDebug("Saved sweep", common.Fields{
		"sweep_id":    sweepID,
		"evaluations": len(summary.Evaluations),
	})

	return sweepID, nil
}

func insertEvaluation(ctx context.Context, tx *sql.Tx, sweepID int64, ev *model.Evaluation) error {
	if ev.Failed() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO evaluations (sweep_id, model, scenario, fp_cost, fn_cost, error)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			sweepID, ev.Model, ev.Scenario.Name,
			ev.Scenario.FalsePositiveCost, ev.Scenario.FalseNegativeCost, ev.Error)
		return err
	}

	r := ev.Result
	var calThreshold, calCost sql.NullFloat64
	if r.Calibrated != nil {
		calThreshold = sql.NullFloat64{Float64: r.Calibrated.Threshold, Valid: true}
		calCost = sql.NullFloat64{Float64: r.Calibrated.Cost, Valid: true}
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO evaluations (sweep_id, model, scenario, fp_cost, fn_cost,
			optimal_threshold, min_cost, precision, recall,
			true_positives, false_positives, false_negatives, true_negatives,
			calibrated_threshold, calibrated_cost)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sweepID, ev.Model, ev.Scenario.Name,
		ev.Scenario.FalsePositiveCost, ev.Scenario.FalseNegativeCost,
		r.OptimalThreshold, r.MinCost, r.Precision, r.Recall,
		r.TruePositives, r.FalsePositives, r.FalseNegatives, r.TrueNegatives,
		calThreshold, calCost)
	return err
}

// GetSweep loads a stored sweep with all of its evaluations.
func (s *SQLiteStorage) GetSweep(ctx context.Context, id int64) (*model.SweepSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateSweepID(id); err != nil {
		return nil, err
	}

	var startedAt, completedAt time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT started_at, completed_at FROM sweeps WHERE id = ?`, id).
		Scan(&startedAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: sweep %d", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load sweep %d: %w", id, err)
	}

	evaluations, err := s.GetEvaluations(ctx, id, service.EvaluationFilter{})
	if err != nil {
		return nil, err
	}

	auc, err := s.getAUC(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.SweepSummary{
		StartedAt:   startedAt,
		CompletedAt: completedAt,
		Evaluations: evaluations,
		AUC:         auc,
	}, nil
}

func (s *SQLiteStorage) getAUC(ctx context.Context, sweepID int64) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT model, auc FROM sweep_model_auc WHERE sweep_id = ?`, sweepID)
	if err != nil {
		return nil, fmt.Errorf("failed to load AUC for sweep %d: %w", sweepID, err)
	}
	defer func() { _ = rows.Close() }()

	auc := make(map[string]float64)
	for rows.Next() {
		var modelName string
		var value float64
		if err := rows.Scan(&modelName, &value); err != nil {
			return nil, fmt.Errorf("failed to scan AUC row: %w", err)
		}
		auc[modelName] = value
	}
	return auc, rows.Err()
}

// ListSweeps returns summaries of all stored sweeps, newest first.
func (s *SQLiteStorage) ListSweeps(ctx context.Context) ([]service.SweepInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.started_at, s.completed_at,
			COUNT(DISTINCT e.model),
			COUNT(DISTINCT e.scenario),
			SUM(CASE WHEN e.error IS NOT NULL AND e.error != '' THEN 1 ELSE 0 END)
		 FROM sweeps s
		 LEFT JOIN evaluations e ON e.sweep_id = s.id
		 GROUP BY s.id
		 ORDER BY s.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sweeps: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []service.SweepInfo
	for rows.Next() {
		var info service.SweepInfo
		var failures sql.NullInt64
		if err := rows.Scan(&info.ID, &info.StartedAt, &info.CompletedAt,
			&info.Models, &info.Scenarios, &failures); err != nil {
			return nil, fmt.Errorf("failed to scan sweep row: %w", err)
		}
		info.Failures = int(failures.Int64)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// GetEvaluations returns a sweep's evaluations, optionally narrowed by model
// and scenario name.
func (s *SQLiteStorage) GetEvaluations(ctx context.Context, sweepID int64, filter service.EvaluationFilter) ([]model.Evaluation, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateSweepID(sweepID); err != nil {
		return nil, err
	}

	query := `SELECT model, scenario, fp_cost, fn_cost,
			optimal_threshold, min_cost, precision, recall,
			true_positives, false_positives, false_negatives, true_negatives,
			calibrated_threshold, calibrated_cost, error
		FROM evaluations WHERE sweep_id = ?`
	args := []any{sweepID}

	if filter.Model != "" {
		query += ` AND model = ?`
		args = append(args, filter.Model)
	}
	if filter.Scenario != "" {
		query += ` AND scenario = ?`
		args = append(args, filter.Scenario)
	}
	query += ` ORDER BY model, scenario`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var evaluations []model.Evaluation
	for rows.Next() {
		ev, scanErr := scanEvaluation(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		evaluations = append(evaluations, *ev)
	}
	return evaluations, rows.Err()
}

func scanEvaluation(rows *sql.Rows) (*model.Evaluation, error) {
	var ev model.Evaluation
	var threshold, minCost, precision, recall sql.NullFloat64
	var tp, fp, fn, tn sql.NullInt64
	var calThreshold, calCost sql.NullFloat64
	var errMsg sql.NullString

	if err := rows.Scan(&ev.Model, &ev.Scenario.Name,
		&ev.Scenario.FalsePositiveCost, &ev.Scenario.FalseNegativeCost,
		&threshold, &minCost, &precision, &recall,
		&tp, &fp, &fn, &tn,
		&calThreshold, &calCost, &errMsg); err != nil {
		return nil, fmt.Errorf("failed to scan evaluation row: %w", err)
	}

	if errMsg.Valid && errMsg.String != "" {
		ev.Error = errMsg.String
		return &ev, nil
	}

	result := &model.ThresholdResult{
		OptimalThreshold: threshold.Float64,
		MinCost:          minCost.Float64,
		Precision:        precision.Float64,
		Recall:           recall.Float64,
		TruePositives:    int(tp.Int64),
		FalsePositives:   int(fp.Int64),
		FalseNegatives:   int(fn.Int64),
		TrueNegatives:    int(tn.Int64),
	}
	if calThreshold.Valid {
		result.Calibrated = &model.CalibratedComparison{
			Threshold: calThreshold.Float64,
			Cost:      calCost.Float64,
		}
		ev.Scenario.CompareCalibrated = true
	}
	ev.Result = result

	return &ev, nil
}
