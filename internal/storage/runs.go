// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/group-sync-service/internal/db"
	"github.com/canonical/group-sync-service/internal/types"
)

// CreateRun inserts a new run row in the running state.
func (s *Storage) CreateRun(ctx context.Context, run *types.SyncRun) error {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.CreateRun")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Insert("sync_runs").
		Columns("id", "mode", "status", "identities", "started_at").
		Values(run.ID, run.Mode, run.Status, run.Identities, run.StartedAt).
		ExecContext(ctx)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return WrapDuplicateKeyError(err, "run id already exists")
		}
		return fmt.Errorf("failed to insert run: %v", err)
	}

	return nil
}

// FinishRun stores the final counters and status of a run.
func (s *Storage) FinishRun(ctx context.Context, run *types.SyncRun) error {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.FinishRun")
	defer span.End()

	result, err := s.db.Statement(ctx).
		Update("sync_runs").
		Set("status", run.Status).
		Set("adds", run.Adds).
		Set("removes", run.Removes).
		Set("skipped", run.Skipped).
		Set("failed", run.Failed).
		Set("fetch_failures", run.FetchFailures).
		Set("error", run.Error).
		Set("finished_at", run.FinishedAt).
		Where(sq.Eq{"id": run.ID}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to update run: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetRun retrieves a single run by ID.
func (s *Storage) GetRun(ctx context.Context, id string) (*types.SyncRun, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.GetRun")
	defer span.End()

	row := s.db.Statement(ctx).
		Select("id", "mode", "status", "identities", "adds", "removes", "skipped", "failed", "fetch_failures", "error", "started_at", "finished_at").
		From("sync_runs").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %v", err)
	}

	return run, nil
}

// ListRuns retrieves runs newest first, paginated.
func (s *Storage) ListRuns(ctx context.Context, page, size int64) ([]*types.SyncRun, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.ListRuns")
	defer span.End()

	pageSize := db.PageSize(size)

	rows, err := s.db.Statement(ctx).
		Select("id", "mode", "status", "identities", "adds", "removes", "skipped", "failed", "fetch_failures", "error", "started_at", "finished_at").
		From("sync_runs").
		OrderBy("started_at DESC").
		Offset(db.Offset(page, pageSize)).
		Limit(pageSize).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %v", err)
	}
	defer rows.Close()

	runs := make([]*types.SyncRun, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %v", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %v", err)
	}

	return runs, nil
}

// RecordAction appends one applied action to a run's history.
func (s *Storage) RecordAction(ctx context.Context, record *types.SyncActionRecord) error {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.RecordAction")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Insert("sync_actions").
		Columns("id", "run_id", "op", "identity", "group_name", "succeeded", "error", "created_at").
		Values(record.ID, record.RunID, record.Op, record.Identity, record.Group, record.Succeeded, record.Error, record.CreatedAt).
		ExecContext(ctx)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return WrapForeignKeyError(err, "run does not exist")
		}
		return fmt.Errorf("failed to insert action: %v", err)
	}

	return nil
}

// ListActionsForRun retrieves every recorded action of a run in order.
func (s *Storage) ListActionsForRun(ctx context.Context, runID string) ([]*types.SyncActionRecord, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.ListActionsForRun")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "run_id", "op", "identity", "group_name", "succeeded", "error", "created_at").
		From("sync_actions").
		Where(sq.Eq{"run_id": runID}).
		OrderBy("created_at ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query actions: %v", err)
	}
	defer rows.Close()

	records := make([]*types.SyncActionRecord, 0)
	for rows.Next() {
		record := new(types.SyncActionRecord)
		var errMsg sql.NullString
		if err := rows.Scan(&record.ID, &record.RunID, &record.Op, &record.Identity, &record.Group, &record.Succeeded, &errMsg, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan action: %v", err)
		}
		record.Error = errMsg.String
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating actions: %v", err)
	}

	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*types.SyncRun, error) {
	run := new(types.SyncRun)
	var errMsg sql.NullString
	var finishedAt sql.NullTime

	err := row.Scan(
		&run.ID,
		&run.Mode,
		&run.Status,
		&run.Identities,
		&run.Adds,
		&run.Removes,
		&run.Skipped,
		&run.Failed,
		&run.FetchFailures,
		&errMsg,
		&run.StartedAt,
		&finishedAt,
	)
	if err != nil {
		return nil, err
	}

	run.Error = errMsg.String
	if finishedAt.Valid {
		t := finishedAt.Time.UTC()
		run.FinishedAt = &t
	}
	run.StartedAt = run.StartedAt.UTC()

	return run, nil
}
