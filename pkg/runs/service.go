// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package runs

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/canonical/group-sync-service/internal/logging"
	"github.com/canonical/group-sync-service/internal/monitoring"
	"github.com/canonical/group-sync-service/internal/storage"
	"github.com/canonical/group-sync-service/internal/tracing"
	"github.com/canonical/group-sync-service/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	db     DatabaseInterface
	runner RunnerInterface

	// Only one sync run may be active at a time.
	running atomic.Bool

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) ListRuns(ctx context.Context, page, size int64) ([]*types.SyncRun, error) {
	ctx, span := s.tracer.Start(ctx, "runs.Service.ListRuns")
	defer span.End()

	return s.db.ListRuns(ctx, page, size)
}

func (s *Service) GetRun(ctx context.Context, id string) (*types.SyncRun, error) {
	ctx, span := s.tracer.Start(ctx, "runs.Service.GetRun")
	defer span.End()

	run, err := s.db.GetRun(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	return run, nil
}

func (s *Service) ListRunActions(ctx context.Context, runID string) ([]*types.SyncActionRecord, error) {
	ctx, span := s.tracer.Start(ctx, "runs.Service.ListRunActions")
	defer span.End()

	if _, err := s.GetRun(ctx, runID); err != nil {
		return nil, err
	}

	return s.db.ListActionsForRun(ctx, runID)
}

// TriggerRun executes one reconciliation synchronously and returns its
// report. Concurrent triggers are rejected rather than queued.
func (s *Service) TriggerRun(ctx context.Context) (*types.RunReport, error) {
	ctx, span := s.tracer.Start(ctx, "runs.Service.TriggerRun")
	defer span.End()

	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer s.running.Store(false)

	s.logger.Info("starting sync run")

	report, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.Errorf("sync run failed: %v", err)
		return report, err
	}

	s.logger.Infof("sync run %s finished: %d adds, %d removes, %d skipped, %d failed", report.ID, report.Adds, report.Removes, report.Skipped, report.Failed)
	return report, nil
}

func NewService(db DatabaseInterface, runner RunnerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.db = db
	s.runner = runner

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
