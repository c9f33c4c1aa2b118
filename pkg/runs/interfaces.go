// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package runs

import (
	"context"

	"github.com/canonical/group-sync-service/internal/types"
)

type ServiceInterface interface {
	ListRuns(context.Context, int64, int64) ([]*types.SyncRun, error)
	GetRun(context.Context, string) (*types.SyncRun, error)
	ListRunActions(context.Context, string) ([]*types.SyncActionRecord, error)

	TriggerRun(context.Context) (*types.RunReport, error)
}

type DatabaseInterface interface {
	ListRuns(context.Context, int64, int64) ([]*types.SyncRun, error)
	GetRun(context.Context, string) (*types.SyncRun, error)
	ListActionsForRun(context.Context, string) ([]*types.SyncActionRecord, error)
}

// RunnerInterface is satisfied by the sync orchestrator.
type RunnerInterface interface {
	Run(context.Context) (*types.RunReport, error)
}
