// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/group-sync-service/internal/types"
)

type StorageInterface interface {
	// Run lifecycle
	CreateRun(ctx context.Context, run *types.SyncRun) error
	FinishRun(ctx context.Context, run *types.SyncRun) error
	GetRun(ctx context.Context, id string) (*types.SyncRun, error)
	ListRuns(ctx context.Context, page, size int64) ([]*types.SyncRun, error)

	// Per-action history
	RecordAction(ctx context.Context, record *types.SyncActionRecord) error
	ListActionsForRun(ctx context.Context, runID string) ([]*types.SyncActionRecord, error)
}
