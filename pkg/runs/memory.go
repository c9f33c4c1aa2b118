// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package runs

import (
	"context"
	"sort"
	"sync"

	"github.com/canonical/group-sync-service/internal/storage"
	"github.com/canonical/group-sync-service/internal/types"
)

var _ DatabaseInterface = (*MemoryStore)(nil)

// MemoryStore keeps run history in memory. It backs the read API and
// records runs for the orchestrator when no database is configured, and
// doubles as the test store.
type MemoryStore struct {
	mu      sync.RWMutex
	runs    map[string]*types.SyncRun
	actions map[string][]*types.SyncActionRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs:    make(map[string]*types.SyncRun),
		actions: make(map[string][]*types.SyncActionRecord),
	}
}

func (m *MemoryStore) CreateRun(ctx context.Context, run *types.SyncRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.runs[run.ID]; ok {
		return storage.ErrDuplicateKey
	}

	stored := *run
	m.runs[run.ID] = &stored
	return nil
}

func (m *MemoryStore) FinishRun(ctx context.Context, run *types.SyncRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.runs[run.ID]; !ok {
		return storage.ErrNotFound
	}

	stored := *run
	m.runs[run.ID] = &stored
	return nil
}

func (m *MemoryStore) RecordAction(ctx context.Context, record *types.SyncActionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.runs[record.RunID]; !ok {
		return storage.ErrForeignKeyViolation
	}

	stored := *record
	m.actions[record.RunID] = append(m.actions[record.RunID], &stored)
	return nil
}

func (m *MemoryStore) ListRuns(ctx context.Context, page, size int64) ([]*types.SyncRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]*types.SyncRun, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	if size < 1 {
		size = int64(len(runs))
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= int64(len(runs)) {
		return []*types.SyncRun{}, nil
	}
	end := start + size
	if end > int64(len(runs)) {
		end = int64(len(runs))
	}

	return runs[start:end], nil
}

func (m *MemoryStore) GetRun(ctx context.Context, id string) (*types.SyncRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, ok := m.runs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return run, nil
}

func (m *MemoryStore) ListActionsForRun(ctx context.Context, runID string) ([]*types.SyncActionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]*types.SyncActionRecord{}, m.actions[runID]...), nil
}
