// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	gosync "sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/canonical/group-sync-service/internal/config"
	"github.com/canonical/group-sync-service/internal/logging"
	"github.com/canonical/group-sync-service/internal/monitoring"
	"github.com/canonical/group-sync-service/internal/tracing"
	"github.com/canonical/group-sync-service/internal/types"
	"github.com/canonical/group-sync-service/pkg/audit"
)

// Options tune a run without changing its semantics.
type Options struct {
	// Workers bounds the identity worker pool. 1 processes identities
	// sequentially. Per-identity work is always serialized regardless.
	Workers int
	// RunTimeout caps the whole run. Zero disables the deadline.
	RunTimeout time.Duration
	// FailurePolicy decides what a validation failure does to the run.
	FailurePolicy FailurePolicy
}

// Orchestrator drives a full reconciliation run: snapshot both systems,
// intersect the user populations, and walk every mapping for every shared
// identity in the configured source-of-truth direction.
type Orchestrator struct {
	directory DirectoryInterface
	cloud     CloudIdentityInterface
	mutator   MutatorInterface
	recorder  RecorderInterface

	cfg  *config.SyncConfig
	opts Options

	sink audit.SinkInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// tally aggregates per-action outcomes across identity workers.
type tally struct {
	mu gosync.Mutex

	adds          int
	removes       int
	noops         int
	skipped       int
	failed        int
	fetchFailures int
}

// Run executes one reconciliation run and returns its report. Individual
// mutation failures are isolated and do not fail the run; configuration
// errors, snapshot fetch errors and (under the default policy) validation
// failures do.
func (o *Orchestrator) Run(ctx context.Context) (*types.RunReport, error) {
	ctx, span := o.tracer.Start(ctx, "sync.Orchestrator.Run")
	defer span.End()

	report := &types.RunReport{
		ID:        uuid.New().String(),
		StartedAt: time.Now().UTC(),
		Status:    types.RunStatusRunning,
	}

	// An unrecognized controller mode halts before any fetch or mutation.
	mode, err := o.cfg.Mode()
	if err != nil {
		o.sink.Log(ctx, audit.LevelFatal, "run aborted: %v", err)
		return o.finish(ctx, report, nil, err)
	}
	report.Mode = mode
	report.Mappings = len(o.cfg.GroupMappings)

	if o.opts.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.opts.RunTimeout)
		defer cancel()
	}

	o.sink.Log(ctx, audit.LevelCall, "run %s starting, source of truth: %s", report.ID, mode)

	identities, err := o.fetchIdentities(ctx)
	if err != nil {
		return o.finish(ctx, report, nil, err)
	}
	report.Identities = len(identities)

	o.sink.Log(ctx, audit.LevelInfo, "run %s: %d identities shared between directory and cloud", report.ID, len(identities))
	o.recordStart(ctx, report)

	t := new(tally)

	workers := o.opts.Workers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, identity := range identities {
		g.Go(func() error {
			return o.reconcileIdentity(gctx, report.ID, identity, mode, t)
		})
	}

	return o.finish(ctx, report, t, g.Wait())
}

// fetchIdentities pulls both user listings and intersects them by
// case-insensitive username equality. Directory casing is kept for
// display and mutation calls.
func (o *Orchestrator) fetchIdentities(ctx context.Context) ([]string, error) {
	ctx, span := o.tracer.Start(ctx, "sync.Orchestrator.fetchIdentities")
	defer span.End()

	o.sink.Log(ctx, audit.LevelCall, "fetching user snapshots")

	cloudUsers, err := o.cloud.ListUsers(ctx)
	if err != nil {
		o.sink.Log(ctx, audit.LevelError, "cloud user listing failed: %v", err)
		return nil, fmt.Errorf("%w: cloud user listing: %v", ErrFetchFailed, err)
	}

	dirUsers, err := o.directory.ListUsers(ctx)
	if err != nil {
		o.sink.Log(ctx, audit.LevelError, "directory user listing failed: %v", err)
		return nil, fmt.Errorf("%w: directory user listing: %v", ErrFetchFailed, err)
	}

	inCloud := make(map[string]struct{}, len(cloudUsers))
	for _, u := range cloudUsers {
		inCloud[strings.ToLower(u)] = struct{}{}
	}

	identities := make([]string, 0)
	seen := make(map[string]struct{})
	for _, u := range dirUsers {
		key := strings.ToLower(u)
		if _, ok := inCloud[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		identities = append(identities, u)
	}
	sort.Strings(identities)

	return identities, nil
}

func (o *Orchestrator) reconcileIdentity(ctx context.Context, runID, identity string, mode types.ControllerMode, t *tally) error {
	ctx, span := o.tracer.Start(ctx, "sync.Orchestrator.reconcileIdentity")
	defer span.End()

	switch mode {
	case types.DirectorySourceOfTruth:
		return o.reconcileFromDirectory(ctx, runID, identity, t)
	case types.CloudSourceOfTruth:
		return o.reconcileFromCloud(ctx, runID, identity, t)
	default:
		return types.ErrInvalidControllerMode
	}
}

// reconcileFromDirectory asserts the directory's view onto the cloud
// groups. The source membership is re-fetched per mapping so a mutation by
// an earlier mapping is visible to later ones. A membership fetch failure
// here is run-fatal: the direction writes to mapped groups and must not
// guess.
func (o *Orchestrator) reconcileFromDirectory(ctx context.Context, runID, identity string, t *tally) error {
	for _, mapping := range o.cfg.GroupMappings {
		source, err := o.directoryMembership(ctx, identity)
		if err != nil {
			o.sink.Log(ctx, audit.LevelError, "directory membership fetch for %q failed: %v", identity, err)
			return fmt.Errorf("%w: directory membership for %q: %v", ErrFetchFailed, identity, err)
		}

		action := ComputeAction(identity, mapping, source, nil, types.DirectorySourceOfTruth)
		if err := o.apply(ctx, runID, action, t); err != nil {
			return err
		}
	}

	return nil
}

// reconcileFromCloud asserts the cloud's view onto the directory groups.
// A failed cloud membership fetch is swallowed: the identity is processed
// with an empty membership set, which turns every held directory group
// into a removal. Deliberately fail-open, the failure is loud in the audit
// trail and counted in the report.
func (o *Orchestrator) reconcileFromCloud(ctx context.Context, runID, identity string, t *tally) error {
	cloudGroups, err := o.cloud.ListGroupsForUser(ctx, identity)
	if err != nil {
		o.sink.Log(ctx, audit.LevelError, "cloud membership fetch for %q failed, continuing with empty membership: %v", identity, err)
		t.mu.Lock()
		t.fetchFailures++
		t.mu.Unlock()
		cloudGroups = nil
	}
	source := NewMembershipSet(cloudGroups)

	for _, mapping := range o.cfg.GroupMappings {
		destination, err := o.directoryMembership(ctx, identity)
		if err != nil {
			o.sink.Log(ctx, audit.LevelError, "directory membership fetch for %q failed: %v", identity, err)
			return fmt.Errorf("%w: directory membership for %q: %v", ErrFetchFailed, identity, err)
		}

		action := ComputeAction(identity, mapping, source, destination, types.CloudSourceOfTruth)
		if action.IsNoOp() {
			t.mu.Lock()
			t.noops++
			t.mu.Unlock()
			continue
		}

		if err := o.apply(ctx, runID, action, t); err != nil {
			return err
		}
	}

	return nil
}

// apply hands one action to the mutator and sorts its outcome into the
// tally. Mutation failures are isolated, validation failures follow the
// configured policy.
func (o *Orchestrator) apply(ctx context.Context, runID string, action types.SyncAction, t *tally) error {
	if action.IsNoOp() {
		t.mu.Lock()
		t.noops++
		t.mu.Unlock()
		return nil
	}

	err := o.mutator.Apply(ctx, action)
	o.recordAction(ctx, runID, action, err)

	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case err == nil:
		if action.Op == types.OpAdd {
			t.adds++
		} else {
			t.removes++
		}
		return nil

	case errors.Is(err, ErrValidationFailed):
		if o.opts.FailurePolicy == FailurePolicySkip {
			t.skipped++
			o.sink.Log(ctx, audit.LevelWarn, "skipping %s after validation failure", action)
			return nil
		}
		return err

	default:
		t.failed++
		return nil
	}
}

// directoryMembership fetches and resolves the identity's current
// directory groups into a comparable set.
func (o *Orchestrator) directoryMembership(ctx context.Context, identity string) (MembershipSet, error) {
	refs, err := o.directory.GetUserGroups(ctx, identity)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		name, err := o.directory.ResolveGroupName(ctx, ref)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return NewMembershipSet(names), nil
}

func (o *Orchestrator) finish(ctx context.Context, report *types.RunReport, t *tally, err error) (*types.RunReport, error) {
	// A nil tally means the run never reached the iteration phase, so
	// there is no started run row to close either.
	started := t != nil
	if started {
		t.mu.Lock()
		report.Adds = t.adds
		report.Removes = t.removes
		report.NoOps = t.noops
		report.Skipped = t.skipped
		report.Failed = t.failed
		report.FetchFailures = t.fetchFailures
		t.mu.Unlock()
	}

	report.FinishedAt = time.Now().UTC()
	report.Duration = report.FinishedAt.Sub(report.StartedAt)

	if err != nil {
		report.Status = types.RunStatusFailed
		report.Error = err.Error()
		o.sink.Log(ctx, audit.LevelError, "run %s failed after %s: %v", report.ID, report.Duration, err)
	} else {
		report.Status = types.RunStatusSucceeded
		o.sink.Log(ctx, audit.LevelMssg,
			"run %s done in %s: %d adds, %d removes, %d noops, %d skipped, %d failed",
			report.ID, report.Duration, report.Adds, report.Removes, report.NoOps, report.Skipped, report.Failed,
		)
	}

	if started {
		o.recordFinish(ctx, report)
	}

	return report, err
}

// recordStart, recordAction and recordFinish persist run history when a
// recorder is wired. Persistence failures never fail the run.
func (o *Orchestrator) recordStart(ctx context.Context, report *types.RunReport) {
	if o.recorder == nil {
		return
	}

	run := &types.SyncRun{
		ID:         report.ID,
		Mode:       report.Mode,
		Status:     types.RunStatusRunning,
		Identities: report.Identities,
		StartedAt:  report.StartedAt,
	}
	if err := o.recorder.CreateRun(ctx, run); err != nil {
		o.logger.Errorf("failed to record run start: %v", err)
	}
}

func (o *Orchestrator) recordAction(ctx context.Context, runID string, action types.SyncAction, applyErr error) {
	if o.recorder == nil {
		return
	}

	record := &types.SyncActionRecord{
		ID:        uuid.New().String(),
		RunID:     runID,
		Op:        action.Op,
		Identity:  action.Identity,
		Group:     action.Group,
		Succeeded: applyErr == nil,
		CreatedAt: time.Now().UTC(),
	}
	if applyErr != nil {
		record.Error = applyErr.Error()
	}

	if err := o.recorder.RecordAction(ctx, record); err != nil {
		o.logger.Errorf("failed to record action %s: %v", action, err)
	}
}

func (o *Orchestrator) recordFinish(ctx context.Context, report *types.RunReport) {
	if o.recorder == nil {
		return
	}

	finishedAt := report.FinishedAt
	run := &types.SyncRun{
		ID:            report.ID,
		Mode:          report.Mode,
		Status:        report.Status,
		Identities:    report.Identities,
		Adds:          report.Adds,
		Removes:       report.Removes,
		Skipped:       report.Skipped,
		Failed:        report.Failed,
		FetchFailures: report.FetchFailures,
		Error:         report.Error,
		StartedAt:     report.StartedAt,
		FinishedAt:    &finishedAt,
	}
	if err := o.recorder.FinishRun(ctx, run); err != nil {
		o.logger.Errorf("failed to record run finish: %v", err)
	}
}

func NewOrchestrator(
	dir DirectoryInterface,
	cloud CloudIdentityInterface,
	mutator MutatorInterface,
	recorder RecorderInterface,
	cfg *config.SyncConfig,
	opts Options,
	sink audit.SinkInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Orchestrator {
	o := new(Orchestrator)

	o.directory = dir
	o.cloud = cloud
	o.mutator = mutator
	o.recorder = recorder
	o.cfg = cfg
	o.opts = opts
	o.sink = sink

	o.tracer = tracer
	o.monitor = monitor
	o.logger = logger

	return o
}
