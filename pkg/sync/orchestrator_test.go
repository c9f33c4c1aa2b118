// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/group-sync-service/internal/config"
	"github.com/canonical/group-sync-service/internal/directory"
	"github.com/canonical/group-sync-service/internal/logging"
	"github.com/canonical/group-sync-service/internal/types"
	"github.com/canonical/group-sync-service/pkg/audit"
)

func newTestOrchestrator(
	dir *MockDirectoryInterface,
	cloud *MockCloudIdentityInterface,
	mutator *MockMutatorInterface,
	cfg *config.SyncConfig,
	opts Options,
	sink audit.SinkInterface,
) *Orchestrator {
	return NewOrchestrator(dir, cloud, mutator, nil, cfg, opts, sink, &MockTracer{}, &MockMonitor{}, logging.NewNoopLogger())
}

func hrConfig(mode string) *config.SyncConfig {
	return &config.SyncConfig{
		ControllerMode: mode,
		GroupMappings: []types.GroupMapping{
			{DirectoryGroup: "HR-Managers", CloudGroup: "hr-managers-grp"},
		},
	}
}

func TestRunUnrecognizedModeAbortsBeforeAnyFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No EXPECT calls at all: any client call fails the test.
	dir := NewMockDirectoryInterface(ctrl)
	cloud := NewMockCloudIdentityInterface(ctrl)
	mutator := NewMockMutatorInterface(ctrl)

	o := newTestOrchestrator(dir, cloud, mutator, hrConfig("invalid"), Options{}, audit.NewMemorySink())

	report, err := o.Run(context.Background())
	if !errors.Is(err, types.ErrInvalidControllerMode) {
		t.Fatalf("expected ErrInvalidControllerMode, got %v", err)
	}
	if report.Status != types.RunStatusFailed {
		t.Errorf("report status = %v, want failed", report.Status)
	}
}

func TestRunIntersectionFilterIsExact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := NewMockDirectoryInterface(ctrl)
	cloud := NewMockCloudIdentityInterface(ctrl)
	mutator := NewMockMutatorInterface(ctrl)

	// jdoe exists in both (with different casing), bbrown only in the
	// directory, asmith only in the cloud. Only jdoe is reconciled.
	dir.EXPECT().ListUsers(gomock.Any()).Return([]string{"jdoe", "bbrown"}, nil)
	cloud.EXPECT().ListUsers(gomock.Any()).Return([]string{"JDOE", "asmith"}, nil)

	dir.EXPECT().GetUserGroups(gomock.Any(), "jdoe").Return(nil, nil)
	mutator.EXPECT().Apply(gomock.Any(), types.RemoveAction("jdoe", "hr-managers-grp")).Return(nil)

	o := newTestOrchestrator(dir, cloud, mutator, hrConfig("directory"), Options{}, audit.NewMemorySink())

	report, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Identities != 1 {
		t.Errorf("identities = %d, want 1", report.Identities)
	}
	if report.Removes != 1 {
		t.Errorf("removes = %d, want 1", report.Removes)
	}
}

func TestRunDirectorySourceEmitsAddRegardlessOfCloudState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := NewMockDirectoryInterface(ctrl)
	cloud := NewMockCloudIdentityInterface(ctrl)
	mutator := NewMockMutatorInterface(ctrl)

	dir.EXPECT().ListUsers(gomock.Any()).Return([]string{"jdoe"}, nil)
	cloud.EXPECT().ListUsers(gomock.Any()).Return([]string{"jdoe"}, nil)

	ref := directory.GroupRef("CN=HR-Managers,OU=Groups,DC=example,DC=com")
	dir.EXPECT().GetUserGroups(gomock.Any(), "jdoe").Return([]directory.GroupRef{ref}, nil)
	dir.EXPECT().ResolveGroupName(gomock.Any(), ref).Return("HR-Managers", nil)

	// The cloud membership is never consulted in this direction; exactly
	// one add is applied.
	mutator.EXPECT().Apply(gomock.Any(), types.AddAction("jdoe", "hr-managers-grp")).Return(nil)

	o := newTestOrchestrator(dir, cloud, mutator, hrConfig("directory"), Options{}, audit.NewMemorySink())

	report, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Adds != 1 || report.Removes != 0 {
		t.Errorf("adds/removes = %d/%d, want 1/0", report.Adds, report.Removes)
	}
}

func TestRunCloudSourceConsistentStateIssuesNoMutations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := NewMockDirectoryInterface(ctrl)
	cloud := NewMockCloudIdentityInterface(ctrl)
	mutator := NewMockMutatorInterface(ctrl)

	dir.EXPECT().ListUsers(gomock.Any()).Return([]string{"jdoe"}, nil)
	cloud.EXPECT().ListUsers(gomock.Any()).Return([]string{"jdoe"}, nil)

	cloud.EXPECT().ListGroupsForUser(gomock.Any(), "jdoe").Return([]string{"hr-managers-grp"}, nil)

	ref := directory.GroupRef("CN=HR-Managers,OU=Groups,DC=example,DC=com")
	dir.EXPECT().GetUserGroups(gomock.Any(), "jdoe").Return([]directory.GroupRef{ref}, nil)
	dir.EXPECT().ResolveGroupName(gomock.Any(), ref).Return("HR-Managers", nil)

	// No mutator.Apply expectation: a mutation call fails the test.
	o := newTestOrchestrator(dir, cloud, mutator, hrConfig("cloud"), Options{}, audit.NewMemorySink())

	report, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.NoOps != 1 {
		t.Errorf("noops = %d, want 1", report.NoOps)
	}
	if report.Adds+report.Removes != 0 {
		t.Errorf("expected zero mutations, got %d adds, %d removes", report.Adds, report.Removes)
	}
}

func TestRunCloudSourceFetchFailureTreatedAsEmptyMembership(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := NewMockDirectoryInterface(ctrl)
	cloud := NewMockCloudIdentityInterface(ctrl)
	mutator := NewMockMutatorInterface(ctrl)

	dir.EXPECT().ListUsers(gomock.Any()).Return([]string{"asmith"}, nil)
	cloud.EXPECT().ListUsers(gomock.Any()).Return([]string{"asmith"}, nil)

	cloud.EXPECT().ListGroupsForUser(gomock.Any(), "asmith").Return(nil, errors.New("throttled"))

	ref := directory.GroupRef("CN=HR-Managers,OU=Groups,DC=example,DC=com")
	dir.EXPECT().GetUserGroups(gomock.Any(), "asmith").Return([]directory.GroupRef{ref}, nil)
	dir.EXPECT().ResolveGroupName(gomock.Any(), ref).Return("HR-Managers", nil)

	// Empty cloud membership plus current directory membership means a
	// removal is emitted for the held group.
	mutator.EXPECT().Apply(gomock.Any(), types.RemoveAction("asmith", "HR-Managers")).Return(nil)

	sink := audit.NewMemorySink()
	o := newTestOrchestrator(dir, cloud, mutator, hrConfig("cloud"), Options{}, sink)

	report, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("run must continue past a cloud fetch failure, got %v", err)
	}
	if report.FetchFailures != 1 {
		t.Errorf("fetch failures = %d, want 1", report.FetchFailures)
	}
	if report.Removes != 1 {
		t.Errorf("removes = %d, want 1", report.Removes)
	}
	if errs := sink.ByLevel(audit.LevelError); len(errs) == 0 {
		t.Error("expected the swallowed fetch failure to be audited at ERROR")
	}
}

func TestRunDirectorySourceMembershipFetchFailureIsRunFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := NewMockDirectoryInterface(ctrl)
	cloud := NewMockCloudIdentityInterface(ctrl)
	mutator := NewMockMutatorInterface(ctrl)

	dir.EXPECT().ListUsers(gomock.Any()).Return([]string{"jdoe"}, nil)
	cloud.EXPECT().ListUsers(gomock.Any()).Return([]string{"jdoe"}, nil)

	dir.EXPECT().GetUserGroups(gomock.Any(), "jdoe").Return(nil, errors.New("referral chase failed"))

	o := newTestOrchestrator(dir, cloud, mutator, hrConfig("directory"), Options{}, audit.NewMemorySink())

	report, err := o.Run(context.Background())
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
	if report.Status != types.RunStatusFailed {
		t.Errorf("report status = %v, want failed", report.Status)
	}
}

func TestRunValidationFailurePolicy(t *testing.T) {
	tests := []struct {
		name        string
		policy      FailurePolicy
		wantErr     bool
		wantSkipped int
	}{
		{
			name:    "fatal by default",
			policy:  FailurePolicyFatal,
			wantErr: true,
		},
		{
			name:        "skip and continue when configured",
			policy:      FailurePolicySkip,
			wantSkipped: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			dir := NewMockDirectoryInterface(ctrl)
			cloud := NewMockCloudIdentityInterface(ctrl)
			mutator := NewMockMutatorInterface(ctrl)

			dir.EXPECT().ListUsers(gomock.Any()).Return([]string{"jdoe"}, nil)
			cloud.EXPECT().ListUsers(gomock.Any()).Return([]string{"jdoe"}, nil)

			dir.EXPECT().GetUserGroups(gomock.Any(), "jdoe").Return(nil, nil)
			mutator.EXPECT().Apply(gomock.Any(), types.RemoveAction("jdoe", "hr-managers-grp")).
				Return(fmt.Errorf("%w: group %q", ErrValidationFailed, "hr-managers-grp"))

			o := newTestOrchestrator(dir, cloud, mutator, hrConfig("directory"), Options{FailurePolicy: tt.policy}, audit.NewMemorySink())

			report, err := o.Run(context.Background())
			if tt.wantErr {
				if !errors.Is(err, ErrValidationFailed) {
					t.Fatalf("expected ErrValidationFailed, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if report.Skipped != tt.wantSkipped {
				t.Errorf("skipped = %d, want %d", report.Skipped, tt.wantSkipped)
			}
		})
	}
}

func TestRunMutationFailureIsIsolated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := NewMockDirectoryInterface(ctrl)
	cloud := NewMockCloudIdentityInterface(ctrl)
	mutator := NewMockMutatorInterface(ctrl)

	cfg := &config.SyncConfig{
		ControllerMode: "directory",
		GroupMappings: []types.GroupMapping{
			{DirectoryGroup: "HR-Managers", CloudGroup: "hr-managers-grp"},
			{DirectoryGroup: "HR-Managers", CloudGroup: "hr-oncall-grp"},
		},
	}

	dir.EXPECT().ListUsers(gomock.Any()).Return([]string{"jdoe"}, nil)
	cloud.EXPECT().ListUsers(gomock.Any()).Return([]string{"jdoe"}, nil)

	ref := directory.GroupRef("CN=HR-Managers,OU=Groups,DC=example,DC=com")
	dir.EXPECT().GetUserGroups(gomock.Any(), "jdoe").Return([]directory.GroupRef{ref}, nil).Times(2)
	dir.EXPECT().ResolveGroupName(gomock.Any(), ref).Return("HR-Managers", nil).Times(2)

	// The first mapping's mutation fails; the sibling mapping must still
	// be applied.
	mutator.EXPECT().Apply(gomock.Any(), types.AddAction("jdoe", "hr-managers-grp")).
		Return(fmt.Errorf("%w: boom", ErrMutationFailed))
	mutator.EXPECT().Apply(gomock.Any(), types.AddAction("jdoe", "hr-oncall-grp")).Return(nil)

	o := newTestOrchestrator(dir, cloud, mutator, cfg, Options{}, audit.NewMemorySink())

	report, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("mutation failures must not fail the run, got %v", err)
	}
	if report.Failed != 1 {
		t.Errorf("failed = %d, want 1", report.Failed)
	}
	if report.Adds != 1 {
		t.Errorf("adds = %d, want 1", report.Adds)
	}
}

func TestRunRecordsHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := NewMockDirectoryInterface(ctrl)
	cloud := NewMockCloudIdentityInterface(ctrl)
	mutator := NewMockMutatorInterface(ctrl)
	recorder := NewMockRecorderInterface(ctrl)

	cfg := &config.SyncConfig{
		ControllerMode: "directory",
		GroupMappings: []types.GroupMapping{
			{DirectoryGroup: "HR-Managers", CloudGroup: "hr-managers-grp"},
			{DirectoryGroup: "Finance", CloudGroup: "finance-grp"},
		},
	}

	dir.EXPECT().ListUsers(gomock.Any()).Return([]string{"jdoe"}, nil)
	cloud.EXPECT().ListUsers(gomock.Any()).Return([]string{"jdoe"}, nil)

	ref := directory.GroupRef("CN=HR-Managers,OU=Groups,DC=example,DC=com")
	dir.EXPECT().GetUserGroups(gomock.Any(), "jdoe").Return([]directory.GroupRef{ref}, nil).Times(2)
	dir.EXPECT().ResolveGroupName(gomock.Any(), ref).Return("HR-Managers", nil).Times(2)

	// One applied action and one failed one; both end up in the history.
	mutator.EXPECT().Apply(gomock.Any(), types.AddAction("jdoe", "hr-managers-grp")).Return(nil)
	mutator.EXPECT().Apply(gomock.Any(), types.RemoveAction("jdoe", "finance-grp")).
		Return(fmt.Errorf("%w: boom", ErrMutationFailed))

	var created *types.SyncRun
	recorder.EXPECT().CreateRun(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, run *types.SyncRun) error {
			created = run
			return nil
		})

	var records []*types.SyncActionRecord
	recorder.EXPECT().RecordAction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, record *types.SyncActionRecord) error {
			records = append(records, record)
			return nil
		}).Times(2)

	var finished *types.SyncRun
	recorder.EXPECT().FinishRun(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, run *types.SyncRun) error {
			finished = run
			return nil
		})

	o := NewOrchestrator(dir, cloud, mutator, recorder, cfg, Options{}, audit.NewMemorySink(), &MockTracer{}, &MockMonitor{}, logging.NewNoopLogger())

	report, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created == nil || created.Status != types.RunStatusRunning {
		t.Fatalf("expected a running row at run start, got %+v", created)
	}
	if created.ID != report.ID || created.Identities != 1 {
		t.Errorf("unexpected start row: %+v", created)
	}

	byGroup := make(map[string]*types.SyncActionRecord, len(records))
	for _, r := range records {
		if r.RunID != report.ID {
			t.Errorf("action recorded for run %q, want %q", r.RunID, report.ID)
		}
		byGroup[r.Group] = r
	}
	if len(byGroup) != 2 {
		t.Fatalf("expected one record per attempted action, got %+v", records)
	}
	if r := byGroup["hr-managers-grp"]; r == nil || !r.Succeeded || r.Error != "" {
		t.Errorf("unexpected record for applied action: %+v", r)
	}
	if r := byGroup["finance-grp"]; r == nil || r.Succeeded || r.Error == "" {
		t.Errorf("unexpected record for failed action: %+v", r)
	}

	if finished == nil {
		t.Fatal("expected the run row to be closed")
	}
	if finished.Status != types.RunStatusSucceeded || finished.Adds != 1 || finished.Failed != 1 {
		t.Errorf("unexpected finish row: %+v", finished)
	}
	if finished.FinishedAt == nil {
		t.Error("expected a finish timestamp")
	}
}

func TestRunWorkerPoolMatchesSequential(t *testing.T) {
	run := func(workers int) *types.RunReport {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		dir := NewMockDirectoryInterface(ctrl)
		cloud := NewMockCloudIdentityInterface(ctrl)
		mutator := NewMockMutatorInterface(ctrl)

		users := []string{"alice", "bob", "carol", "dave"}
		dir.EXPECT().ListUsers(gomock.Any()).Return(users, nil)
		cloud.EXPECT().ListUsers(gomock.Any()).Return(users, nil)

		ref := directory.GroupRef("CN=HR-Managers,OU=Groups,DC=example,DC=com")
		for _, u := range users {
			dir.EXPECT().GetUserGroups(gomock.Any(), u).Return([]directory.GroupRef{ref}, nil)
		}
		dir.EXPECT().ResolveGroupName(gomock.Any(), ref).Return("HR-Managers", nil).Times(len(users))
		mutator.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(nil).Times(len(users))

		o := newTestOrchestrator(dir, cloud, mutator, hrConfig("directory"), Options{Workers: workers}, audit.NewMemorySink())

		report, err := o.Run(context.Background())
		if err != nil {
			t.Fatalf("unexpected error with %d workers: %v", workers, err)
		}
		return report
	}

	sequential := run(1)
	pooled := run(4)

	if sequential.Adds != pooled.Adds || sequential.Identities != pooled.Identities {
		t.Errorf("worker pool changed the outcome: %+v vs %+v", sequential, pooled)
	}
}
