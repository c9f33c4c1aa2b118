// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canonical/group-sync-service/internal/logging"
	"github.com/canonical/group-sync-service/internal/monitoring"
	"github.com/canonical/group-sync-service/internal/tracing"
	"github.com/canonical/group-sync-service/internal/types"
	"github.com/canonical/group-sync-service/pkg/audit"
)

var _ MutatorInterface = (*Mutator)(nil)

// Mutator applies one add/remove action at a time: validate the identity
// and the target group, then perform the directory mutation under a
// per-call deadline. Validation failures surface as ErrValidationFailed
// and the orchestrator decides fatal-vs-skip. Mutation failures surface as
// ErrMutationFailed (or ErrMutationTimeout) and are always isolated to the
// single action by the caller.
type Mutator struct {
	directory   DirectoryInterface
	validator   ValidatorInterface
	callTimeout time.Duration

	sink audit.SinkInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (m *Mutator) Apply(ctx context.Context, action types.SyncAction) error {
	ctx, span := m.tracer.Start(ctx, "sync.Mutator.Apply")
	defer span.End()

	if action.IsNoOp() {
		return nil
	}

	m.sink.Log(ctx, audit.LevelCall, "applying %s", action)

	if !m.validator.ValidateUser(ctx, action.Identity) {
		m.sink.Log(ctx, audit.LevelError, "refusing %s: user %q failed validation", action, action.Identity)
		return fmt.Errorf("%w: user %q", ErrValidationFailed, action.Identity)
	}
	if !m.validator.ValidateGroup(ctx, action.Group) {
		m.sink.Log(ctx, audit.LevelError, "refusing %s: group %q failed validation", action, action.Group)
		return fmt.Errorf("%w: group %q", ErrValidationFailed, action.Group)
	}

	callCtx := ctx
	if m.callTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, m.callTimeout)
		defer cancel()
	}

	var err error
	switch action.Op {
	case types.OpAdd:
		err = m.directory.AddMember(callCtx, action.Group, action.Identity)
	case types.OpRemove:
		err = m.directory.RemoveMember(callCtx, action.Group, action.Identity)
	default:
		return nil
	}

	if err != nil {
		// Logged at FATAL severity in the trail but never propagated as a
		// run-stopper: one bad group must not block its siblings.
		m.sink.Log(ctx, audit.LevelFatal, "%s failed: %v", action, err)

		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s: %v", ErrMutationTimeout, action, err)
		}
		return fmt.Errorf("%w: %s: %v", ErrMutationFailed, action, err)
	}

	m.sink.Log(ctx, audit.LevelMssg, "%s succeeded", action)
	return nil
}

func NewMutator(
	dir DirectoryInterface,
	validator ValidatorInterface,
	callTimeout time.Duration,
	sink audit.SinkInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Mutator {
	m := new(Mutator)

	m.directory = dir
	m.validator = validator
	m.callTimeout = callTimeout
	m.sink = sink

	m.tracer = tracer
	m.monitor = monitor
	m.logger = logger

	return m
}
