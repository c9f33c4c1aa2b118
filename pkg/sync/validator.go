// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"

	"github.com/canonical/group-sync-service/internal/logging"
	"github.com/canonical/group-sync-service/internal/monitoring"
	"github.com/canonical/group-sync-service/internal/tracing"
	"github.com/canonical/group-sync-service/pkg/audit"
)

var _ ValidatorInterface = (*Validator)(nil)

// Validator checks entity existence in the directory before a mutation is
// attempted. It never mutates state, its only side effect is audit
// logging.
type Validator struct {
	directory  DirectoryInterface
	bypassUser bool

	sink audit.SinkInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// ValidateUser reports whether the named user exists in the directory.
// With the user bypass set it returns true without any lookup, audited at
// WARN so degraded environments stay visible.
func (v *Validator) ValidateUser(ctx context.Context, name string) bool {
	ctx, span := v.tracer.Start(ctx, "sync.Validator.ValidateUser")
	defer span.End()

	if v.bypassUser {
		v.sink.Log(ctx, audit.LevelWarn, "user validation bypass active, accepting %q without lookup", name)
		return true
	}

	found, err := v.directory.UserExists(ctx, name)
	if err != nil {
		// Lookup errors fold into false. Callers must not read false as
		// definitively absent.
		v.sink.Log(ctx, audit.LevelError, "user lookup for %q failed: %v", name, err)
		return false
	}

	return found
}

// ValidateGroup reports whether the named group exists. No bypass.
func (v *Validator) ValidateGroup(ctx context.Context, name string) bool {
	ctx, span := v.tracer.Start(ctx, "sync.Validator.ValidateGroup")
	defer span.End()

	found, err := v.directory.GroupExists(ctx, name)
	if err != nil {
		v.sink.Log(ctx, audit.LevelError, "group lookup for %q failed: %v", name, err)
		return false
	}

	return found
}

// ValidateOU reports whether the organizational unit exists. No bypass.
func (v *Validator) ValidateOU(ctx context.Context, dn string) bool {
	ctx, span := v.tracer.Start(ctx, "sync.Validator.ValidateOU")
	defer span.End()

	found, err := v.directory.OUExists(ctx, dn)
	if err != nil {
		v.sink.Log(ctx, audit.LevelError, "OU lookup for %q failed: %v", dn, err)
		return false
	}

	return found
}

func NewValidator(
	dir DirectoryInterface,
	bypassUser bool,
	sink audit.SinkInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Validator {
	v := new(Validator)

	v.directory = dir
	v.bypassUser = bypassUser
	v.sink = sink

	v.tracer = tracer
	v.monitor = monitor
	v.logger = logger

	return v
}
