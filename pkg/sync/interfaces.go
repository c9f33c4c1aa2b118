// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"

	"github.com/canonical/group-sync-service/internal/directory"
	"github.com/canonical/group-sync-service/internal/types"
)

// DirectoryInterface is the directory capability the engine consumes,
// satisfied by *directory.Client. All mutations go through the directory:
// cloud-mapped groups live in the directory and the cloud side only ever
// reads resolved membership.
type DirectoryInterface interface {
	ListUsers(ctx context.Context) ([]string, error)
	GetUserGroups(ctx context.Context, user string) ([]directory.GroupRef, error)
	ResolveGroupName(ctx context.Context, ref directory.GroupRef) (string, error)

	UserExists(ctx context.Context, name string) (bool, error)
	GroupExists(ctx context.Context, name string) (bool, error)
	OUExists(ctx context.Context, dn string) (bool, error)

	AddMember(ctx context.Context, group, user string) error
	RemoveMember(ctx context.Context, group, user string) error
}

// CloudIdentityInterface is the read-only cloud identity capability,
// satisfied by *cloudidentity.Client.
type CloudIdentityInterface interface {
	ListUsers(ctx context.Context) ([]string, error)
	ListGroupsForUser(ctx context.Context, user string) ([]string, error)
}

// ValidatorInterface gates every mutation on entity existence. A false
// return does not distinguish absent from lookup failure, callers must not
// treat false as definitively absent.
type ValidatorInterface interface {
	ValidateUser(ctx context.Context, name string) bool
	ValidateGroup(ctx context.Context, name string) bool
	ValidateOU(ctx context.Context, dn string) bool
}

// MutatorInterface applies one validated action.
type MutatorInterface interface {
	Apply(ctx context.Context, action types.SyncAction) error
}

// RecorderInterface persists run history. A nil recorder disables
// persistence without changing engine behavior.
type RecorderInterface interface {
	CreateRun(ctx context.Context, run *types.SyncRun) error
	FinishRun(ctx context.Context, run *types.SyncRun) error
	RecordAction(ctx context.Context, record *types.SyncActionRecord) error
}
