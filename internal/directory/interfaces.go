// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import "context"

// GroupRef is an opaque reference to a directory group object, in Active
// Directory a distinguished name. Refs are resolved to plain group names
// before comparison against mappings.
type GroupRef string

// ClientInterface is the directory capability consumed by the sync engine.
// Implementations are thin wrappers over the directory protocol; no retry
// or pagination logic lives behind this interface.
type ClientInterface interface {
	ListUsers(ctx context.Context) ([]string, error)
	GetUserGroups(ctx context.Context, user string) ([]GroupRef, error)
	ResolveGroupName(ctx context.Context, ref GroupRef) (string, error)

	UserExists(ctx context.Context, name string) (bool, error)
	GroupExists(ctx context.Context, name string) (bool, error)
	OUExists(ctx context.Context, dn string) (bool, error)

	AddMember(ctx context.Context, group, user string) error
	RemoveMember(ctx context.Context, group, user string) error
}
