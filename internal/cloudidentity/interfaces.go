// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cloudidentity

import "context"

// ClientInterface is the cloud identity capability consumed by the sync
// engine. The client is authenticated once at process start, credentials
// never flow through the engine.
type ClientInterface interface {
	ListUsers(ctx context.Context) ([]string, error)
	ListGroupsForUser(ctx context.Context, user string) ([]string, error)
}
