// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cloudidentity

import "context"

type NoopClient struct {
}

func (c *NoopClient) ListUsers(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (c *NoopClient) ListGroupsForUser(ctx context.Context, user string) ([]string, error) {
	return nil, nil
}

func NewNoopClient() *NoopClient {
	return new(NoopClient)
}
