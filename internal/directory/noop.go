// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import "context"

type NoopClient struct {
}

func (c *NoopClient) ListUsers(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (c *NoopClient) GetUserGroups(ctx context.Context, user string) ([]GroupRef, error) {
	return nil, nil
}

func (c *NoopClient) ResolveGroupName(ctx context.Context, ref GroupRef) (string, error) {
	return string(ref), nil
}

func (c *NoopClient) UserExists(ctx context.Context, name string) (bool, error) {
	return true, nil
}

func (c *NoopClient) GroupExists(ctx context.Context, name string) (bool, error) {
	return true, nil
}

func (c *NoopClient) OUExists(ctx context.Context, dn string) (bool, error) {
	return true, nil
}

func (c *NoopClient) AddMember(ctx context.Context, group, user string) error {
	return nil
}

func (c *NoopClient) RemoveMember(ctx context.Context, group, user string) error {
	return nil
}

func NewNoopClient() *NoopClient {
	return new(NoopClient)
}
