// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cloudidentity

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/iam"

	"github.com/canonical/group-sync-service/internal/logging"
	"github.com/canonical/group-sync-service/internal/monitoring"
	"github.com/canonical/group-sync-service/internal/tracing"
)

var _ ClientInterface = (*Client)(nil)

// iamAPI is the subset of the IAM service client the sync engine uses.
type iamAPI interface {
	ListUsers(ctx context.Context, params *iam.ListUsersInput, optFns ...func(*iam.Options)) (*iam.ListUsersOutput, error)
	ListGroupsForUser(ctx context.Context, params *iam.ListGroupsForUserInput, optFns ...func(*iam.Options)) (*iam.ListGroupsForUserOutput, error)
}

// Client wraps the AWS IAM API. The underlying SDK client is safe for
// concurrent use.
type Client struct {
	api iamAPI

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (c *Client) ListUsers(ctx context.Context) ([]string, error) {
	ctx, span := c.tracer.Start(ctx, "cloudidentity.Client.ListUsers")
	defer span.End()

	users := make([]string, 0)

	var marker *string
	for {
		out, err := c.api.ListUsers(ctx, &iam.ListUsersInput{Marker: marker})
		if err != nil {
			return nil, fmt.Errorf("failed to list cloud users: %w", err)
		}

		for _, u := range out.Users {
			users = append(users, aws.ToString(u.UserName))
		}

		if !out.IsTruncated {
			break
		}
		marker = out.Marker
	}

	return users, nil
}

func (c *Client) ListGroupsForUser(ctx context.Context, user string) ([]string, error) {
	ctx, span := c.tracer.Start(ctx, "cloudidentity.Client.ListGroupsForUser")
	defer span.End()

	groups := make([]string, 0)

	var marker *string
	for {
		out, err := c.api.ListGroupsForUser(ctx, &iam.ListGroupsForUserInput{
			UserName: aws.String(user),
			Marker:   marker,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list cloud groups for user %q: %w", user, err)
		}

		for _, g := range out.Groups {
			groups = append(groups, aws.ToString(g.GroupName))
		}

		if !out.IsTruncated {
			break
		}
		marker = out.Marker
	}

	return groups, nil
}

// NewClient builds an IAM-backed client from the ambient AWS credential
// chain. It panics when no credentials resolve, mirroring how the process
// treats a missing core dependency at startup.
func NewClient(region string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		panic(fmt.Errorf("failed to load AWS configuration: %v", err))
	}

	c := new(Client)

	c.api = iam.NewFromConfig(cfg)

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c
}
