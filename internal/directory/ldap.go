// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-ldap/ldap/v3"

	"github.com/canonical/group-sync-service/internal/logging"
	"github.com/canonical/group-sync-service/internal/monitoring"
	"github.com/canonical/group-sync-service/internal/tracing"
)

var _ ClientInterface = (*Client)(nil)

type Config struct {
	URL          string
	BindDN       string
	BindPassword string
	BaseDN       string
}

// Client talks to an Active Directory server over LDAP. The underlying
// connection is not safe for concurrent use, all calls serialize on a
// mutex.
type Client struct {
	conn   ldapConn
	baseDN string

	mu sync.Mutex

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// ldapConn is the subset of *ldap.Conn the client uses, extracted so tests
// can stub the wire.
type ldapConn interface {
	Search(*ldap.SearchRequest) (*ldap.SearchResult, error)
	Modify(*ldap.ModifyRequest) error
}

func (c *Client) ListUsers(ctx context.Context) ([]string, error) {
	_, span := c.tracer.Start(ctx, "directory.Client.ListUsers")
	defer span.End()

	res, err := c.search(
		"(&(objectClass=user)(objectCategory=person))",
		[]string{"sAMAccountName"},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory users: %w", err)
	}

	users := make([]string, 0, len(res.Entries))
	for _, e := range res.Entries {
		if name := e.GetAttributeValue("sAMAccountName"); name != "" {
			users = append(users, name)
		}
	}

	return users, nil
}

func (c *Client) GetUserGroups(ctx context.Context, user string) ([]GroupRef, error) {
	_, span := c.tracer.Start(ctx, "directory.Client.GetUserGroups")
	defer span.End()

	res, err := c.search(
		fmt.Sprintf("(&(objectClass=user)(sAMAccountName=%s))", ldap.EscapeFilter(user)),
		[]string{"memberOf"},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch groups for user %q: %w", user, err)
	}
	if len(res.Entries) == 0 {
		return nil, fmt.Errorf("user %q not found in directory", user)
	}

	refs := make([]GroupRef, 0)
	for _, dn := range res.Entries[0].GetAttributeValues("memberOf") {
		refs = append(refs, GroupRef(dn))
	}

	return refs, nil
}

func (c *Client) ResolveGroupName(ctx context.Context, ref GroupRef) (string, error) {
	_, span := c.tracer.Start(ctx, "directory.Client.ResolveGroupName")
	defer span.End()

	req := ldap.NewSearchRequest(
		string(ref),
		ldap.ScopeBaseObject, ldap.NeverDerefAliases, 1, 0, false,
		"(objectClass=group)",
		[]string{"cn"},
		nil,
	)

	c.mu.Lock()
	res, err := c.conn.Search(req)
	c.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("failed to resolve group ref %q: %w", ref, err)
	}
	if len(res.Entries) == 0 {
		return "", fmt.Errorf("group ref %q not found", ref)
	}

	return res.Entries[0].GetAttributeValue("cn"), nil
}

func (c *Client) UserExists(ctx context.Context, name string) (bool, error) {
	_, span := c.tracer.Start(ctx, "directory.Client.UserExists")
	defer span.End()

	return c.exists(fmt.Sprintf("(&(objectClass=user)(sAMAccountName=%s))", ldap.EscapeFilter(name)))
}

func (c *Client) GroupExists(ctx context.Context, name string) (bool, error) {
	_, span := c.tracer.Start(ctx, "directory.Client.GroupExists")
	defer span.End()

	return c.exists(fmt.Sprintf("(&(objectClass=group)(cn=%s))", ldap.EscapeFilter(name)))
}

func (c *Client) OUExists(ctx context.Context, dn string) (bool, error) {
	_, span := c.tracer.Start(ctx, "directory.Client.OUExists")
	defer span.End()

	req := ldap.NewSearchRequest(
		dn,
		ldap.ScopeBaseObject, ldap.NeverDerefAliases, 1, 0, false,
		"(objectClass=organizationalUnit)",
		[]string{"ou"},
		nil,
	)

	c.mu.Lock()
	res, err := c.conn.Search(req)
	c.mu.Unlock()
	if err != nil {
		return false, fmt.Errorf("failed to look up OU %q: %w", dn, err)
	}

	return len(res.Entries) > 0, nil
}

func (c *Client) AddMember(ctx context.Context, group, user string) error {
	_, span := c.tracer.Start(ctx, "directory.Client.AddMember")
	defer span.End()

	return c.modifyMembership(ctx, group, user, true)
}

func (c *Client) RemoveMember(ctx context.Context, group, user string) error {
	_, span := c.tracer.Start(ctx, "directory.Client.RemoveMember")
	defer span.End()

	return c.modifyMembership(ctx, group, user, false)
}

func (c *Client) modifyMembership(ctx context.Context, group, user string, add bool) error {
	groupDN, err := c.objectDN(fmt.Sprintf("(&(objectClass=group)(cn=%s))", ldap.EscapeFilter(group)))
	if err != nil {
		return fmt.Errorf("failed to locate group %q: %w", group, err)
	}
	userDN, err := c.objectDN(fmt.Sprintf("(&(objectClass=user)(sAMAccountName=%s))", ldap.EscapeFilter(user)))
	if err != nil {
		return fmt.Errorf("failed to locate user %q: %w", user, err)
	}

	req := ldap.NewModifyRequest(groupDN, nil)
	if add {
		req.Add("member", []string{userDN})
	} else {
		req.Delete("member", []string{userDN})
	}

	c.mu.Lock()
	err = c.conn.Modify(req)
	c.mu.Unlock()
	if err != nil {
		op := "remove from"
		if add {
			op = "add to"
		}
		return fmt.Errorf("failed to %s group %q for user %q: %w", op, group, user, err)
	}

	return nil
}

func (c *Client) exists(filter string) (bool, error) {
	res, err := c.search(filter, []string{"dn"})
	if err != nil {
		return false, err
	}
	return len(res.Entries) > 0, nil
}

func (c *Client) objectDN(filter string) (string, error) {
	res, err := c.search(filter, []string{"dn"})
	if err != nil {
		return "", err
	}
	if len(res.Entries) == 0 {
		return "", fmt.Errorf("no object matches %q", filter)
	}
	return res.Entries[0].DN, nil
}

func (c *Client) search(filter string, attrs []string) (*ldap.SearchResult, error) {
	req := ldap.NewSearchRequest(
		c.baseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		filter,
		attrs,
		nil,
	)

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn.Search(req)
}

// NewClient dials and binds to the directory. It panics on a failed bind,
// mirroring how the process treats a missing core dependency at startup.
func NewClient(config *Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	conn, err := ldap.DialURL(config.URL)
	if err != nil {
		panic(fmt.Errorf("failed to dial directory %q: %v", config.URL, err))
	}

	if err := conn.Bind(config.BindDN, config.BindPassword); err != nil {
		panic(fmt.Errorf("failed to bind to directory as %q: %v", config.BindDN, err))
	}

	c := new(Client)

	c.conn = conn
	c.baseDN = config.BaseDN

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c
}
