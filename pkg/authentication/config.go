// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"strings"
)

// Config carries the constraints applied to verified bearer tokens.
type Config struct {
	Issuer          string
	AllowedSubjects []string
	RequiredScope   string
}

// NewConfig parses the comma separated subject allowlist from the
// environment. Whitespace around entries is trimmed and empty entries
// from stray commas are dropped, so they never match a token subject.
func NewConfig(issuer, allowedSubjects, requiredScope string) *Config {
	c := new(Config)

	c.Issuer = issuer
	c.RequiredScope = requiredScope

	for _, subject := range strings.Split(allowedSubjects, ",") {
		if subject = strings.TrimSpace(subject); subject != "" {
			c.AllowedSubjects = append(c.AllowedSubjects, subject)
		}
	}

	return c
}
