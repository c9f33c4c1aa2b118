// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package migrations embeds the goose SQL migration files.
package migrations

import "embed"

//go:embed *.sql
var EmbedMigrations embed.FS
