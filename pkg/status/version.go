// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

// Version is overridden at build time via -ldflags.
var Version = "dev"
