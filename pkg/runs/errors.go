// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package runs

import "errors"

var (
	ErrRunNotFound   = errors.New("run not found")
	ErrRunInProgress = errors.New("a sync run is already in progress")
)
