// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import "errors"

var (
	// ErrValidationFailed marks a user or group that failed the existence
	// gate before mutation. Fatal for the run under FailurePolicyFatal.
	ErrValidationFailed = errors.New("validation failed")

	// ErrMutationFailed marks a failed add/remove call. Always isolated to
	// the single action, the run continues.
	ErrMutationFailed = errors.New("mutation failed")

	// ErrMutationTimeout marks a mutation that exceeded the per-call
	// deadline. A distinct kind so operators can tell overload from
	// hard failure.
	ErrMutationTimeout = errors.New("mutation timed out")

	// ErrFetchFailed marks a failed listing or membership call.
	ErrFetchFailed = errors.New("fetch failed")
)

// FailurePolicy decides how a validation failure at the point of mutation
// is handled.
type FailurePolicy string

const (
	// FailurePolicyFatal aborts the whole run on the first invalid user or
	// group. The default.
	FailurePolicyFatal FailurePolicy = "fatal"
	// FailurePolicySkip skips the action, counts it, and continues.
	FailurePolicySkip FailurePolicy = "skip"
)
