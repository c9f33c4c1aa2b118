// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import "context"

// Level is the severity of an audit event. The set is fixed, CALL marks
// entry into an operation and MSSG is a plain progress message.
type Level string

const (
	LevelCall  Level = "CALL"
	LevelInfo  Level = "INFO"
	LevelMssg  Level = "MSSG"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
	LevelFatal Level = "FATAL"
)

// SinkInterface is an append-only audit trail. Log never returns an error
// and never panics into the caller, a sink that cannot write reports the
// failure on a secondary channel.
type SinkInterface interface {
	Log(ctx context.Context, level Level, format string, args ...interface{})
}
