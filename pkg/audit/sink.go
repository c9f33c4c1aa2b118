// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"context"
	"fmt"
	"os"

	"github.com/canonical/group-sync-service/internal/logging"
)

var _ SinkInterface = (*LoggerSink)(nil)

// LoggerSink writes audit events through the application logger. Audit
// levels map onto logger severities, the audit level itself is kept in the
// message so the trail stays greppable by level.
type LoggerSink struct {
	logger logging.LoggerInterface
}

func (s *LoggerSink) Log(ctx context.Context, level Level, format string, args ...interface{}) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "audit sink write failed: %v\n", r)
		}
	}()

	msg := fmt.Sprintf("[%s] %s", level, fmt.Sprintf(format, args...))

	switch level {
	case LevelCall:
		s.logger.Debug(msg)
	case LevelInfo, LevelMssg:
		s.logger.Info(msg)
	case LevelWarn:
		s.logger.Warn(msg)
	case LevelError, LevelFatal:
		// FATAL marks severity in the trail, it must not terminate the
		// process, so it never maps to logger.Fatal.
		s.logger.Error(msg)
	default:
		s.logger.Info(msg)
	}
}

func NewLoggerSink(logger logging.LoggerInterface) *LoggerSink {
	s := new(LoggerSink)
	s.logger = logger

	return s
}
