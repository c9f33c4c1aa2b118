// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

var _ middleware.LogFormatter = (*LogFormatter)(nil)
var _ middleware.LogEntry = (*LogEntry)(nil)

// LogFormatter emits one debug line per request, only useful when the
// logger runs at debug level.
type LogFormatter struct {
	logger LoggerInterface
}

type LogEntry struct {
	request *http.Request
	logger  LoggerInterface
}

func (f *LogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &LogEntry{request: r, logger: f.logger}
}

func (e *LogEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	e.logger.Debugf(
		"%s %s://%s%s - %d %dB in %s",
		e.request.Method,
		scheme(e.request),
		e.request.Host,
		e.request.RequestURI,
		status,
		bytes,
		elapsed,
	)
}

func (e *LogEntry) Panic(v interface{}, stack []byte) {
	e.logger.Errorf("panic serving %s: %v\n%s", e.request.RequestURI, v, string(stack))
}

func scheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func NewLogFormatter(logger LoggerInterface) *LogFormatter {
	f := new(LogFormatter)
	f.logger = logger

	return f
}
