// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"context"
	"fmt"
	"sync"
)

var _ SinkInterface = (*MemorySink)(nil)

// Event is one recorded audit entry.
type Event struct {
	Level   Level
	Message string
}

// MemorySink collects audit events in memory, safe under concurrent
// writers. Used by tests and as a per-run buffer.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

func (s *MemorySink) Log(ctx context.Context, level Level, format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, Event{Level: level, Message: fmt.Sprintf(format, args...)})
}

// Events returns a copy of the recorded events in append order.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// ByLevel returns recorded events with the given level.
func (s *MemorySink) ByLevel(level Level) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Event, 0)
	for _, e := range s.events {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

func NewMemorySink() *MemorySink {
	return new(MemorySink)
}
