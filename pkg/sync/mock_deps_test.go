// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Manual mocks for tracing and monitoring to avoid code generation issues

type MockTracer struct{}

func (m *MockTracer) Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return ctx, trace.SpanFromContext(ctx)
}

type MockMonitor struct{}

func (m *MockMonitor) GetService() string { return "test-service" }
func (m *MockMonitor) SetResponseTimeMetric(labels map[string]string, value float64) error {
	return nil
}
func (m *MockMonitor) SetDependencyAvailability(labels map[string]string, value float64) error {
	return nil
}
