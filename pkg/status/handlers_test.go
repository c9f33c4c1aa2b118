// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	trace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/canonical/group-sync-service/internal/http/types"
	"github.com/canonical/group-sync-service/internal/logging"
)

type MockTracer struct{}

func (m *MockTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return noop.NewTracerProvider().Tracer("test").Start(ctx, name)
}

type MockMonitor struct{}

func (m *MockMonitor) GetService() string { return "test" }
func (m *MockMonitor) SetResponseTimeMetric(map[string]string, float64) error {
	return nil
}
func (m *MockMonitor) SetDependencyAvailability(map[string]string, float64) error {
	return nil
}

func TestAlive(t *testing.T) {
	mux := chi.NewMux()
	NewAPI(&MockTracer{}, &MockMonitor{}, logging.NewNoopLogger()).RegisterEndpoints(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v0/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp types.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "alive" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestVersion(t *testing.T) {
	mux := chi.NewMux()
	NewAPI(&MockTracer{}, &MockMonitor{}, logging.NewNoopLogger()).RegisterEndpoints(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v0/version", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp types.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	data, ok := resp.Data.(map[string]any)
	if !ok || data["name"] != "group-sync-service" {
		t.Fatalf("unexpected data %v", resp.Data)
	}
}
