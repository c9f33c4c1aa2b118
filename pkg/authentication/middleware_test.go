// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/coreos/go-oidc/v3/oidc"
	trace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

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

type stubVerifier struct {
	token *oidc.IDToken
	err   error
}

func (s *stubVerifier) VerifyToken(ctx context.Context, rawToken string) (*oidc.IDToken, error) {
	return s.token, s.err
}

func newTestMiddleware(cfg *Config, verifier TokenVerifierInterface) *Middleware {
	return NewMiddleware(cfg, verifier, &MockTracer{}, &MockMonitor{}, logging.NewNoopLogger())
}

func TestAuthenticate(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		cfg        *Config
		verifier   TokenVerifierInterface
		authHeader string
		wantStatus int
	}{
		{
			name:       "missing authorization header",
			cfg:        NewConfig("https://issuer.example.com", "", ""),
			verifier:   &stubVerifier{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "non-bearer authorization header",
			cfg:        NewConfig("https://issuer.example.com", "", ""),
			verifier:   &stubVerifier{},
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "verification failure",
			cfg:        NewConfig("https://issuer.example.com", "", ""),
			verifier:   &stubVerifier{err: errors.New("token expired")},
			authHeader: "Bearer some-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "noop verifier allows request",
			cfg:        NewConfig("https://issuer.example.com", "", ""),
			verifier:   NewNoopVerifier(),
			authHeader: "Bearer some-token",
			wantStatus: http.StatusOK,
		},
		{
			name:       "allowed subject passes",
			cfg:        NewConfig("https://issuer.example.com", "svc-sync, svc-admin", ""),
			verifier:   &stubVerifier{token: &oidc.IDToken{Subject: "svc-sync"}},
			authHeader: "Bearer some-token",
			wantStatus: http.StatusOK,
		},
		{
			name:       "unlisted subject is rejected",
			cfg:        NewConfig("https://issuer.example.com", "svc-sync", ""),
			verifier:   &stubVerifier{token: &oidc.IDToken{Subject: "intruder"}},
			authHeader: "Bearer some-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no subject restriction accepts any verified token",
			cfg:        NewConfig("https://issuer.example.com", "", ""),
			verifier:   &stubVerifier{token: &oidc.IDToken{Subject: "anyone"}},
			authHeader: "Bearer some-token",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMiddleware(tt.cfg, tt.verifier)

			req := httptest.NewRequest(http.MethodGet, "/api/v0/sync/runs", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()
			m.Authenticate()(okHandler).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestNewConfigParsesAllowedSubjects(t *testing.T) {
	cfg := NewConfig("https://issuer.example.com", "svc-sync, svc-admin ,,svc-audit,", "sync:write")

	// Stray commas must not produce an empty allowed subject.
	want := []string{"svc-sync", "svc-admin", "svc-audit"}
	if !reflect.DeepEqual(cfg.AllowedSubjects, want) {
		t.Fatalf("expected %v, got %v", want, cfg.AllowedSubjects)
	}
	if cfg.RequiredScope != "sync:write" {
		t.Fatalf("unexpected required scope %q", cfg.RequiredScope)
	}

	if cfg := NewConfig("https://issuer.example.com", "", ""); cfg.AllowedSubjects != nil {
		t.Fatalf("expected no allowed subjects, got %v", cfg.AllowedSubjects)
	}
}

func TestSetupJWTAuthenticationDisabled(t *testing.T) {
	m, err := SetupJWTAuthentication(context.Background(), false, "", "", "", "", &MockTracer{}, &MockMonitor{}, logging.NewNoopLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != nil {
		t.Fatal("expected nil middleware when authentication is disabled")
	}
}

func TestSetupJWTAuthenticationRequiresIssuer(t *testing.T) {
	if _, err := SetupJWTAuthentication(context.Background(), true, "", "", "", "", &MockTracer{}, &MockMonitor{}, logging.NewNoopLogger()); err == nil {
		t.Fatal("expected error when issuer is missing")
	}
}
