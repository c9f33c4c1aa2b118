// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"

	"github.com/canonical/group-sync-service/internal/logging"
	"github.com/canonical/group-sync-service/internal/monitoring"
	"github.com/canonical/group-sync-service/internal/tracing"
)

// SetupJWTAuthentication initializes JWT authentication based on configuration.
// Returns the middleware if successful, or nil if authentication is disabled.
func SetupJWTAuthentication(
	ctx context.Context,
	enabled bool,
	issuer string,
	jwksURL string,
	allowedSubjects string,
	requiredScope string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (*Middleware, error) {
	if !enabled {
		logger.Info("JWT authentication is disabled")
		return nil, nil
	}

	if issuer == "" {
		return nil, fmt.Errorf("AUTH_ENABLED is true but AUTH_ISSUER is not configured")
	}

	authConfig := NewConfig(issuer, allowedSubjects, requiredScope)

	var verifier *JWTVerifier

	if jwksURL != "" {
		logger.Infof("Using manual JWKS URL: %s", jwksURL)
		verifier = NewJWTVerifierDirect(NewProviderWithJWKS(ctx, issuer, jwksURL), tracer, monitor, logger)
	} else {
		logger.Infof("Using OIDC discovery for issuer: %s", issuer)
		provider, err := NewProvider(ctx, issuer)
		if err != nil {
			return nil, fmt.Errorf("failed to create OIDC provider: %v", err)
		}
		verifier = NewJWTVerifier(provider, tracer, monitor, logger)
	}

	logger.Info("JWT authentication is enabled")

	return NewMiddleware(authConfig, verifier, tracer, monitor, logger), nil
}
