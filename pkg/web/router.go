// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/group-sync-service/internal/db"
	"github.com/canonical/group-sync-service/internal/logging"
	"github.com/canonical/group-sync-service/internal/monitoring"
	"github.com/canonical/group-sync-service/internal/tracing"
	"github.com/canonical/group-sync-service/pkg/authentication"
	"github.com/canonical/group-sync-service/pkg/metrics"
	"github.com/canonical/group-sync-service/pkg/runs"
	"github.com/canonical/group-sync-service/pkg/status"
)

func NewRouter(
	s runs.DatabaseInterface,
	dbClient db.DBClientInterface,
	runner runs.RunnerInterface,
	jwtMiddleware *authentication.Middleware,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
	)

	// Add transaction middleware if DB client is provided
	if dbClient != nil {
		middlewares = append(middlewares, db.TransactionMiddleware(dbClient, logger))
	}

	middlewares = append(
		middlewares,
		middleware.RequestLogger(logging.NewLogFormatter(logger)), // LogFormatter will only work if logger is set to DEBUG level
	)

	router.Use(middlewares...)

	runsService := runs.NewService(s, runner, tracer, monitor, logger)

	// The sync API mutates the directory, it stays behind JWT auth when
	// authentication is configured.
	router.Group(func(r chi.Router) {
		if jwtMiddleware != nil {
			r.Use(jwtMiddleware.Authenticate())
		}
		runs.NewAPI(runsService, tracer, monitor, logger).RegisterEndpoints(r)
	})

	// Unprotected operational endpoints
	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
