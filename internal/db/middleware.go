// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"net/http"

	chi_middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/group-sync-service/internal/logging"
)

type txContextKey struct{}

// TxFromContext returns the active request transaction, or nil.
func TxFromContext(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txContextKey{}).(*sql.Tx)
	return tx
}

// ContextWithTx attaches a transaction to the context.
func ContextWithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// TransactionMiddleware opens one transaction per request, commits on
// success responses and rolls back on 5xx or panic.
func TransactionMiddleware(client DBClientInterface, logger logging.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tx, err := client.BeginTx(r.Context())
			if err != nil {
				logger.Errorf("failed to begin transaction: %v", err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			ww := chi_middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			committed := false
			defer func() {
				if committed {
					return
				}
				if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
					logger.Errorf("failed to roll back transaction: %v", err)
				}
			}()

			next.ServeHTTP(ww, r.WithContext(ContextWithTx(r.Context(), tx)))

			if ww.Status() >= http.StatusInternalServerError {
				return
			}

			if err := tx.Commit(); err != nil {
				logger.Errorf("failed to commit transaction: %v", err)
				return
			}
			committed = true
		})
	}
}
