// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/canonical/group-sync-service/internal/logging"
	"github.com/canonical/group-sync-service/internal/monitoring"
	"github.com/canonical/group-sync-service/internal/tracing"
)

const defaultPageSize uint64 = 100

var _ DBClientInterface = (*DBClient)(nil)

type Config struct {
	DSN             string
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	TracingEnabled  bool
}

type DBClientInterface interface {
	Statement(ctx context.Context) sq.StatementBuilderType
	BeginTx(ctx context.Context) (*sql.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// DBClient wraps a pgx-backed database/sql pool with a squirrel statement
// builder. When a transaction is present on the context, statements run
// inside it.
type DBClient struct {
	db *sql.DB

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Statement returns a postgres-flavored builder bound to the pool, or to
// the context transaction when one is active.
func (c *DBClient) Statement(ctx context.Context) sq.StatementBuilderType {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	if tx := TxFromContext(ctx); tx != nil {
		return builder.RunWith(tx)
	}

	return builder.RunWith(c.db)
}

func (c *DBClient) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return c.db.BeginTx(ctx, nil)
}

func (c *DBClient) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *DBClient) Close() {
	if err := c.db.Close(); err != nil {
		c.logger.Errorf("failed to close database pool: %v", err)
	}
}

// Offset converts a 1-based page parameter to a row offset.
func Offset(pageParam int64, pageSize uint64) uint64 {
	if pageParam < 1 {
		pageParam = 1
	}
	return uint64(pageParam-1) * pageSize
}

// PageSize normalizes a requested page size, falling back to the default.
func PageSize(sizeParam int64) uint64 {
	if sizeParam < 1 {
		return defaultPageSize
	}
	return uint64(sizeParam)
}

func NewDBClient(config Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*DBClient, error) {
	pgxConfig, err := pgx.ParseConfig(config.DSN)
	if err != nil {
		logger.Fatalf("invalid DSN: %v", err)
		return nil, err
	}

	db := stdlib.OpenDB(*pgxConfig)

	if config.MaxConns > 0 {
		db.SetMaxOpenConns(config.MaxConns)
	}
	if config.MinConns > 0 {
		db.SetMaxIdleConns(config.MinConns)
	}
	if config.MaxConnLifetime > 0 {
		db.SetConnMaxLifetime(config.MaxConnLifetime)
	}
	if config.MaxConnIdleTime > 0 {
		db.SetConnMaxIdleTime(config.MaxConnIdleTime)
	}

	c := new(DBClient)

	c.db = db

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c, nil
}
