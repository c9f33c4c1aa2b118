// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	AuthenticationEnabled         bool   `envconfig:"authentication_enabled" default:"false"`
	AuthenticationIssuer          string `envconfig:"authentication_issuer"`
	AuthenticationJwksURL         string `envconfig:"authentication_jwks_url"`
	AuthenticationAllowedSubjects string `envconfig:"authentication_allowed_subjects"`
	AuthenticationRequiredScope   string `envconfig:"authentication_required_scope"`

	SyncConfigFile    string        `envconfig:"sync_config_file" default:"sync.json"`
	SyncWorkers       int           `envconfig:"sync_workers" default:"1"`
	RunTimeout        time.Duration `envconfig:"run_timeout" default:"30m"`
	RemoteCallTimeout time.Duration `envconfig:"remote_call_timeout" default:"30s"`

	DirectoryURL          string `envconfig:"directory_url"`
	DirectoryBindDN       string `envconfig:"directory_bind_dn"`
	DirectoryBindPassword string `envconfig:"directory_bind_password"`
	DirectoryBaseDN       string `envconfig:"directory_base_dn"`

	AWSRegion string `envconfig:"aws_region"`

	DSN               string        `envconfig:"DSN" default:""`
	DBMaxConns        int           `envconfig:"db_max_conns" default:"10"`
	DBMinConns        int           `envconfig:"db_min_conns" default:"1"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`
}
