// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/group-sync-service/internal/cloudidentity"
	"github.com/canonical/group-sync-service/internal/config"
	"github.com/canonical/group-sync-service/internal/db"
	"github.com/canonical/group-sync-service/internal/directory"
	"github.com/canonical/group-sync-service/internal/logging"
	"github.com/canonical/group-sync-service/internal/monitoring"
	"github.com/canonical/group-sync-service/internal/monitoring/prometheus"
	"github.com/canonical/group-sync-service/internal/storage"
	"github.com/canonical/group-sync-service/internal/tracing"
	"github.com/canonical/group-sync-service/pkg/audit"
	"github.com/canonical/group-sync-service/pkg/authentication"
	"github.com/canonical/group-sync-service/pkg/runs"
	"github.com/canonical/group-sync-service/pkg/sync"
	"github.com/canonical/group-sync-service/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("group-sync-service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	syncCfg, err := config.LoadSyncConfig(specs.SyncConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load sync config: %v", err)
	}

	// Run history is persisted when a DSN is configured, otherwise it is
	// kept in memory for the lifetime of the process.
	var dbIface db.DBClientInterface
	var runsDB runs.DatabaseInterface
	var recorder sync.RecorderInterface
	if specs.DSN != "" {
		dbConfig := db.Config{
			DSN:             specs.DSN,
			MaxConns:        specs.DBMaxConns,
			MinConns:        specs.DBMinConns,
			MaxConnLifetime: specs.DBMaxConnLifetime,
			MaxConnIdleTime: specs.DBMaxConnIdleTime,
			TracingEnabled:  specs.TracingEnabled,
		}
		dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
		if err != nil {
			return fmt.Errorf("failed to create database client: %v", err)
		}
		defer dbClient.Close()

		s := storage.NewStorage(dbClient, tracer, monitor, logger)
		dbIface = dbClient
		runsDB = s
		recorder = s
	} else {
		logger.Info("No DSN configured, run history is in-memory only")
		store := runs.NewMemoryStore()
		runsDB = store
		recorder = store
	}

	var dir sync.DirectoryInterface
	if specs.DirectoryURL != "" {
		dir = directory.NewClient(
			&directory.Config{
				URL:          specs.DirectoryURL,
				BindDN:       specs.DirectoryBindDN,
				BindPassword: specs.DirectoryBindPassword,
				BaseDN:       specs.DirectoryBaseDN,
			},
			tracer,
			monitor,
			logger,
		)
	} else {
		logger.Info("No directory URL configured, using noop directory client")
		dir = directory.NewNoopClient()
	}

	var cloud sync.CloudIdentityInterface
	if specs.AWSRegion != "" {
		cloud = cloudidentity.NewClient(specs.AWSRegion, tracer, monitor, logger)
	} else {
		logger.Info("No AWS region configured, using noop cloud identity client")
		cloud = cloudidentity.NewNoopClient()
	}

	orchestrator := buildOrchestrator(syncCfg, specs, dir, cloud, recorder, tracer, monitor, logger)

	jwtMiddleware, err := authentication.SetupJWTAuthentication(
		context.Background(),
		specs.AuthenticationEnabled,
		specs.AuthenticationIssuer,
		specs.AuthenticationJwksURL,
		specs.AuthenticationAllowedSubjects,
		specs.AuthenticationRequiredScope,
		tracer,
		monitor,
		logger,
	)
	if err != nil {
		return fmt.Errorf("failed to setup JWT authentication: %v", err)
	}

	router := web.NewRouter(
		runsDB,
		dbIface,
		orchestrator,
		jwtMiddleware,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}

func buildOrchestrator(
	syncCfg *config.SyncConfig,
	specs *config.EnvSpec,
	dir sync.DirectoryInterface,
	cloud sync.CloudIdentityInterface,
	recorder sync.RecorderInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *sync.Orchestrator {
	sink := audit.NewLoggerSink(logger)

	validator := sync.NewValidator(dir, syncCfg.Bypass.User, sink, tracer, monitor, logger)
	mutator := sync.NewMutator(dir, validator, specs.RemoteCallTimeout, sink, tracer, monitor, logger)

	policy := sync.FailurePolicyFatal
	if syncCfg.OnValidationFailure == "skip" {
		policy = sync.FailurePolicySkip
	}

	return sync.NewOrchestrator(
		dir,
		cloud,
		mutator,
		recorder,
		syncCfg,
		sync.Options{
			Workers:       specs.SyncWorkers,
			RunTimeout:    specs.RunTimeout,
			FailurePolicy: policy,
		},
		sink,
		tracer,
		monitor,
		logger,
	)
}
