// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/canonical/group-sync-service/pkg/status"
)

var rootCmd = &cobra.Command{
	Use:   "group-sync-service",
	Short: "Reconciles group memberships between a directory and a cloud identity store",
	Long: `group-sync-service keeps Active Directory group memberships and their
AWS IAM counterparts consistent, with a configurable source of truth.

Run "serve" for the long-lived API server or "sync" for a one-shot
reconciliation.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the app version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(status.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
