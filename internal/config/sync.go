// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/canonical/group-sync-service/internal/types"
)

// ValidationBypass carries the escape hatches that skip existence checks.
// Bypasses are deliberate degraded-environment switches, every use is
// audited at WARN level.
type ValidationBypass struct {
	User bool `json:"user"`
}

// SyncConfig is the per-run reconciliation configuration, loaded once from
// a JSON file and validated at load time. Schema mismatches fail fast
// instead of surfacing as runtime access errors mid-run.
type SyncConfig struct {
	ControllerMode string               `json:"controller_mode" validate:"required"`
	GroupMappings  []types.GroupMapping `json:"group_mappings" validate:"required,min=1,dive"`
	Bypass         ValidationBypass     `json:"validation_bypass"`

	// OnValidationFailure selects what an invalid user or group does to the
	// run: "fatal" (default) aborts it, "skip" drops the action and moves on.
	OnValidationFailure string `json:"on_validation_failure" validate:"omitempty,oneof=fatal skip"`
}

// Mode returns the parsed controller mode.
func (c *SyncConfig) Mode() (types.ControllerMode, error) {
	return types.ParseControllerMode(c.ControllerMode)
}

// LoadSyncConfig reads and validates a sync configuration file.
func LoadSyncConfig(path string) (*SyncConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sync config %q: %w", path, err)
	}

	return ParseSyncConfig(raw)
}

// ParseSyncConfig decodes and validates raw JSON sync configuration.
func ParseSyncConfig(raw []byte) (*SyncConfig, error) {
	c := new(SyncConfig)
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("failed to parse sync config: %w", err)
	}

	if err := validator.New().Struct(c); err != nil {
		return nil, fmt.Errorf("invalid sync config: %w", err)
	}

	// The mode string is checked at load time so a bad value never reaches
	// the orchestrator.
	if _, err := c.Mode(); err != nil {
		return nil, err
	}

	return c, nil
}
