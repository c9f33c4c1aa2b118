// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"errors"
	"fmt"
	"time"
)

// ControllerMode selects which system is the source of truth for a run.
type ControllerMode string

const (
	// DirectorySourceOfTruth reconciles cloud memberships against the directory.
	DirectorySourceOfTruth ControllerMode = "directory"
	// CloudSourceOfTruth reconciles directory memberships against the cloud.
	CloudSourceOfTruth ControllerMode = "cloud"
)

var ErrInvalidControllerMode = errors.New("invalid controller mode")

// ParseControllerMode converts a string to a ControllerMode. Unlike group
// types there is no default: an unrecognized mode is a fatal configuration
// error and must stop a run before any fetch or mutation.
func ParseControllerMode(s string) (ControllerMode, error) {
	switch s {
	case "directory":
		return DirectorySourceOfTruth, nil
	case "cloud":
		return CloudSourceOfTruth, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidControllerMode, s)
	}
}

// GroupMapping pairs one directory group with one cloud group. Duplicate
// directory groups are allowed so one directory group may fan out to
// several cloud groups.
type GroupMapping struct {
	DirectoryGroup string `json:"directory_group" validate:"required"`
	CloudGroup     string `json:"cloud_group" validate:"required"`
}

// ActionOp is the operation of a SyncAction.
type ActionOp string

const (
	OpAdd    ActionOp = "add"
	OpRemove ActionOp = "remove"
	OpNoOp   ActionOp = "noop"
)

// SyncAction is the unit of work the diff engine hands to the mutator.
type SyncAction struct {
	Op       ActionOp
	Identity string
	// Group is the target group in the destination system.
	Group string
}

func (a SyncAction) IsNoOp() bool {
	return a.Op == OpNoOp
}

func (a SyncAction) String() string {
	if a.Op == OpNoOp {
		return "noop"
	}
	return fmt.Sprintf("%s %s -> %s", a.Op, a.Identity, a.Group)
}

// NoOp returns the action that requires no mutation.
func NoOp() SyncAction {
	return SyncAction{Op: OpNoOp}
}

func AddAction(identity, group string) SyncAction {
	return SyncAction{Op: OpAdd, Identity: identity, Group: group}
}

func RemoveAction(identity, group string) SyncAction {
	return SyncAction{Op: OpRemove, Identity: identity, Group: group}
}

// RunStatus is the lifecycle state of a recorded sync run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// RunReport summarizes one sync run.
type RunReport struct {
	ID   string         `json:"id"`
	Mode ControllerMode `json:"mode"`

	Identities int `json:"identities"`
	Mappings   int `json:"mappings"`

	Adds          int `json:"adds"`
	Removes       int `json:"removes"`
	NoOps         int `json:"noops"`
	Skipped       int `json:"skipped"`
	Failed        int `json:"failed"`
	FetchFailures int `json:"fetch_failures"`

	Status     RunStatus     `json:"status"`
	Error      string        `json:"error,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Duration   time.Duration `json:"duration"`
}

// SyncRun is the persisted form of a run.
type SyncRun struct {
	ID            string         `json:"id"`
	Mode          ControllerMode `json:"mode"`
	Status        RunStatus      `json:"status"`
	Identities    int            `json:"identities"`
	Adds          int            `json:"adds"`
	Removes       int            `json:"removes"`
	Skipped       int            `json:"skipped"`
	Failed        int            `json:"failed"`
	FetchFailures int            `json:"fetch_failures"`
	Error         string         `json:"error,omitempty"`
	StartedAt     time.Time      `json:"started_at"`
	FinishedAt    *time.Time     `json:"finished_at,omitempty"`
}

// SyncActionRecord is the persisted outcome of one applied action.
type SyncActionRecord struct {
	ID        string    `json:"id"`
	RunID     string    `json:"run_id"`
	Op        ActionOp  `json:"op"`
	Identity  string    `json:"identity"`
	Group     string    `json:"group"`
	Succeeded bool      `json:"succeeded"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
