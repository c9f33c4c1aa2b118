// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"strings"

	"github.com/canonical/group-sync-service/internal/types"
)

// MembershipSet is a case-folded set of group names. Directory comparison
// semantics are case-insensitive, so names fold on entry and membership
// tests fold on lookup.
type MembershipSet map[string]struct{}

// NewMembershipSet builds a set from resolved group names.
func NewMembershipSet(names []string) MembershipSet {
	s := make(MembershipSet, len(names))
	for _, n := range names {
		s[strings.ToLower(n)] = struct{}{}
	}
	return s
}

// Has reports membership, ignoring case.
func (s MembershipSet) Has(name string) bool {
	_, ok := s[strings.ToLower(name)]
	return ok
}

// ComputeAction decides the action required for one identity against one
// mapping. Pure: no I/O, no logging.
//
// With the directory as source of truth the destination is the cloud
// group, and the action is emitted unconditionally from source membership
// alone: the cloud-mutation path is cheap and every mapping is re-asserted
// every run. With the cloud as source of truth the destination is the
// directory group, and the action is change-gated against the current
// destination state: the directory-mutation path is the sensitive one and
// only real transitions are emitted. The asymmetry is deliberate, do not
// collapse the two branches.
func ComputeAction(
	identity string,
	mapping types.GroupMapping,
	source MembershipSet,
	destination MembershipSet,
	mode types.ControllerMode,
) types.SyncAction {
	switch mode {
	case types.DirectorySourceOfTruth:
		if source.Has(mapping.DirectoryGroup) {
			return types.AddAction(identity, mapping.CloudGroup)
		}
		return types.RemoveAction(identity, mapping.CloudGroup)

	case types.CloudSourceOfTruth:
		desired := source.Has(mapping.CloudGroup)
		current := destination.Has(mapping.DirectoryGroup)

		switch {
		case desired && !current:
			return types.AddAction(identity, mapping.DirectoryGroup)
		case !desired && current:
			return types.RemoveAction(identity, mapping.DirectoryGroup)
		default:
			return types.NoOp()
		}

	default:
		return types.NoOp()
	}
}
