// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"testing"

	"github.com/canonical/group-sync-service/internal/types"
)

func TestComputeActionDirectorySource(t *testing.T) {
	mapping := types.GroupMapping{DirectoryGroup: "HR-Managers", CloudGroup: "hr-managers-grp"}

	tests := []struct {
		name   string
		source []string
		want   types.SyncAction
	}{
		{
			name:   "member of directory group emits add",
			source: []string{"HR-Managers", "All-Staff"},
			want:   types.AddAction("jdoe", "hr-managers-grp"),
		},
		{
			name:   "not a member emits remove",
			source: []string{"All-Staff"},
			want:   types.RemoveAction("jdoe", "hr-managers-grp"),
		},
		{
			name:   "empty membership emits remove",
			source: nil,
			want:   types.RemoveAction("jdoe", "hr-managers-grp"),
		},
		{
			name:   "membership comparison ignores case",
			source: []string{"hr-managers"},
			want:   types.AddAction("jdoe", "hr-managers-grp"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeAction("jdoe", mapping, NewMembershipSet(tt.source), nil, types.DirectorySourceOfTruth)
			if got != tt.want {
				t.Fatalf("ComputeAction() = %v, want %v", got, tt.want)
			}
		})
	}
}

// The directory-source direction never consults the destination: the add
// is emitted even when the identity already holds the cloud group.
func TestComputeActionDirectorySourceIgnoresDestination(t *testing.T) {
	mapping := types.GroupMapping{DirectoryGroup: "HR-Managers", CloudGroup: "hr-managers-grp"}

	source := NewMembershipSet([]string{"HR-Managers"})
	destination := NewMembershipSet([]string{"hr-managers-grp"})

	got := ComputeAction("jdoe", mapping, source, destination, types.DirectorySourceOfTruth)
	if got != types.AddAction("jdoe", "hr-managers-grp") {
		t.Fatalf("expected unconditional add, got %v", got)
	}
}

func TestComputeActionCloudSource(t *testing.T) {
	mapping := types.GroupMapping{DirectoryGroup: "HR-Managers", CloudGroup: "hr-managers-grp"}

	tests := []struct {
		name        string
		source      []string
		destination []string
		want        types.SyncAction
	}{
		{
			name:        "member in cloud but not directory emits add",
			source:      []string{"hr-managers-grp"},
			destination: []string{"All-Staff"},
			want:        types.AddAction("jdoe", "HR-Managers"),
		},
		{
			name:        "member in directory but not cloud emits remove",
			source:      nil,
			destination: []string{"HR-Managers"},
			want:        types.RemoveAction("jdoe", "HR-Managers"),
		},
		{
			name:        "already consistent member emits noop",
			source:      []string{"hr-managers-grp"},
			destination: []string{"HR-Managers"},
			want:        types.NoOp(),
		},
		{
			name:        "consistently absent emits noop",
			source:      nil,
			destination: nil,
			want:        types.NoOp(),
		},
		{
			name:        "case differences do not defeat the change gate",
			source:      []string{"HR-MANAGERS-GRP"},
			destination: []string{"hr-managers"},
			want:        types.NoOp(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeAction("jdoe", mapping, NewMembershipSet(tt.source), NewMembershipSet(tt.destination), types.CloudSourceOfTruth)
			if got != tt.want {
				t.Fatalf("ComputeAction() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Running the cloud-source diff twice with no state change yields only
// noops the second time.
func TestComputeActionCloudSourceIdempotent(t *testing.T) {
	mapping := types.GroupMapping{DirectoryGroup: "Eng", CloudGroup: "eng-grp"}

	source := NewMembershipSet([]string{"eng-grp"})
	destination := NewMembershipSet(nil)

	first := ComputeAction("asmith", mapping, source, destination, types.CloudSourceOfTruth)
	if first != types.AddAction("asmith", "Eng") {
		t.Fatalf("first pass = %v, want add", first)
	}

	// Simulate the applied add.
	destination = NewMembershipSet([]string{"Eng"})

	second := ComputeAction("asmith", mapping, source, destination, types.CloudSourceOfTruth)
	if !second.IsNoOp() {
		t.Fatalf("second pass = %v, want noop", second)
	}
}

func TestMembershipSetHas(t *testing.T) {
	s := NewMembershipSet([]string{"HR-Managers", "eng"})

	if !s.Has("hr-managers") {
		t.Error("expected case-insensitive hit for hr-managers")
	}
	if !s.Has("ENG") {
		t.Error("expected case-insensitive hit for ENG")
	}
	if s.Has("finance") {
		t.Error("unexpected hit for finance")
	}
}
