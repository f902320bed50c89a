// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"context"
	"errors"
	"testing"
)

func TestResolveRevision_ExplicitVersion(t *testing.T) {
	registry := newMemoryRegistry()
	revision, err := ResolveRevision(context.Background(), registry, "review", "v1.0.0", "main")
	if err != nil {
		t.Fatalf("ResolveRevision: %v", err)
	}
	if revision != "review/v1.0.0" {
		t.Errorf("revision = %q, want %q", revision, "review/v1.0.0")
	}
	if calls := registry.totalCalls(); calls != 0 {
		t.Errorf("explicit version made %d registry calls, want 0", calls)
	}
}

func TestResolveRevision_SemverOrdering(t *testing.T) {
	registry := newMemoryRegistry()
	registry.tags = []string{"review/v1.9.0", "review/v2.0.0", "review/v1.10.0", "review/v1.2.0"}

	for attempt := 0; attempt < 3; attempt++ {
		revision, err := ResolveRevision(context.Background(), registry, "review", "", "main")
		if err != nil {
			t.Fatalf("ResolveRevision: %v", err)
		}
		if revision != "review/v2.0.0" {
			t.Fatalf("attempt %d: revision = %q, want review/v2.0.0", attempt, revision)
		}
	}
}

func TestResolveRevision_NumericNotLexical(t *testing.T) {
	registry := newMemoryRegistry()
	registry.tags = []string{"review/v1.9.0", "review/v1.10.0"}

	revision, _ := ResolveRevision(context.Background(), registry, "review", "", "main")
	if revision != "review/v1.10.0" {
		t.Errorf("revision = %q, want review/v1.10.0", revision)
	}
}

func TestResolveRevision_NoTagsUsesDefaultBranch(t *testing.T) {
	registry := newMemoryRegistry()
	registry.tags = []string{"other/v1.0.0", "review-extra/v3.0.0"}

	revision, err := ResolveRevision(context.Background(), registry, "review", "", "trunk")
	if err != nil {
		t.Fatalf("ResolveRevision: %v", err)
	}
	if revision != "trunk" {
		t.Errorf("revision = %q, want trunk", revision)
	}
}

func TestResolveRevision_ListingErrorUsesDefaultBranch(t *testing.T) {
	registry := newMemoryRegistry()
	registry.tagError = errors.New("connection reset")

	revision, err := ResolveRevision(context.Background(), registry, "review", "", "main")
	if revision != "main" {
		t.Errorf("revision = %q, want main", revision)
	}
	if err == nil {
		t.Error("expected the listing error to be reported")
	}
}

func TestLatestTag(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want string
	}{
		{name: "empty", tags: nil, want: ""},
		{name: "invalid versions ignored", tags: []string{"review/vnext", "review/v1.0.0", "review/latest"}, want: "review/v1.0.0"},
		{name: "prerelease below release", tags: []string{"review/v2.0.0-rc.1", "review/v1.5.0"}, want: "review/v1.5.0"},
		{name: "release above prerelease", tags: []string{"review/v2.0.0-rc.1", "review/v2.0.0"}, want: "review/v2.0.0"},
		{name: "build metadata tie-break", tags: []string{"review/v1.0.0+b", "review/v1.0.0+a"}, want: "review/v1.0.0+b"},
		{name: "build metadata tie-break reversed", tags: []string{"review/v1.0.0+a", "review/v1.0.0+b"}, want: "review/v1.0.0+b"},
		{name: "other template ignored", tags: []string{"reviewer/v9.0.0", "review/v0.1.0"}, want: "review/v0.1.0"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := LatestTag("review", test.tags); got != test.want {
				t.Errorf("LatestTag = %q, want %q", got, test.want)
			}
		})
	}
}

func TestTagVersion(t *testing.T) {
	if got := TagVersion("review", "review/v1.2.0"); got != "v1.2.0" {
		t.Errorf("TagVersion = %q, want v1.2.0", got)
	}
	if got := TagVersion("review", "style/v1.2.0"); got != "" {
		t.Errorf("TagVersion for foreign tag = %q, want empty", got)
	}
}
