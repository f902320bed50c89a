// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"reflect"
	"testing"
)

func TestFuzzyMatchBasic(t *testing.T) {
	result := FuzzyMatch("code-review", []rune("review"), nil)
	if result.Score <= 0 {
		t.Fatal("expected positive score for substring match")
	}
	if !reflect.DeepEqual(result.Positions, []int{5, 6, 7, 8, 9, 10}) {
		t.Errorf("Positions = %v, want 5..10", result.Positions)
	}
}

func TestFuzzyMatchNonContiguous(t *testing.T) {
	result := FuzzyMatch("security-audit", []rune("sad"), nil)
	if result.Score <= 0 {
		t.Fatal("expected positive score for non-contiguous fuzzy match")
	}
	for index := 1; index < len(result.Positions); index++ {
		if result.Positions[index] <= result.Positions[index-1] {
			t.Fatalf("positions not ascending: %v", result.Positions)
		}
	}
}

func TestFuzzyMatchNoMatch(t *testing.T) {
	result := FuzzyMatch("code-review", []rune("xyz"), nil)
	if result.Score != 0 || len(result.Positions) != 0 {
		t.Errorf("expected empty result for no match, got %+v", result)
	}
}

func TestFuzzyMatchCaseInsensitive(t *testing.T) {
	result := FuzzyMatch("Code Review", []rune("REV"), NewSlab())
	if result.Score <= 0 {
		t.Fatalf("expected case-insensitive match, got score=%d", result.Score)
	}
}

func TestFuzzyMatchEmptyPattern(t *testing.T) {
	result := FuzzyMatch("anything", []rune{}, nil)
	if result.Score != 0 {
		t.Errorf("expected zero score for empty pattern, got %d", result.Score)
	}
}

func testCandidates() []Candidate {
	return []Candidate{
		{Name: "base", Description: "Shared conventions"},
		{Name: "code-review", Description: "Review pull requests", Version: "v1.2.0"},
		{Name: "release", Description: "Cut a release"},
		{Name: "security", Description: "Threat modelling and review checklists"},
	}
}

func TestRankEmptyQueryKeepsOrder(t *testing.T) {
	ranked := Rank(testCandidates(), "  ", nil)
	if len(ranked) != 4 {
		t.Fatalf("len = %d, want 4", len(ranked))
	}
	for index, candidate := range ranked {
		if candidate.Name != testCandidates()[index].Name {
			t.Errorf("ranked[%d] = %q, want %q", index, candidate.Name, testCandidates()[index].Name)
		}
		if candidate.Score != 0 {
			t.Errorf("ranked[%d].Score = %d, want 0", index, candidate.Score)
		}
	}
}

func TestRankNameMatchFirst(t *testing.T) {
	ranked := Rank(testCandidates(), "rel", NewSlab())
	if len(ranked) == 0 {
		t.Fatal("expected matches for rel")
	}
	if ranked[0].Name != "release" {
		t.Errorf("best match = %q, want release", ranked[0].Name)
	}
	if !reflect.DeepEqual(ranked[0].NamePositions, []int{0, 1, 2}) {
		t.Errorf("NamePositions = %v, want [0 1 2]", ranked[0].NamePositions)
	}
	for _, candidate := range ranked {
		if candidate.Name == "base" {
			t.Error("base should not match rel")
		}
	}
}

func TestRankDescriptionMatch(t *testing.T) {
	ranked := Rank(testCandidates(), "threat", NewSlab())
	if len(ranked) != 1 || ranked[0].Name != "security" {
		t.Fatalf("matches = %+v, want only security", ranked)
	}
	if len(ranked[0].NamePositions) != 0 {
		t.Errorf("description-only match highlighted name positions %v", ranked[0].NamePositions)
	}
}
