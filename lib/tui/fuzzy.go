// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"sort"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult is the outcome of matching one text against a pattern.
// Score is zero when the text does not match. Positions are the rune
// offsets of matched characters in ascending order.
type FuzzyResult struct {
	Score     int
	Positions []int
}

var initAlgorithm sync.Once

// NewSlab allocates scratch space for repeated FuzzyMatch calls. A nil
// slab is valid but allocates on every call.
func NewSlab() *util.Slab {
	return util.MakeSlab(100*1024, 2048)
}

// FuzzyMatch scores text against pattern using fzf's V2 algorithm.
// Matching is case-insensitive: both sides are lowercased.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}
	initAlgorithm.Do(func() { algo.Init("default") })

	lowered := []rune(strings.ToLower(string(pattern)))
	chars := util.ToChars([]byte(strings.ToLower(text)))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Start < 0 || result.Score <= 0 {
		return FuzzyResult{}
	}

	matched := FuzzyResult{Score: int(result.Score)}
	if positions != nil {
		matched.Positions = append([]int(nil), (*positions)...)
		sort.Ints(matched.Positions)
	}
	return matched
}

// Candidate is one entry offered by the picker.
type Candidate struct {
	Name        string
	Description string
	Version     string
}

// RankedCandidate pairs a candidate with its match against the current
// query. NamePositions index runes of Name to highlight.
type RankedCandidate struct {
	Candidate
	Score         int
	NamePositions []int
}

// Rank filters and orders candidates by fuzzy score against query. The
// name and description are matched together, so a query can hit either.
// An empty query keeps every candidate in its original order. Ties keep
// the original order.
func Rank(candidates []Candidate, query string, slab *util.Slab) []RankedCandidate {
	pattern := []rune(strings.TrimSpace(query))
	ranked := make([]RankedCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		if len(pattern) == 0 {
			ranked = append(ranked, RankedCandidate{Candidate: candidate})
			continue
		}

		nameLength := len([]rune(candidate.Name))
		result := FuzzyMatch(candidate.Name+" "+candidate.Description, pattern, slab)
		if result.Score <= 0 {
			continue
		}

		var namePositions []int
		for _, position := range result.Positions {
			if position < nameLength {
				namePositions = append(namePositions, position)
			}
		}
		ranked = append(ranked, RankedCandidate{
			Candidate:     candidate,
			Score:         result.Score,
			NamePositions: namePositions,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
