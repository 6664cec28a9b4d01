package linemap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentityMapsEveryLineToItself(t *testing.T) {
	lines := []string{"a", "b", "c"}
	m := Identity(lines)
	for i := range lines {
		j, ok := m.ExactMatch(i)
		require.True(t, ok)
		require.Equal(t, i, j)
	}
}

func TestBuildFromLinesInsertAndDelete(t *testing.T) {
	old := []string{"a", "b", "c"}
	new := []string{"a", "x", "b", "c"}
	m := BuildFromLines(old, new)

	// "a" unchanged at 0->0
	j, ok := m.ExactMatch(0)
	require.True(t, ok)
	require.Equal(t, 0, j)

	// "b" shifted by the insert: old index 1 -> new index 2
	j, ok = m.ExactMatch(1)
	require.True(t, ok)
	require.Equal(t, 2, j)

	// "x" was inserted, has no old-side origin
	require.Equal(t, unmapped, m.Reverse[1])
}

func TestBuildFromLinesDeletedLineHasNoForwardMapping(t *testing.T) {
	old := []string{"a", "b", "c"}
	new := []string{"a", "c"}
	m := BuildFromLines(old, new)

	_, ok := m.ExactMatch(1) // "b" was deleted
	require.False(t, ok)

	j, ok := m.ExactMatch(2) // "c" shifted left
	require.True(t, ok)
	require.Equal(t, 1, j)
}

func TestBuildFromLinesWhitespaceDiffersCountsAsDistinctLine(t *testing.T) {
	old := []string{"foo"}
	new := []string{"foo "} // trailing space
	m := BuildFromLines(old, new)

	_, ok := m.ExactMatch(0)
	require.False(t, ok, "trailing whitespace must not be normalised away")
}

func TestBuildFromLinesTrailingBlankLineIsNotLostFromTheWalk(t *testing.T) {
	// content.Lines for "x\n\n" and "y\n\n" both yield a trailing "" element.
	// The shared blank line must map to itself even though every preceding
	// line changed.
	old := []string{"x", ""}
	new := []string{"y", ""}
	m := BuildFromLines(old, new)

	_, ok := m.ExactMatch(0) // "x" -> "y", no exact match
	require.False(t, ok)

	j, ok := m.ExactMatch(1) // shared trailing "" line
	require.True(t, ok)
	require.Equal(t, 1, j)
}

func TestRadiusNeighborRejectsUnverifiedCandidate(t *testing.T) {
	// In this contrived mapping the only neighbour of old[0]="a" within
	// the radius is old[1], which maps to new[1]="b"; RadiusNeighbor must
	// reject it since that content differs from what's being searched for.
	m := Mapping{
		OldLines: []string{"a", "b"},
		NewLines: []string{"z", "b"},
		Forward:  []int{0, 1},
		Reverse:  []int{0, 1},
	}
	_, ok := m.RadiusNeighbor(0, 2)
	require.False(t, ok)
}

func TestRadiusNeighborPrefersLowerIndexOnTie(t *testing.T) {
	// old[2]="x" was deleted. Both old[1] and old[3] map to new lines
	// whose content also equals "x" — radius 1 should verify both, and
	// pick the i-r (lower index) candidate.
	m := Mapping{
		OldLines: []string{"p", "x", "x", "x", "q"},
		NewLines: []string{"p", "x", "x", "q"},
		Forward:  []int{0, 1, unmapped, 2, 3},
		Reverse:  []int{0, 1, 2, 3},
	}
	j, ok := m.RadiusNeighbor(2, 1)
	require.True(t, ok)
	require.Equal(t, 1, j) // from old[1], the i-r candidate
}

func TestUniqueContentGivesUpOnAmbiguity(t *testing.T) {
	m := Mapping{
		OldLines: []string{"dup"},
		NewLines: []string{"dup", "dup"},
		Forward:  []int{unmapped},
		Reverse:  []int{unmapped, unmapped},
	}
	_, ok := m.UniqueContent(0)
	require.False(t, ok)
}

func TestUniqueContentGivesUpOnNoMatch(t *testing.T) {
	m := Mapping{
		OldLines: []string{"gone"},
		NewLines: []string{"other"},
		Forward:  []int{unmapped},
		Reverse:  []int{unmapped},
	}
	_, ok := m.UniqueContent(0)
	require.False(t, ok)
}

func TestUniqueContentFindsSoleMatch(t *testing.T) {
	m := Mapping{
		OldLines: []string{"moved"},
		NewLines: []string{"noise", "moved"},
		Forward:  []int{unmapped},
		Reverse:  []int{unmapped, unmapped},
	}
	j, ok := m.UniqueContent(0)
	require.True(t, ok)
	require.Equal(t, 1, j)
}

func TestLocateWithFallbacksTriesExactThenRadiusThenUnique(t *testing.T) {
	m := Mapping{
		OldLines: []string{"a", "b", "moved"},
		NewLines: []string{"noise", "moved"},
		Forward:  []int{unmapped, unmapped, unmapped},
		Reverse:  []int{unmapped, unmapped},
	}
	j, ok := m.LocateWithFallbacks(2, 1)
	require.True(t, ok)
	require.Equal(t, 1, j)
}

func TestLocateWithFallbacksGivesUpWhenNothingWorks(t *testing.T) {
	m := Mapping{
		OldLines: []string{"unique-old"},
		NewLines: []string{"unique-new"},
		Forward:  []int{unmapped},
		Reverse:  []int{unmapped},
	}
	_, ok := m.LocateWithFallbacks(0, 5)
	require.False(t, ok)
}

func TestProportionalClampsToValidRange(t *testing.T) {
	require.Equal(t, 0, Proportional(0, 10, 5))
	require.Equal(t, 4, Proportional(9, 10, 5))
	require.Equal(t, 0, Proportional(0, 0, 5))
}
