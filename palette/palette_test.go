package palette_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcodigos/owid-grapher/palette"
)

// TestLeastUsed_SpecExamples pins the two canonical examples: the unused
// color wins, and with uneven usage the least-used color wins.
func TestLeastUsed_SpecExamples(t *testing.T) {
	got, err := palette.LeastUsed([]string{"red", "green"}, []string{"red"})
	require.NoError(t, err)
	assert.Equal(t, "green", got)

	got, err = palette.LeastUsed([]string{"red", "green"}, []string{"red", "green", "green"})
	require.NoError(t, err)
	assert.Equal(t, "red", got)
}

// TestLeastUsed_TieBreak verifies ties resolve to the earliest-declared
// palette color.
func TestLeastUsed_TieBreak(t *testing.T) {
	got, err := palette.LeastUsed([]string{"blue", "red", "green"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "blue", got, "all-zero usage picks the first declared color")

	got, err = palette.LeastUsed([]string{"blue", "red", "green"}, []string{"blue", "red", "green"})
	require.NoError(t, err)
	assert.Equal(t, "blue", got, "uniform usage still picks the first declared color")
}

// TestLeastUsed_ForeignColorsIgnored verifies usage entries outside the
// palette do not influence the pick.
func TestLeastUsed_ForeignColorsIgnored(t *testing.T) {
	got, err := palette.LeastUsed([]string{"red", "green"}, []string{"magenta", "red"})
	require.NoError(t, err)
	assert.Equal(t, "green", got)
}

// TestLeastUsed_EmptyPalette verifies the sentinel.
func TestLeastUsed_EmptyPalette(t *testing.T) {
	_, err := palette.LeastUsed(nil, []string{"red"})
	assert.ErrorIs(t, err, palette.ErrEmptyPalette)
}

// TestDefault_Stable verifies the canonical palette is non-empty, free of
// duplicates, and stable across calls.
func TestDefault_Stable(t *testing.T) {
	a := palette.Default()
	require.NotEmpty(t, a)
	assert.Equal(t, a, palette.Default())

	seen := make(map[string]struct{}, len(a))
	for _, c := range a {
		_, dup := seen[c]
		assert.False(t, dup, "duplicate palette color %q", c)
		seen[c] = struct{}{}
	}
}

// TestLeastUsed_RoundRobin walks a fresh palette, feeding each pick back
// into the usage multiset, and expects palette order to repeat cyclically.
func TestLeastUsed_RoundRobin(t *testing.T) {
	colors := []string{"a", "b", "c"}
	var used []string
	want := []string{"a", "b", "c", "a", "b", "c"}
	for i, w := range want {
		got, err := palette.LeastUsed(colors, used)
		require.NoError(t, err)
		assert.Equal(t, w, got, "pick %d", i)
		used = append(used, got)
	}
}
