// Package palette assigns chart-series colors from a fixed palette.
//
// Colors are abstract identifiers — the package never touches pixels. The
// single operation, LeastUsed, picks the palette color with the fewest
// occurrences among the colors currently in use, breaking ties by palette
// order (earliest-declared wins). It is a pure function: the caller supplies
// the usage multiset explicitly and owns all state.
package palette

import "errors"

// ErrEmptyPalette indicates LeastUsed was called with no colors to pick from.
var ErrEmptyPalette = errors.New("palette: palette must contain at least one color")

// Default returns the canonical chart palette, in declaration order.
// Callers may pass any palette to LeastUsed; this is the one charts share.
func Default() []string {
	return []string{
		"#3360a9",
		"#ca2628",
		"#34983f",
		"#ed6c2d",
		"#7d54a6",
		"#a85a4a",
		"#da6bac",
		"#e6332e",
		"#f6a324",
		"#4f7a9c",
		"#2a939b",
		"#818282",
	}
}

// LeastUsed returns the color from colors with the fewest occurrences in
// used. Ties are broken by palette order, so the earliest-declared color
// wins. Colors in used that are not part of the palette are ignored.
//
// Complexity: O(len(colors) + len(used)) time and space.
func LeastUsed(colors, used []string) (string, error) {
	if len(colors) == 0 {
		return "", ErrEmptyPalette
	}

	counts := make(map[string]int, len(colors))
	for _, c := range used {
		counts[c]++
	}

	best := colors[0]
	bestCount := counts[best]
	for _, c := range colors[1:] {
		if counts[c] < bestCount {
			best = c
			bestCount = counts[c]
		}
	}

	return best, nil
}
