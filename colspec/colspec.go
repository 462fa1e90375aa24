// Package colspec mints stable, collision-free identifiers and display
// metadata for derived columns.
//
// A column's slug is a pure deterministic function of its full derivation
// tuple: metric, frequency, scaling mode, smoothing window, alignment flag,
// alignment threshold, and minimum post-threshold days. Every field is
// always encoded, in fixed order, with unambiguous per-field tokens, so the
// encoding is injective: varying any single parameter changes the slug, and
// calling Build twice with the same tuple yields byte-identical slugs —
// the referential stability downstream caches rely on.
package colspec

import (
	"fmt"
	"strconv"
	"strings"
)

// Metric identifies the source epidemiological series.
type Metric string

// Recognized metrics.
const (
	MetricCases  Metric = "cases"
	MetricDeaths Metric = "deaths"
	MetricTests  Metric = "tests"
)

// Frequency selects the cumulative totals or the daily deltas of a metric.
type Frequency string

// Recognized frequencies.
const (
	FreqCumulative Frequency = "cumulative"
	FreqDaily      Frequency = "daily"
)

// ScaleMode selects the population normalization applied to a column.
type ScaleMode int

// Scaling modes, from raw counts to per-million normalization.
const (
	// ScaleAbsolute leaves values as raw counts.
	ScaleAbsolute ScaleMode = iota
	// ScalePerCapita divides by the entity's population.
	ScalePerCapita
	// ScalePerThousand scales to events per 1,000 people.
	ScalePerThousand
	// ScalePerMillion scales to events per 1,000,000 people.
	ScalePerMillion
)

// scaleToken returns the slug token for a ScaleMode. Unknown modes get a
// distinct numeric token so injectivity survives future extension.
func (m ScaleMode) scaleToken() string {
	switch m {
	case ScaleAbsolute:
		return "abs"
	case ScalePerCapita:
		return "percapita"
	case ScalePerThousand:
		return "perthousand"
	case ScalePerMillion:
		return "permillion"
	default:
		return "scale" + strconv.Itoa(int(m))
	}
}

// String returns the human-readable name of the scaling mode.
func (m ScaleMode) String() string {
	switch m {
	case ScaleAbsolute:
		return "absolute"
	case ScalePerCapita:
		return "per capita"
	case ScalePerThousand:
		return "per thousand"
	case ScalePerMillion:
		return "per million"
	default:
		return "scale(" + strconv.Itoa(int(m)) + ")"
	}
}

// Spec describes one derived column: its stable identifier, display title,
// and the full derivation tuple it was minted from.
type Spec struct {
	Slug      string    // stable identifier, pure function of the tuple
	Title     string    // human-readable column title
	Metric    Metric    // source metric
	Frequency Frequency // cumulative or daily source series
	Scale     ScaleMode // population normalization
	Smoothing int       // rolling-average window; ≤ 1 means unsmoothed
	Aligned   bool      // threshold alignment applied
	Threshold float64   // alignment threshold (meaningful when Aligned)
	MinDays   int       // minimum post-threshold samples (when Aligned)
}

// Build mints the Spec for a derivation tuple. It is a pure encoding with
// no validation: two distinct tuples always produce distinct slugs, and the
// same tuple always reproduces the same slug. Parameter validation belongs
// to the orchestration layer.
func Build(m Metric, f Frequency, sc ScaleMode, smoothing int, aligned bool, threshold float64, minDays int) Spec {
	alignTok := "plain"
	if aligned {
		alignTok = "aligned"
	}
	slug := strings.Join([]string{
		string(m),
		string(f),
		sc.scaleToken(),
		"s" + strconv.Itoa(smoothing),
		alignTok,
		"t" + strconv.FormatFloat(threshold, 'g', -1, 64),
		"m" + strconv.Itoa(minDays),
	}, "-")

	return Spec{
		Slug:      slug,
		Title:     title(m, f, sc, smoothing, aligned, threshold),
		Metric:    m,
		Frequency: f,
		Scale:     sc,
		Smoothing: smoothing,
		Aligned:   aligned,
		Threshold: threshold,
		MinDays:   minDays,
	}
}

// title assembles the display name from the same tuple the slug encodes.
func title(m Metric, f Frequency, sc ScaleMode, smoothing int, aligned bool, threshold float64) string {
	var b strings.Builder
	switch f {
	case FreqDaily:
		b.WriteString("Daily new ")
	default:
		b.WriteString("Total ")
	}
	b.WriteString(string(m))

	var qualifiers []string
	if sc != ScaleAbsolute {
		qualifiers = append(qualifiers, sc.String())
	}
	if smoothing > 1 {
		qualifiers = append(qualifiers, fmt.Sprintf("%d-day average", smoothing))
	}
	if aligned {
		qualifiers = append(qualifiers, fmt.Sprintf("days since ≥ %s",
			strconv.FormatFloat(threshold, 'g', -1, 64)))
	}
	if len(qualifiers) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(qualifiers, ", "))
		b.WriteString(")")
	}

	return b.String()
}
