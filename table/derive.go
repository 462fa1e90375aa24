package table

import (
	"fmt"
	"time"
)

// oneDay measures calendar-day differences; all dates are UTC midnight.
const oneDay = 24 * time.Hour

// compute implements Derivation for Rolling.
//
// Algorithm (per entity group, date-ascending):
//  1. Maintain a running sum and count of the known source values inside
//     the trailing window [max(0,i-Window+1)..i].
//  2. At each position, emit sum/count when count > 0, Absent otherwise.
//
// The window is variable-length at the start of each series (no leading
// absent values purely due to short history) and never crosses into another
// entity's rows.
//
// Complexity: O(R log R) for grouping, O(R) for the sweep.
func (d Rolling) compute(t *Table) ([]Cell, error) {
	if d.Window < 1 {
		return nil, fmt.Errorf("Rolling: window %d: %w", d.Window, ErrBadDerivation)
	}
	if !t.hasColumnLocked(d.Source) {
		return nil, &MissingColumnError{Slug: d.Source}
	}

	out := make([]Cell, len(t.rows))
	for _, group := range t.groupByEntity() {
		var sum float64
		var count int
		for i, ri := range group {
			// Slide: drop the value leaving the window, if any.
			if i >= d.Window {
				if v, ok := t.rows[group[i-d.Window]].Cell(d.Source).Float(); ok {
					sum -= v
					count--
				}
			}
			// Admit the incoming value.
			if v, ok := t.rows[ri].Cell(d.Source).Float(); ok {
				sum += v
				count++
			}
			if count > 0 {
				out[ri] = Value(sum / float64(count))
			} else {
				out[ri] = Absent()
			}
		}
	}

	return out, nil
}

// compute implements Derivation for DaysSince.
//
// Per entity group (date-ascending): find the first row whose source value
// is known and ≥ Threshold. Rows before it get Absent; the row itself gets
// 0; later rows get the calendar-day distance from day 0, so a gap in the
// series advances the index by the number of days skipped. If no row
// qualifies, or fewer than MinDays rows follow the day-0 row, the entity's
// column stays Absent throughout.
//
// Complexity: O(R log R) for grouping, O(R) for the sweep.
func (d DaysSince) compute(t *Table) ([]Cell, error) {
	if d.MinDays < 0 {
		return nil, fmt.Errorf("DaysSince: minDays %d: %w", d.MinDays, ErrBadDerivation)
	}
	if !t.hasColumnLocked(d.Source) {
		return nil, &MissingColumnError{Slug: d.Source}
	}

	out := make([]Cell, len(t.rows))
	for i := range out {
		out[i] = Absent()
	}

	for _, group := range t.groupByEntity() {
		first := -1
		for i, ri := range group {
			if v, ok := t.rows[ri].Cell(d.Source).Float(); ok && v >= d.Threshold {
				first = i

				break
			}
		}
		if first < 0 {
			continue // never reached the threshold
		}
		if len(group)-first-1 < d.MinDays {
			continue // not enough post-threshold history
		}

		day0 := t.rows[group[first]].Date
		for _, ri := range group[first:] {
			days := t.rows[ri].Date.Sub(day0) / oneDay
			out[ri] = Value(float64(days))
		}
	}

	return out, nil
}

// compute implements Derivation for Scale.
//
// Each row's value is source × Factors[entity code]. Rows whose entity has
// no factor, and rows with an absent source value, yield Absent.
//
// Complexity: O(R).
func (d Scale) compute(t *Table) ([]Cell, error) {
	if !t.hasColumnLocked(d.Source) {
		return nil, &MissingColumnError{Slug: d.Source}
	}

	out := make([]Cell, len(t.rows))
	for i, r := range t.rows {
		factor, ok := d.Factors[r.Code]
		if !ok {
			out[i] = Absent()

			continue
		}
		if v, known := r.Cell(d.Source).Float(); known {
			out[i] = Value(v * factor)
		} else {
			out[i] = Absent()
		}
	}

	return out, nil
}
