// Package table defines the Cell, Row, and Table types, derivation
// descriptors, and sentinel errors for the columnar store.
package table

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Sentinel errors for table operations.
var (
	// ErrMissingColumn indicates a derivation referenced a source column
	// that is not registered in the Table.
	ErrMissingColumn = errors.New("table: source column not found")

	// ErrColumnExists indicates an attempt to add a column under a slug
	// that is already registered. Columns are append-only and never
	// overwritten; callers gate re-materialization on HasColumn.
	ErrColumnExists = errors.New("table: column already exists")

	// ErrBadDerivation indicates a structurally invalid descriptor:
	// an empty target slug, a nil descriptor, or a rolling window < 1.
	ErrBadDerivation = errors.New("table: invalid derivation descriptor")
)

// MissingColumnError reports which source slug a derivation referenced but
// the Table does not carry. It matches ErrMissingColumn under errors.Is.
type MissingColumnError struct {
	Slug string // the missing source column slug
}

// Error implements the error interface.
func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("table: source column %q not found", e.Slug)
}

// Unwrap lets errors.Is(err, ErrMissingColumn) succeed on wrapped values.
func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }

// Cell is an explicit optional numeric value: either a finite float64 or
// Absent. Absent is distinct from zero and is never represented as NaN.
// The zero Cell is Absent.
type Cell struct {
	val   float64
	known bool
}

// Value returns a Cell holding v. Non-finite inputs (NaN, ±Inf) are
// normalized to Absent so that no downstream arithmetic ever sees them.
func Value(v float64) Cell {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Cell{}
	}

	return Cell{val: v, known: true}
}

// Absent returns the explicit "no data" Cell.
func Absent() Cell { return Cell{} }

// IsAbsent reports whether the cell carries no data.
func (c Cell) IsAbsent() bool { return !c.known }

// Float returns the cell's value and whether it is known.
// For an Absent cell it returns (0, false); the 0 is not data.
func (c Cell) Float() (float64, bool) { return c.val, c.known }

// Row is one entity's record for one calendar day. Code, Name, and Date are
// identity fields fixed at parse time; Cells maps column slugs to values and
// grows only through Table.AddColumn.
type Row struct {
	// Code is the entity's stable code (ISO code for countries, the
	// display name for synthetic aggregates).
	Code string

	// Name is the entity's display name.
	Name string

	// Date is the record's calendar day at UTC midnight.
	Date time.Time

	// Cells holds the numeric columns by slug. A slug registered on the
	// Table but missing from this map reads as Absent.
	Cells map[string]Cell
}

// Cell returns the named cell, or Absent when the row carries no value
// under that slug.
func (r Row) Cell(slug string) Cell {
	if c, ok := r.Cells[slug]; ok {
		return c
	}

	return Absent()
}

// Derivation describes how to compute one new column from existing ones.
// It is a sealed descriptor set — Rolling, DaysSince, and Scale — consumed
// by Table.AddColumn, so no arbitrary executable callbacks are embedded in
// column definitions.
type Derivation interface {
	// compute produces one Cell per row index. Implementations must not
	// mutate the Table; AddColumn commits the result atomically.
	compute(t *Table) ([]Cell, error)
}

// Rolling derives a trailing-window mean of Source, per entity, in date
// order. The window at position i covers positions [max(0,i-Window+1)..i]
// of the entity's own series; absent source values are excluded from both
// numerator and denominator, and a window with no known values yields
// Absent. Windows never cross entity boundaries.
type Rolling struct {
	Source string // source column slug
	Window int    // trailing window length, ≥ 1
}

// DaysSince re-indexes Source per entity to "days since the value first
// reached Threshold": absent before that day, 0 on it, then +1 per calendar
// day. An entity that never reaches Threshold, or has fewer than MinDays
// rows after its day-0 row, gets Absent on all of its rows.
type DaysSince struct {
	Source    string  // source column slug
	Threshold float64 // alignment threshold (value must be ≥ Threshold)
	MinDays   int     // minimum number of rows required after day 0
}

// Scale multiplies Source by a per-entity constant (population-derived in
// practice: 1/pop, 1000/pop, 1e6/pop). Entities with no factor in the map
// yield Absent, as do absent source values.
type Scale struct {
	Source  string             // source column slug
	Factors map[string]float64 // entity code → multiplier
}
