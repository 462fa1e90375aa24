// Package ingest defines the raw-record field names, sentinel errors, and
// the ParseRow/ParseRows entry points.
package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/medcodigos/owid-grapher/table"
)

// Identity field names of a raw record. Any field not listed here is
// parsed as a numeric metric column.
const (
	// FieldCode is the entity's stable code (e.g. ISO country code).
	FieldCode = "iso_code"
	// FieldName is the entity's display name.
	FieldName = "location"
	// FieldDate is the record's calendar day.
	FieldDate = "date"
)

// Well-known metric column slugs carried by the upstream dataset. Raw rows
// ship both cumulative totals and daily deltas, so frequency selection is a
// matter of picking the source column, not differencing.
const (
	ColTotalCases  = "total_cases"
	ColNewCases    = "new_cases"
	ColTotalDeaths = "total_deaths"
	ColNewDeaths   = "new_deaths"
	ColTotalTests  = "total_tests"
	ColNewTests    = "new_tests"
	ColPopulation  = "population"
)

// DateLayout is the calendar-day format of FieldDate.
const DateLayout = "2006-01-02"

// ErrMalformedRow indicates a raw record whose identity fields could not be
// parsed. Match with errors.Is; inspect details via errors.As on
// *MalformedRowError.
var ErrMalformedRow = errors.New("ingest: malformed raw row")

// MalformedRowError reports the rejected row's position in the input stream
// and the identity field that failed to parse.
type MalformedRowError struct {
	Pos    int    // zero-based position of the row in the input
	Field  string // offending identity field name
	Reason string // short human-readable cause
}

// Error implements the error interface.
func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("ingest: row %d: field %q: %s", e.Pos, e.Field, e.Reason)
}

// Unwrap lets errors.Is(err, ErrMalformedRow) succeed on wrapped values.
func (e *MalformedRowError) Unwrap() error { return ErrMalformedRow }

// ParseRow converts one raw textual record into a typed table.Row.
//
// Identity fields must be present and valid: FieldCode and FieldName must
// be non-empty, FieldDate must parse under DateLayout. Otherwise the row is
// rejected with a *MalformedRowError carrying pos.
//
// Every remaining field is parsed as float64. Empty text, unparsable text,
// and non-finite values all become Absent cells; ParseRow never invents a
// zero and never lets NaN leak downstream.
//
// Complexity: O(F) over the record's F fields. No side effects.
func ParseRow(raw map[string]string, pos int) (table.Row, error) {
	code := raw[FieldCode]
	if code == "" {
		return table.Row{}, &MalformedRowError{Pos: pos, Field: FieldCode, Reason: "empty entity code"}
	}
	name := raw[FieldName]
	if name == "" {
		return table.Row{}, &MalformedRowError{Pos: pos, Field: FieldName, Reason: "empty entity name"}
	}
	date, err := time.ParseInLocation(DateLayout, raw[FieldDate], time.UTC)
	if err != nil {
		return table.Row{}, &MalformedRowError{Pos: pos, Field: FieldDate, Reason: "invalid calendar day"}
	}

	row := table.Row{
		Code:  code,
		Name:  name,
		Date:  date,
		Cells: make(map[string]table.Cell),
	}
	for field, text := range raw {
		if field == FieldCode || field == FieldName || field == FieldDate {
			continue
		}
		row.Cells[field] = parseCell(text)
	}

	return row, nil
}

// ParseRows converts a batch of raw records, skipping malformed rows.
// It returns the successfully parsed rows in input order, plus one
// *MalformedRowError per rejected row. Numeric gaps are not errors.
func ParseRows(raws []map[string]string) ([]table.Row, []error) {
	rows := make([]table.Row, 0, len(raws))
	var errs []error
	for pos, raw := range raws {
		row, err := ParseRow(raw, pos)
		if err != nil {
			errs = append(errs, err)

			continue
		}
		rows = append(rows, row)
	}

	return rows, errs
}

// parseCell converts one numeric field's text to a Cell. table.Value
// normalizes non-finite parses to Absent.
func parseCell(text string) table.Cell {
	if text == "" {
		return table.Absent()
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return table.Absent()
	}

	return table.Value(v)
}
