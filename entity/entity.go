// Package entity defines the Entity and Lookup types and sentinel errors
// for synthetic-aggregate construction.
package entity

import (
	"errors"
	"sort"
	"time"

	"github.com/medcodigos/owid-grapher/table"
)

// WorldName is the code and display name of the synthetic World aggregate.
// Synthetic entities use their display name as their stable code.
const WorldName = "World"

// Sentinel errors for entity operations.
var (
	// ErrNilLookup indicates a nil country→continent lookup was supplied
	// to an operation that requires one.
	ErrNilLookup = errors.New("entity: lookup is nil")
)

// Entity is a country or a synthetic aggregate (continent, World).
type Entity struct {
	// Code is the stable entity code. Countries keep their raw code;
	// synthetic aggregates use their display name.
	Code string

	// Name is the display name.
	Name string

	// Synthetic marks aggregates derived by this package rather than
	// present in the raw input.
	Synthetic bool
}

// Lookup is the external country→continent mapping. It remembers the order
// in which continents first appear, and that order is the canonical
// continent order used by every aggregation and option list.
type Lookup struct {
	byCountry  map[string]string
	continents []string
}

// NewLookup builds a Lookup from (country code, continent name) pairs.
// Later pairs for the same country overwrite earlier ones; continent order
// is fixed by first appearance.
func NewLookup(pairs [][2]string) *Lookup {
	l := &Lookup{byCountry: make(map[string]string, len(pairs))}
	seen := make(map[string]struct{})
	for _, p := range pairs {
		country, continent := p[0], p[1]
		l.byCountry[country] = continent
		if _, ok := seen[continent]; !ok {
			seen[continent] = struct{}{}
			l.continents = append(l.continents, continent)
		}
	}

	return l
}

// Continent returns the continent for a country code.
func (l *Lookup) Continent(code string) (string, bool) {
	c, ok := l.byCountry[code]

	return c, ok
}

// Continents returns the canonical continent order.
func (l *Lookup) Continents() []string {
	return append([]string(nil), l.continents...)
}

// AggregateContinents groups rows by (continent, date) through lookup and
// emits one synthetic row per group, summing every numeric column. Absent
// values contribute zero, but a row of all-absent data still counts toward
// its group, so a continent with only unknown readings on a date yields an
// explicit zero, not a missing row.
//
// Countries absent from the lookup are skipped. Emission order is pinned:
// continents in canonical lookup order, dates ascending within a continent.
//
// Complexity: O(R·C + G log G) over R input rows, C columns, G groups.
func AggregateContinents(rows []table.Row, lookup *Lookup) ([]table.Row, error) {
	if lookup == nil {
		return nil, ErrNilLookup
	}

	groups := make(map[string]map[time.Time]*sums)
	for _, r := range rows {
		continent, ok := lookup.Continent(r.Code)
		if !ok {
			continue
		}
		byDate, ok := groups[continent]
		if !ok {
			byDate = make(map[time.Time]*sums)
			groups[continent] = byDate
		}
		byDate[r.Date] = byDate[r.Date].add(r.Cells)
	}

	var out []table.Row
	for _, continent := range lookup.continents {
		byDate, ok := groups[continent]
		if !ok {
			continue
		}
		dates := make([]time.Time, 0, len(byDate))
		for d := range byDate {
			dates = append(dates, d)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
		for _, d := range dates {
			out = append(out, byDate[d].row(continent, d))
		}
	}

	return out, nil
}

// AggregateWorld sums every country's numeric columns per date into a single
// synthetic World entity, with the same summation semantics as
// AggregateContinents. Rows come out date-ascending.
func AggregateWorld(rows []table.Row) []table.Row {
	byDate := make(map[time.Time]*sums)
	for _, r := range rows {
		byDate[r.Date] = byDate[r.Date].add(r.Cells)
	}

	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := make([]table.Row, 0, len(dates))
	for _, d := range dates {
		out = append(out, byDate[d].row(WorldName, d))
	}

	return out
}

// Options returns the ordered selectable-entity list: countries in
// first-seen row order, then one synthetic entity per continent actually
// present (canonical lookup order), then World last. The composite order is
// part of the public contract — callers rely on fixed positional indices.
func Options(rows []table.Row, lookup *Lookup) ([]Entity, error) {
	if lookup == nil {
		return nil, ErrNilLookup
	}

	var out []Entity
	seenCountry := make(map[string]struct{})
	seenContinent := make(map[string]struct{})
	for _, r := range rows {
		if _, ok := seenCountry[r.Code]; ok {
			continue
		}
		seenCountry[r.Code] = struct{}{}
		out = append(out, Entity{Code: r.Code, Name: r.Name})
		if c, ok := lookup.Continent(r.Code); ok {
			seenContinent[c] = struct{}{}
		}
	}
	for _, c := range lookup.continents {
		if _, ok := seenContinent[c]; !ok {
			continue
		}
		out = append(out, Entity{Code: c, Name: c, Synthetic: true})
	}
	out = append(out, Entity{Code: WorldName, Name: WorldName, Synthetic: true})

	return out, nil
}

// sums accumulates per-column totals for one (aggregate, date) group.
type sums struct {
	totals map[string]float64
}

// add folds one row's cells into the accumulator, treating absent as zero.
// It returns the accumulator so a nil map entry can be grown in place.
func (s *sums) add(cells map[string]table.Cell) *sums {
	if s == nil {
		s = &sums{totals: make(map[string]float64)}
	}
	for slug, c := range cells {
		v, _ := c.Float() // absent reads as 0 and still registers the slug
		s.totals[slug] += v
	}

	return s
}

// row materializes the group as a synthetic table.Row.
func (s *sums) row(name string, date time.Time) table.Row {
	cells := make(map[string]table.Cell, len(s.totals))
	for slug, v := range s.totals {
		cells[slug] = table.Value(v)
	}

	return table.Row{Code: name, Name: name, Date: date, Cells: cells}
}
