package table

import (
	"fmt"
	"sort"
	"sync"
)

// Table is the ordered collection of parsed and derived rows plus the
// append-only registry of populated column slugs.
//
// The Table exclusively owns its rows: New copies the input slice and
// Rows returns deep snapshots, so callers can never mutate cells behind
// the registry's back. Derivations mutate the Table only by appending
// whole columns; existing columns are never removed or overwritten.
//
// AddColumn is a critical section: the internal lock guarantees that two
// concurrent transforms computing the same slug cannot interleave partial
// writes or both pass the "is this slug present" check.
type Table struct {
	mu    sync.RWMutex
	rows  []Row
	slugs []string            // registry, in first-registration order
	seen  map[string]struct{} // registry membership
}

// New builds a Table owning a copy of rows. Column slugs already present in
// the input cells are registered in deterministic order (sorted union), so
// ColumnSlugs is reproducible regardless of map iteration order.
//
// Complexity: O(R·C) time over R rows and C populated columns.
func New(rows []Row) *Table {
	t := &Table{
		rows: make([]Row, len(rows)),
		seen: make(map[string]struct{}),
	}
	for i, r := range rows {
		cells := make(map[string]Cell, len(r.Cells))
		for slug, c := range r.Cells {
			cells[slug] = c
		}
		r.Cells = cells
		t.rows[i] = r
	}

	// Register the union of input slugs in sorted order.
	union := make(map[string]struct{})
	for _, r := range t.rows {
		for slug := range r.Cells {
			union[slug] = struct{}{}
		}
	}
	for slug := range union {
		t.slugs = append(t.slugs, slug)
	}
	sort.Strings(t.slugs)
	for _, slug := range t.slugs {
		t.seen[slug] = struct{}{}
	}

	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.rows)
}

// Rows returns a deep snapshot of the rows in table order.
func (t *Table) Rows() []Row {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Row, len(t.rows))
	for i, r := range t.rows {
		cells := make(map[string]Cell, len(r.Cells))
		for slug, c := range r.Cells {
			cells[slug] = c
		}
		r.Cells = cells
		out[i] = r
	}

	return out
}

// ColumnSlugs returns the registry of populated column slugs in
// registration order (input columns sorted, derived columns appended in
// the order they were added).
func (t *Table) ColumnSlugs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return append([]string(nil), t.slugs...)
}

// HasColumn reports whether slug is registered.
func (t *Table) HasColumn(slug string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.seen[slug]

	return ok
}

// AddColumn materializes one derived column under slug using descriptor d.
//
// The column value is computed for every row before anything is written;
// on error no partial column exists. Rows for which the derivation yields
// no data receive an explicit Absent cell, never zero and never an omitted
// key.
//
// Errors:
//   - ErrBadDerivation  — empty slug, nil descriptor, or invalid descriptor
//     parameters (e.g. Rolling.Window < 1).
//   - ErrColumnExists   — slug already registered.
//   - ErrMissingColumn  — the descriptor's source column is not registered
//     (reported as *MissingColumnError naming the slug).
//
// Complexity: dominated by the descriptor — O(R) for Rolling (running
// window sums), DaysSince, and Scale, plus O(R log R) for per-group date
// sorting.
func (t *Table) AddColumn(slug string, d Derivation) error {
	if slug == "" {
		return fmt.Errorf("AddColumn: empty target slug: %w", ErrBadDerivation)
	}
	if d == nil {
		return fmt.Errorf("AddColumn: nil descriptor: %w", ErrBadDerivation)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seen[slug]; ok {
		return fmt.Errorf("AddColumn: %q: %w", slug, ErrColumnExists)
	}

	cells, err := d.compute(t)
	if err != nil {
		return err
	}

	// Commit: one cell per row, then register the slug.
	for i := range t.rows {
		t.rows[i].Cells[slug] = cells[i]
	}
	t.slugs = append(t.slugs, slug)
	t.seen[slug] = struct{}{}

	return nil
}

// hasColumnLocked checks registry membership under an already-held lock.
func (t *Table) hasColumnLocked(slug string) bool {
	_, ok := t.seen[slug]

	return ok
}

// groupByEntity partitions row indices by entity code, groups in first-seen
// order, each group stably sorted by ascending date. It is recomputed on
// every grouped derivation so ordering can never go stale.
//
// Complexity: O(R log R) time, O(R) space.
func (t *Table) groupByEntity() [][]int {
	order := make([]string, 0)
	byCode := make(map[string][]int)
	for i, r := range t.rows {
		if _, ok := byCode[r.Code]; !ok {
			order = append(order, r.Code)
		}
		byCode[r.Code] = append(byCode[r.Code], i)
	}

	groups := make([][]int, 0, len(order))
	for _, code := range order {
		idx := byCode[code]
		sort.SliceStable(idx, func(a, b int) bool {
			return t.rows[idx[a]].Date.Before(t.rows[idx[b]].Date)
		})
		groups = append(groups, idx)
	}

	return groups
}
