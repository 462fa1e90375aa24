// Package table implements the in-memory columnar store at the heart of the
// data-transformation core: parsed per-entity, per-day rows plus an ordered
// registry of column slugs, extended incrementally by derivation descriptors.
//
// The table package provides:
//
//   - Cell — an explicit optional numeric value. A cell is either a finite
//     float64 or Absent; zero and NaN are never used to signal "no data".
//   - Row — one entity on one calendar day, with named numeric cells.
//   - Table — the ordered row collection and append-only column registry.
//   - Derivation descriptors (Rolling, DaysSince, Scale) consumed by a single
//     AddColumn dispatcher, replacing arbitrary per-row callbacks.
//
// Grouped derivations (rolling means, threshold alignment) always regroup by
// entity in first-seen order and re-sort each group by date on every call;
// there is no cached sort to go stale. Windows and day counters never cross
// entity boundaries.
//
// The core is single-threaded by contract, but column addition is guarded by
// an internal lock so that a concurrent host never interleaves partial column
// writes. Readers should still observe a Table only after all columns for a
// request have been materialized.
package table
