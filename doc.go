// Package owidgrapher is the tabular data-transformation core behind the
// grapher charts: it ingests raw per-entity, per-day epidemiological records
// and derives an analysis-ready dataset — smoothed series, threshold-aligned
// series, population-normalized series, synthetic aggregate entities, stable
// column identifiers, and deterministic chart-color assignment.
//
// 🚀 What lives where?
//
//	ingest/   — raw textual records → typed rows; identity fields must parse,
//	            numeric gaps become explicit Absent cells (never zero or NaN)
//	table/    — the columnar store: rows, the append-only column registry,
//	            and derivation descriptors (Rolling, DaysSince, Scale)
//	            consumed by a single AddColumn dispatcher
//	entity/   — selectable entities: countries from the data, plus synthetic
//	            continent aggregates and the World aggregate, in pinned order
//	colspec/  — stable, collision-free column identifiers minted from the
//	            full derivation parameter tuple
//	palette/  — least-used color assignment over a fixed palette
//	explorer/ — query-parameter orchestration: scale → smooth → align column
//	            chains, idempotent across repeated identical requests
//
// ✨ Design guarantees
//
//   - Deterministic: every grouping, aggregation, and option list has a
//     pinned emission order, so positional assertions are reproducible.
//   - Absent-aware: "no data" is an explicit cell state, load-bearing for
//     rolling means and threshold alignment; NaN never leaks downstream.
//   - Pure core: no network, no disk, no rendering — hosts feed raw rows in
//     and hand the materialized table plus column specs to a chart layer.
//
// Dive into each package's doc.go for contracts, errors, and examples.
package owidgrapher
