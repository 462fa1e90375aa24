// Package entity derives the selectable entities of the dataset: the
// countries present in the parsed rows plus the synthetic aggregates built
// from them (one entity per continent, plus a single World entity).
//
// The entity package provides:
//
//   - Entity — a country or synthetic aggregate, with a stable code, a
//     display name, and a Synthetic flag.
//   - Lookup — the external country→continent mapping, preserving a
//     canonical continent order (first appearance in the lookup).
//   - AggregateContinents / AggregateWorld — group-and-sum over the raw
//     rows, emitting one synthetic row per (aggregate, date). Absent values
//     contribute zero to a sum, but the row still counts toward the group.
//   - Options — the ordered selectable-entity list.
//
// Every emission order is pinned so positional assertions are reproducible:
// continent rows come out continent-first (canonical lookup order) then
// date-ascending, and Options lists countries in first-seen row order,
// then continents in canonical order, then World last.
package entity
