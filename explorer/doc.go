// Package explorer orchestrates derived-column materialization from a query
// parameter set.
//
// Given Params — metric, frequency, population scaling, smoothing window,
// threshold alignment — Materialize builds the requested column chain on the
// Table: source metric column, then optional per-entity population scaling,
// then optional rolling smoothing, then optional threshold alignment. Every
// materialized column is minted through colspec, so each distinct parameter
// combination maps to exactly one slug.
//
// Materialization is idempotent: a column whose slug is already registered
// is not recomputed, and re-invoking with identical Params returns the same
// specs without touching the Table. The Explorer keeps a slug→Spec registry;
// the same slug arriving with a different derivation tuple is structurally
// impossible given colspec's injective encoding, so observing one is treated
// as an invariant violation and panics.
package explorer
