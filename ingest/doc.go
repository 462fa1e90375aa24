// Package ingest converts raw textual records into typed table rows.
//
// A raw record is a field-name → raw-text mapping as produced by an external
// CSV-like source. Identity fields (entity code, entity name, date) must
// parse or the row is rejected with a MalformedRowError naming the offending
// field and the row's position. Every other field is treated as a numeric
// metric: values that fail to parse as a finite number become explicit
// Absent cells — never zero, and never NaN.
//
// Ingestion is partial-failure by design: ParseRows reports bad rows and
// keeps going, so numeric gaps and the occasional malformed line never abort
// a load.
package ingest
