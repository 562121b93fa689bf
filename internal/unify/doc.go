// Package unify folds heterogeneous ledger extracts into one deduplicated
// canonical dataset.
//
// Source extracts name the same concepts differently (SAP exports, manual
// spreadsheets, per-country locales), so resolution of company code, company
// name, ledger account, month and amount runs over ordered candidate-key
// tables rather than per-source code paths. Records from different batches
// that share the identity key (company code, ledger account, month, amount
// rounded to two decimals) are merged into a single canonical row that keeps
// track of every source that contributed it.
//
// Everything in this package is a pure function over in-memory values; file
// reading lives in internal/ingest.
package unify
