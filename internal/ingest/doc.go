// Package ingest reads ledger extracts from CSV and Excel files into raw
// batches for unification.
//
// This is the upstream boundary of the core: files in, key-value rows out.
// Malformed files fail here with an error; everything past this package works
// on well-formed raw records and reports problems as data instead of failing.
package ingest
