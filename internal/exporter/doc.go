// Package exporter serializes the canonical dataset and verification issues
// to delimited text for downstream consumers.
package exporter
