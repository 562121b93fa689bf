// Package http exposes the dataset and verification operations over a JSON
// API. Errors are rendered as RFC 7807 problem details.
package http
