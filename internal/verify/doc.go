// Package verify runs the multi-pass data-quality verification over a view of
// the canonical dataset.
//
// The engine is a pure function: given the same row subset, index map and
// configuration it always produces the same Result, and it never fails — a
// field that cannot be parsed or grouped only skips the dependent check for
// that row or group. Issues are informational; no row is ever dropped.
//
// Two passes run in order. The first pass applies per-row checks (required
// fields, amount validity, absolute-magnitude outliers, soft duplicates) and
// accumulates per-company and per-company-month amount groups. The second
// pass applies the group-aware checks: ledger-keyword sign consistency,
// per-company IQR bounds and per-month z-scores. Column issue counts are
// aggregated at the end into hot-column ratios.
//
// Note the engine's duplicate key (company code, source, ledger account,
// company name) intentionally excludes amount and month, unlike the merge key
// used by internal/unify. The merge is content-addressed; this check is a
// deliberately looser quality signal. The two must not be reconciled without
// domain confirmation, as must the asymmetric severities of the sign checks
// (revenue violations are errors, expense violations only warnings).
package verify
