package domain

// Severity classifies a verification issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one data-quality finding attached to a row. Column names the
// canonical column the finding is about; Message is a human-readable
// description shown as-is by consumers.
type Issue struct {
	Column   string   `json:"column"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// ColumnStat aggregates the issues raised against a single column across the
// verified row view.
type ColumnStat struct {
	Issues int     `json:"issues"`
	Ratio  float64 `json:"ratio"`
}

// Result is the outcome of one verification run over a row view. Issues are
// keyed by the row's index in the full canonical dataset, not its position in
// the (possibly filtered and sorted) view, so they stay stable across
// pagination and reordering done by callers.
type Result struct {
	ByIndex        map[int][]Issue `json:"by_index"`
	RowsWithIssues int             `json:"rows_with_issues"`

	Errors              int `json:"errors"`
	Warnings            int `json:"warnings"`
	MissingRequired     int `json:"missing_required"`
	Duplicates          int `json:"duplicates"`
	Outliers            int `json:"outliers"`
	InvalidNumbers      int `json:"invalid_numbers"`
	CrossField          int `json:"cross_field"`
	MonthlyAnomalies    int `json:"monthly_anomalies"`
	CompanyIQRAnomalies int `json:"company_iqr_anomalies"`

	ColumnStats map[string]ColumnStat `json:"column_stats"`
	HotColumns  []string              `json:"hot_columns"`
}
