package verify

import (
	"math"
	"sort"
	"strings"

	"ledgerlens/pkg/contracts/domain"
)

// bounds is the accepted amount interval of one company.
type bounds struct {
	low  float64
	high float64
}

// groupStats holds the per-company-month aggregates for the z-score check.
type groupStats struct {
	mean  float64
	stdev float64
}

// Run verifies a row view against the configured thresholds.
//
// rows is the subset the caller currently looks at, already filtered and
// sorted; indexMap maps each position in rows back to the row's index in the
// full canonical dataset, so issues survive the caller's reordering. A nil
// indexMap means the view is the full dataset in order.
func Run(rows []domain.CanonicalRow, indexMap []int, cfg Config) *domain.Result {
	result := &domain.Result{
		ByIndex:     make(map[int][]domain.Issue),
		ColumnStats: make(map[string]domain.ColumnStat),
	}
	columnIssues := make(map[string]int)

	originalIndex := func(pos int) int {
		if pos < len(indexMap) {
			return indexMap[pos]
		}
		return pos
	}
	addIssue := func(idx int, column, message string, severity domain.Severity) {
		result.ByIndex[idx] = append(result.ByIndex[idx], domain.Issue{
			Column:   column,
			Message:  message,
			Severity: severity,
		})
		if severity == domain.SeverityError {
			result.Errors++
		} else {
			result.Warnings++
		}
		columnIssues[column]++
	}

	// The date column is detected once per run; without one the temporal
	// checks are skipped for the whole view, not per row.
	var dateColumn string
	if len(rows) > 0 {
		dateColumn = detectDateColumn(rows[0])
	}

	seenDupKeys := make(map[string]struct{})
	companyAmounts := make(map[string][]float64)
	monthAmounts := make(map[string][]float64)

	// Pass 1: independent per-row checks plus group accumulation.
	for pos, row := range rows {
		idx := originalIndex(pos)

		for _, col := range requiredColumns {
			if strings.TrimSpace(requiredValue(row, col)) == "" {
				addIssue(idx, col, msgRequiredEmpty, domain.SeverityError)
				result.MissingRequired++
			}
		}

		if !row.AmountUsable() {
			addIssue(idx, domain.ColumnAmount, msgInvalidAmount, domain.SeverityError)
			result.InvalidNumbers++
		} else {
			if math.Abs(row.Amount) > cfg.OutlierThresholdAbs {
				addIssue(idx, domain.ColumnAmount, msgOutlier, domain.SeverityWarning)
				result.Outliers++
			}
			company := row.CompanyName
			companyAmounts[company] = append(companyAmounts[company], row.Amount)
			if dateColumn != "" {
				if mk, ok := monthKey(row.Extra[dateColumn]); ok {
					key := company + "__" + mk
					monthAmounts[key] = append(monthAmounts[key], row.Amount)
				}
			}
		}

		// Soft duplicate signal: unlike the merge key, this one excludes
		// amount and month on purpose.
		dupKey := row.CompanyCode + "|" + row.Source + "|" + row.LedgerAccount + "|" + row.CompanyName
		if _, dup := seenDupKeys[dupKey]; dup {
			addIssue(idx, domain.ColumnCompanyCode, msgDuplicate, domain.SeverityWarning)
			result.Duplicates++
		} else {
			seenDupKeys[dupKey] = struct{}{}
		}
	}

	// Pass 2 precomputation: per-company IQR bounds and per-month stats.
	companyBounds := make(map[string]bounds)
	for company, amounts := range companyAmounts {
		if len(amounts) < cfg.MinIQRSamples {
			continue
		}
		sorted := append([]float64(nil), amounts...)
		sort.Float64s(sorted)
		q1 := quantile(sorted, 0.25)
		q3 := quantile(sorted, 0.75)
		iqr := q3 - q1
		companyBounds[company] = bounds{
			low:  q1 - cfg.IQRMultiplier*iqr,
			high: q3 + cfg.IQRMultiplier*iqr,
		}
	}
	monthGroupStats := make(map[string]groupStats)
	for key, amounts := range monthAmounts {
		if len(amounts) < cfg.MinZScoreSamples {
			continue
		}
		monthGroupStats[key] = groupStats{mean: mean(amounts), stdev: stdev(amounts)}
	}

	// Pass 2: group-aware checks.
	for pos, row := range rows {
		if !row.AmountUsable() {
			continue
		}
		idx := originalIndex(pos)
		amt := row.Amount
		company := row.CompanyName

		ledger := strings.ToLower(row.LedgerAccount)
		if containsAny(ledger, revenueKeywords) && amt < 0 {
			addIssue(idx, domain.ColumnAmount, msgNegativeIncome, domain.SeverityError)
			result.CrossField++
		}
		if containsAny(ledger, expenseKeywords) && amt > 0 {
			addIssue(idx, domain.ColumnAmount, msgPositiveCost, domain.SeverityWarning)
			result.CrossField++
		}

		if b, ok := companyBounds[company]; ok && (amt < b.low || amt > b.high) {
			addIssue(idx, domain.ColumnAmount, msgIQRAnomaly, domain.SeverityWarning)
			result.CompanyIQRAnomalies++
		}

		if dateColumn != "" {
			if mk, ok := monthKey(row.Extra[dateColumn]); ok {
				if st, ok := monthGroupStats[company+"__"+mk]; ok && st.stdev > 0 {
					if math.Abs(amt-st.mean)/st.stdev > cfg.ZScoreThreshold {
						addIssue(idx, domain.ColumnAmount, msgMonthlyAnomaly, domain.SeverityWarning)
						result.MonthlyAnomalies++
					}
				}
			}
		}
	}

	// Column hotspots.
	totalRows := len(rows)
	if totalRows == 0 {
		totalRows = 1
	}
	for column, n := range columnIssues {
		stat := domain.ColumnStat{Issues: n, Ratio: float64(n) / float64(totalRows)}
		result.ColumnStats[column] = stat
		if stat.Ratio >= cfg.HotColumnRatio {
			result.HotColumns = append(result.HotColumns, column)
		}
	}
	sort.Strings(result.HotColumns)
	result.RowsWithIssues = len(result.ByIndex)

	return result
}

// requiredValue reads the required-column value off the resolved row fields.
func requiredValue(row domain.CanonicalRow, column string) string {
	switch column {
	case domain.ColumnCompanyName:
		return row.CompanyName
	case domain.ColumnCompanyCode:
		return row.CompanyCode
	case domain.ColumnSource:
		return row.Source
	default:
		return cellText(row.Extra[column])
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
