package services

import (
	"sort"
	"strconv"
	"strings"

	"ledgerlens/internal/unify"
	"ledgerlens/pkg/contracts/domain"
)

// Sort orders accepted by ViewOptions.
const (
	SortAscending  = "asc"
	SortDescending = "desc"
)

// ViewOptions narrows and orders the dataset before verification. The zero
// value is the full dataset in import order.
type ViewOptions struct {
	// Company filters rows to one company, matched against the "Name - Code"
	// display label, the raw name, or the raw code.
	Company string
	// Search keeps rows whose resolved or passthrough cells contain the term,
	// case-insensitively.
	Search string
	// SortColumn orders rows by the named column. Unknown columns leave the
	// current order untouched.
	SortColumn string
	// SortOrder is "asc" or "desc"; empty means ascending.
	SortOrder string
}

// Key uniquely identifies the view for result caching.
func (v ViewOptions) Key() string {
	return strings.Join([]string{v.Company, v.Search, v.SortColumn, v.SortOrder}, "\x1f")
}

// applyView resolves the view into the surviving rows plus, per position, the
// row's index in the full dataset. Issue indexes stay addressable against the
// imported dataset no matter how the view reorders it.
func applyView(rows []domain.CanonicalRow, view ViewOptions) ([]domain.CanonicalRow, []int) {
	subset := make([]domain.CanonicalRow, 0, len(rows))
	indexMap := make([]int, 0, len(rows))

	term := strings.ToLower(strings.TrimSpace(view.Search))
	for i, row := range rows {
		if !matchesCompany(row, view.Company) {
			continue
		}
		if term != "" && !matchesSearch(row, term) {
			continue
		}
		subset = append(subset, row)
		indexMap = append(indexMap, i)
	}

	if view.SortColumn != "" {
		sortView(subset, indexMap, view.SortColumn, view.SortOrder == SortDescending)
	}
	return subset, indexMap
}

func matchesCompany(row domain.CanonicalRow, company string) bool {
	company = strings.TrimSpace(company)
	if company == "" {
		return true
	}
	return company == unify.CompanyDisplayLabel(row) ||
		company == strings.TrimSpace(row.CompanyName) ||
		company == strings.TrimSpace(row.CompanyCode)
}

func matchesSearch(row domain.CanonicalRow, term string) bool {
	cells := []string{
		row.Source,
		row.CompanyCode,
		row.CompanyName,
		row.LedgerAccount,
		row.Month,
		strconv.FormatFloat(row.Amount, 'f', -1, 64),
		row.RelatedSources,
	}
	for _, cell := range cells {
		if strings.Contains(strings.ToLower(cell), term) {
			return true
		}
	}
	for _, v := range row.Extra {
		if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

func sortView(subset []domain.CanonicalRow, indexMap []int, column string, descending bool) {
	view := viewSorter{rows: subset, indexes: indexMap, column: column, descending: descending}
	sort.Stable(view)
}

type viewSorter struct {
	rows       []domain.CanonicalRow
	indexes    []int
	column     string
	descending bool
}

func (s viewSorter) Len() int { return len(s.rows) }

func (s viewSorter) Swap(i, j int) {
	s.rows[i], s.rows[j] = s.rows[j], s.rows[i]
	s.indexes[i], s.indexes[j] = s.indexes[j], s.indexes[i]
}

func (s viewSorter) Less(i, j int) bool {
	if s.descending {
		i, j = j, i
	}

	switch s.column {
	case domain.ColumnAmount:
		return s.rows[i].Amount < s.rows[j].Amount
	case domain.ColumnRelatedRecords:
		return s.rows[i].RelatedRecords < s.rows[j].RelatedRecords
	}
	return cellText(s.rows[i], s.column) < cellText(s.rows[j], s.column)
}

func cellText(row domain.CanonicalRow, column string) string {
	switch column {
	case domain.ColumnSource:
		return row.Source
	case domain.ColumnCompanyCode:
		return row.CompanyCode
	case domain.ColumnCompanyName:
		return row.CompanyName
	case domain.ColumnLedgerAccount:
		return row.LedgerAccount
	case domain.ColumnMonth:
		return row.Month
	case domain.ColumnRelatedSources:
		return row.RelatedSources
	}
	switch v := row.Extra[column].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
