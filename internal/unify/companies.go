package unify

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"ledgerlens/pkg/contracts/domain"
)

// NoNamePlaceholder substitutes for a missing company name in display labels.
const NoNamePlaceholder = "(Sin nombre)"

// CompanyDisplayLabel formats a row's company as its "Name - Code" display
// label, with a placeholder when the name is missing.
func CompanyDisplayLabel(row domain.CanonicalRow) string {
	name := strings.TrimSpace(row.CompanyName)
	if name == "" {
		name = NoNamePlaceholder
	}
	return strings.TrimSpace(name + " - " + strings.TrimSpace(row.CompanyCode))
}

// CompanyDisplayList derives the deduplicated list of "Name - Code" display
// labels from the canonical rows, sorted with Spanish collation to match how
// the surrounding selectors present them.
func CompanyDisplayList(rows []domain.CanonicalRow) []string {
	seen := make(map[string]struct{}, len(rows))
	labels := make([]string, 0, len(rows))

	for _, r := range rows {
		label := CompanyDisplayLabel(r)
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}

	collate.New(language.Spanish).SortStrings(labels)
	return labels
}
