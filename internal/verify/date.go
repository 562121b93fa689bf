package verify

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"ledgerlens/pkg/contracts/domain"
)

// dateColumnCandidates are tried first, in order, when detecting the
// date-bearing column of a row set.
var dateColumnCandidates = []string{"Fecha", "fecha", "Date", "date", "Periodo", "periodo"}

var isoDatePattern = regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}`)

// dateFormats accepted when parsing cell values into dates.
var dateFormats = []string{
	"2006-01-02",
	"2006-1-2",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"02/01/2006",
	"01/02/2006",
}

// detectDateColumn picks the date-bearing column of a row set by inspecting
// its first row: first the candidate header names, then any passthrough
// column whose value looks like an ISO date. Returns "" when the row set has
// no detectable date column, which disables the temporal checks for the whole
// run. Passthrough columns are scanned in sorted order so detection is
// deterministic.
func detectDateColumn(row domain.CanonicalRow) string {
	for _, k := range dateColumnCandidates {
		v, ok := row.Extra[k]
		if !ok {
			continue
		}
		if _, ok := parseDate(cellText(v)); ok {
			return k
		}
	}

	keys := make([]string, 0, len(row.Extra))
	for k := range row.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s, ok := row.Extra[k].(string)
		if !ok || !isoDatePattern.MatchString(s) {
			continue
		}
		if _, ok := parseDate(s); ok {
			return k
		}
	}
	return ""
}

// monthKey reduces a date cell to its "YYYY-MM" grouping key.
func monthKey(v any) (string, bool) {
	t, ok := parseDate(cellText(v))
	if !ok {
		return "", false
	}
	return t.Format("2006-01"), true
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func cellText(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case nil:
		return ""
	default:
		return ""
	}
}
