package unify

import (
	"math"
	"strconv"
	"strings"

	"ledgerlens/pkg/contracts/domain"
)

// relatedSourcesSeparator joins the labels of every batch that contributed to
// a merged canonical row.
const relatedSourcesSeparator = ", "

// Unify folds the given batches into one deduplicated canonical row set, in
// first-seen order. Records sharing the identity key (company code, ledger
// account, month, amount rounded to two decimals) are merged: the first
// occurrence stays as representative, later ones add their batch label to
// RelatedSources, bump RelatedRecords and backfill a missing company name.
//
// The optional mappings backfill company names from codes for rows that carry
// only the code. Unify behaves correctly with zero mappings.
func Unify(batches []domain.Batch, mappings []domain.SociedadMapping) []domain.CanonicalRow {
	nameByCode := make(map[string]string, len(mappings))
	for _, m := range mappings {
		code := strings.TrimSpace(m.Code)
		if code != "" {
			nameByCode[code] = strings.TrimSpace(m.Name)
		}
	}

	var order []string
	byKey := make(map[string]*domain.CanonicalRow)
	sourcesByKey := make(map[string][]string)

	for _, batch := range batches {
		for _, raw := range batch.Rows {
			row := Normalize(raw, batch.Label, nameByCode)
			key := DedupKey(row)

			existing, seen := byKey[key]
			if !seen {
				r := row
				byKey[key] = &r
				sourcesByKey[key] = []string{batch.Label}
				order = append(order, key)
				continue
			}

			sources := sourcesByKey[key]
			if !containsString(sources, batch.Label) {
				sources = append(sources, batch.Label)
				sourcesByKey[key] = sources
			}
			existing.RelatedSources = strings.Join(sources, relatedSourcesSeparator)
			existing.RelatedRecords++
			if existing.CompanyName == "" && row.CompanyName != "" {
				existing.CompanyName = row.CompanyName
			}
		}
	}

	rows := make([]domain.CanonicalRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, *byKey[key])
	}
	return rows
}

// Normalize resolves the canonical fields of one raw record. The company name
// falls back to the directory mapping when the row only carries a code, and
// code/name cross-fill each other so that grouping by company stays usable
// with partial source data.
func Normalize(raw domain.RawRecord, sourceLabel string, nameByCode map[string]string) domain.CanonicalRow {
	code := ResolveCompanyCode(raw)
	name := ResolveCompanyName(raw)
	if name == "" {
		name = nameByCode[code]
	}
	if name == "" && code != "" {
		name = code
	}
	if code == "" && name != "" {
		code = name
	}

	amountValue, amountPresent := resolveAmount(raw)
	amount, amountParsed := parseAmount(amountValue)

	extra := make(map[string]any, len(raw))
	for k, v := range raw {
		extra[k] = v
	}

	return domain.CanonicalRow{
		Source:         sourceLabel,
		CompanyCode:    code,
		CompanyName:    name,
		LedgerAccount:  ResolveLedgerAccount(raw),
		Month:          ResolveMonth(raw),
		Amount:         amount,
		RelatedRecords: 1,
		RelatedSources: sourceLabel,
		AmountPresent:  amountPresent,
		AmountParsed:   amountParsed,
		Extra:          extra,
	}
}

// DedupKey builds the identity key of a canonical row. Amount and month are
// deliberately part of the key: records matching on company and account but
// differing in amount are distinct entries, not duplicates.
func DedupKey(row domain.CanonicalRow) string {
	rounded := math.Round(row.Amount*100) / 100
	return row.CompanyCode + "|" + row.LedgerAccount + "|" + row.Month + "|" +
		strconv.FormatFloat(rounded, 'f', -1, 64)
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
