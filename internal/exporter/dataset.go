package exporter

import (
	"io"
	"sort"
	"strconv"

	"ledgerlens/pkg/contracts/domain"
)

// datasetColumns are the resolved columns, always exported first and in this
// order; passthrough columns follow alphabetically.
var datasetColumns = []string{
	domain.ColumnSource,
	domain.ColumnCompanyCode,
	domain.ColumnCompanyName,
	domain.ColumnLedgerAccount,
	domain.ColumnMonth,
	domain.ColumnAmount,
	domain.ColumnRelatedRecords,
	domain.ColumnRelatedSources,
}

// WriteDataset serializes the canonical rows, resolved columns first, then
// every passthrough column seen anywhere in the dataset.
func WriteDataset(w io.Writer, rows []domain.CanonicalRow) error {
	headers := datasetHeaders(rows)
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, datasetRecord(row, headers))
	}

	return WriteCSV(w, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteDatasetFile writes the canonical dataset to a file.
func WriteDatasetFile(path string, rows []domain.CanonicalRow) error {
	headers := datasetHeaders(rows)
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, datasetRecord(row, headers))
	}

	return WriteCSVFile(path, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

func datasetHeaders(rows []domain.CanonicalRow) []string {
	resolved := make(map[string]struct{}, len(datasetColumns))
	for _, c := range datasetColumns {
		resolved[c] = struct{}{}
	}

	extraSet := make(map[string]struct{})
	for _, row := range rows {
		for k := range row.Extra {
			if _, dup := resolved[k]; !dup {
				extraSet[k] = struct{}{}
			}
		}
	}
	extras := make([]string, 0, len(extraSet))
	for k := range extraSet {
		extras = append(extras, k)
	}
	sort.Strings(extras)

	return append(append([]string{}, datasetColumns...), extras...)
}

func datasetRecord(row domain.CanonicalRow, headers []string) []string {
	record := make([]string, len(headers))
	for i, header := range headers {
		switch header {
		case domain.ColumnSource:
			record[i] = row.Source
		case domain.ColumnCompanyCode:
			record[i] = row.CompanyCode
		case domain.ColumnCompanyName:
			record[i] = row.CompanyName
		case domain.ColumnLedgerAccount:
			record[i] = row.LedgerAccount
		case domain.ColumnMonth:
			record[i] = row.Month
		case domain.ColumnAmount:
			record[i] = strconv.FormatFloat(row.Amount, 'f', -1, 64)
		case domain.ColumnRelatedRecords:
			record[i] = strconv.Itoa(row.RelatedRecords)
		case domain.ColumnRelatedSources:
			record[i] = row.RelatedSources
		default:
			record[i] = cellValue(row.Extra[header])
		}
	}
	return record
}

func cellValue(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return ""
	}
}
