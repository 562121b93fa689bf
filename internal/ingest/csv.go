package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"ledgerlens/pkg/contracts/domain"
)

// ReadCSVBatch reads one CSV extract from disk. The batch label is the file
// name, which downstream code uses both as the source tag and to recognize
// the company-directory file.
func ReadCSVBatch(path string) (domain.Batch, error) {
	file, err := os.Open(path)
	if err != nil {
		return domain.Batch{}, fmt.Errorf("open CSV file: %w", err)
	}
	defer file.Close()

	return ReadCSV(file, filepath.Base(path))
}

// ReadCSV parses a delimited extract into a batch of raw records. The first
// line is the header; cells keep their textual form, locale-aware numeric
// parsing happens later during unification. Short rows simply omit the
// trailing columns.
func ReadCSV(r io.Reader, label string) (domain.Batch, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return domain.Batch{}, fmt.Errorf("read CSV records: %w", err)
	}
	if len(records) == 0 {
		return domain.Batch{Label: label}, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		headers[i] = strings.TrimSpace(h)
	}

	var rows []domain.RawRecord
	for _, record := range records[1:] {
		if isEmptyRecord(record) {
			continue
		}
		row := make(domain.RawRecord, len(headers))
		for i, header := range headers {
			if header == "" || i >= len(record) {
				continue
			}
			row[header] = strings.TrimSpace(record[i])
		}
		rows = append(rows, row)
	}

	slog.Debug("parsed CSV batch",
		slog.String("label", label),
		slog.Int("rows", len(rows)))

	return domain.Batch{Label: label, Rows: rows}, nil
}

func isEmptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
