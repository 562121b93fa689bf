package ingest

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"ledgerlens/pkg/contracts/domain"
)

// ReadExcelBatch reads one Excel extract. Sheets are scanned in workbook
// order and the first one with a recognizable header row and at least one
// data row wins; the extracts this handles carry a single data sheet, with
// the occasional empty cover sheet before it.
func ReadExcelBatch(path string) (domain.Batch, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.Batch{}, fmt.Errorf("open Excel file: %w", err)
	}
	defer f.Close()

	return readWorkbook(f, filepath.Base(path))
}

// ReadExcel reads an Excel extract from an in-memory stream, as delivered by
// an upload.
func ReadExcel(r io.Reader, label string) (domain.Batch, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.Batch{}, fmt.Errorf("open Excel stream: %w", err)
	}
	defer f.Close()

	return readWorkbook(f, label)
}

func readWorkbook(f *excelize.File, label string) (domain.Batch, error) {
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		headerIdx := findHeaderRow(rows)
		if headerIdx < 0 || headerIdx+1 >= len(rows) {
			continue
		}

		headers := make([]string, len(rows[headerIdx]))
		for i, h := range rows[headerIdx] {
			headers[i] = strings.TrimSpace(h)
		}

		var records []domain.RawRecord
		for _, row := range rows[headerIdx+1:] {
			if isEmptyRecord(row) {
				continue
			}
			rec := make(domain.RawRecord, len(headers))
			for i, header := range headers {
				if header == "" || i >= len(row) {
					continue
				}
				rec[header] = strings.TrimSpace(row[i])
			}
			records = append(records, rec)
		}

		slog.Debug("parsed Excel batch",
			slog.String("label", label),
			slog.String("sheet", sheet),
			slog.Int("rows", len(records)))

		return domain.Batch{Label: label, Rows: records}, nil
	}

	return domain.Batch{}, fmt.Errorf("no data sheet found in %s", label)
}

// findHeaderRow returns the index of the first row that looks like a header:
// at least two non-empty cells. Returns -1 when no row qualifies.
func findHeaderRow(rows [][]string) int {
	for i, row := range rows {
		nonEmpty := 0
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				nonEmpty++
			}
			if nonEmpty >= 2 {
				return i
			}
		}
	}
	return -1
}
