package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"ledgerlens/internal/unify"
	"ledgerlens/pkg/contracts/domain"
)

// directoryLabelMarker identifies the optional company-directory batch by its
// label, case-insensitively.
const directoryLabelMarker = "sociedad"

// LoadBatches reads every path into a batch, CSV or Excel depending on the
// extension, preserving the argument order. Files are read concurrently; the
// first failure aborts the load.
func LoadBatches(ctx context.Context, paths []string) ([]domain.Batch, error) {
	batches := make([]domain.Batch, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			batch, err := LoadBatch(path)
			if err != nil {
				return fmt.Errorf("load %s: %w", filepath.Base(path), err)
			}
			batches[i] = batch
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("loaded batches", slog.Int("count", len(batches)))
	return batches, nil
}

// LoadBatch reads a single file into a batch.
func LoadBatch(path string) (domain.Batch, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ReadExcelBatch(path)
	default:
		return ReadCSVBatch(path)
	}
}

// ReadBatch reads a single uploaded stream into a batch, CSV or Excel
// depending on the filename extension.
func ReadBatch(r io.Reader, filename string) (domain.Batch, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".xls":
		return ReadExcel(r, filename)
	default:
		return ReadCSV(r, filename)
	}
}

// Split separates the optional company-directory batch from the data batches.
// The first batch whose label contains "sociedad" becomes the mapping source;
// every other batch passes through as data. With no directory batch the
// mappings come back empty, which the unifier handles.
func Split(batches []domain.Batch) ([]domain.Batch, []domain.SociedadMapping) {
	var (
		data      []domain.Batch
		mappings  []domain.SociedadMapping
		directory bool
	)

	for _, b := range batches {
		if !directory && strings.Contains(strings.ToLower(b.Label), directoryLabelMarker) {
			directory = true
			for _, rec := range b.Rows {
				mappings = append(mappings, unify.ResolveMapping(rec))
			}
			continue
		}
		data = append(data, b)
	}

	return data, mappings
}
