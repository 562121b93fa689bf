package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	apierrors "ledgerlens/internal/errors"
	"ledgerlens/internal/ingest"
	"ledgerlens/internal/metrics"
	"ledgerlens/internal/unify"
	"ledgerlens/internal/verify"
	"ledgerlens/pkg/contracts/domain"
)

// ImportSummary describes the outcome of one import.
type ImportSummary struct {
	DatasetID string `json:"dataset_id"`
	Batches   int    `json:"batches"`
	Mappings  int    `json:"mappings"`
	Rows      int    `json:"rows"`
	Companies int    `json:"companies"`
}

// DatasetService owns the imported dataset and serves verification results
// over filtered views of it. Verification is cached per dataset and view.
type DatasetService struct {
	logger    *slog.Logger
	metrics   *metrics.Metrics
	engineCfg verify.Config

	mu        sync.RWMutex
	datasetID string
	rows      []domain.CanonicalRow
	companies []string
	cache     map[string]*domain.Result
}

// NewDatasetService creates a dataset service with the given verification
// thresholds.
func NewDatasetService(logger *slog.Logger, m *metrics.Metrics, engineCfg verify.Config) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetService{
		logger:    logger.With(slog.String("component", "dataset_service")),
		metrics:   m,
		engineCfg: engineCfg,
		cache:     make(map[string]*domain.Result),
	}
}

// Import unifies the batches into a fresh dataset, replacing any previous
// one. The first batch whose label mentions "sociedad" is consumed as the
// company mapping table.
func (s *DatasetService) Import(ctx context.Context, batches []domain.Batch) (*ImportSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(batches) == 0 {
		return nil, apierrors.ErrValidation("batches", "at least one batch is required")
	}

	data, mappings := ingest.Split(batches)
	rows := unify.Unify(data, mappings)
	companies := unify.CompanyDisplayList(rows)

	s.mu.Lock()
	s.datasetID = uuid.NewString()
	s.rows = rows
	s.companies = companies
	s.cache = make(map[string]*domain.Result)
	summary := &ImportSummary{
		DatasetID: s.datasetID,
		Batches:   len(batches),
		Mappings:  len(mappings),
		Rows:      len(rows),
		Companies: len(companies),
	}
	s.mu.Unlock()

	s.metrics.ObserveImport(len(rows))
	s.logger.InfoContext(ctx, "dataset imported",
		slog.String("dataset_id", summary.DatasetID),
		slog.Int("batches", summary.Batches),
		slog.Int("mappings", summary.Mappings),
		slog.Int("rows", summary.Rows),
		slog.Int("companies", summary.Companies),
	)
	return summary, nil
}

// Rows returns the current dataset with its identifier.
func (s *DatasetService) Rows() (string, []domain.CanonicalRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.datasetID == "" {
		return "", nil, apierrors.ErrNoDataset()
	}
	return s.datasetID, s.rows, nil
}

// Companies returns the deduplicated company display labels.
func (s *DatasetService) Companies() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.datasetID == "" {
		return nil, apierrors.ErrNoDataset()
	}
	return s.companies, nil
}

// Verify runs the verification engine over the viewed subset of the dataset.
// Results are cached per (dataset, view) until the next import.
func (s *DatasetService) Verify(ctx context.Context, view ViewOptions) (*domain.Result, error) {
	if err := validateView(view); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	if s.datasetID == "" {
		s.mu.RUnlock()
		return nil, apierrors.ErrNoDataset()
	}
	datasetID := s.datasetID
	rows := s.rows
	key := datasetID + "\x1f" + view.Key()
	if cached, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		s.logger.DebugContext(ctx, "verification cache hit", slog.String("dataset_id", datasetID))
		return cached, nil
	}
	s.mu.RUnlock()

	subset, indexMap := applyView(rows, view)
	result := verify.Run(subset, indexMap, s.engineCfg)

	s.mu.Lock()
	// The dataset may have been replaced while the engine ran; never cache a
	// stale result under the new dataset.
	if s.datasetID == datasetID {
		s.cache[key] = result
	}
	s.mu.Unlock()

	s.metrics.ObserveVerification(result.Errors, result.Warnings)
	s.logger.InfoContext(ctx, "verification completed",
		slog.String("dataset_id", datasetID),
		slog.Int("rows", len(subset)),
		slog.Int("errors", result.Errors),
		slog.Int("warnings", result.Warnings),
	)
	return result, nil
}

func validateView(view ViewOptions) error {
	switch view.SortOrder {
	case "", SortAscending, SortDescending:
		return nil
	default:
		return apierrors.ErrValidation("order", fmt.Sprintf("unknown sort order %q", view.SortOrder))
	}
}
