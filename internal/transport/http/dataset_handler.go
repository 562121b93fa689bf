package http

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/render"

	apierrors "ledgerlens/internal/errors"
	"ledgerlens/internal/exporter"
	"ledgerlens/internal/ingest"
	"ledgerlens/internal/services"
	"ledgerlens/pkg/contracts/domain"
)

// importFormField is the multipart field carrying the uploaded extracts.
const importFormField = "files"

// DatasetHandler serves the import, dataset and verification endpoints.
type DatasetHandler struct {
	service        *services.DatasetService
	errorHandler   *apierrors.ErrorHandler
	logger         *slog.Logger
	maxImportBytes int64
}

// NewDatasetHandler creates the handler set around the dataset service.
func NewDatasetHandler(service *services.DatasetService, logger *slog.Logger, maxImportBytes int64) *DatasetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetHandler{
		service:        service,
		errorHandler:   apierrors.NewErrorHandler(logger),
		logger:         logger.With(slog.String("component", "dataset_handler")),
		maxImportBytes: maxImportBytes,
	}
}

// Import handles POST /api/import. It accepts a multipart upload of CSV and
// Excel extracts under the "files" field and replaces the dataset.
func (h *DatasetHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxImportBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge())
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(importFormField, "request is not a valid multipart upload"))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	headers := r.MultipartForm.File[importFormField]
	if len(headers) == 0 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(importFormField, "at least one file is required"))
		return
	}

	batches := make([]domain.Batch, 0, len(headers))
	for _, header := range headers {
		batch, err := readUpload(header)
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrImport(fmt.Errorf("read %s: %w", header.Filename, err)))
			return
		}
		batches = append(batches, batch)
	}

	summary, err := h.service.Import(r.Context(), batches)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, summary)
}

func readUpload(header *multipart.FileHeader) (domain.Batch, error) {
	f, err := header.Open()
	if err != nil {
		return domain.Batch{}, err
	}
	defer f.Close()

	return ingest.ReadBatch(f, header.Filename)
}

// Rows handles GET /api/rows.
func (h *DatasetHandler) Rows(w http.ResponseWriter, r *http.Request) {
	datasetID, rows, err := h.service.Rows()
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{
		"dataset_id": datasetID,
		"count":      len(rows),
		"rows":       rows,
	})
}

// Companies handles GET /api/companies.
func (h *DatasetHandler) Companies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.service.Companies()
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{
		"count":     len(companies),
		"companies": companies,
	})
}

// Verification handles GET /api/verification. The query parameters company,
// search, sort and order narrow and reorder the dataset before the engine
// runs.
func (h *DatasetHandler) Verification(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Verify(r.Context(), viewFromQuery(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, result)
}

// IssuesCSV handles GET /api/verification/issues.csv, streaming the issue
// report of the current view as a CSV download.
func (h *DatasetHandler) IssuesCSV(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Verify(r.Context(), viewFromQuery(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="issues.csv"`)
	if err := exporter.WriteIssues(w, result); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to stream issue report",
			slog.String("error", err.Error()))
	}
}

func viewFromQuery(r *http.Request) services.ViewOptions {
	q := r.URL.Query()
	return services.ViewOptions{
		Company:    q.Get("company"),
		Search:     q.Get("search"),
		SortColumn: q.Get("sort"),
		SortOrder:  q.Get("order"),
	}
}
