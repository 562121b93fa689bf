package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// ErrorHandler centralizes the translation of errors into problem responses.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates an error handler with the given logger.
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{logger: logger.With(slog.String("component", "error_handler"))}
}

// HandleError writes the problem-details response for err and logs it with
// the request ID when the request passed through the RequestID middleware.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	problem := ErrorToProblem(err)
	problem.Instance = r.URL.Path
	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		problem.WithExtension("request_id", reqID)
	}

	level := slog.LevelWarn
	if problem.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.LogAttrs(r.Context(), level, "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", problem.Status),
		slog.String("error", err.Error()),
	)

	// Written directly instead of through the render helpers, which force
	// the media type to application/json.
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	if encodeErr := json.NewEncoder(w).Encode(problem); encodeErr != nil {
		h.logger.ErrorContext(r.Context(), "failed to encode problem response",
			slog.String("error", encodeErr.Error()))
	}
}

// ErrorToProblem maps an error to problem details.
func ErrorToProblem(err error) *ProblemDetails {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return APIErrorToProblem(apiErr)
	}

	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return NewProblemDetails(http.StatusGatewayTimeout, TypeInternal, "Gateway Timeout", "The operation timed out")
	case stderrors.Is(err, context.Canceled):
		return NewProblemDetails(499, TypeInternal, "Client Closed Request", "The request was cancelled")
	default:
		return NewProblemDetails(http.StatusInternalServerError, TypeInternal, "Internal Server Error", "An unexpected error occurred")
	}
}
