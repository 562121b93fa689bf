package errors

import (
	"encoding/json"
	"net/http"
)

// Problem type URIs.
const (
	TypeValidation      = "/errors/validation"
	TypeNotFound        = "/errors/not-found"
	TypeImportFailed    = "/errors/import-failed"
	TypeNoDataset       = "/errors/no-dataset"
	TypePayloadTooLarge = "/errors/payload-too-large"
	TypeInternal        = "/errors/internal"
)

// ProblemDetails implements RFC 7807 problem details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// Extensions holds additional members serialized at the top level.
	Extensions map[string]any `json:"-"`
}

// MarshalJSON flattens extension members into the problem object.
func (p *ProblemDetails) MarshalJSON() ([]byte, error) {
	doc := map[string]any{
		"type":   p.Type,
		"title":  p.Title,
		"status": p.Status,
	}
	if p.Detail != "" {
		doc["detail"] = p.Detail
	}
	if p.Instance != "" {
		doc["instance"] = p.Instance
	}
	for k, v := range p.Extensions {
		doc[k] = v
	}
	return json.Marshal(doc)
}

// NewProblemDetails creates a problem with the given status, type and texts.
func NewProblemDetails(status int, problemType, title, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemType,
		Title:  title,
		Status: status,
		Detail: detail,
	}
}

// WithExtension adds an extension member, returning the problem for chaining.
func (p *ProblemDetails) WithExtension(key string, value any) *ProblemDetails {
	if p.Extensions == nil {
		p.Extensions = make(map[string]any)
	}
	p.Extensions[key] = value
	return p
}

// APIErrorToProblem converts an APIError to its problem representation.
func APIErrorToProblem(apiErr *APIError) *ProblemDetails {
	problem := NewProblemDetails(apiErr.StatusCode, typeForCode(apiErr.ErrorCode), titleForStatus(apiErr.StatusCode), apiErr.Message)
	problem.WithExtension("error_code", apiErr.ErrorCode)
	if apiErr.Details != nil {
		problem.WithExtension("details", apiErr.Details)
	}
	return problem
}

func typeForCode(code string) string {
	switch code {
	case "VALIDATION_FAILED":
		return TypeValidation
	case "NOT_FOUND":
		return TypeNotFound
	case "IMPORT_FAILED":
		return TypeImportFailed
	case "NO_DATASET":
		return TypeNoDataset
	case "PAYLOAD_TOO_LARGE":
		return TypePayloadTooLarge
	default:
		return TypeInternal
	}
}

func titleForStatus(status int) string {
	if title := http.StatusText(status); title != "" {
		return title
	}
	return "Error"
}
