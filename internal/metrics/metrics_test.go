package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAndScrape(t *testing.T) {
	m := New()
	m.ObserveImport(42)
	m.ObserveVerification(3, 5)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "ledgerlens_imports_total 1")
	assert.Contains(t, body, "ledgerlens_rows_imported_total 42")
	assert.Contains(t, body, "ledgerlens_verifications_total 1")
	assert.Contains(t, body, `ledgerlens_issues_found_total{severity="error"} 3`)
	assert.Contains(t, body, `ledgerlens_issues_found_total{severity="warning"} 5`)
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveImport(1)
		m.ObserveVerification(1, 1)
	})
}
