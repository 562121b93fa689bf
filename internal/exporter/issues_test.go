package exporter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerlens/pkg/contracts/domain"
)

func TestWriteIssues(t *testing.T) {
	result := &domain.Result{
		ByIndex: map[int][]domain.Issue{
			7: {
				{Column: "SociedadCodigo", Message: "Campo requerido vacío", Severity: domain.SeverityError},
			},
			2: {
				{Column: "MontoEstandarizado", Message: "Posible outlier por magnitud absoluta", Severity: domain.SeverityWarning},
				{Column: "SociedadCodigo", Message: "Posible duplicado (mismos campos clave)", Severity: domain.SeverityWarning},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteIssues(&buf, result))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\xEF\xBB\xBF"), "expected UTF-8 BOM prefix")

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\xEF\xBB\xBF"))).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 4)
	assert.Equal(t, []string{"original_index", "column", "severity", "message"}, records[0])
	// Ordered by original index, engine order within a row.
	assert.Equal(t, []string{"2", "MontoEstandarizado", "warning", "Posible outlier por magnitud absoluta"}, records[1])
	assert.Equal(t, []string{"2", "SociedadCodigo", "warning", "Posible duplicado (mismos campos clave)"}, records[2])
	assert.Equal(t, []string{"7", "SociedadCodigo", "error", "Campo requerido vacío"}, records[3])
}

func TestWriteIssuesEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteIssues(&buf, &domain.Result{ByIndex: map[int][]domain.Issue{}}))

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(buf.String(), "\xEF\xBB\xBF"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1) // header only
}
