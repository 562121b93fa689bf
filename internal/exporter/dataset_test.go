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

func TestWriteDataset(t *testing.T) {
	rows := []domain.CanonicalRow{
		{
			Source:         "a.csv",
			CompanyCode:    "1020",
			CompanyName:    "ACME SA",
			LedgerAccount:  "2103011004",
			Month:          "Febrero",
			Amount:         -120.84,
			RelatedRecords: 2,
			RelatedSources: "a.csv, b.csv",
			Extra:          map[string]any{"Centro de Coste": "CC-9", "Sociedad": "1020"},
		},
		{
			Source:         "b.csv",
			CompanyCode:    "1030",
			CompanyName:    "Filial Norte",
			Amount:         50,
			RelatedRecords: 1,
			RelatedSources: "b.csv",
			Extra:          map[string]any{"Observaciones": "ajuste"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDataset(&buf, rows))

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(buf.String(), "\xEF\xBB\xBF"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Resolved columns first, passthrough extras alphabetically after them.
	assert.Equal(t, []string{
		"_source", "SociedadCodigo", "SociedadNombre", "LibroMayor", "Mes",
		"MontoEstandarizado", "RelatedRecords", "RelatedSources",
		"Centro de Coste", "Observaciones", "Sociedad",
	}, records[0])

	assert.Equal(t, []string{
		"a.csv", "1020", "ACME SA", "2103011004", "Febrero",
		"-120.84", "2", "a.csv, b.csv",
		"CC-9", "", "1020",
	}, records[1])

	assert.Equal(t, []string{
		"b.csv", "1030", "Filial Norte", "", "",
		"50", "1", "b.csv",
		"", "ajuste", "",
	}, records[2])
}
