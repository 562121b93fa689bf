package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	input := "Sociedad,Libro Mayor,Mes,Importe en ML\n" +
		"1020,2103011004,Febrero,\"-120,84\"\n" +
		"\n" +
		"1030,2103011005,Marzo,\"190.440,13\"\n"

	batch, err := ReadCSV(strings.NewReader(input), "extracto.csv")
	require.NoError(t, err)

	assert.Equal(t, "extracto.csv", batch.Label)
	require.Len(t, batch.Rows, 2)
	assert.Equal(t, "1020", batch.Rows[0]["Sociedad"])
	assert.Equal(t, "-120,84", batch.Rows[0]["Importe en ML"])
	assert.Equal(t, "Marzo", batch.Rows[1]["Mes"])
}

func TestReadCSVStripsBOM(t *testing.T) {
	input := "\ufeffSociedad,monto\n1020,\"1,00\"\n"

	batch, err := ReadCSV(strings.NewReader(input), "bom.csv")
	require.NoError(t, err)
	require.Len(t, batch.Rows, 1)
	assert.Equal(t, "1020", batch.Rows[0]["Sociedad"])
}

func TestReadCSVShortRows(t *testing.T) {
	input := "Sociedad,Mes,monto\n1020,Enero\n"

	batch, err := ReadCSV(strings.NewReader(input), "corto.csv")
	require.NoError(t, err)
	require.Len(t, batch.Rows, 1)

	row := batch.Rows[0]
	assert.Equal(t, "Enero", row["Mes"])
	_, hasAmount := row["monto"]
	assert.False(t, hasAmount)
}

func TestReadCSVHeaderOnly(t *testing.T) {
	batch, err := ReadCSV(strings.NewReader("Sociedad,monto\n"), "vacio.csv")
	require.NoError(t, err)
	assert.Empty(t, batch.Rows)
}

func TestReadCSVEmptyInput(t *testing.T) {
	batch, err := ReadCSV(strings.NewReader(""), "nada.csv")
	require.NoError(t, err)
	assert.Empty(t, batch.Rows)
}

func TestReadCSVBatchUsesFileNameAsLabel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sociedades.csv")
	require.NoError(t, os.WriteFile(path, []byte("codigo,sociedad\n1020,ACME SA\n"), 0644))

	batch, err := ReadCSVBatch(path)
	require.NoError(t, err)
	assert.Equal(t, "sociedades.csv", batch.Label)
	require.Len(t, batch.Rows, 1)
	assert.Equal(t, "ACME SA", batch.Rows[0]["sociedad"])
}
