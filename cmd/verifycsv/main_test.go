package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	mapping := writeFixture(t, dir, "sociedades.csv",
		"codigo,sociedad\n1020,ACME SA\n")
	extract := writeFixture(t, dir, "extracto.csv",
		"Sociedad,Libro Mayor,Mes,MontoEstandarizado\n"+
			"1020,Ventas nacionales,Enero,\"150,00\"\n"+
			"1020,Ventas exportación,Febrero,\"-10,00\"\n")

	outPath := filepath.Join(dir, "dataset.csv")
	issuesPath := filepath.Join(dir, "issues.csv")

	var stdout bytes.Buffer
	err := run(context.Background(), []string{"-out", outPath, "-issues", issuesPath, mapping, extract}, &stdout)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "rows: 2")
	assert.Contains(t, stdout.String(), "cross-field: 1")

	dataset, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(dataset), "ACME SA")

	issues, err := os.ReadFile(issuesPath)
	require.NoError(t, err)
	assert.Contains(t, string(issues), "Monto negativo inesperado para tipo 'Ingresos/Ventas'")
}

func TestRunRequiresFiles(t *testing.T) {
	var stdout bytes.Buffer
	err := run(context.Background(), nil, &stdout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage")
}
