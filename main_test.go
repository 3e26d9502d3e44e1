package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/trial-balance-converter/internal/engine"
	"github.com/insightdelivered/trial-balance-converter/internal/models"
)

func TestValidateInput(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "balance.pdf")
	txtPath := filepath.Join(dir, "balance.txt")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF"), 0o600))
	require.NoError(t, os.WriteFile(txtPath, []byte("x"), 0o600))

	assert.NoError(t, validateInput(pdfPath))
	assert.ErrorContains(t, validateInput(txtPath), "expected .pdf")
	assert.ErrorContains(t, validateInput(filepath.Join(dir, "missing.pdf")), "not found")
	assert.ErrorContains(t, validateInput(dir), "directory")
}

func TestOutputPath(t *testing.T) {
	eng := engine.New(engine.Options{})
	res := &models.Result{Date: "05/03/2024"}
	input := filepath.Join("reportes", "marzo.pdf")

	got, err := outputPath(eng, res, input, &convertOptions{format: "xlsx"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("reportes", "Balance_Comprobacion_2024-03-05.xlsx"), got)

	got, err = outputPath(eng, res, input, &convertOptions{format: "csv", nameFromInput: true})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("reportes", "marzo_balance_extraido.csv"), got)

	_, err = outputPath(eng, res, input, &convertOptions{format: "xlsx", output: "/nonexistent/dir/out.xlsx"})
	assert.ErrorContains(t, err, "output directory does not exist")
}

func TestConvertCommand_RequiresInput(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"convert"})

	// convert requires at least one input.
	assert.Error(t, root.Execute())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Caja", truncate("Caja", 10))
	assert.Equal(t, "Proveedo…", truncate("Proveedores Nacionales", 9))
}

func TestWriteCSV_WritesSummaryAlongside(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "balance.csv")
	res := &models.Result{
		Date:    "05/03/2024",
		Records: []models.AccountRecord{models.NewAccountRecord("101", "Caja")},
		Summary: []models.SummaryRow{{Label: "Total de Cuentas", Value: "1"}},
	}

	require.NoError(t, writeCSV(path, res))

	detail, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(detail), "101,Caja,0.00,0.00,0.00,0.00")

	summary, err := os.ReadFile(filepath.Join(dir, "balance_resumen.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Concepto,Valor\nTotal de Cuentas,1\n", string(summary))
}
