package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/insightdelivered/trial-balance-converter/internal/models"
)

// CSVWriter writes the detail records of a result as CSV.
type CSVWriter struct {
	// IncludeHeader adds "# Fecha" and "# Run" metadata rows before the table.
	IncludeHeader bool
}

// WriteToFile writes the detail records to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, res *models.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, res)
}

// Write writes the detail records in CSV format to out. Column headers are
// the six detail column names.
func (w *CSVWriter) Write(out io.Writer, res *models.Result) error {
	if w.IncludeHeader {
		meta := csv.NewWriter(out)
		if res.Date != "" {
			meta.Write([]string{"# Fecha", res.Date})
		}
		if res.RunID != "" {
			meta.Write([]string{"# Run", res.RunID})
		}
		meta.Flush()
		if err := meta.Error(); err != nil {
			return fmt.Errorf("failed to write CSV metadata: %w", err)
		}
	}

	records := res.Records
	if records == nil {
		records = []models.AccountRecord{}
	}
	if err := gocsv.Marshal(&records, out); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}

// WriteSummary writes the summary rows as a two-column CSV.
func (w *CSVWriter) WriteSummary(out io.Writer, res *models.Result) error {
	rows := res.Summary
	if rows == nil {
		rows = []models.SummaryRow{}
	}
	if err := gocsv.Marshal(&rows, out); err != nil {
		return fmt.Errorf("failed to write CSV summary: %w", err)
	}
	return nil
}
