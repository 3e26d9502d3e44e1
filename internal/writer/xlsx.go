package writer

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/trial-balance-converter/internal/models"
)

// Sheet names of the generated workbook.
const (
	DetailSheet  = "Balance_Comprobacion"
	SummarySheet = "Resumen"
)

// TitlePrefix precedes the statement date in the merged title row.
const TitlePrefix = "BALANCE DE COMPROBACIÓN - FECHA: "

// XLSXWriter writes a result as a workbook: the detail sheet with a merged
// title row carrying the statement date, and a summary sheet.
type XLSXWriter struct{}

// WriteToFile writes the workbook to path.
func (w *XLSXWriter) WriteToFile(path string, res *models.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, res)
}

// Write writes the workbook to out.
func (w *XLSXWriter) Write(out io.Writer, res *models.Result) error {
	f, err := buildWorkbook(res)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

type styles struct {
	title, header, money int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return s, fmt.Errorf("title style: %w", err)
	}

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D7E4BC"}, Pattern: 1},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top", WrapText: true},
	})
	if err != nil {
		return s, fmt.Errorf("header style: %w", err)
	}

	s.money, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return s, fmt.Errorf("money style: %w", err)
	}
	return s, nil
}

func buildWorkbook(res *models.Result) (*excelize.File, error) {
	f := excelize.NewFile()
	ok := false
	defer func() {
		if !ok {
			f.Close()
		}
	}()

	if err := f.SetSheetName("Sheet1", DetailSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeDetailSheet(f, st, res); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, st, res); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	ok = true
	return f, nil
}

// writeDetailSheet lays out: row 1 merged title, row 2 headers, data from row 3.
func writeDetailSheet(f *excelize.File, st styles, res *models.Result) error {
	sh := DetailSheet

	if err := f.SetColStyle(sh, "C:F", st.money); err != nil {
		return fmt.Errorf("amount column style: %w", err)
	}
	widths := []struct {
		from, to string
		width    float64
	}{
		{"A", "A", 12},
		{"B", "B", 35},
		{"C", "F", 15},
	}
	for _, cw := range widths {
		if err := f.SetColWidth(sh, cw.from, cw.to, cw.width); err != nil {
			return fmt.Errorf("column width %s: %w", cw.from, err)
		}
	}

	if res.Date != "" {
		if err := f.SetCellValue(sh, "A1", TitlePrefix+res.Date); err != nil {
			return err
		}
		if err := f.MergeCell(sh, "A1", "F1"); err != nil {
			return fmt.Errorf("merge title: %w", err)
		}
		if err := f.SetCellStyle(sh, "A1", "F1", st.title); err != nil {
			return err
		}
		if err := f.SetRowHeight(sh, 1, 25); err != nil {
			return err
		}
	}

	header := append([]string(nil), models.DetailColumns...)
	if err := f.SetSheetRow(sh, "A2", &header); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	if err := f.SetCellStyle(sh, "A2", "F2", st.header); err != nil {
		return err
	}

	for i, rec := range res.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return err
		}
		row := rec.Row()
		if err := f.SetSheetRow(sh, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+3, err)
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, st styles, res *models.Result) error {
	sh := SummarySheet
	if _, err := f.NewSheet(sh); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	header := []string{"Concepto", "Valor"}
	if err := f.SetSheetRow(sh, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sh, "A1", "B1", st.header); err != nil {
		return err
	}
	if err := f.SetColWidth(sh, "A", "A", 32); err != nil {
		return err
	}
	if err := f.SetColWidth(sh, "B", "B", 20); err != nil {
		return err
	}

	for i, r := range res.Summary {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []string{r.Label, r.Value}
		if err := f.SetSheetRow(sh, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+2, err)
		}
	}
	return nil
}
