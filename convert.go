package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/trial-balance-converter/internal/engine"
	"github.com/insightdelivered/trial-balance-converter/internal/models"
	"github.com/insightdelivered/trial-balance-converter/internal/writer"
)

// previewRows is how many detail rows are echoed after a conversion.
const previewRows = 10

type convertOptions struct {
	output        string
	format        string
	nameFromInput bool
	debug         bool
}

func newConvertCmd(a *app) *cobra.Command {
	opts := &convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert <input.pdf> [input2.pdf ...]",
		Short: "Convert trial balance PDFs to Excel or CSV",
		Example: `  # Writes Balance_Comprobacion_<YYYY-MM-DD>.xlsx next to the input
  trial-balance-converter convert balance.pdf

  # Name the output after the input: balance_balance_extraido.xlsx
  trial-balance-converter convert --name-from-input balance.pdf

  # CSV to an explicit path
  trial-balance-converter convert --format csv --output cuentas.csv balance.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "" && len(args) > 1 {
				return errors.New("--output can only be used with a single input file")
			}
			switch opts.format {
			case "xlsx", "csv":
			default:
				return fmt.Errorf("unknown format %q, supported: xlsx, csv", opts.format)
			}

			eng := engine.New(engine.Options{
				DatePages: a.cfg.Date.MaxPages,
				Debug:     opts.debug,
			})
			for _, input := range args {
				if err := convertFile(cmd, eng, input, opts); err != nil {
					return fmt.Errorf("processing %s: %w", input, err)
				}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "Output file path (defaults to a name derived from the statement date)")
	f.StringVar(&opts.format, "format", "xlsx", "Output format: xlsx, csv")
	f.BoolVar(&opts.nameFromInput, "name-from-input", false, "Name the output <input>_balance_extraido.<ext>")
	f.BoolVar(&opts.debug, "debug", false, "Print per-line parse results")
	return cmd
}

func validateInput(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", path)
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("input is a directory: %s", path)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}
	return nil
}

func outputPath(eng *engine.Engine, res *models.Result, input string, opts *convertOptions) (string, error) {
	if opts.output != "" {
		dir := filepath.Dir(opts.output)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return "", fmt.Errorf("output directory does not exist: %s", dir)
		}
		return opts.output, nil
	}

	dir := filepath.Dir(input)
	if opts.nameFromInput {
		stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		return filepath.Join(dir, stem+"_balance_extraido."+opts.format), nil
	}
	name := eng.OutputFilename(res)
	name = strings.TrimSuffix(name, filepath.Ext(name)) + "." + opts.format
	return filepath.Join(dir, name), nil
}

func convertFile(cmd *cobra.Command, eng *engine.Engine, input string, opts *convertOptions) error {
	if err := validateInput(input); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Processing: %s\n", input)

	res, err := eng.ConvertFile(cmd.Context(), input)
	if errors.Is(err, engine.ErrNoRecords) {
		fmt.Fprintf(out, "  Extracted text from %d page(s)\n", res.Pages)
		fmt.Fprintln(out, "  Warning: No account rows found. The PDF may not be a trial balance or may be scanned.")
		return err
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "  Extracted text from %d page(s)\n", res.Pages)
	fmt.Fprintf(out, "  Statement date: %s\n", res.Date)
	fmt.Fprintf(out, "  Found %d account(s) from %d row(s)\n", len(res.Records), res.RawRows)

	path, err := outputPath(eng, res, input, opts)
	if err != nil {
		return err
	}
	switch opts.format {
	case "csv":
		err = writeCSV(path, res)
	default:
		err = (&writer.XLSXWriter{}).WriteToFile(path, res)
	}
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	fmt.Fprintf(out, "  Output: %s\n", path)

	printReport(cmd, res, opts.debug)
	return nil
}

// writeCSV writes the detail table to path and the summary next to it as
// <stem>_resumen.csv, since CSV has no second sheet.
func writeCSV(path string, res *models.Result) error {
	w := &writer.CSVWriter{IncludeHeader: true}
	if err := w.WriteToFile(path, res); err != nil {
		return err
	}

	summaryPath := strings.TrimSuffix(path, filepath.Ext(path)) + "_resumen.csv"
	f, err := os.Create(summaryPath)
	if err != nil {
		return fmt.Errorf("failed to create summary file %q: %w", summaryPath, err)
	}
	defer f.Close()
	return w.WriteSummary(f, res)
}

func printReport(cmd *cobra.Command, res *models.Result, debug bool) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Resumen:")
	for _, row := range res.Summary {
		fmt.Fprintf(out, "    %-32s %s\n", row.Label, row.Value)
	}

	if lines := engine.WarningLines(res.Warnings); len(lines) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Advertencias:")
		for _, l := range lines {
			fmt.Fprintf(out, "    - %s\n", l)
		}
	}

	n := min(previewRows, len(res.Records))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  First %d row(s):\n", n)
	fmt.Fprintf(out, "    %-10s %-30s %18s %18s %18s %18s\n", "CODIGO", "NOMBRE", "SALDO_ANTERIOR", "CARGOS", "ABONOS", "SALDO_ACTUAL")
	for _, r := range res.Records[:n] {
		fmt.Fprintf(out, "    %-10s %-30s %18s %18s %18s %18s\n",
			r.Code, truncate(r.Name, 30), r.PriorBalance, r.Debits, r.Credits, r.CurrentBalance)
	}

	if debug {
		fmt.Fprintln(out)
		for _, d := range res.DebugLines {
			fmt.Fprintf(out, "    p%d:%d [%s] %s\n", d.Page, d.LineNum, d.Result, d.Text)
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
