// Package engine runs one trial balance extraction: statement date, row
// parsing per page, validation and the reconciliation summary.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/insightdelivered/trial-balance-converter/internal/extractor"
	"github.com/insightdelivered/trial-balance-converter/internal/logger"
	"github.com/insightdelivered/trial-balance-converter/internal/models"
	"github.com/insightdelivered/trial-balance-converter/internal/parser"
	"github.com/insightdelivered/trial-balance-converter/internal/reconcile"
)

// ErrNoRecords is returned when no page produced a single account row.
var ErrNoRecords = errors.New("no account rows found in document")

// Options configure a run.
type Options struct {
	// DatePages bounds how many leading pages are searched for the date.
	DatePages int
	// Debug keeps per-line parse results in the Result.
	Debug bool
	// Now supplies the fallback date; time.Now when nil.
	Now func() time.Time
}

// Engine converts page texts into a Result. It holds no per-run state, so
// one Engine may serve concurrent runs.
type Engine struct {
	opts Options
}

// New returns an Engine with the given options.
func New(opts Options) *Engine {
	if opts.DatePages < 1 {
		opts.DatePages = parser.DefaultDatePages
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{opts: opts}
}

// Run processes the pages of one document in order. Empty pages are
// skipped with a warning; unparsable lines are skipped silently. The only
// error is ErrNoRecords, returned together with the partial Result.
func (e *Engine) Run(ctx context.Context, pages []string) (*models.Result, error) {
	res := &models.Result{
		RunID: uuid.NewString(),
		Pages: len(pages),
	}
	log := logger.FromContext(ctx).With().Str("run_id", res.RunID).Logger()

	if !parser.LooksLikeTrialBalance(pages) {
		log.Warn().Msg("document title does not mention BALANCE DE COMPROBACION")
	}

	locator := &parser.DateLocator{MaxPages: e.opts.DatePages, Now: e.opts.Now}
	date, source := locator.LocateWithSource(pages)
	res.Date = date
	if source == parser.DateFromClock {
		log.Warn().Str("date", date).Msg("no statement date found, using current date")
	} else {
		log.Info().Str("date", date).Str("source", string(source)).Msg("statement date located")
	}

	var raw []models.AccountRecord
	for i, text := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pageNum := i + 1
		if strings.TrimSpace(text) == "" {
			res.EmptyPages = append(res.EmptyPages, pageNum)
			log.Warn().Int("page", pageNum).Msg("no text extracted from page, skipping")
			continue
		}

		records, debug := parser.ParsePage(pageNum, text)
		raw = append(raw, records...)
		if e.opts.Debug {
			res.DebugLines = append(res.DebugLines, debug...)
		}
		log.Debug().Int("page", pageNum).Int("rows", len(records)).Msg("page parsed")
	}
	res.RawRows = len(raw)
	log.Info().Int("pages", len(pages)).Int("rows", len(raw)).Msg("rows extracted")

	records, warnings := reconcile.Validate(raw)
	res.Records = records
	res.Warnings = warnings
	logWarnings(log.Info(), warnings, len(records))

	res.Summary = reconcile.Summarize(records).Rows()

	if len(records) == 0 {
		return res, ErrNoRecords
	}
	return res, nil
}

// ConvertFile extracts the text of a PDF and runs the engine over it. An
// unreadable document is the only failure that yields no Result.
func (e *Engine) ConvertFile(ctx context.Context, path string) (*models.Result, error) {
	pages, err := extractor.ExtractText(path)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", path, err)
	}
	return e.Run(ctx, pages)
}

// OutputFilename suggests the workbook name for a result.
func (e *Engine) OutputFilename(res *models.Result) string {
	return parser.OutputFilename(res.Date, e.opts.Now())
}
