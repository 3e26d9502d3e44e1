package api

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/trial-balance-converter/internal/engine"
	"github.com/insightdelivered/trial-balance-converter/internal/extractor"
	"github.com/insightdelivered/trial-balance-converter/internal/logger"
	"github.com/insightdelivered/trial-balance-converter/internal/models"
	"github.com/insightdelivered/trial-balance-converter/internal/writer"
)

// PageBreak separates pages in client-extracted text.
const PageBreak = "\n---PAGE_BREAK---\n"

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success    bool                   `json:"success"`
	Error      string                 `json:"error,omitempty"`
	RunID      string                 `json:"runId,omitempty"`
	Date       string                 `json:"date,omitempty"`
	Filename   string                 `json:"filename,omitempty"`
	Records    []models.AccountRecord `json:"records"`
	Summary    []models.SummaryRow    `json:"summary,omitempty"`
	Warnings   *models.Warnings       `json:"warnings,omitempty"`
	Messages   []string               `json:"messages,omitempty"`
	Count      int                    `json:"count"`
	Pages      int                    `json:"pages,omitempty"`
	EmptyPages []int                  `json:"emptyPages,omitempty"`
	RawText    string                 `json:"rawText,omitempty"`
	Version    string                 `json:"version,omitempty"`
	DebugLines []models.DebugLine     `json:"debugLines,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	StaticDir string
	Version   string
	// DatePages bounds the statement date search of each request.
	DatePages int
	Log       zerolog.Logger
}

// NewApp returns a fiber app with the API routes registered.
func NewApp(h *Handler, bodyLimitMB int) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             bodyLimitMB << 20,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return writeError(c, code, err.Error())
		},
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "POST,GET,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/convert", h.HandleConvert)

	if h.StaticDir != "" {
		app.Static("/", h.StaticDir)
		// SPA: unknown non-API paths get index.html
		app.Get("/*", func(c *fiber.Ctx) error {
			if strings.HasPrefix(c.Path(), "/api/") {
				return fiber.ErrNotFound
			}
			return c.SendFile(filepath.Join(h.StaticDir, "index.html"))
		})
	}
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": h.Version,
		"engine":  "fiber",
	})
}

// HandleConvert accepts a multipart form with either a PDF in "file" or
// page texts in "extractedText", and answers with JSON, xlsx or csv
// according to "format".
func (h *Handler) HandleConvert(c *fiber.Ctx) error {
	format := strings.ToLower(c.FormValue("format", "json"))
	switch format {
	case "json", "xlsx", "csv":
	default:
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Unknown format %q. Use json, xlsx or csv.", format))
	}

	pages := extractor.SplitPages(c.FormValue("extractedText"), PageBreak)
	if len(pages) == 0 {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file' or 'extractedText'.")
		}
		if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
			return writeError(c, fiber.StatusBadRequest, "Only PDF files are supported.")
		}

		tmp, err := os.CreateTemp("", "balance-*.pdf")
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to create temp file.")
		}
		tmp.Close()
		defer os.Remove(tmp.Name())

		if err := c.SaveFile(fh, tmp.Name()); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
		}
		pages, err = extractor.ExtractText(tmp.Name())
		if err != nil {
			h.Log.Warn().Err(err).Str("file", fh.Filename).Msg("extraction failed")
			return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("PDF extraction failed: %v", err))
		}
	}

	eng := engine.New(engine.Options{
		DatePages: h.DatePages,
		Debug:     c.FormValue("debug") == "true",
	})
	ctx := logger.WithContext(c.UserContext(), h.Log)
	res, err := eng.Run(ctx, pages)
	if errors.Is(err, engine.ErrNoRecords) {
		return writeError(c, fiber.StatusUnprocessableEntity, "No account rows found. The PDF may not be a trial balance or its text layer is unusable.")
	}
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	filename := eng.OutputFilename(res)
	switch format {
	case "xlsx":
		var buf bytes.Buffer
		if err := (&writer.XLSXWriter{}).Write(&buf, res); err != nil {
			return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("Workbook generation failed: %v", err))
		}
		c.Attachment(filename)
		c.Set(fiber.HeaderContentType, xlsxContentType)
		return c.Send(buf.Bytes())
	case "csv":
		var buf bytes.Buffer
		if err := (&writer.CSVWriter{}).Write(&buf, res); err != nil {
			return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
		}
		c.Attachment(strings.TrimSuffix(filename, filepath.Ext(filename)) + ".csv")
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		return c.Send(buf.Bytes())
	}

	return c.JSON(ConvertResponse{
		Success:    true,
		RunID:      res.RunID,
		Date:       res.Date,
		Filename:   filename,
		Records:    res.Records,
		Summary:    res.Summary,
		Warnings:   &res.Warnings,
		Messages:   engine.WarningLines(res.Warnings),
		Count:      len(res.Records),
		Pages:      res.Pages,
		EmptyPages: res.EmptyPages,
		RawText:    strings.Join(pages, "\n--- PAGE BREAK ---\n"),
		Version:    h.Version,
		DebugLines: res.DebugLines,
	})
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success: false,
		Error:   msg,
		Records: []models.AccountRecord{},
	})
}
