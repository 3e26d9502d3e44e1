package extractor

import (
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ErrUnreadable is returned when the document cannot be opened or yields
// no readable text by any method.
var ErrUnreadable = errors.New("document unreadable")

// columnGap is the horizontal distance (in PDF units) between two text
// pieces of the same row above which they are treated as separate columns.
const columnGap = 15

// ExtractText reads a PDF file and returns the text of each page, in page
// order. Pages without text are returned as empty strings so page numbers
// stay aligned with the document.
//
// The ledongthuc/pdf library is tried first; when it fails or produces
// unreadable text the external pdftotext command (poppler-utils) is used.
func ExtractText(filePath string) ([]string, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	pages, libErr := extractWithLibrary(filePath)
	if libErr == nil && isReadableText(pages) {
		return pages, nil
	}

	popplerPages, popplerErr := extractWithPdftotext(filePath)
	if popplerErr == nil && isReadableText(popplerPages) {
		return popplerPages, nil
	}

	if libErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, libErr)
	}
	return nil, fmt.Errorf("%w: no readable text found; the file may be image-based or use fonts that cannot be decoded", ErrUnreadable)
}

// extractWithLibrary uses ledongthuc/pdf, first grouping words by row and
// then rebuilding rows from positioned text when that yields nothing usable.
func extractWithLibrary(filePath string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return nil, openErr
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, errors.New("PDF has no pages")
	}

	pages = extractByRow(r, numPages)
	if isReadableText(pages) {
		return pages, nil
	}

	return extractByContent(r, numPages), nil
}

// extractByRow joins the words of each text row reported by the library.
func extractByRow(r *pdf.Reader, numPages int) []string {
	pages := make([]string, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			if line := strings.TrimSpace(strings.Join(words, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages[i-1] = strings.Join(lines, "\n")
	}
	return pages
}

// extractByContent rebuilds rows from positioned text: pieces are grouped
// by rounded Y (top to bottom) and ordered by X within a row.
func extractByContent(r *pdf.Reader, numPages int) []string {
	type piece struct {
		x float64
		s string
	}

	pages := make([]string, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()

		rowsByY := make(map[int][]piece)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			y := int(math.Round(t.Y))
			rowsByY[y] = append(rowsByY[y], piece{x: t.X, s: t.S})
		}

		ys := make([]int, 0, len(rowsByY))
		for y := range rowsByY {
			ys = append(ys, y)
		}
		// PDF Y grows upwards.
		sort.Sort(sort.Reverse(sort.IntSlice(ys)))

		var lines []string
		for _, y := range ys {
			row := rowsByY[y]
			sort.Slice(row, func(a, b int) bool { return row[a].x < row[b].x })

			var sb strings.Builder
			for j, p := range row {
				if j > 0 && p.x-row[j-1].x > columnGap {
					sb.WriteString(" ")
				}
				sb.WriteString(p.s)
			}
			if line := strings.TrimSpace(sb.String()); line != "" {
				lines = append(lines, line)
			}
		}
		pages[i-1] = strings.Join(lines, "\n")
	}
	return pages
}

// extractWithPdftotext runs pdftotext page by page in layout mode.
func extractWithPdftotext(filePath string) ([]string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext not available: %w", err)
	}

	numPages := pdfinfoPageCount(filePath)
	if numPages == 0 {
		return nil, errors.New("pdfinfo could not count pages")
	}

	pages := make([]string, numPages)
	for i := 1; i <= numPages; i++ {
		n := strconv.Itoa(i)
		out, err := exec.Command("pdftotext", "-layout", "-f", n, "-l", n, filePath, "-").Output()
		if err != nil {
			continue
		}
		pages[i-1] = strings.TrimSpace(string(out))
	}
	return pages, nil
}

// pdfinfoPageCount returns the page count reported by pdfinfo, or 0.
func pdfinfoPageCount(filePath string) int {
	out, err := exec.Command("pdfinfo", filePath).Output()
	if err != nil {
		return 0
	}
	for _, line := range strings.Split(string(out), "\n") {
		if v, ok := strings.CutPrefix(line, "Pages:"); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}
	return 0
}

// statementWords appear in virtually every trial balance page. Text with
// none of them is treated as undecoded garbage.
var statementWords = []string{
	"balance", "comprobacion", "comprobación", "saldo", "cargos", "abonos",
	"cuenta", "codigo", "código", "moneda", "total", "pagina", "página",
}

// textQuality returns the share (0.0-1.0) of characters that are ASCII
// letters, digits, Spanish letters, whitespace or common punctuation.
func textQuality(pages []string) float64 {
	total, readable := 0, 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if isReadableRune(r) {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

func isReadableRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case unicode.IsSpace(r):
		return true
	case strings.ContainsRune("ÁÉÍÓÚÑÜáéíóúñü", r):
		return true
	case strings.ContainsRune(".,-/:;()'\"$%&#*+=_", r):
		return true
	}
	return false
}

func containsStatementWords(pages []string) bool {
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range statementWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// isReadableText requires more than 50 characters of text, at least 60%
// readable characters and one recognizable statement word.
func isReadableText(pages []string) bool {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	if n <= 50 {
		return false
	}
	if textQuality(pages) <= 0.6 {
		return false
	}
	return containsStatementWords(pages)
}

// IsReadableText is the exported version for use by other packages.
func IsReadableText(pages []string) bool {
	return isReadableText(pages)
}

// SplitPages splits pre-extracted text on sep, keeping empty pages.
func SplitPages(text, sep string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return strings.Split(text, sep)
}
