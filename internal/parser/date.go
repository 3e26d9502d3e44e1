package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultDatePages is how many leading pages are searched for the date.
const DefaultDatePages = 3

const dateLayout = "02/01/2006"

// titleDatePatterns anchor the date to the statement title, most specific
// first. Each captures day, month and year.
var titleDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`BALANCE\s+DE\s+COMPROBACION\s+DIARIO\s+EN\s+MONEDA\s+NACIONAL\s+AL\s+DIA\s+(\d{1,2})/(\d{1,2})/(\d{4})`),
	regexp.MustCompile(`BALANCE\s+DE\s+COMPROBACION\s+.*?AL\s+DIA\s+(\d{1,2})/(\d{1,2})/(\d{4})`),
	regexp.MustCompile(`BALANCE\s+DE\s+COMPROBACION\s+.*?AL\s+(\d{1,2})/(\d{1,2})/(\d{4})`),
	regexp.MustCompile(`BALANCE.*?COMPROBACION.*?AL\s+DIA\s+(\d{1,2})/(\d{1,2})/(\d{4})`),
	regexp.MustCompile(`BALANCE.*?COMPROBACION.*?AL\s+(\d{1,2})/(\d{1,2})/(\d{4})`),
	// Dot and hyphen delimiters.
	regexp.MustCompile(`BALANCE\s+DE\s+COMPROBACION\s+DIARIO\s+EN\s+MONEDA\s+NACIONAL\s+AL\s+DIA\s+(\d{1,2})\.(\d{1,2})\.(\d{4})`),
	regexp.MustCompile(`BALANCE\s+DE\s+COMPROBACION\s+DIARIO\s+EN\s+MONEDA\s+NACIONAL\s+AL\s+DIA\s+(\d{1,2})-(\d{1,2})-(\d{4})`),
	regexp.MustCompile(`BALANCE.*?COMPROBACION.*?AL\s+DIA\s+(\d{1,2})\.(\d{1,2})\.(\d{4})`),
	regexp.MustCompile(`BALANCE.*?COMPROBACION.*?AL\s+DIA\s+(\d{1,2})-(\d{1,2})-(\d{4})`),
}

// genericDatePatterns are tried only when no title pattern matched.
var genericDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`AL\s+(\d{1,2})/(\d{1,2})/(\d{4})`),
	regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`),
	regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})`),
	regexp.MustCompile(`(\d{1,2})-(\d{1,2})-(\d{4})`),
}

// Plausible statement years for untitled dates. Amounts such as
// "12.03.2019" inside a row must not be taken for the statement date.
const (
	minStatementYear = 2020
	maxStatementYear = 2030
)

// DateLocator finds the as-of date of a trial balance. It never fails:
// when nothing date-like is found it returns the current date.
type DateLocator struct {
	// MaxPages bounds how many leading pages are scanned.
	MaxPages int
	// Now supplies the fallback date.
	Now func() time.Time
}

// NewDateLocator returns a locator scanning maxPages pages (DefaultDatePages
// when maxPages < 1).
func NewDateLocator(maxPages int) *DateLocator {
	if maxPages < 1 {
		maxPages = DefaultDatePages
	}
	return &DateLocator{MaxPages: maxPages, Now: time.Now}
}

// Locate returns the statement date as DD/MM/YYYY.
func (l *DateLocator) Locate(pages []string) string {
	date, _ := l.LocateWithSource(pages)
	return date
}

// DateSource tells where a located date came from.
type DateSource string

const (
	DateFromTitle   DateSource = "title"
	DateFromGeneric DateSource = "generic"
	DateFromClock   DateSource = "clock"
)

// LocateWithSource is Locate plus which pass produced the date.
func (l *DateLocator) LocateWithSource(pages []string) (string, DateSource) {
	limit := l.MaxPages
	if limit < 1 {
		limit = DefaultDatePages
	}
	if limit > len(pages) {
		limit = len(pages)
	}

	texts := make([]string, 0, limit)
	for _, p := range pages[:limit] {
		if strings.TrimSpace(p) == "" {
			continue
		}
		texts = append(texts, foldText(p))
	}

	for _, text := range texts {
		for _, re := range titleDatePatterns {
			if m := re.FindStringSubmatch(text); m != nil {
				return padDate(m[1], m[2], m[3]), DateFromTitle
			}
		}
	}

	for _, text := range texts {
		for _, re := range genericDatePatterns {
			for _, m := range re.FindAllStringSubmatch(text, -1) {
				if date, ok := plausibleDate(m[1], m[2], m[3]); ok {
					return date, DateFromGeneric
				}
			}
		}
	}

	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	return now().Format(dateLayout), DateFromClock
}

func padDate(day, month, year string) string {
	d, _ := strconv.Atoi(day)
	m, _ := strconv.Atoi(month)
	return fmt.Sprintf("%02d/%02d/%s", d, m, year)
}

func plausibleDate(day, month, year string) (string, bool) {
	d, err1 := strconv.Atoi(day)
	m, err2 := strconv.Atoi(month)
	y, err3 := strconv.Atoi(year)
	if err1 != nil || err2 != nil || err3 != nil {
		return "", false
	}
	if d < 1 || d > 31 || m < 1 || m > 12 || y < minStatementYear || y > maxStatementYear {
		return "", false
	}
	return fmt.Sprintf("%02d/%02d/%04d", d, m, y), true
}

// foldText upper-cases text, strips accents and collapses whitespace so
// "Comprobación" and "COMPROBACION" match the same pattern.
func foldText(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return normalizeSpaces(strings.ToUpper(folded))
}

// LooksLikeTrialBalance reports whether the first pages carry the words of
// a trial balance title. It is a soft check used for warnings only.
func LooksLikeTrialBalance(pages []string) bool {
	limit := min(len(pages), DefaultDatePages)
	for _, p := range pages[:limit] {
		text := foldText(p)
		if strings.Contains(text, "BALANCE") && strings.Contains(text, "COMPROBACION") {
			return true
		}
	}
	return false
}

// FilenameDate converts a DD/MM/YYYY date to YYYY-MM-DD, falling back to
// now when the date does not have three parts.
func FilenameDate(date string, now time.Time) string {
	parts := strings.Split(date, "/")
	if len(parts) == 3 && parts[0] != "" && parts[1] != "" && parts[2] != "" {
		return parts[2] + "-" + parts[1] + "-" + parts[0]
	}
	return now.Format("2006-01-02")
}

// OutputFilename suggests the workbook name for a statement date.
func OutputFilename(date string, now time.Time) string {
	return "Balance_Comprobacion_" + FilenameDate(date, now) + ".xlsx"
}
