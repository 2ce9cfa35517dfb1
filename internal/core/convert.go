package core

// convert.go provides the field normalizers for raw spreadsheet cells.
//
// These functions handle the messy reality of user-provided claim data:
//   - European and US decimal/thousands separators ("1.234,56" vs "1,234.56")
//   - Currency symbols mixed into amounts
//   - Day-first dates, ISO dates and spreadsheet serial numbers in one column
//   - Free-text status values in varying case and spelling
//
// None of them ever return an error: unparseable input degrades to a safe
// default (0, empty string, StatusNo). Strictness is deliberately traded for
// availability; the pipeline surfaces problems through its error summary
// instead of aborting.

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	serialDateRe   = regexp.MustCompile(`^\d{5}$`)
	isoDateRe      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	dayFirstDateRe = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)
)

// serialEpoch is the day-zero of the spreadsheet serial date model
// (1899-12-30, shared by the common spreadsheet formats).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// fallbackDateLayouts are tried, in order, for date strings that match none
// of the explicit patterns.
var fallbackDateLayouts = []string{
	"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006",
	"2006/01/02", "2006.01.02",
	"1/2/06", "01/02/06",
	"Jan 2, 2006", "2 Jan 2006",
	"20060102",
}

// diacriticStripper removes combining marks after NFD decomposition, so
// "Reclamación" and "Reclamacion" normalize identically.
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader lowercases, trims, collapses internal whitespace runs to a
// single space and strips diacritics. Pure and total.
func NormalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespaceRuns.ReplaceAllString(s, " ")
	if stripped, _, err := transform.String(diacriticStripper, s); err == nil {
		s = stripped
	}
	return s
}

// CleanCell trims whitespace and removes surrounding quotes and spreadsheet
// formula prefixes (="value") left behind by exports.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}
	return strings.Trim(s, `"'`)
}

// ParseAmount converts a raw cell to a numeric amount. Currency symbols and
// spaces are stripped first. When both ',' and '.' appear, the separator
// that occurs last is the decimal point and the other is a thousands
// separator; a lone ',' is treated as the decimal point. Malformed input
// yields 0, never an error.
func ParseAmount(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	s = strings.NewReplacer("€", "", "$", "", " ", "").Replace(s)

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			// 1,234.56
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// Comma is the decimal point; any earlier commas are grouping.
		s = strings.ReplaceAll(s[:lastComma], ",", "") + "." + s[lastComma+1:]
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}

// ParseDate converts a raw cell to a canonical YYYY-MM-DD string, or "" when
// the input is empty or unparseable.
//
// Accepted forms, in precedence order:
//   - 5-digit spreadsheet serial numbers counted from 1899-12-30
//   - ISO dates (YYYY-MM-DD, optionally followed by a time component)
//   - day-first D/M/YYYY or D-M-YYYY (European convention)
//   - a set of fallback layouts for anything else date-like
func ParseDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if serialDateRe.MatchString(s) {
		days, err := strconv.Atoi(s)
		if err == nil {
			return serialEpoch.AddDate(0, 0, days).Format("2006-01-02")
		}
	}

	if isoDateRe.MatchString(s) {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t.Format("2006-01-02")
		}
		return ""
	}

	if m := dayFirstDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		// time.Date normalizes overflow (32/13/2024 becomes a different
		// month); reject anything that did not round-trip.
		if t.Year() == year && int(t.Month()) == month && t.Day() == day {
			return t.Format("2006-01-02")
		}
		return ""
	}

	for _, layout := range fallbackDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// siSynonyms and parcialSynonyms are the allow-lists for ParseStatus,
// matched after lowercasing and trimming.
var (
	siSynonyms      = []string{"si", "aceptado", "ok", "aprobado", "completo"}
	parcialSynonyms = []string{"parcial", "parcialmente"}
)

// ParseStatus maps a raw cell to SI, NO or PARCIAL. Everything outside the
// allow-lists, including empty input, is NO.
func ParseStatus(raw string) Status {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, v := range siSynonyms {
		if s == v {
			return StatusSi
		}
	}
	for _, v := range parcialSynonyms {
		if s == v {
			return StatusParcial
		}
	}
	return StatusNo
}
