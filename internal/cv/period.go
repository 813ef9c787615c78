package cv

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	arrowReplacer = strings.NewReplacer(
		"->", " - ",
		"→", " - ",
		"▶", " - ",
		"►", " - ",
		"➜", " - ",
		"➔", " - ",
		"⇒", " - ",
		"–", " - ",
		"—", " - ",
	)
	yearDash    = regexp.MustCompile(`(\d{4})\s*-\s*(\d{4})`)
	spaceRun    = regexp.MustCompile(`\s{2,}`)
	yearToken   = regexp.MustCompile(`\d{4}`)
	seasonRange = regexp.MustCompile(`^\d{4} - \d{4}$`)
)

// NormalizeSeparators collapses arrow glyphs and long dashes to " - " and
// spaces "YYYY-YYYY" ranges. Hyphenated words are left alone.
func NormalizeSeparators(s string) string {
	s = arrowReplacer.Replace(s)
	s = yearDash.ReplaceAllString(s, "$1 - $2")
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// FormatPeriod normalizes an explicit season period. A "YYYY - YYYY" result is
// returned as is; otherwise the first two years found are joined; with fewer
// than two years the cleaned string is returned.
func FormatPeriod(raw string) string {
	clean := NormalizeSeparators(raw)
	if seasonRange.MatchString(clean) {
		return clean
	}
	years := yearToken.FindAllString(clean, 2)
	if len(years) == 2 {
		return years[0] + " - " + years[1]
	}
	return clean
}

// SeasonWindow returns the "YYYY - YYYY" window ending back years before the
// given year.
func SeasonWindow(year, back int) string {
	end := year - back
	return strconv.Itoa(end-1) + " - " + strconv.Itoa(end)
}

// LatestYear returns the greatest 4-digit year in s, or 0.
func LatestYear(s string) int {
	latest := 0
	for _, tok := range yearToken.FindAllString(s, -1) {
		if y, err := strconv.Atoi(tok); err == nil && y > latest {
			latest = y
		}
	}
	return latest
}
