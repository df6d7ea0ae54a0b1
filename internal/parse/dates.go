package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/homekeep-labs/homekeeper/internal/entity"
)

// Date recognition is an ordered ladder of independent strategies. Each
// strategy is applied to every line before the next one runs, so candidate
// order is strategy-major: higher-priority forms surface first, line order
// breaks ties within a strategy. All strategies are non-exclusive; duplicate
// values collapse in the selector.
type dateStrategy struct {
	name string
	re   *regexp.Regexp
	// build turns the submatch groups into a calendar date. ok=false drops
	// the candidate silently.
	build func(m []string) (time.Time, bool)
}

var monthsByAbbrev = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var dateStrategies = []dateStrategy{
	{
		name:  "labeled-numeric",
		re:    regexp.MustCompile(`(?i)\b(?:date|purchased|sold|transaction)\b[:#\s]*(\d{1,2})[/-](\d{1,2})[/-](\d{4})\b`),
		build: func(m []string) (time.Time, bool) { return numericDate(m[1], m[2], m[3]) },
	},
	{
		name:  "numeric-4y",
		re:    regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{4})\b`),
		build: func(m []string) (time.Time, bool) { return numericDate(m[1], m[2], m[3]) },
	},
	{
		name:  "iso-order",
		re:    regexp.MustCompile(`\b(\d{4})[/-](\d{1,2})[/-](\d{1,2})\b`),
		build: func(m []string) (time.Time, bool) { return numericDate(m[1], m[2], m[3]) },
	},
	{
		name: "month-name",
		re:   regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(\d{1,2}),?\s+(\d{4})\b`),
		build: func(m []string) (time.Time, bool) {
			month, ok := monthsByAbbrev[strings.ToLower(m[1])]
			if !ok {
				return time.Time{}, false
			}
			day, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			return makeDate(year, int(month), day)
		},
	},
	{
		// Two-digit year. The trailing \b rejects a match whose "year"
		// is really the first half of a four-digit one.
		name:  "numeric-2y",
		re:    regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2})\b`),
		build: func(m []string) (time.Time, bool) { return numericDate(m[1], m[2], m[3]) },
	},
}

// Dates scans the given receipt lines and returns every date candidate the
// strategy ladder recognizes, raw substring included, in ranking order.
func Dates(lines []string) []entity.DateCandidate {
	var out []entity.DateCandidate
	for _, s := range dateStrategies {
		for _, line := range lines {
			for _, m := range s.re.FindAllStringSubmatch(line, -1) {
				if v, ok := s.build(m); ok {
					out = append(out, entity.DateCandidate{RawText: m[0], Value: v})
				}
			}
		}
	}
	return out
}

// numericDate applies the fixed normalization policy for three-group numeric
// dates: a 4-digit first group reads as YYYY-MM-DD, a 4-digit third group as
// US month-first MM/DD/YYYY, and a 2-digit year expands the century at the
// 1950 pivot. Day/month order is never inferred from content.
func numericDate(a, b, c string) (time.Time, bool) {
	na, _ := strconv.Atoi(a)
	nb, _ := strconv.Atoi(b)
	nc, _ := strconv.Atoi(c)
	switch {
	case len(a) == 4:
		return makeDate(na, nb, nc)
	case len(c) == 4:
		return makeDate(nc, na, nb)
	default:
		year := nc
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
		return makeDate(year, na, nb)
	}
}

// makeDate constructs a midnight-UTC calendar date, rejecting combinations
// that only exist through normalization (e.g. Feb 30).
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
