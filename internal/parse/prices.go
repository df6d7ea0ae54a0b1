package parse

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/homekeep-labs/homekeeper/internal/entity"
)

// amount is a number with exactly two decimal digits, with or without
// thousands separators. The trailing \b stops three-decimal figures from
// matching as two.
const amountPattern = `(\d{1,3}(?:,\d{3})+\.\d{2}|\d+\.\d{2})\b`

type priceStrategy struct {
	name string
	re   *regexp.Regexp
}

var priceStrategies = []priceStrategy{
	{
		// "Subtotal" is excluded here by the leading \b: "total" inside
		// "subtotal" has no word boundary before it.
		name: "labeled-total",
		re:   regexp.MustCompile(`(?i)\b(?:total|amount|paid|purchase|price)\b[:\s]*\$?\s*` + amountPattern),
	},
	{
		name: "labeled-subtotal",
		re:   regexp.MustCompile(`(?i)\bsub\s?total\b[:\s]*\$?\s*` + amountPattern),
	},
	{
		name: "bare-dollar",
		re:   regexp.MustCompile(`\$\s*` + amountPattern),
	},
}

// Prices scans the given receipt lines and returns every currency candidate,
// in ranking order: labeled totals first, then subtotals, then bare amounts.
func Prices(lines []string) []entity.PriceCandidate {
	var out []entity.PriceCandidate
	for _, s := range priceStrategies {
		for _, line := range lines {
			for _, m := range s.re.FindAllStringSubmatch(line, -1) {
				if v, ok := parseAmount(m[1]); ok {
					out = append(out, entity.PriceCandidate{RawText: m[0], Value: v})
				}
			}
		}
	}
	return out
}

// parseAmount strips separators and parses a two-decimal amount. Candidates
// that are not positive finite numbers are dropped.
func parseAmount(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return math.Round(v*100) / 100, true
}

// FormatAmount renders an amount the way money fields travel between layers.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64)
}
