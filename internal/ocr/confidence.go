package ocr

import (
	"regexp"
	"strings"
)

var (
	reDateish   = regexp.MustCompile(`\b\d{1,4}[/-]\d{1,2}[/-]\d{2,4}\b`)
	reCurrency  = regexp.MustCompile(`\b(usd|eur|gbp|cad|aud)\b|[$£€]`)
	reAmountish = regexp.MustCompile(`\b\d{1,3}(,\d{3})*\.\d{2}\b|\b\d+\.\d{2}\b`)
)

// heuristicConfidence scores decoded text 0..1 on how receipt-shaped it
// looks: date-ish, currency-ish, and amount-ish artifacts each add a bump.
func heuristicConfidence(txt string) float64 {
	low := strings.ToLower(txt)
	score := 0.2 // base
	if reDateish.MatchString(low) {
		score += 0.2
	}
	if reCurrency.MatchString(low) {
		score += 0.15
	}
	if reAmountish.MatchString(low) {
		score += 0.15
	}
	if len(txt) > 120 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
