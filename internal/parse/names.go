package parse

import (
	"regexp"
	"strings"

	"github.com/homekeep-labs/homekeeper/constants"
)

// Length gates for heuristic name candidates. Anything outside is noise
// (stray OCR glyphs on the short end, merged lines on the long end).
const (
	minStoreLen   = 3
	maxStoreLen   = 50
	minProductLen = 4
	maxProductLen = 100
)

var (
	reStoreLabel = regexp.MustCompile(`(?i)\b(?:store|shop|market|mart)\b[:\s]+(\S.*)$`)
	// Capitalized word run directly followed by a corporate suffix.
	reCorpSuffix = regexp.MustCompile(`\b((?:[A-Z][A-Za-z0-9&'.-]*\s+)+(?i:inc|llc|corp|store|shop)\b\.?)`)

	reProductLabel = regexp.MustCompile(`(?i)\b(?:item|product|description)\b[:\s]+(\S.*)$`)
	// Capitalized word run immediately preceding a dollar amount.
	reProductPrice = regexp.MustCompile(`\b((?:[A-Z][A-Za-z0-9&'-]*)(?:\s+[A-Z][A-Za-z0-9&'-]*)*)\s+\$\s*\d`)
)

// amountLabels are line labels that the capitalized-run pattern would
// otherwise misread as product names ("Total $394.39").
var amountLabels = map[string]struct{}{
	"total": {}, "subtotal": {}, "amount": {}, "paid": {},
	"price": {}, "tax": {}, "change": {}, "cash": {},
}

// Stores scans the given receipt lines for merchant-name candidates:
// known-retailer fragments first, then label-prefixed names, then
// corporate-suffix runs.
func Stores(lines []string) []string {
	var out []string
	for _, line := range lines {
		upper := strings.ToUpper(line)
		for _, retailer := range constants.KnownRetailers {
			if strings.Contains(upper, retailer) {
				out = appendStore(out, line)
				break
			}
		}
	}
	for _, line := range lines {
		if m := reStoreLabel.FindStringSubmatch(line); m != nil {
			out = appendStore(out, m[1])
		}
	}
	for _, line := range lines {
		for _, m := range reCorpSuffix.FindAllStringSubmatch(line, -1) {
			out = appendStore(out, m[1])
		}
	}
	return out
}

// Products scans the given receipt lines for item-name candidates:
// label-prefixed names first, then capitalized runs priced on the same line.
func Products(lines []string) []string {
	var out []string
	for _, line := range lines {
		if m := reProductLabel.FindStringSubmatch(line); m != nil {
			out = appendProduct(out, m[1])
		}
	}
	for _, line := range lines {
		for _, m := range reProductPrice.FindAllStringSubmatch(line, -1) {
			name := strings.TrimSpace(m[1])
			if _, label := amountLabels[strings.ToLower(name)]; label {
				continue
			}
			out = appendProduct(out, name)
		}
	}
	return out
}

func appendStore(out []string, candidate string) []string {
	candidate = strings.TrimSpace(candidate)
	if len(candidate) < minStoreLen || len(candidate) > maxStoreLen {
		return out
	}
	return append(out, candidate)
}

func appendProduct(out []string, candidate string) []string {
	candidate = strings.TrimSpace(candidate)
	if len(candidate) < minProductLen || len(candidate) > maxProductLen {
		return out
	}
	return append(out, candidate)
}
