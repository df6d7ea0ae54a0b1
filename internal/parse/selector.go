package parse

import (
	"math"
	"time"

	"github.com/homekeep-labs/homekeeper/internal/entity"
)

// Selection is the deduplicated, ranked view of one receipt's candidates:
// the full per-field lists (first occurrence of each distinct value, in the
// order the candidates arrived) plus one selected winner per field.
type Selection struct {
	Dates    []entity.DateCandidate
	Prices   []entity.PriceCandidate
	Stores   []string
	Products []string

	PurchaseDate  *time.Time
	PurchasePrice *float64
	StoreName     *string
	ProductName   *string
}

// Select applies the tie-break policy: most recent date, highest amount,
// first-seen store and product. Empty candidate lists select nil.
func Select(dates []entity.DateCandidate, prices []entity.PriceCandidate, stores, products []string) Selection {
	sel := Selection{
		Dates:    dedupeDates(dates),
		Prices:   dedupePrices(prices),
		Stores:   dedupeStrings(stores),
		Products: dedupeStrings(products),
	}

	for i := range sel.Dates {
		if sel.PurchaseDate == nil || sel.Dates[i].Value.After(*sel.PurchaseDate) {
			sel.PurchaseDate = &sel.Dates[i].Value
		}
	}
	for i := range sel.Prices {
		if sel.PurchasePrice == nil || sel.Prices[i].Value > *sel.PurchasePrice {
			sel.PurchasePrice = &sel.Prices[i].Value
		}
	}
	if len(sel.Stores) > 0 {
		sel.StoreName = &sel.Stores[0]
	}
	if len(sel.Products) > 0 {
		sel.ProductName = &sel.Products[0]
	}
	return sel
}

func dedupeDates(in []entity.DateCandidate) []entity.DateCandidate {
	seen := make(map[string]struct{}, len(in))
	out := make([]entity.DateCandidate, 0, len(in))
	for _, c := range in {
		key := c.Value.Format("2006-01-02")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

func dedupePrices(in []entity.PriceCandidate) []entity.PriceCandidate {
	seen := make(map[int64]struct{}, len(in))
	out := make([]entity.PriceCandidate, 0, len(in))
	for _, c := range in {
		// key on cents: float equality is not a dedupe key
		key := int64(math.Round(c.Value * 100))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
