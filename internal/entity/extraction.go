package entity

import "time"

// DateCandidate is one recognized date occurrence, paired with the matched
// source substring it was parsed from.
type DateCandidate struct {
	RawText string    `json:"raw_text"`
	Value   time.Time `json:"value"`
}

// PriceCandidate is one recognized currency amount, rounded to cents.
type PriceCandidate struct {
	RawText string  `json:"raw_text"`
	Value   float64 `json:"value"`
}

// ExtractionResult is the structured record produced for one receipt scan.
// Candidate slices hold every distinct value found (deduplicated by parsed
// value, in ranking order); the scalar fields hold the selected winners.
// A non-nil Error means acquisition failed and every data field is nil/empty.
type ExtractionResult struct {
	Text       string `json:"text"`
	Confidence int    `json:"confidence"`

	PurchaseDate       *time.Time `json:"purchase_date"`
	PurchasePrice      *string    `json:"purchase_price"` // decimal string, two places
	WarrantyExpiration *time.Time `json:"warranty_expiration"`
	StoreName          *string    `json:"store_name"`
	ProductName        *string    `json:"product_name"`

	Dates    []DateCandidate  `json:"dates"`
	Prices   []PriceCandidate `json:"prices"`
	Stores   []string         `json:"stores"`
	Products []string         `json:"products"`

	Error *string `json:"error"`
}

// Failed reports whether the pipeline ended in the failed state.
func (r *ExtractionResult) Failed() bool {
	return r.Error != nil
}
