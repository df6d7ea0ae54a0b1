package entity

// MatchResult pairs a matched inventory item with its similarity score in
// [0,1]. Callers receive nil instead of a MatchResult when nothing clears
// the acceptance threshold.
type MatchResult struct {
	Item  InventoryItem `json:"item"`
	Score float64       `json:"score"`
}
