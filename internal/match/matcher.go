package match

import (
	"log/slog"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/homekeep-labs/homekeeper/internal/entity"
)

// DefaultThreshold is the fixed acceptance threshold: the best score must
// strictly exceed it for a match to be returned.
const DefaultThreshold = 0.5

// Config holds thresholds for the matcher.
type Config struct {
	Threshold float64 // default 0.5
}

// Matcher decides whether free-form text (a typed query or a whole OCR blob)
// refers to an item already in the inventory. Scoring combines substring
// containment with normalized edit distance; the first candidate reaching
// the maximum score wins.
type Matcher struct {
	logger    *slog.Logger
	threshold float64
}

func NewMatcher(cfg Config, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{logger: logger, threshold: threshold}
}

// Match returns the best-scoring inventory item for the query, or nil when
// the query is blank or nothing clears the threshold. The scan is stable:
// on a tie the earlier item keeps the win.
func (m *Matcher) Match(query string, items []entity.InventoryItem) *entity.MatchResult {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	best := -1.0
	var bestItem *entity.InventoryItem
	for i := range items {
		s := Similarity(query, items[i].Name)
		if s > best {
			best = s
			bestItem = &items[i]
		}
	}
	if bestItem == nil || best <= m.threshold {
		return nil
	}

	m.logger.Debug("inventory match", "item", bestItem.Name, "score", best)
	return &entity.MatchResult{Item: *bestItem, Score: best}
}

// MatchText is the convenience form for matching a whole OCR blob rather
// than a single query string.
func (m *Matcher) MatchText(items []entity.InventoryItem, ocrText string) *entity.MatchResult {
	return m.Match(ocrText, items)
}

// Similarity scores how closely a candidate name matches the query, in
// [0,1]. Case-insensitive containment in either direction earns at least
// 0.5, growing with the length ratio of the shorter string to the longer;
// otherwise the score is 1 minus the normalized Levenshtein distance.
func Similarity(query, name string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	n := strings.ToLower(strings.TrimSpace(name))
	if q == "" || n == "" {
		return 0
	}

	if strings.Contains(q, n) || strings.Contains(n, q) {
		shorter, longer := len(q), len(n)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return 0.5 + 0.5*float64(shorter)/float64(longer)
	}

	longest := len(q)
	if len(n) > longest {
		longest = len(n)
	}
	dist := levenshtein.Distance(q, n, nil)
	return 1 - float64(dist)/float64(longest)
}
