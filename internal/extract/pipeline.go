package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/homekeep-labs/homekeeper/internal/entity"
	"github.com/homekeep-labs/homekeeper/internal/parse"
)

// Config holds behavior knobs for the extraction pipeline.
type Config struct {
	WarrantyYears int // default 1
}

// Pipeline turns a receipt image into one structured ExtractionResult:
// acquire (text, confidence) from the OCR collaborator, run the four field
// parsers over every non-empty trimmed line, select winners, derive the
// warranty expiration. The pipeline keeps no state between invocations;
// concurrent calls are independent.
type Pipeline struct {
	Logger     *slog.Logger
	Cfg        Config
	Recognizer Recognizer
}

func NewPipeline(rec Recognizer, cfg Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.WarrantyYears <= 0 {
		cfg.WarrantyYears = parse.DefaultWarrantyYears
	}
	return &Pipeline{Logger: logger, Cfg: cfg, Recognizer: rec}
}

// ExtractReceipt runs the full pipeline for one image. Acquisition failures
// are never returned as errors: they produce a failed-shaped result with
// Error set and every data field nil/empty.
func (p *Pipeline) ExtractReceipt(ctx context.Context, imageURI string) entity.ExtractionResult {
	rec, err := p.Recognizer.Recognize(ctx, imageURI)
	if err != nil {
		p.Logger.Warn("receipt recognition failed", "image_uri", imageURI, "error", err)
		return failedResult(fmt.Sprintf("recognize %s: %v", imageURI, err))
	}
	if rec.Confidence < 0 || rec.Confidence > 100 {
		p.Logger.Warn("recognizer returned malformed confidence", "image_uri", imageURI, "confidence", rec.Confidence)
		return failedResult(fmt.Sprintf("recognize %s: confidence %d out of range", imageURI, rec.Confidence))
	}

	res := p.ExtractFromText(rec.Text, rec.Confidence)
	p.Logger.Info("receipt extracted",
		"image_uri", imageURI,
		"confidence", res.Confidence,
		"dates", len(res.Dates), "prices", len(res.Prices),
		"stores", len(res.Stores), "products", len(res.Products),
	)
	return res
}

// ExtractFromText runs parsing and selection over already-acquired OCR
// output. It is a pure function of its inputs: identical (text, confidence)
// always yields an identical result.
func (p *Pipeline) ExtractFromText(text string, confidence int) entity.ExtractionResult {
	lines := splitLines(text)

	sel := parse.Select(
		parse.Dates(lines),
		parse.Prices(lines),
		parse.Stores(lines),
		parse.Products(lines),
	)

	res := entity.ExtractionResult{
		Text:               text,
		Confidence:         confidence,
		PurchaseDate:       sel.PurchaseDate,
		WarrantyExpiration: parse.Warranty(sel.PurchaseDate, p.Cfg.WarrantyYears),
		StoreName:          sel.StoreName,
		ProductName:        sel.ProductName,
		Dates:              sel.Dates,
		Prices:             sel.Prices,
		Stores:             sel.Stores,
		Products:           sel.Products,
	}
	if sel.PurchasePrice != nil {
		price := parse.FormatAmount(*sel.PurchasePrice)
		res.PurchasePrice = &price
	}
	return res
}

func failedResult(msg string) entity.ExtractionResult {
	return entity.ExtractionResult{
		Text:       "",
		Confidence: 0,
		Dates:      []entity.DateCandidate{},
		Prices:     []entity.PriceCandidate{},
		Stores:     []string{},
		Products:   []string{},
		Error:      &msg,
	}
}

// splitLines yields every non-empty trimmed line of the OCR text.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
