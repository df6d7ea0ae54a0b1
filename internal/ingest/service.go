package ingest

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/homekeep-labs/homekeeper/constants"
	"github.com/homekeep-labs/homekeeper/internal/entity"
	"github.com/homekeep-labs/homekeeper/internal/extract"
	"github.com/homekeep-labs/homekeeper/internal/match"
	"github.com/homekeep-labs/homekeeper/internal/parse"
	"github.com/homekeep-labs/homekeeper/internal/repository"
)

// Service wires the inbox watcher to the extraction pipeline: every receipt
// dropped into an inbox directory is extracted and, unless it matches an
// inventory item we already track, stored as a new item.
type Service struct {
	pipeline *extract.Pipeline
	matcher  *match.Matcher
	items    repository.ItemRepository
	logger   *slog.Logger
}

func NewService(pipeline *extract.Pipeline, matcher *match.Matcher, items repository.ItemRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{pipeline: pipeline, matcher: matcher, items: items, logger: logger}
}

// Run blocks, consuming watcher events until ctx is done.
func (s *Service) Run(ctx context.Context, cfg WatchConfig) error {
	evCh, errCh, err := StartWatcher(ctx, cfg)
	if err != nil {
		return err
	}
	s.logger.Info("receipt inbox watcher started", "roots", cfg.Roots)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case path, ok := <-evCh:
			if !ok {
				return nil
			}
			s.ingestFile(ctx, path)
		case werr, ok := <-errCh:
			if ok && werr != nil {
				s.logger.Warn("watcher reported error", "error", werr)
			}
		}
	}
}

// ingestFile extracts one receipt file and stores a new inventory item,
// unless the extraction fails or the product already matches a tracked item.
func (s *Service) ingestFile(ctx context.Context, path string) {
	start := time.Now()

	var res entity.ExtractionResult
	if constants.IsImageExt(constants.NormalizeExt(filepath.Ext(path))) {
		res = s.pipeline.ExtractReceipt(ctx, path)
	} else {
		raw, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("failed to read receipt text", "path", path, "error", err)
			return
		}
		// Text drops carry no OCR engine confidence; treat them as exact.
		res = s.pipeline.ExtractFromText(string(raw), 100)
	}

	if res.Failed() {
		s.logger.Warn("receipt extraction failed", "path", path, "error", *res.Error)
		return
	}
	if res.ProductName == nil {
		s.logger.Info("receipt had no recognizable product, skipping", "path", path)
		return
	}

	existing, err := s.items.List(ctx)
	if err != nil {
		s.logger.Error("failed to list inventory for dedupe", "path", path, "error", err)
		return
	}
	if m := s.matcher.Match(*res.ProductName, existing); m != nil {
		s.logger.Info("receipt matches existing item, skipping",
			"path", path,
			"item_id", m.Item.ID,
			"item", m.Item.Name,
			"score", strconv.FormatFloat(m.Score, 'f', 3, 64),
		)
		return
	}

	item := itemFromExtraction(res, s.pipeline.Cfg.WarrantyYears)
	if err := s.items.Create(ctx, item); err != nil {
		s.logger.Error("failed to store ingested item", "path", path, "error", err)
		return
	}

	s.logger.Info("receipt ingested",
		"path", path,
		"item_id", item.ID,
		"item", item.Name,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
}

func itemFromExtraction(res entity.ExtractionResult, warrantyYears int) *entity.InventoryItem {
	if warrantyYears <= 0 {
		warrantyYears = parse.DefaultWarrantyYears
	}
	item := &entity.InventoryItem{
		Name:               *res.ProductName,
		StoreName:          res.StoreName,
		PurchaseDate:       res.PurchaseDate,
		WarrantyYears:      warrantyYears,
		WarrantyExpiration: res.WarrantyExpiration,
	}
	if res.PurchasePrice != nil {
		if v, err := strconv.ParseFloat(*res.PurchasePrice, 64); err == nil {
			item.PurchasePrice = &v
		}
	}
	return item
}
