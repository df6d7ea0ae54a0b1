package export

import (
	"context"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/homekeep-labs/homekeeper/internal/common"
	"github.com/homekeep-labs/homekeeper/internal/entity"
	"github.com/homekeep-labs/homekeeper/internal/parse"
	"github.com/homekeep-labs/homekeeper/internal/repository"
)

// Service is a tiny façade over the item repository that produces XLSX bytes
// for inventory exports.
type Service struct {
	items  repository.ItemRepository
	logger *slog.Logger
}

func NewService(items repository.ItemRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{items: items, logger: logger}
}

// ExportInventoryXLSX returns an XLSX workbook (as bytes) of inventory items
// whose purchase date falls in the given window.
// If only from is provided -> from..today (inclusive).
// If only to is provided   -> beginning..to (inclusive).
// If neither is provided   -> all items, including those with no purchase date.
func (s *Service) ExportInventoryXLSX(ctx context.Context, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	// Normalize dates (date-only, UTC)
	var fromDate, toDate *time.Time
	if from != nil {
		f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		fromDate = &f
	}
	if to != nil {
		t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		today := time.Now().UTC()
		t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}

	items, err := s.items.List(ctx)
	if err != nil {
		return nil, common.WrapError(err, "query items")
	}
	items = filterByPurchaseDate(items, fromDate, toDate)

	f := excelize.NewFile()
	const sheet = "Inventory"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Item",
		"Store",
		"Purchase Date",
		"Purchase Price",
		"Warranty (Years)",
		"Warranty Expires",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, it := range items {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, it.Name)
		if it.StoreName != nil {
			write(2, *it.StoreName)
		} else {
			write(2, "")
		}
		if it.PurchaseDate != nil {
			write(3, it.PurchaseDate.Format("2006-01-02"))
		} else {
			write(3, "")
		}
		if it.PurchasePrice != nil {
			write(4, parse.FormatAmount(*it.PurchasePrice))
		} else {
			write(4, "")
		}
		write(5, it.WarrantyYears)
		if it.WarrantyExpiration != nil {
			write(6, it.WarrantyExpiration.Format("2006-01-02"))
		} else {
			write(6, "")
		}

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 32) // item
	_ = f.SetColWidth(sheet, "B", "B", 24) // store
	_ = f.SetColWidth(sheet, "C", "C", 14) // purchase date
	_ = f.SetColWidth(sheet, "D", "D", 14) // price
	_ = f.SetColWidth(sheet, "E", "E", 16) // warranty years
	_ = f.SetColWidth(sheet, "F", "F", 16) // expires

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, common.WrapError(err, "xlsx write")
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// filterByPurchaseDate keeps items inside [from, to]. Items without a
// purchase date are kept only when no window is set.
func filterByPurchaseDate(items []entity.InventoryItem, from, to *time.Time) []entity.InventoryItem {
	if from == nil && to == nil {
		return items
	}
	out := make([]entity.InventoryItem, 0, len(items))
	for _, it := range items {
		if it.PurchaseDate == nil {
			continue
		}
		d := time.Date(it.PurchaseDate.Year(), it.PurchaseDate.Month(), it.PurchaseDate.Day(), 0, 0, 0, 0, time.UTC)
		if from != nil && d.Before(*from) {
			continue
		}
		if to != nil && d.After(*to) {
			continue
		}
		out = append(out, it)
	}
	return out
}
