package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/homekeep-labs/homekeeper/internal/common"
	"github.com/homekeep-labs/homekeeper/internal/entity"
	"github.com/homekeep-labs/homekeeper/internal/extract"
	"github.com/homekeep-labs/homekeeper/internal/ocr"
)

// scanreceipt runs the extraction pipeline once over a receipt image or a
// plain-text OCR dump and prints the structured result as JSON.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	var (
		textPath = flag.String("text", "", "path to a plain-text OCR dump instead of an image")
		warranty = flag.Int("warranty-years", 1, "warranty period applied to the purchase date")
		timeout  = flag.Duration("timeout", 2*time.Minute, "overall deadline")
	)
	flag.Parse()

	if *textPath == "" && flag.NArg() != 1 {
		logger.Error("usage", "cmd", "scanreceipt [-warranty-years N] <image-path> | scanreceipt -text <file>")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	ocrCfg := common.LoadConfig().OCR
	recognizer := ocr.NewTesseract(ocr.Config{
		Tesseract:   ocrCfg.Tesseract,
		Lang:        ocrCfg.TesseractLang,
		TessdataDir: ocrCfg.TessdataDir,
	}, logger)

	pipeline := extract.NewPipeline(recognizer, extract.Config{WarrantyYears: *warranty}, logger)

	start := time.Now()
	res := pipelineRun(ctx, pipeline, *textPath, flag.Arg(0), logger)
	dur := time.Since(start)

	if res.Failed() {
		logger.Error("extraction failed", "error", *res.Error, "duration_ms", dur.Milliseconds())
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
	if res.Failed() {
		os.Exit(1)
	}
}

func pipelineRun(ctx context.Context, p *extract.Pipeline, textPath, imagePath string, logger *slog.Logger) entity.ExtractionResult {
	if textPath != "" {
		raw, err := os.ReadFile(textPath)
		if err != nil {
			logger.Error("read text file", "path", textPath, "error", err)
			os.Exit(1)
		}
		return p.ExtractFromText(string(raw), 100)
	}
	return p.ExtractReceipt(ctx, imagePath)
}
