package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/homekeep-labs/homekeeper/internal/extract"
)

// Config holds tesseract invocation settings.
type Config struct {
	Tesseract   string // binary name or absolute path; if empty -> "tesseract"
	Lang        string // default "eng"
	TessdataDir string
	PSM         int // e.g. 6 for a uniform block of text; 0 = tesseract default
}

// Tesseract is the local OCR collaborator: it shells out to the tesseract
// binary and reports a 0..100 confidence blended from tesseract's TSV word
// confidences and a receipt-artifact heuristic.
type Tesseract struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

var _ extract.Recognizer = (*Tesseract)(nil)

func NewTesseract(cfg Config, logger *slog.Logger) *Tesseract {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "eng"
	}
	return &Tesseract{cfg: cfg, runner: newExecRunner(logger), logger: logger}
}

// Recognize runs tesseract over the image at the given URI (a plain path or
// file:// URI) and returns normalized text plus blended confidence.
func (t *Tesseract) Recognize(ctx context.Context, imageURI string) (extract.Recognition, error) {
	path := strings.TrimPrefix(imageURI, "file://")

	out, errb, err := t.runner.Run(ctx, t.cfg.Tesseract, t.args(path, "")...)
	if err != nil {
		return extract.Recognition{}, fmt.Errorf("tesseract %s: %w (%s)", path, err, truncate(string(errb), 512))
	}
	text := Normalize(string(out))

	conf := heuristicConfidence(text)
	if tsv, tsvErr := t.tsvConfidence(ctx, path); tsvErr == nil && tsv > 0 {
		// weight measured word confidence over the heuristic
		conf = 0.7*tsv + 0.3*conf
	}

	return extract.Recognition{
		Text:       text,
		Confidence: int(math.Round(conf * 100)),
	}, nil
}

func (t *Tesseract) args(path, mode string) []string {
	args := []string{path, "stdout", "-l", t.cfg.Lang}
	if t.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(t.cfg.PSM))
	}
	if t.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.cfg.TessdataDir)
	}
	if mode != "" {
		args = append(args, mode)
	}
	return args
}

// tsvConfidence runs tesseract in TSV mode and returns the mean word
// confidence in 0..1. The conf column is the 11th; -1 marks non-word rows.
func (t *Tesseract) tsvConfidence(ctx context.Context, path string) (float64, error) {
	out, _, err := t.runner.Run(ctx, t.cfg.Tesseract, t.args(path, "tsv")...)
	if err != nil {
		return 0, fmt.Errorf("tesseract tsv: %w", err)
	}

	var sum, n float64
	for i, ln := range strings.Split(string(out), "\n") {
		if i == 0 || ln == "" {
			continue // header
		}
		cols := strings.Split(ln, "\t")
		if len(cols) < 12 {
			continue
		}
		confStr := cols[10]
		if confStr == "" || confStr == "-1" {
			continue
		}
		if v, perr := strconv.ParseFloat(confStr, 64); perr == nil {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / n / 100.0, nil
}
