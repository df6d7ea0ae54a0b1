package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/homekeep-labs/homekeeper/internal/common"
	"github.com/homekeep-labs/homekeeper/internal/export"
	"github.com/homekeep-labs/homekeeper/internal/extract"
	"github.com/homekeep-labs/homekeeper/internal/ingest"
	"github.com/homekeep-labs/homekeeper/internal/match"
	"github.com/homekeep-labs/homekeeper/internal/ocr"
	"github.com/homekeep-labs/homekeeper/internal/repository"
	"github.com/homekeep-labs/homekeeper/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("close database", "error", cerr)
		}
	}()

	items := repository.NewItemRepository(db, logger)

	recognizer, err := buildRecognizer(cfg.OCR, logger)
	if err != nil {
		logger.Error("build recognizer", "error", err)
		os.Exit(1)
	}

	pipeline := extract.NewPipeline(recognizer, extract.Config{WarrantyYears: cfg.Extract.WarrantyYears}, logger)
	matcher := match.NewMatcher(match.Config{Threshold: cfg.Extract.MatchThreshold}, logger)
	exportSvc := export.NewService(items, logger)

	// Inbox watcher is optional: only runs when INBOX_DIRS is set.
	if len(cfg.Ingest.InboxDirs) > 0 {
		ingestSvc := ingest.NewService(pipeline, matcher, items, logger)
		go func() {
			err := ingestSvc.Run(ctx, ingest.WatchConfig{
				Roots:       cfg.Ingest.InboxDirs,
				InitialScan: true,
				Debounce:    cfg.Ingest.Debounce,
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("inbox watcher stopped", "error", err)
			}
		}()
	}

	handler := server.NewHandler(pipeline, matcher, items, exportSvc, logger)
	router := server.SetupRouter(cfg.Server, handler, logger)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	logger.Info("stopped")
}

// buildRecognizer picks the OCR collaborator: remote HTTP service when
// OCR_REMOTE_URL is set, local tesseract otherwise.
func buildRecognizer(cfg common.OCRConfig, logger *slog.Logger) (extract.Recognizer, error) {
	if cfg.RemoteURL != "" {
		return ocr.NewRemoteClient(cfg.RemoteURL, cfg.Timeout, logger)
	}
	return ocr.NewTesseract(ocr.Config{
		Tesseract:   cfg.Tesseract,
		Lang:        cfg.TesseractLang,
		TessdataDir: cfg.TessdataDir,
	}, logger), nil
}
