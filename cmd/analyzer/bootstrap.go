package main

import (
	"context"
	"fmt"
	"os"

	"wallet-pnl/internal/analysis"
	"wallet-pnl/internal/analysis/analysisobs"
	"wallet-pnl/internal/export"
	"wallet-pnl/internal/interfaces"
	"wallet-pnl/internal/logger"
	"wallet-pnl/internal/source"
	"wallet-pnl/internal/store"
	"wallet-pnl/internal/trace"

	"github.com/joho/godotenv"
)

// initializeSystem initializes environment, logger, and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// shutdownSystem flushes the tracer provider
func shutdownSystem(ctx context.Context) {
	if err := trace.Shutdown(ctx); err != nil {
		logger.Warn(ctx, "Tracer shutdown failed", "error", err)
	}
}

// loadConfig loads the configuration and applies CLI overrides
func loadConfig(ctx context.Context, path, inputFile, wallet string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}

	if inputFile != "" {
		cfg.DataSource = "FILE"
		cfg.InputFile = inputFile
	}
	if wallet != "" {
		cfg.Wallet = wallet
	}

	if err := cfg.Validate(); err != nil {
		logger.ErrorWithErr(ctx, "Invalid configuration", err)
		return nil, err
	}
	return cfg, nil
}

// compressOldExports gzips exports past the configured retention window
func compressOldExports(ctx context.Context, cfg *store.Config) {
	if err := export.CompressOlder(cfg.Export.Dir, cfg.Export.RetentionDays); err != nil {
		logger.Warn(ctx, "Failed to compress old exports", "error", err)
	}
}

// initializeSource selects the configured transaction source
func initializeSource(ctx context.Context, cfg *store.Config) (interfaces.TransactionSource, error) {
	src, err := source.FromConfig(cfg)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to initialize transaction source", err)
		return nil, err
	}

	if cfg.DataSource == "FILE" {
		logger.Info(ctx, "Reading transactions from file", "path", cfg.InputFile)
	} else {
		logger.Info(ctx, "Fetching transactions from indexer", "base_url", cfg.Indexer.BaseURL, "wallet", cfg.Wallet)
	}
	return src, nil
}

// initializeAnalyzer builds the analysis service with observability middleware
func initializeAnalyzer(cfg *store.Config) interfaces.Analyzer {
	return analysisobs.Wrap(analysis.New(cfg))
}
