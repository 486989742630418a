package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wallet-pnl/internal/export"
	"wallet-pnl/internal/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	inputFile := flag.String("input", "", "analyze a local JSON file instead of the configured source")
	wallet := flag.String("wallet", "", "wallet address override")
	flag.Parse()

	if err := initializeSystem(); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer shutdownSystem(ctx)

	cfg, err := loadConfig(ctx, *configPath, *inputFile, *wallet)
	if err != nil {
		os.Exit(1)
	}

	compressOldExports(ctx, cfg)

	src, err := initializeSource(ctx, cfg)
	if err != nil {
		os.Exit(1)
	}
	analyzer := initializeAnalyzer(cfg)

	payload, err := src.Fetch(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch transactions", err)
		os.Exit(1)
	}

	report, err := analyzer.Analyze(ctx, payload)
	if err != nil {
		logger.ErrorWithErr(ctx, "Analysis failed", err)
		os.Exit(1)
	}

	b, _ := json.MarshalIndent(report.Summary, "", "  ")
	fmt.Println(string(b))

	for _, format := range cfg.Export.Formats {
		var p string
		var werr error
		switch format {
		case "json":
			p, werr = export.WriteJSON(cfg.Export.Dir, report)
		case "csv":
			p, werr = export.WriteCSV(cfg.Export.Dir, report)
		}
		if werr != nil {
			logger.ErrorWithErr(ctx, "Export failed", werr, "format", format)
			continue
		}
		logger.Info(ctx, "Report exported", "format", format, "path", p)
	}
}
