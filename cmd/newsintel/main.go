package main

import (
	"context"
	"flag"
	"os"

	"github.com/1933211129/news-summary/internal/app"
	"github.com/1933211129/news-summary/internal/config"
	"github.com/1933211129/news-summary/internal/logging"
)

func main() {
	dataFile := flag.String("data-file", "test_data.xlsx", "path to the input spreadsheet (.xlsx or .csv)")
	outputFile := flag.String("output-file", "result_output.jsonl", "path to the JSONL output file")
	flag.Parse()

	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	if err := application.Run(ctx, *dataFile, *outputFile); err != nil {
		logger.Error("batch stopped", "error", err)
		os.Exit(1)
	}
}
