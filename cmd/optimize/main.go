package main

import (
	"context"
	"flag"
	"os"

	"github.com/1933211129/news-summary/internal/config"
	"github.com/1933211129/news-summary/internal/infrastructure/llm"
	"github.com/1933211129/news-summary/internal/logging"
	"github.com/1933211129/news-summary/internal/optimize"
	"github.com/1933211129/news-summary/internal/usecase"
)

func main() {
	examplesFile := flag.String("examples", "example.json", "path to the labeled examples JSON file")
	stateFile := flag.String("state-out", "", "output path for the compiled pipeline state (defaults to config statePath)")
	flag.Parse()

	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	outPath := *stateFile
	if outPath == "" {
		outPath = cfg.Pipeline.StatePath
	}

	// Examples are validated before the chat client is exercised, so a
	// malformed example file never burns model budget.
	examples, err := optimize.LoadExamples(*examplesFile)
	if err != nil {
		logger.Error("load examples failed", "error", err)
		os.Exit(1)
	}

	chat, err := llm.NewClient(cfg.LLM)
	if err != nil {
		logger.Error("configure llm client failed", "error", err)
		os.Exit(1)
	}

	pipeline := usecase.NewPipeline(chat, logger.With("component", "pipeline"))

	state, err := optimize.Compile(ctx, pipeline, examples, cfg.Pipeline.MaxDemos, logger.With("component", "optimize"))
	if err != nil {
		logger.Error("compile failed", "error", err)
		os.Exit(1)
	}

	if err := state.Save(outPath); err != nil {
		logger.Error("save pipeline state failed", "error", err)
		os.Exit(1)
	}

	logger.Info("compiled pipeline saved", "path", outPath, "demos", len(state.Demos))
}
