package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"github.com/1933211129/news-summary/internal/config"
	"github.com/1933211129/news-summary/internal/infrastructure/ingest"
	"github.com/1933211129/news-summary/internal/infrastructure/llm"
	"github.com/1933211129/news-summary/internal/infrastructure/sink"
	"github.com/1933211129/news-summary/internal/infrastructure/storage"
	"github.com/1933211129/news-summary/internal/logging"
	"github.com/1933211129/news-summary/internal/ports"
	"github.com/1933211129/news-summary/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
	runner *usecase.Runner
	db     *sql.DB
}

// New builds a runnable application instance. Missing LLM credentials are
// a fatal configuration error; a missing compiled state is not.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	chat, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("configure llm client: %w", err)
	}

	pipeline := usecase.NewPipeline(chat, baseLogger.With("component", "pipeline"))

	state, err := usecase.LoadState(cfg.Pipeline.StatePath, baseLogger.With("component", "state"))
	if err != nil {
		return nil, fmt.Errorf("load pipeline state: %w", err)
	}
	pipeline.ApplyState(state)

	var (
		db    *sql.DB
		store ports.ProcessedStore
	)
	if cfg.Database.DSN != "" {
		db, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		store = storage.NewPostgresRepository(db)
	}

	runner := usecase.NewRunner(usecase.RunnerDeps{
		Source: ingest.NewReader(cfg.Ingest.ColumnAliases, baseLogger.With("component", "ingest")),
		NewSink: func(path string) (ports.RecordSink, error) {
			return sink.NewJSONLWriter(path)
		},
		Store:    store,
		Pipeline: pipeline,
		Logger:   baseLogger.With("component", "batch"),
	})

	return &Application{cfg: cfg, logger: baseLogger, runner: runner, db: db}, nil
}

// Run executes one batch over dataPath, writing accepted records to
// outputPath.
func (a *Application) Run(ctx context.Context, dataPath, outputPath string) error {
	if a.runner == nil {
		return nil
	}

	_, err := a.runner.Run(ctx, dataPath, outputPath)
	return err
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
