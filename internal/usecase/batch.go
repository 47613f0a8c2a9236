package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/1933211129/news-summary/internal/domain"
	"github.com/1933211129/news-summary/internal/ports"
)

// RunnerDeps wires the driven adapters into the batch workflow.
type RunnerDeps struct {
	Source   ports.RecordSource
	NewSink  func(path string) (ports.RecordSink, error)
	Store    ports.ProcessedStore
	Pipeline *Pipeline
	Logger   *slog.Logger
}

// Runner executes the production batch: read rows, process each one
// through the pipeline sequentially, append accepted records to the sink.
type Runner struct {
	source   ports.RecordSource
	newSink  func(path string) (ports.RecordSink, error)
	store    ports.ProcessedStore
	pipeline *Pipeline
	logger   *slog.Logger
}

// Stats summarizes a batch run.
type Stats struct {
	Written int
	Skipped int
}

// NewRunner constructs the batch orchestration component.
func NewRunner(deps RunnerDeps) *Runner {
	return &Runner{
		source:   deps.Source,
		newSink:  deps.NewSink,
		store:    deps.Store,
		pipeline: deps.Pipeline,
		logger:   deps.Logger,
	}
}

// Run processes every row of dataPath and appends accepted records to
// outputPath. Rejected and blank rows are counted as skipped, never as
// failures; structural errors (bad input shape, sink unavailable, model
// transport failures) abort the batch.
func (r *Runner) Run(ctx context.Context, dataPath, outputPath string) (Stats, error) {
	var stats Stats

	if r.source == nil || r.pipeline == nil || r.newSink == nil {
		return stats, fmt.Errorf("batch runner is not fully configured")
	}

	records, err := r.source.Read(dataPath)
	if err != nil {
		return stats, fmt.Errorf("read input: %w", err)
	}

	skip, err := r.loadProcessed(ctx, records)
	if err != nil {
		return stats, fmt.Errorf("load processed: %w", err)
	}

	sink, err := r.newSink(outputPath)
	if err != nil {
		return stats, fmt.Errorf("open sink: %w", err)
	}
	defer sink.Close()

	for _, input := range records {
		if strings.TrimSpace(input.RawContent) == "" {
			stats.Skipped++
			continue
		}
		if input.URL != nil && skip[*input.URL] {
			r.debug("already processed", "url", *input.URL)
			stats.Skipped++
			continue
		}

		meta := input
		record, err := r.pipeline.Process(ctx, input.RawContent, &meta)
		if err != nil {
			return stats, fmt.Errorf("process article: %w", err)
		}
		if record == nil {
			stats.Skipped++
			continue
		}

		mergeSummaries(record)

		if err := sink.Append(*record); err != nil {
			return stats, fmt.Errorf("append record: %w", err)
		}
		stats.Written++

		if r.store != nil {
			if err := r.store.SaveProcessed(ctx, *record); err != nil {
				return stats, fmt.Errorf("persist record: %w", err)
			}
		}
	}

	if r.logger != nil {
		r.logger.Info("batch complete", "written", stats.Written, "skipped", stats.Skipped, "output", outputPath)
	}
	return stats, nil
}

func (r *Runner) loadProcessed(ctx context.Context, records []domain.ArticleInput) (map[string]bool, error) {
	if r.store == nil {
		return map[string]bool{}, nil
	}

	urls := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.URL != nil && *rec.URL != "" {
			urls = append(urls, *rec.URL)
		}
	}
	if len(urls) == 0 {
		return map[string]bool{}, nil
	}

	return r.store.AlreadyProcessed(ctx, urls)
}

// mergeSummaries prefixes the short summary onto the detailed summary for
// the sink-bound record. When either side is empty the detailed summary is
// written unchanged.
func mergeSummaries(record *domain.IntelligenceRecord) {
	if record.ShortSummary != "" && record.DetailedSummary != "" {
		record.DetailedSummary = record.ShortSummary + "\n" + record.DetailedSummary
	}
}

func (r *Runner) debug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}
