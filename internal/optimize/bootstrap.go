// Package optimize implements the offline example-driven compilation of
// the news pipeline: it bootstraps few-shot demonstrations from labeled
// examples and persists the selection for production runs.
package optimize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/1933211129/news-summary/internal/domain"
	"github.com/1933211129/news-summary/internal/usecase"
)

// ErrNoExamples is returned when the training set is empty. Compile fails
// with it before any model call is made.
var ErrNoExamples = errors.New("no training examples")

// LoadExamples reads labeled examples from a JSON file. A single object is
// accepted as a one-element set. A missing or unparseable file fails fast,
// before any model budget is spent.
func LoadExamples(path string) ([]domain.FewShotExample, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read examples %s: %w", path, err)
	}

	var examples []domain.FewShotExample
	if err := json.Unmarshal(raw, &examples); err != nil {
		var single domain.FewShotExample
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, fmt.Errorf("parse examples %s: %w", path, err)
		}
		examples = []domain.FewShotExample{single}
	}

	return examples, nil
}

// Compile runs the unoptimized pipeline over the labeled set and retains
// the generated traces that pass the success metric as demonstrations, up
// to min(maxDemos, len(examples)).
func Compile(ctx context.Context, pipeline *usecase.Pipeline, examples []domain.FewShotExample, maxDemos int, logger *slog.Logger) (usecase.CompiledState, error) {
	if len(examples) == 0 {
		return usecase.CompiledState{}, ErrNoExamples
	}

	bound := maxDemos
	if len(examples) < bound {
		bound = len(examples)
	}

	demos := make([]domain.FewShotExample, 0, bound)
	for _, example := range examples {
		if len(demos) >= bound {
			break
		}

		prediction, err := pipeline.Process(ctx, example.Content, nil)
		if err != nil {
			return usecase.CompiledState{}, fmt.Errorf("bootstrap example: %w", err)
		}

		if !metric(example, prediction) {
			if logger != nil {
				logger.Debug("example did not qualify", "category", example.Category)
			}
			continue
		}

		demos = append(demos, domain.FewShotExample{
			Content:         example.Content,
			Category:        prediction.Category,
			Title:           prediction.Title,
			ShortSummary:    prediction.ShortSummary,
			DetailedSummary: prediction.DetailedSummary,
		})
	}

	if logger != nil {
		logger.Info("bootstrap finished", "examples", len(examples), "demos", len(demos))
	}
	return usecase.CompiledState{Demos: demos}, nil
}

// metric defines bootstrap success: the predicted category must equal the
// gold category exactly and the detailed summary must be non-empty. Title
// and short summary are deliberately not checked.
func metric(gold domain.FewShotExample, prediction *domain.IntelligenceRecord) bool {
	if prediction == nil {
		return false
	}
	return prediction.Category == gold.Category && prediction.DetailedSummary != ""
}
