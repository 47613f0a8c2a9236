package optimize

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1933211129/news-summary/internal/domain"
	"github.com/1933211129/news-summary/internal/ports"
	"github.com/1933211129/news-summary/internal/usecase"
)

// scriptedChat answers classification and extraction calls by inspecting
// the system prompt, so any number of examples can run against it.
type scriptedChat struct {
	category string
	detailed string
	calls    int
}

func (s *scriptedChat) Complete(_ context.Context, messages []ports.Message) (string, error) {
	s.calls++
	if len(messages) > 0 && strings.Contains(messages[0].Content, "分类器") {
		reply, _ := json.Marshal(map[string]string{"category": s.category})
		return string(reply), nil
	}
	reply, _ := json.Marshal(map[string]string{
		"title":            "标题",
		"short_summary":    "看点",
		"detailed_summary": s.detailed,
	})
	return string(reply), nil
}

func makeExamples(n int) []domain.FewShotExample {
	examples := make([]domain.FewShotExample, 0, n)
	for i := 0; i < n; i++ {
		examples = append(examples, domain.FewShotExample{
			Content:         "某实验室发布新模型",
			Category:        domain.CategoryResearchFrontier,
			Title:           "标题",
			ShortSummary:    "看点",
			DetailedSummary: "(1)概要",
		})
	}
	return examples
}

func TestCompileEmptySetFailsBeforeModelCalls(t *testing.T) {
	t.Parallel()

	chat := &scriptedChat{}
	pipeline := usecase.NewPipeline(chat, nil)

	_, err := Compile(context.Background(), pipeline, nil, 4, nil)
	if !errors.Is(err, ErrNoExamples) {
		t.Fatalf("expected ErrNoExamples, got %v", err)
	}
	if chat.calls != 0 {
		t.Fatalf("no model calls may happen for an empty set, got %d", chat.calls)
	}
}

func TestCompileBoundsDemoCount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		examples int
		want     int
	}{
		{"fewer examples than cap", 2, 2},
		{"more examples than cap", 6, 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			chat := &scriptedChat{category: "研究前沿", detailed: "(1)概要"}
			pipeline := usecase.NewPipeline(chat, nil)

			state, err := Compile(context.Background(), pipeline, makeExamples(tc.examples), 4, nil)
			if err != nil {
				t.Fatalf("Compile returned error: %v", err)
			}
			if len(state.Demos) != tc.want {
				t.Fatalf("expected %d demos, got %d", tc.want, len(state.Demos))
			}
		})
	}
}

func TestCompileDropsFailedTraces(t *testing.T) {
	t.Parallel()

	// Category mismatch: predictions come back as policy while gold is
	// research frontier, so no trace passes the metric.
	chat := &scriptedChat{category: "政策计划", detailed: "(1)概要"}
	pipeline := usecase.NewPipeline(chat, nil)

	state, err := Compile(context.Background(), pipeline, makeExamples(3), 4, nil)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if len(state.Demos) != 0 {
		t.Fatalf("expected no demos for mismatched categories, got %d", len(state.Demos))
	}
}

func TestCompileRequiresDetailedSummary(t *testing.T) {
	t.Parallel()

	chat := &scriptedChat{category: "研究前沿", detailed: ""}
	pipeline := usecase.NewPipeline(chat, nil)

	state, err := Compile(context.Background(), pipeline, makeExamples(2), 4, nil)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if len(state.Demos) != 0 {
		t.Fatalf("empty detailed summaries must not qualify, got %d demos", len(state.Demos))
	}
}

func TestLoadExamples(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	arrayPath := filepath.Join(dir, "examples.json")
	arrayJSON := `[{"content": "正文", "category": "研究前沿", "title": "标题", "short_summary": "看点", "detailed_summary": "(1)概要"}]`
	if err := os.WriteFile(arrayPath, []byte(arrayJSON), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	examples, err := LoadExamples(arrayPath)
	if err != nil {
		t.Fatalf("LoadExamples returned error: %v", err)
	}
	if len(examples) != 1 || examples[0].Category != domain.CategoryResearchFrontier {
		t.Fatalf("unexpected examples: %+v", examples)
	}

	singlePath := filepath.Join(dir, "single.json")
	singleJSON := `{"content": "正文", "category": "产业应用", "title": "标题", "short_summary": "看点", "detailed_summary": "(1)概要"}`
	if err := os.WriteFile(singlePath, []byte(singleJSON), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	examples, err = LoadExamples(singlePath)
	if err != nil {
		t.Fatalf("LoadExamples returned error: %v", err)
	}
	if len(examples) != 1 || examples[0].Category != domain.CategoryIndustryApplication {
		t.Fatalf("unexpected examples: %+v", examples)
	}

	if _, err := LoadExamples(filepath.Join(dir, "absent.json")); err == nil {
		t.Fatal("expected error for missing example file")
	}
}
