package sink

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/1933211129/news-summary/internal/domain"
)

func TestJSONLWriterAppendsParseableLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "result.jsonl")
	writer, err := NewJSONLWriter(path)
	if err != nil {
		t.Fatalf("NewJSONLWriter returned error: %v", err)
	}

	url := "https://example.org/1"
	records := []domain.IntelligenceRecord{
		{
			Category:        domain.CategoryPolicyPlan,
			Title:           "AI芯片新政策",
			ShortSummary:    "新政出台",
			DetailedSummary: "新政出台\n(1)要点一(2)要点二",
			RawContent:      "某机构发布AI芯片新政策…",
			URL:             &url,
		},
		{
			Category:        domain.CategoryResearchFrontier,
			Title:           "新模型发布",
			DetailedSummary: "(1)概要",
			RawContent:      "某实验室发布新模型",
		},
	}

	for _, record := range records {
		if err := writer.Append(record); err != nil {
			t.Fatalf("Append returned error: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	var lines int
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var record domain.IntelligenceRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			t.Fatalf("line %d is not a standalone JSON document: %v", lines+1, err)
		}
		lines++
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan output: %v", err)
	}

	if lines != 2 {
		t.Fatalf("expected 2 lines, got %d", lines)
	}
}

func TestJSONLWriterNullMetadata(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "result.jsonl")
	writer, err := NewJSONLWriter(path)
	if err != nil {
		t.Fatalf("NewJSONLWriter returned error: %v", err)
	}

	record := domain.IntelligenceRecord{
		Category:        domain.CategoryResearchFrontier,
		Title:           "新模型发布",
		DetailedSummary: "(1)概要",
		RawContent:      "某实验室发布新模型",
	}
	if err := writer.Append(record); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("parse output line: %v", err)
	}

	for _, field := range []string{"release_time", "source_institution", "url"} {
		value, ok := decoded[field]
		if !ok {
			t.Fatalf("field %s missing from output", field)
		}
		if value != nil {
			t.Fatalf("field %s should be null, got %v", field, value)
		}
	}
}
