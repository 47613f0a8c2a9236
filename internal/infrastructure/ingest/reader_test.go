package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestReadCSVMapsAliases(t *testing.T) {
	t.Parallel()

	csv := "发布时间,来源,链接,原文内容\n" +
		"2024-05-01,X部委,https://example.org/1,  某机构发布AI芯片新政策  \n" +
		",,,某实验室发布新模型\n"
	path := writeCSV(t, "news.csv", csv)

	reader := NewReader(nil, nil)
	inputs, err := reader.Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}

	if len(inputs) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(inputs))
	}

	first := inputs[0]
	if first.RawContent != "某机构发布AI芯片新政策" {
		t.Fatalf("content not trimmed: %q", first.RawContent)
	}
	if first.ReleaseTime == nil || *first.ReleaseTime != "2024-05-01" {
		t.Fatalf("release time not mapped: %v", first.ReleaseTime)
	}
	if first.SourceInstitution == nil || *first.SourceInstitution != "X部委" {
		t.Fatalf("source institution not mapped: %v", first.SourceInstitution)
	}
	if first.URL == nil || *first.URL != "https://example.org/1" {
		t.Fatalf("url not mapped: %v", first.URL)
	}

	second := inputs[1]
	if second.ReleaseTime != nil || second.SourceInstitution != nil || second.URL != nil {
		t.Fatalf("empty cells must map to nil, got %+v", second)
	}
}

func TestReadHeaderNormalization(t *testing.T) {
	t.Parallel()

	// Fullwidth colon and case differences in headers must still match.
	csv := "时间,机构,URL,正文\n2024-05-01,机构A,https://example.org/2,正文内容\n"
	path := writeCSV(t, "news.csv", csv)

	reader := NewReader(nil, nil)
	inputs, err := reader.Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if len(inputs) != 1 {
		t.Fatalf("expected 1 row, got %d", len(inputs))
	}
	if inputs[0].URL == nil || *inputs[0].URL != "https://example.org/2" {
		t.Fatalf("uppercase URL header not matched: %v", inputs[0].URL)
	}
}

func TestReadMissingColumns(t *testing.T) {
	t.Parallel()

	csv := "发布时间,来源,链接\n2024-05-01,X部委,https://example.org/1\n"
	path := writeCSV(t, "news.csv", csv)

	reader := NewReader(nil, nil)
	_, err := reader.Read(path)

	var formatErr *InputFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected InputFormatError, got %v", err)
	}
	if len(formatErr.Missing) != 1 || formatErr.Missing[0] != "raw_content" {
		t.Fatalf("unexpected missing columns: %v", formatErr.Missing)
	}
}

func TestReadUnsupportedFormat(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, "news.txt", "whatever")

	reader := NewReader(nil, nil)
	_, err := reader.Read(path)

	var formatErr *InputFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected InputFormatError, got %v", err)
	}
	if formatErr.Format != ".txt" {
		t.Fatalf("unexpected format in error: %q", formatErr.Format)
	}
}

func TestStripMarkup(t *testing.T) {
	t.Parallel()

	if got := StripMarkup("<p>某机构发布<b>AI芯片</b>新政策</p>"); got != "某机构发布AI芯片新政策" {
		t.Fatalf("markup not stripped: %q", got)
	}

	plain := "纯文本内容，1 < 2"
	if got := StripMarkup(plain); got == "" {
		t.Fatalf("plain text must never reduce to empty, got %q", got)
	}

	if got := StripMarkup("没有标记的内容"); got != "没有标记的内容" {
		t.Fatalf("plain text altered: %q", got)
	}
}
