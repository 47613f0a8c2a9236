package sink

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/1933211129/news-summary/internal/domain"
	"github.com/1933211129/news-summary/internal/ports"
)

// JSONLWriter appends one JSON object per line and syncs the file after
// every record, so an interrupted batch loses at most the record in
// flight.
type JSONLWriter struct {
	file *os.File
}

var _ ports.RecordSink = (*JSONLWriter)(nil)

// NewJSONLWriter creates (or truncates) the output file.
func NewJSONLWriter(path string) (*JSONLWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file %s: %w", path, err)
	}
	return &JSONLWriter{file: file}, nil
}

// Append writes the record as a single JSON line and forces it to disk.
func (w *JSONLWriter) Append(record domain.IntelligenceRecord) error {
	if w.file == nil {
		return fmt.Errorf("jsonl writer is closed")
	}

	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	if _, err := w.file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("sync output: %w", err)
	}
	return nil
}

// Close releases the underlying file.
func (w *JSONLWriter) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
