package usecase

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/1933211129/news-summary/internal/domain"
)

// CompiledState is the persisted result of optimization: the few-shot
// demonstrations selected by the bootstrap search. Read-only once loaded.
type CompiledState struct {
	Demos []domain.FewShotExample `json:"demos"`
}

// ApplyState installs the compiled demonstrations on both stages.
func (p *Pipeline) ApplyState(state CompiledState) {
	p.classifier.SetDemos(state.Demos)
	p.extractor.SetDemos(state.Demos)
}

// LoadState restores a compiled state from disk. A missing file is not an
// error: the pipeline falls back to zero demonstrations with a warning so
// production runs keep working before any optimization has happened.
func LoadState(path string, logger *slog.Logger) (CompiledState, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if logger != nil {
			logger.Warn("compiled pipeline state not found, running unoptimized", "path", path)
		}
		return CompiledState{}, nil
	}
	if err != nil {
		return CompiledState{}, fmt.Errorf("read pipeline state %s: %w", path, err)
	}

	var state CompiledState
	if err := json.Unmarshal(raw, &state); err != nil {
		return CompiledState{}, fmt.Errorf("parse pipeline state %s: %w", path, err)
	}

	if logger != nil {
		logger.Info("loaded compiled pipeline state", "path", path, "demos", len(state.Demos))
	}
	return state, nil
}

// Save serializes the compiled state to disk.
func (s CompiledState) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state directory: %w", err)
		}
	}

	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal pipeline state: %w", err)
	}

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write pipeline state %s: %w", path, err)
	}
	return nil
}
