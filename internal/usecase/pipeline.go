package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/1933211129/news-summary/internal/domain"
	"github.com/1933211129/news-summary/internal/ports"
)

// Pipeline chains classification and extraction with a gate in between:
// articles whose normalized category is not one of the targets are dropped
// before the extraction call is made.
type Pipeline struct {
	classifier *Classifier
	extractor  *Extractor
	logger     *slog.Logger
}

// NewPipeline builds the classify-gate-extract workflow on one chat client.
func NewPipeline(chat ports.ChatClient, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		classifier: NewClassifier(chat),
		extractor:  NewExtractor(chat),
		logger:     logger,
	}
}

// Process handles a single article. It returns (nil, nil) when the article
// is classified out of scope; that is the normal rejected outcome, not an
// error. Model-call failures propagate.
func (p *Pipeline) Process(ctx context.Context, content string, meta *domain.ArticleInput) (*domain.IntelligenceRecord, error) {
	label, err := p.classifier.Classify(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("classify article: %w", err)
	}

	category := NormalizeCategory(label)
	if category == domain.CategoryOther {
		p.debug("article rejected", "label", label)
		return nil, nil
	}

	extraction, err := p.extractor.Extract(ctx, content, category)
	if err != nil {
		return nil, fmt.Errorf("extract article: %w", err)
	}

	record := &domain.IntelligenceRecord{
		Category:        category,
		Title:           strings.TrimSpace(extraction.Title),
		ShortSummary:    strings.TrimSpace(extraction.ShortSummary),
		DetailedSummary: strings.TrimSpace(extraction.DetailedSummary),
	}
	applyMetadata(record, meta, content)

	return record, nil
}

// NormalizeCategory folds a raw classifier label onto the fixed taxonomy.
// The first target category whose name appears as a substring of the label
// wins, in priority order; anything else becomes CategoryOther. Substring
// containment tolerates extra wording around the category name.
func NormalizeCategory(label string) domain.Category {
	normalized := strings.ToLower(strings.Join(strings.Fields(label), ""))
	if normalized == "" {
		return domain.CategoryOther
	}

	for _, target := range domain.TargetCategories {
		if strings.Contains(normalized, strings.ToLower(string(target))) {
			return target
		}
	}
	return domain.CategoryOther
}

func applyMetadata(record *domain.IntelligenceRecord, meta *domain.ArticleInput, fallbackContent string) {
	if meta == nil {
		record.RawContent = fallbackContent
		return
	}

	record.RawContent = meta.RawContent
	if record.RawContent == "" {
		record.RawContent = fallbackContent
	}
	record.ReleaseTime = meta.ReleaseTime
	record.SourceInstitution = meta.SourceInstitution
	record.URL = meta.URL
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
