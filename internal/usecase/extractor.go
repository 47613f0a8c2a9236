package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/1933211129/news-summary/internal/domain"
	"github.com/1933211129/news-summary/internal/ports"
)

// Extractor produces title, short summary and detailed summary in a single
// chat call so the three fields stay mutually consistent.
type Extractor struct {
	chat  ports.ChatClient
	demos []domain.FewShotExample
}

// NewExtractor wires the chat client.
func NewExtractor(chat ports.ChatClient) *Extractor {
	return &Extractor{chat: chat}
}

// SetDemos installs few-shot demonstrations rendered ahead of each call.
func (e *Extractor) SetDemos(demos []domain.FewShotExample) {
	e.demos = demos
}

// Extract generates the three output fields for content already gated into
// one of the target categories. It accepts whatever text the model returns
// without truncation; length limits live in the prompt only.
func (e *Extractor) Extract(ctx context.Context, content string, category domain.Category) (domain.ExtractionResult, error) {
	if e.chat == nil {
		return domain.ExtractionResult{}, fmt.Errorf("chat client is not configured")
	}

	messages := make([]ports.Message, 0, 2+2*len(e.demos))
	messages = append(messages, ports.Message{Role: ports.RoleSystem, Content: extractSystemPrompt})

	for _, demo := range e.demos {
		reply, err := json.Marshal(map[string]string{
			"reasoning":        "",
			"title":            demo.Title,
			"short_summary":    demo.ShortSummary,
			"detailed_summary": demo.DetailedSummary,
		})
		if err != nil {
			return domain.ExtractionResult{}, fmt.Errorf("render demo: %w", err)
		}
		messages = append(messages,
			ports.Message{Role: ports.RoleUser, Content: extractUserMessage(demo.Content, demo.Category)},
			ports.Message{Role: ports.RoleAssistant, Content: string(reply)},
		)
	}

	messages = append(messages, ports.Message{Role: ports.RoleUser, Content: extractUserMessage(content, category)})

	raw, err := e.chat.Complete(ctx, messages)
	if err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("extract: %w", err)
	}

	var reply struct {
		Reasoning       string `json:"reasoning"`
		Title           string `json:"title"`
		ShortSummary    string `json:"short_summary"`
		DetailedSummary string `json:"detailed_summary"`
	}
	if err := decodeModelReply(raw, &reply); err != nil {
		return domain.ExtractionResult{}, err
	}

	return domain.ExtractionResult{
		Title:           reply.Title,
		ShortSummary:    reply.ShortSummary,
		DetailedSummary: reply.DetailedSummary,
	}, nil
}

func extractUserMessage(content string, category domain.Category) string {
	return fmt.Sprintf("类别：%s\n新闻原文：\n%s", category, content)
}
