package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/1933211129/news-summary/internal/domain"
	"github.com/1933211129/news-summary/internal/ports"
)

// Classifier maps article text to a raw category label via one chat call.
// The label may carry extra wording around the category name; callers are
// expected to normalize it.
type Classifier struct {
	chat  ports.ChatClient
	demos []domain.FewShotExample
}

// NewClassifier wires the chat client.
func NewClassifier(chat ports.ChatClient) *Classifier {
	return &Classifier{chat: chat}
}

// SetDemos installs few-shot demonstrations rendered ahead of each call.
func (c *Classifier) SetDemos(demos []domain.FewShotExample) {
	c.demos = demos
}

// Classify returns the model's category label for the given content.
// Content must be non-empty; the batch runner skips blank rows upstream.
func (c *Classifier) Classify(ctx context.Context, content string) (string, error) {
	if c.chat == nil {
		return "", fmt.Errorf("chat client is not configured")
	}

	messages := make([]ports.Message, 0, 2+2*len(c.demos))
	messages = append(messages, ports.Message{Role: ports.RoleSystem, Content: classifySystemPrompt})

	for _, demo := range c.demos {
		reply, err := json.Marshal(map[string]string{
			"reasoning": "",
			"category":  string(demo.Category),
		})
		if err != nil {
			return "", fmt.Errorf("render demo: %w", err)
		}
		messages = append(messages,
			ports.Message{Role: ports.RoleUser, Content: demo.Content},
			ports.Message{Role: ports.RoleAssistant, Content: string(reply)},
		)
	}

	messages = append(messages, ports.Message{Role: ports.RoleUser, Content: content})

	raw, err := c.chat.Complete(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("classify: %w", err)
	}

	var reply struct {
		Reasoning string `json:"reasoning"`
		Category  string `json:"category"`
	}
	if err := decodeModelReply(raw, &reply); err != nil {
		// Unstructured replies still often contain the category name;
		// hand the whole text to normalization instead of failing.
		return strings.TrimSpace(raw), nil
	}

	return reply.Category, nil
}
