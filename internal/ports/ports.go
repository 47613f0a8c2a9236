package ports

import (
	"context"

	"github.com/1933211129/news-summary/internal/domain"
)

// Chat message roles, matching the OpenAI chat-completion convention.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat turn sent to or produced by the model.
type Message struct {
	Role    string
	Content string
}

// ChatClient is the external language-model caller. Model identity,
// temperature and token cap are fixed at construction; callers only
// supply the conversation. Transport/auth/rate-limit failures propagate
// unrecovered.
type ChatClient interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// RecordSource reads a tabular news file into standardized inputs.
type RecordSource interface {
	Read(path string) ([]domain.ArticleInput, error)
}

// RecordSink appends accepted records to durable output. Each Append
// must be flushed to storage before it returns.
type RecordSink interface {
	Append(record domain.IntelligenceRecord) error
	Close() error
}

// ProcessedStore persists accepted records for deduplication and audit.
type ProcessedStore interface {
	AlreadyProcessed(ctx context.Context, urls []string) (map[string]bool, error)
	SaveProcessed(ctx context.Context, record domain.IntelligenceRecord) error
}
