package usecase

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decodeModelReply parses a JSON object out of a raw model reply,
// tolerating markdown code fences some models wrap around JSON output.
func decodeModelReply(raw string, v any) error {
	content := strings.TrimSpace(raw)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	if err := json.Unmarshal([]byte(content), v); err != nil {
		return fmt.Errorf("decode model reply: %w", err)
	}
	return nil
}
