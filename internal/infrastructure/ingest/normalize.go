package ingest

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripMarkup extracts plain text from content cells that carry HTML.
// Cells without markup pass through untouched, as does anything goquery
// cannot reduce to non-empty text.
func StripMarkup(content string) string {
	if !strings.Contains(content, "<") || !strings.Contains(content, ">") {
		return content
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return content
	}

	text := strings.TrimSpace(doc.Text())
	if text == "" {
		return content
	}
	return text
}
