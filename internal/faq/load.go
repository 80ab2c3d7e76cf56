package faq

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/studygate/partner-bot-go/internal/sliceutil"
)

type documentFile struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Tags     []string `json:"tags"`
}

// LoadDocuments reads FAQ documents from a JSON file (an array of entries
// with id, question, answer and tags). Entries without an id or question are
// dropped; duplicate ids keep the first occurrence.
func LoadDocuments(path string) ([]Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read FAQ file: %w", err)
	}

	var entries []documentFile
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse FAQ file: %w", err)
	}

	docs := make([]Document, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" || e.Question == "" {
			continue
		}
		docs = append(docs, Document{
			ID:       e.ID,
			Question: e.Question,
			Answer:   e.Answer,
			Tags:     e.Tags,
		})
	}
	return sliceutil.Deduplicate(docs, func(d Document) string { return d.ID }), nil
}
