package models

// KnowledgeEntry is one static question/answer pair loaded from the
// CSV table at startup. Read-only after load.
type KnowledgeEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
