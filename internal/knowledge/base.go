package knowledge

import (
	"encoding/csv"
	"os"
	"strings"

	"go.uber.org/zap"

	"wellbot/internal/models"
)

// ContextLimit caps the concatenated Q/A context appended to prompts.
const ContextLimit = 1000

// minTokenLength filters out short tokens ("i", "a", "to") that would
// match nearly every question in the table.
const minTokenLength = 3

// Base is the read-only question/answer table loaded once at startup.
type Base struct {
	entries []models.KnowledgeEntry
	logger  *zap.Logger
}

// Load reads a CSV with "Questions" and "Answers" columns. A missing or
// malformed file degrades to an empty base rather than failing startup.
func Load(path string, logger *zap.Logger) *Base {
	base := &Base{logger: logger}

	file, err := os.Open(path)
	if err != nil {
		logger.Warn("Knowledge table not found, continuing with empty base",
			zap.String("path", path), zap.Error(err))
		return base
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		logger.Warn("Knowledge table unreadable, continuing with empty base",
			zap.String("path", path), zap.Error(err))
		return base
	}
	if len(records) < 2 {
		logger.Warn("Knowledge table has no data rows", zap.String("path", path))
		return base
	}

	questionCol, answerCol := -1, -1
	for i, name := range records[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "questions", "question":
			questionCol = i
		case "answers", "answer":
			answerCol = i
		}
	}
	if questionCol < 0 || answerCol < 0 {
		logger.Warn("Knowledge table missing Questions/Answers columns",
			zap.String("path", path))
		return base
	}

	for _, row := range records[1:] {
		if len(row) <= questionCol || len(row) <= answerCol {
			continue
		}
		question := strings.TrimSpace(row[questionCol])
		answer := strings.TrimSpace(row[answerCol])
		if question == "" || answer == "" {
			continue
		}
		base.entries = append(base.entries, models.KnowledgeEntry{
			Question: strings.ToLower(question),
			Answer:   answer,
		})
	}

	logger.Info("Knowledge table loaded",
		zap.String("path", path), zap.Int("entries", len(base.entries)))
	return base
}

// NewBase builds a base from in-memory entries. Used by tests and by
// callers that source the table elsewhere.
func NewBase(entries []models.KnowledgeEntry, logger *zap.Logger) *Base {
	normalized := make([]models.KnowledgeEntry, 0, len(entries))
	for _, e := range entries {
		if e.Question == "" || e.Answer == "" {
			continue
		}
		normalized = append(normalized, models.KnowledgeEntry{
			Question: strings.ToLower(e.Question),
			Answer:   e.Answer,
		})
	}
	return &Base{entries: normalized, logger: logger}
}

// Len reports the number of loaded entries.
func (b *Base) Len() int {
	return len(b.entries)
}

// Search returns a prompt-context snippet built from entries whose
// question contains any whitespace-split token of the lowered input.
// All matches are concatenated and truncated to ContextLimit characters.
// Returns "" when nothing matches.
func (b *Base) Search(input string) string {
	tokens := searchTokens(input)
	if len(tokens) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, entry := range b.entries {
		if !matchesAny(entry.Question, tokens) {
			continue
		}
		sb.WriteString("Q: ")
		sb.WriteString(entry.Question)
		sb.WriteString("\nA: ")
		sb.WriteString(entry.Answer)
		sb.WriteString("\n\n")
		if sb.Len() >= ContextLimit {
			break
		}
	}

	context := sb.String()
	if len(context) > ContextLimit {
		context = context[:ContextLimit]
	}
	return context
}

func searchTokens(input string) []string {
	fields := strings.Fields(strings.ToLower(input))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,!?\"'")
		if len(f) < minTokenLength {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func matchesAny(question string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(question, token) {
			return true
		}
	}
	return false
}
