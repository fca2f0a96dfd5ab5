package risk

import (
	"strings"

	"go.uber.org/zap"

	"wellbot/internal/models"
)

// DefaultKeywordWeight is the points added per matched crisis keyword.
const DefaultKeywordWeight = 2

// crisisKeywords is the static phrase table. Matching is case-insensitive
// substring containment on the lowered text; multi-word phrases must match
// verbatim. Overlapping matches all count.
var crisisKeywords = []string{
	"suicide", "kill myself", "end my life", "want to die", "want to end",
	"better off dead", "no point living", "can't go on", "end it all",
	"hurt myself", "self harm", "cutting", "overdose", "jump off",
	"hang myself", "worthless", "hopeless", "can't take it anymore",
	"can't take this anymore", "nobody cares",
	"everyone would be better without me",
}

// distressVocabulary adds a single point when any member appears.
var distressVocabulary = []string{
	"depressed", "depression", "anxiety", "panic", "scared",
}

// Scorer computes a RiskAssessment from raw text. It holds no per-message
// state; scoring the same text twice yields identical results.
type Scorer struct {
	polarity      PolarityFunc
	keywordWeight int
	logger        *zap.Logger
}

// NewScorer creates a scorer with the default lexicon polarity function.
// A keywordWeight of zero or below falls back to the default weight.
func NewScorer(keywordWeight int, logger *zap.Logger) *Scorer {
	return NewScorerWithPolarity(keywordWeight, LexiconPolarity, logger)
}

// NewScorerWithPolarity creates a scorer with a custom polarity function.
func NewScorerWithPolarity(keywordWeight int, polarity PolarityFunc, logger *zap.Logger) *Scorer {
	if keywordWeight <= 0 {
		keywordWeight = DefaultKeywordWeight
	}
	if polarity == nil {
		polarity = LexiconPolarity
	}
	return &Scorer{
		polarity:      polarity,
		keywordWeight: keywordWeight,
		logger:        logger,
	}
}

// Score is a total function: any internal failure is caught and reported
// as the neutral default assessment rather than propagated.
func (s *Scorer) Score(text string) (assessment models.RiskAssessment) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Scoring failed, returning neutral default", zap.Any("panic", r))
			assessment = neutralAssessment()
		}
	}()

	lowered := strings.ToLower(text)
	if strings.TrimSpace(lowered) == "" {
		return neutralAssessment()
	}

	polarity := clampPolarity(s.polarity(text))

	score := polarityBand(polarity)

	keywordCount := 0
	for _, keyword := range crisisKeywords {
		if strings.Contains(lowered, keyword) {
			keywordCount++
		}
	}
	score += s.keywordWeight * keywordCount

	for _, word := range distressVocabulary {
		if strings.Contains(lowered, word) {
			score++
			break
		}
	}

	if score > 10 {
		score = 10
	}
	if score < 0 {
		score = 0
	}

	return models.RiskAssessment{
		Polarity:       polarity,
		RiskScore:      score,
		CrisisLevel:    models.LevelForScore(score),
		SentimentLabel: sentimentLabel(polarity),
	}
}

func neutralAssessment() models.RiskAssessment {
	return models.RiskAssessment{
		Polarity:       0,
		RiskScore:      0,
		CrisisLevel:    models.LevelLow,
		SentimentLabel: models.SentimentNeutral,
	}
}

// polarityBand maps polarity to its base risk contribution.
func polarityBand(polarity float64) int {
	switch {
	case polarity <= -0.5:
		return 3
	case polarity <= -0.2:
		return 2
	case polarity < 0:
		return 1
	default:
		return 0
	}
}

func sentimentLabel(polarity float64) models.SentimentLabel {
	switch {
	case polarity > 0.1:
		return models.SentimentPositive
	case polarity < -0.1:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func clampPolarity(p float64) float64 {
	if p > 1 {
		return 1
	}
	if p < -1 {
		return -1
	}
	return p
}
