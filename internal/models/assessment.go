package models

// CrisisLevel summarizes escalation urgency derived from the risk score.
type CrisisLevel string

const (
	LevelLow      CrisisLevel = "LOW"
	LevelModerate CrisisLevel = "MODERATE"
	LevelHigh     CrisisLevel = "HIGH"
	LevelSevere   CrisisLevel = "SEVERE"
)

// SentimentLabel is the coarse polarity bucket shown to the user.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNeutral  SentimentLabel = "NEUTRAL"
	SentimentNegative SentimentLabel = "NEGATIVE"
)

// Mode is the three-way routing decision governing reply generation
// and alert side effects.
type Mode string

const (
	ModeNormal     Mode = "NORMAL"
	ModeSupportive Mode = "SUPPORTIVE"
	ModeCrisis     Mode = "CRISIS"
)

// RiskAssessment is the derived value computed fresh per message.
// It is purely a function of the message text.
type RiskAssessment struct {
	Polarity       float64        `json:"polarity"`
	RiskScore      int            `json:"risk_score"`
	CrisisLevel    CrisisLevel    `json:"crisis_level"`
	SentimentLabel SentimentLabel `json:"sentiment"`
}

// LevelForScore maps a risk score to its crisis level. The thresholds
// are fixed: 8+, 6+, 4+, else LOW.
func LevelForScore(score int) CrisisLevel {
	switch {
	case score >= 8:
		return LevelSevere
	case score >= 6:
		return LevelHigh
	case score >= 4:
		return LevelModerate
	default:
		return LevelLow
	}
}
