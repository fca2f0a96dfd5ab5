package risk

import "wellbot/internal/models"

// Routing thresholds on the risk score. A score of exactly CrisisThreshold
// routes to CRISIS; exactly SupportiveThreshold routes to SUPPORTIVE.
const (
	CrisisThreshold     = 6
	SupportiveThreshold = 4
)

// Route maps an assessment to a response mode. Pure dispatch: it performs
// no side effects and calls no external services.
func Route(assessment models.RiskAssessment) models.Mode {
	switch {
	case assessment.RiskScore >= CrisisThreshold:
		return models.ModeCrisis
	case assessment.RiskScore >= SupportiveThreshold:
		return models.ModeSupportive
	default:
		return models.ModeNormal
	}
}
