package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wellbot/internal/models"
	"wellbot/internal/risk"
)

// Replier produces the user-facing reply for a scored message.
type Replier interface {
	Respond(ctx context.Context, message models.Message, assessment models.RiskAssessment, mode models.Mode) string
}

// AlertSender fires the crisis side effect when a score crosses the
// alert threshold.
type AlertSender interface {
	ShouldNotify(assessment models.RiskAssessment) bool
	Notify(user models.UserIdentity, message models.Message, assessment models.RiskAssessment) bool
}

// Pipeline runs the one-way flow for each submission:
// text -> score -> route -> reply -> optional alert -> session log.
// Each submission is handled synchronously to completion; collaborator
// failures resolve to their component's fallback value and never abort
// the flow.
type Pipeline struct {
	scorer   *risk.Scorer
	replier  Replier
	alerts   AlertSender
	sessions *SessionStore
	logger   *zap.Logger
}

func NewPipeline(scorer *risk.Scorer, replier Replier, alerts AlertSender, sessions *SessionStore, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		scorer:   scorer,
		replier:  replier,
		alerts:   alerts,
		sessions: sessions,
		logger:   logger,
	}
}

// Process scores, routes, and answers one submission, appending the
// resulting exchange to the session log.
func (p *Pipeline) Process(ctx context.Context, sessionID, text string, user models.UserIdentity) Entry {
	sessionID = p.sessions.Resolve(sessionID)

	message := models.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Text:      text,
		User:      user,
		Timestamp: time.Now(),
	}

	assessment := p.scorer.Score(text)
	mode := risk.Route(assessment)

	p.logger.Info("Message scored",
		zap.String("message_id", message.ID),
		zap.String("session_id", sessionID),
		zap.Int("risk_score", assessment.RiskScore),
		zap.String("crisis_level", string(assessment.CrisisLevel)),
		zap.String("mode", string(mode)))

	reply := p.replier.Respond(ctx, message, assessment, mode)

	entry := Entry{
		Message:    message,
		Assessment: assessment,
		Mode:       mode,
		Reply:      reply,
		State:      replyState(mode),
	}

	if p.alerts != nil && p.alerts.ShouldNotify(assessment) {
		if p.alerts.Notify(user, message, assessment) {
			entry.AlertState = models.StateAlertSent
		} else {
			entry.AlertState = models.StateAlertFailed
		}
	}

	p.sessions.Append(sessionID, entry)
	return entry
}

func replyState(mode models.Mode) models.MessageState {
	switch mode {
	case models.ModeCrisis:
		return models.StateCrisisDisplayed
	case models.ModeSupportive:
		return models.StateSupportiveReplied
	default:
		return models.StateNormalReplied
	}
}
