package responder

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"wellbot/internal/completion_client"
	"wellbot/internal/knowledge"
	"wellbot/internal/models"
)

// Completer is the external completion collaborator. Any failure is
// treated uniformly as "no response".
type Completer interface {
	Complete(ctx context.Context, turns []completion_client.Turn) (string, error)
}

// CrisisMessage is the fixed safety reply shown instead of a model
// response whenever a message routes to CRISIS. It must never depend on
// any external service succeeding.
const CrisisMessage = `It sounds like you are going through something really serious right now. You are not alone, and immediate help is available:

- Call 911 if you are in immediate danger
- Call or text 988 (Suicide & Crisis Lifeline)
- Text HOME to 741741 (Crisis Text Line)

Online support:
- suicidepreventionlifeline.org
- crisistextline.org
- nami.org (Mental Health Support)

Please reach out to one of these resources right now. If you can, let someone near you know how you are feeling.`

// FallbackReply is returned verbatim when the completion collaborator
// fails or produces no content.
const FallbackReply = "I'm experiencing technical difficulties right now. Please try sending your message again in a moment. If you're in crisis, please call 988 or emergency services."

// EmergencyResources lists the resources surfaced by the crisis panel.
var EmergencyResources = []string{
	"911 (Life-threatening emergency)",
	"988 (Suicide & Crisis Lifeline)",
	"Text HOME to 741741 (Crisis Text Line)",
	"suicidepreventionlifeline.org",
	"crisistextline.org",
	"nami.org",
}

// fallbackSnippetLimit caps the knowledge snippet appended to the
// fallback reply.
const fallbackSnippetLimit = 300

// Responder builds prompts and delegates reply generation to the
// completion collaborator, except in CRISIS mode where the fixed safety
// message is returned without any external call.
type Responder struct {
	completer Completer
	kb        *knowledge.Base
	logger    *zap.Logger
}

func NewResponder(completer Completer, kb *knowledge.Base, logger *zap.Logger) *Responder {
	return &Responder{
		completer: completer,
		kb:        kb,
		logger:    logger,
	}
}

// Respond produces the user-facing reply text for a scored message.
// It never returns an error: every failure path resolves to a fixed
// fallback value.
func (r *Responder) Respond(ctx context.Context, message models.Message, assessment models.RiskAssessment, mode models.Mode) string {
	if mode == models.ModeCrisis {
		return CrisisMessage
	}

	relevantContext := r.kb.Search(message.Text)
	systemPrompt := buildSystemPrompt(mode, assessment, relevantContext)

	turns := []completion_client.Turn{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: message.Text},
	}

	reply, err := r.completer.Complete(ctx, turns)
	if err != nil {
		r.logger.Error("Completion service failed, using fallback reply",
			zap.String("message_id", message.ID), zap.Error(err))
		return fallbackWithSnippet(relevantContext)
	}
	if strings.TrimSpace(reply) == "" {
		r.logger.Warn("Completion service returned empty reply, using fallback",
			zap.String("message_id", message.ID))
		return fallbackWithSnippet(relevantContext)
	}

	return reply
}

// buildSystemPrompt varies the instruction wording by mode. Both variants
// carry the "Never diagnose." constraint verbatim.
func buildSystemPrompt(mode models.Mode, assessment models.RiskAssessment, relevantContext string) string {
	if mode == models.ModeSupportive {
		if relevantContext == "" {
			relevantContext = "Mental health support for someone in distress"
		}
		return fmt.Sprintf("You are WellBot, a compassionate mental health chatbot. The user is showing signs of distress (Risk: %d/10, Sentiment: %s). Be extra empathetic, validate their feelings, and gently encourage professional help. Provide specific coping strategies and resources. Never diagnose.\n\nContext: %s",
			assessment.RiskScore, assessment.SentimentLabel, relevantContext)
	}

	if relevantContext == "" {
		relevantContext = "General mental health support"
	}
	return fmt.Sprintf("You are WellBot, a supportive mental health chatbot. The user seems to be in a stable state (Risk: %d/10, Sentiment: %s). Provide helpful, encouraging responses while maintaining professional boundaries. Never diagnose.\n\nContext: %s",
		assessment.RiskScore, assessment.SentimentLabel, relevantContext)
}

func fallbackWithSnippet(relevantContext string) string {
	if relevantContext == "" {
		return FallbackReply
	}
	snippet := relevantContext
	if len(snippet) > fallbackSnippetLimit {
		snippet = snippet[:fallbackSnippetLimit]
	}
	return FallbackReply + "\n\nIn the meantime, this may help:\n" + snippet
}
