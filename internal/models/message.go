package models

import "time"

// MessageState tracks a message through the scoring and reply pipeline.
// The reply states are terminal; the alert states apply only when a
// notification was attempted afterwards.
type MessageState string

const (
	StateReceived          MessageState = "RECEIVED"
	StateScored            MessageState = "SCORED"
	StateNormalReplied     MessageState = "NORMAL_REPLIED"
	StateSupportiveReplied MessageState = "SUPPORTIVE_REPLIED"
	StateCrisisDisplayed   MessageState = "CRISIS_DISPLAYED"
	StateAlertSent         MessageState = "ALERT_SENT"
	StateAlertFailed       MessageState = "ALERT_FAILED"
)

// UserIdentity is the submitting user as far as the pipeline cares:
// an optional display name and contact address for crisis follow-up.
type UserIdentity struct {
	Name    string `json:"name,omitempty"`
	Contact string `json:"contact,omitempty"`
}

// Message is one immutable user submission. It is kept only in the
// in-memory session log for the lifetime of the session.
type Message struct {
	ID        string       `json:"id"`
	SessionID string       `json:"session_id"`
	Text      string       `json:"text"`
	User      UserIdentity `json:"user"`
	Timestamp time.Time    `json:"timestamp"`
}
