package models

import "time"

// AlertRecord is a one-shot outbound crisis notification. Fire-and-forget;
// no retry state is tracked and delivery is not deduplicated.
type AlertRecord struct {
	Recipient   string       `json:"recipient"`
	User        UserIdentity `json:"user"`
	MessageText string       `json:"message_text"`
	RiskScore   int          `json:"risk_score"`
	Timestamp   time.Time    `json:"timestamp"`
}
