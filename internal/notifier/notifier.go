package notifier

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"wellbot/internal/models"
)

// Transport delivers one alert to one destination.
type Transport interface {
	Name() string
	Recipient() string
	Send(record models.AlertRecord) error
}

// Notifier fans a crisis alert out to the configured transports.
// Delivery is best-effort and fire-and-forget: failures are logged,
// nothing is retried, and repeated triggering messages each produce a
// fresh notification attempt.
type Notifier struct {
	transports []Transport
	threshold  int
	logger     *zap.Logger
}

// NewNotifier creates a notifier firing at the given risk score threshold.
// A threshold of zero or below disables alerting entirely.
func NewNotifier(threshold int, logger *zap.Logger, transports ...Transport) *Notifier {
	return &Notifier{
		transports: transports,
		threshold:  threshold,
		logger:     logger,
	}
}

// ShouldNotify reports whether the assessment crosses the alert threshold.
func (n *Notifier) ShouldNotify(assessment models.RiskAssessment) bool {
	return n.threshold > 0 && assessment.RiskScore >= n.threshold
}

// Notify delivers a structured alert for the message. It never panics and
// never blocks the user-facing flow on an error: all failures are caught,
// logged, and reported as false. Absence of any configured transport is
// not an error.
func (n *Notifier) Notify(user models.UserIdentity, message models.Message, assessment models.RiskAssessment) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("Alert delivery panicked", zap.Any("panic", r))
			ok = false
		}
	}()

	if len(n.transports) == 0 {
		n.logger.Warn("Crisis alert triggered but no notification transport is configured",
			zap.String("message_id", message.ID),
			zap.Int("risk_score", assessment.RiskScore))
		return false
	}

	delivered := false
	for _, transport := range n.transports {
		record := models.AlertRecord{
			Recipient:   transport.Recipient(),
			User:        user,
			MessageText: message.Text,
			RiskScore:   assessment.RiskScore,
			Timestamp:   time.Now(),
		}

		if err := transport.Send(record); err != nil {
			n.logger.Error("Failed to deliver crisis alert",
				zap.String("transport", transport.Name()),
				zap.String("message_id", message.ID),
				zap.Error(err))
			continue
		}

		n.logger.Info("Crisis alert delivered",
			zap.String("transport", transport.Name()),
			zap.String("message_id", message.ID),
			zap.Int("risk_score", assessment.RiskScore))
		delivered = true
	}

	return delivered
}

// alertBody renders the shared plaintext notice used by the transports.
func alertBody(record models.AlertRecord) string {
	contact := "Not provided"
	if record.User.Name != "" || record.User.Contact != "" {
		contact = fmt.Sprintf("Name: %s\nContact: %s", record.User.Name, record.User.Contact)
	}

	return fmt.Sprintf(`CRISIS ALERT - WellBot

Risk Score: %d/10
Timestamp: %s

User Message:
%q

Contact Information:
%s

Please follow up immediately if this is a genuine crisis.

- WellBot System`,
		record.RiskScore,
		record.Timestamp.Format("2006-01-02 15:04:05"),
		record.MessageText,
		contact)
}
