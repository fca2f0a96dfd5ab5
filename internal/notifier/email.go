package notifier

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"wellbot/internal/models"
)

// EmailTransport delivers alerts to a counselor mailbox over SMTP.
type EmailTransport struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       string
}

// NewEmailTransport returns nil when the recipient or host is missing so
// callers can treat the channel as simply not configured.
func NewEmailTransport(host string, port int, username, password, from, to string) *EmailTransport {
	if host == "" || to == "" {
		return nil
	}
	if port == 0 {
		port = 587
	}
	if from == "" {
		from = username
	}
	return &EmailTransport{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		to:       to,
	}
}

func (t *EmailTransport) Name() string {
	return "email"
}

func (t *EmailTransport) Recipient() string {
	return t.to
}

func (t *EmailTransport) Send(record models.AlertRecord) error {
	m := gomail.NewMessage()
	m.SetHeader("From", t.from)
	m.SetHeader("To", t.to)
	m.SetHeader("Subject", fmt.Sprintf("CRISIS ALERT - Risk Score: %d/10", record.RiskScore))
	m.SetBody("text/plain", alertBody(record))

	dialer := gomail.NewDialer(t.host, t.port, t.username, t.password)
	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}
	return nil
}
