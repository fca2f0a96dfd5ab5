package notifier

import (
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"wellbot/internal/models"
)

type fakeTransport struct {
	name    string
	err     error
	records []models.AlertRecord
}

func (f *fakeTransport) Name() string      { return f.name }
func (f *fakeTransport) Recipient() string { return "counselor@example.com" }

func (f *fakeTransport) Send(record models.AlertRecord) error {
	f.records = append(f.records, record)
	return f.err
}

func testAssessment(score int) models.RiskAssessment {
	return models.RiskAssessment{
		RiskScore:   score,
		CrisisLevel: models.LevelForScore(score),
	}
}

func testAlertMessage() models.Message {
	return models.Message{ID: "m1", SessionID: "s1", Text: "I can't go on", Timestamp: time.Now()}
}

func TestShouldNotifyThreshold(t *testing.T) {
	n := NewNotifier(6, zap.NewNop())
	if n.ShouldNotify(testAssessment(5)) {
		t.Fatal("score 5 must not trigger at threshold 6")
	}
	if !n.ShouldNotify(testAssessment(6)) {
		t.Fatal("score 6 must trigger at threshold 6")
	}
	if !n.ShouldNotify(testAssessment(10)) {
		t.Fatal("score 10 must trigger")
	}
}

func TestShouldNotifyDisabled(t *testing.T) {
	n := NewNotifier(0, zap.NewNop())
	if n.ShouldNotify(testAssessment(10)) {
		t.Fatal("threshold 0 disables alerting")
	}
}

func TestNotifyWithoutTransports(t *testing.T) {
	n := NewNotifier(6, zap.NewNop())
	if n.Notify(models.UserIdentity{}, testAlertMessage(), testAssessment(8)) {
		t.Fatal("expected false when no transport is configured")
	}
}

func TestNotifyDeliversRecord(t *testing.T) {
	transport := &fakeTransport{name: "fake"}
	n := NewNotifier(6, zap.NewNop(), transport)

	user := models.UserIdentity{Name: "Sam", Contact: "sam@example.com"}
	if !n.Notify(user, testAlertMessage(), testAssessment(8)) {
		t.Fatal("expected successful delivery")
	}

	if len(transport.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(transport.records))
	}
	record := transport.records[0]
	if record.RiskScore != 8 {
		t.Fatalf("expected risk score 8, got %d", record.RiskScore)
	}
	if record.MessageText != "I can't go on" {
		t.Fatalf("expected original text, got %q", record.MessageText)
	}
	if record.Recipient != "counselor@example.com" {
		t.Fatalf("expected transport recipient, got %q", record.Recipient)
	}
	if record.User != user {
		t.Fatalf("expected user identity carried, got %+v", record.User)
	}
	if record.Timestamp.IsZero() {
		t.Fatal("expected timestamp set")
	}
}

func TestNotifyReportsFailure(t *testing.T) {
	transport := &fakeTransport{name: "fake", err: errors.New("smtp down")}
	n := NewNotifier(6, zap.NewNop(), transport)

	if n.Notify(models.UserIdentity{}, testAlertMessage(), testAssessment(9)) {
		t.Fatal("expected false when the only transport fails")
	}
}

func TestNotifySucceedsWhenAnyTransportDelivers(t *testing.T) {
	failing := &fakeTransport{name: "email", err: errors.New("smtp down")}
	working := &fakeTransport{name: "telegram"}
	n := NewNotifier(6, zap.NewNop(), failing, working)

	if !n.Notify(models.UserIdentity{}, testAlertMessage(), testAssessment(9)) {
		t.Fatal("expected true when a transport delivers")
	}
	if len(working.records) != 1 {
		t.Fatal("expected delivery on the working transport")
	}
}

func TestNotifyNoDeduplication(t *testing.T) {
	transport := &fakeTransport{name: "fake"}
	n := NewNotifier(6, zap.NewNop(), transport)

	msg := testAlertMessage()
	n.Notify(models.UserIdentity{}, msg, testAssessment(8))
	n.Notify(models.UserIdentity{}, msg, testAssessment(8))

	if len(transport.records) != 2 {
		t.Fatalf("every trigger must produce a fresh attempt, got %d", len(transport.records))
	}
}

func TestAlertBodyContents(t *testing.T) {
	record := models.AlertRecord{
		Recipient:   "counselor@example.com",
		User:        models.UserIdentity{Name: "Sam", Contact: "555-0100"},
		MessageText: "I feel hopeless",
		RiskScore:   7,
		Timestamp:   time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	body := alertBody(record)
	for _, want := range []string{"7/10", "I feel hopeless", "Sam", "555-0100", "2025-03-14 09:30:00"} {
		if !strings.Contains(body, want) {
			t.Fatalf("alert body missing %q:\n%s", want, body)
		}
	}
}

func TestAlertBodyWithoutContact(t *testing.T) {
	record := models.AlertRecord{MessageText: "text", RiskScore: 6, Timestamp: time.Now()}
	if !strings.Contains(alertBody(record), "Not provided") {
		t.Fatal("expected placeholder for missing contact info")
	}
}

func TestEmailTransportRequiresConfiguration(t *testing.T) {
	if NewEmailTransport("", 0, "", "", "", "to@example.com") != nil {
		t.Fatal("missing host must yield a nil transport")
	}
	if NewEmailTransport("smtp.example.com", 0, "u", "p", "", "") != nil {
		t.Fatal("missing recipient must yield a nil transport")
	}
	transport := NewEmailTransport("smtp.example.com", 0, "user", "pass", "", "to@example.com")
	if transport == nil {
		t.Fatal("expected configured transport")
	}
	if transport.Recipient() != "to@example.com" {
		t.Fatalf("unexpected recipient: %q", transport.Recipient())
	}
}
