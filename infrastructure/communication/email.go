package communication

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"shiftguard.com/shiftguard/timeclock/model"
)

// EmailNotifier sends violation-severity alerts to a compliance mailbox via
// SES. Warnings and info alerts are not mailed.
type EmailNotifier struct {
	From string
	To   string
}

func ConnectEmail() *EmailNotifier {
	return &EmailNotifier{
		From: os.Getenv("SES_FROM_ADDRESS"),
		To:   os.Getenv("COMPLIANCE_MAILBOX"),
	}
}

func (e *EmailNotifier) PublishAlert(alert *model.ComplianceAlert) error {
	if alert.Severity != model.SeverityViolation {
		return nil
	}
	if e.From == "" || e.To == "" {
		return fmt.Errorf("email notifier not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := ses.NewFromConfig(cfg)

	raw := buildAlertEmail(e.From, e.To, alert)
	_, err = client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		RawMessage: &types.RawMessage{Data: raw},
	})
	if err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}
	return nil
}

func buildAlertEmail(from, to string, alert *model.ComplianceAlert) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: [%s] %s (worker %d)\r\n", alert.CompanyID, alert.Title, alert.WorkerID)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", alert.Description)
	fmt.Fprintf(&buf, "Shift: %d\r\nHours worked at trigger: %.2f\r\nRaised: %s\r\n",
		alert.ShiftEntryID, alert.HoursWorkedAtTrigger, alert.CreatedAt.Format(time.RFC3339))
	return buf.Bytes()
}

// Sink is any channel that can carry a compliance alert.
type Sink interface {
	PublishAlert(alert *model.ComplianceAlert) error
}

// Fanout publishes to every configured channel and reports the last failure;
// the session controller already treats publishing as fire-and-forget.
type Fanout struct {
	Sinks []Sink
}

func (f *Fanout) PublishAlert(alert *model.ComplianceAlert) error {
	var lastErr error
	for _, sink := range f.Sinks {
		if err := sink.PublishAlert(alert); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
