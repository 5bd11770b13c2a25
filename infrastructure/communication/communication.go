package communication

import (
	"fmt"
	"os"

	"github.com/slack-go/slack"

	"shiftguard.com/shiftguard/timeclock/model"
)

// Slack posts compliance alerts into the operator channels. It implements
// the core's Notifier; delivery failures are the caller's to swallow.
type Slack struct {
	client  *slack.Client
	options SlackOption
}

type SlackOption struct {
	AlertChannelID     string
	ViolationChannelID string
}

func ConnectSlack() *Slack {
	token := os.Getenv("SLACK_BOT_TOKEN")
	alertCh := os.Getenv("SLACK_ALERT_CHANNEL")
	violationCh := os.Getenv("SLACK_VIOLATION_CHANNEL")

	return NewSlack(token, SlackOption{AlertChannelID: alertCh, ViolationChannelID: violationCh})
}

func NewSlack(token string, options SlackOption) *Slack {
	client := slack.New(token)
	return &Slack{client: client, options: options}
}

func (s *Slack) postMessage(channelID, message string) error {
	_, _, err := s.client.PostMessage(
		channelID,
		slack.MsgOptionText(message, false),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		return fmt.Errorf("failed to post message to Slack: %w", err)
	}
	return nil
}

// PublishAlert routes violations to the violation channel and everything
// else to the general alert channel.
func (s *Slack) PublishAlert(alert *model.ComplianceAlert) error {
	channel := s.options.AlertChannelID
	if alert.Severity == model.SeverityViolation && s.options.ViolationChannelID != "" {
		channel = s.options.ViolationChannelID
	}

	msg := fmt.Sprintf("[%s] %s - worker %d, shift %d, %.1fh worked\n%s",
		alert.Severity, alert.Title, alert.WorkerID, alert.ShiftEntryID,
		alert.HoursWorkedAtTrigger, alert.Description)
	return s.postMessage(channel, msg)
}
