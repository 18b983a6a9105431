package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/jhoicas/Calidad-api/internal/application/quality"
)

var _ quality.Notifier = (*SlackNotifier)(nil)

// SlackNotifier publica en un canal vía incoming webhook.
type SlackNotifier struct {
	webhookURL string
}

// NewSlackNotifier construye el notificador.
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{webhookURL: webhookURL}
}

// Notify envía la notificación como adjunto con color según el nivel.
func (s *SlackNotifier) Notify(ctx context.Context, n quality.Notification) error {
	if err := slack.PostWebhookContext(ctx, s.webhookURL, webhookMessage(n)); err != nil {
		return fmt.Errorf("slack webhook: %w", err)
	}
	return nil
}

func webhookMessage(n quality.Notification) *slack.WebhookMessage {
	color := "good"
	if n.Level == quality.LevelAlert {
		color = "danger"
	}
	att := slack.Attachment{
		Color:    color,
		Title:    n.Title,
		Text:     n.Body,
		Fallback: n.Title + ": " + n.Body,
	}
	for _, k := range []string{"order_number", "phase", "result", "date"} {
		if v, ok := n.Data[k]; ok && v != "" {
			att.Fields = append(att.Fields, slack.AttachmentField{Title: k, Value: v, Short: true})
		}
	}
	return &slack.WebhookMessage{Text: n.Title, Attachments: []slack.Attachment{att}}
}
