package notification

import (
	"fmt"
	"net/http"

	"github.com/slack-go/slack"
)

// SlackNotifier pushes operational alerts to a Slack webhook. When disabled it
// is a no-op, so callers never need to guard their notify calls.
type SlackNotifier struct {
	webhookURL string
	channel    string
	username   string
	iconEmoji  string
	enabled    bool
}

func NewSlackNotifier(webhookURL, channel, username, iconEmoji string, enabled bool) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		channel:    channel,
		username:   username,
		iconEmoji:  iconEmoji,
		enabled:    enabled,
	}
}

// SendRichNotification sends a message with an attachment built from fields.
func (s *SlackNotifier) SendRichNotification(title, message, color string, fields map[string]string) error {
	if !s.enabled {
		return nil
	}

	attachmentFields := []slack.AttachmentField{}
	for k, v := range fields {
		attachmentFields = append(attachmentFields, slack.AttachmentField{
			Title: k,
			Value: v,
			Short: len(v) < 20,
		})
	}

	attachment := slack.Attachment{
		Title:      title,
		Text:       message,
		Color:      color, // "good", "warning", "danger" or a hex code
		Fields:     attachmentFields,
		MarkdownIn: []string{"text", "fields"},
	}

	msg := &slack.WebhookMessage{
		Attachments: []slack.Attachment{attachment},
		Channel:     s.channel,
		Username:    s.username,
		IconEmoji:   s.iconEmoji,
	}

	return slack.PostWebhook(s.webhookURL, msg)
}

// NotifyServerError reports a 5xx response, with request details attached.
func (s *SlackNotifier) NotifyServerError(err error, request *http.Request) error {
	if !s.enabled || err == nil {
		return nil
	}

	fields := map[string]string{
		"Error": fmt.Sprintf("`%v`", err),
	}
	if request != nil {
		fields["Method"] = request.Method
		fields["Path"] = request.URL.Path
		fields["Remote IP"] = request.RemoteAddr
	}

	return s.SendRichNotification("Internal Server Error (HTTP 500)", "", "danger", fields)
}

// NotifyUpstreamError reports a failed call against the media store.
func (s *SlackNotifier) NotifyUpstreamError(operation string, err error, request *http.Request) error {
	if !s.enabled || err == nil {
		return nil
	}

	fields := map[string]string{
		"Operation": operation,
		"Error":     fmt.Sprintf("`%v`", err),
	}
	if request != nil {
		fields["Method"] = request.Method
		fields["Path"] = request.URL.Path
		fields["Remote IP"] = request.RemoteAddr
	}

	return s.SendRichNotification("Media store call failed (HTTP 500)", "", "danger", fields)
}

// NotifyWarning reports a condition worth an operator's attention that is not
// tied to a request, such as a failed storage reachability probe.
func (s *SlackNotifier) NotifyWarning(title, message string, fields map[string]string) error {
	return s.SendRichNotification(title, message, "warning", fields)
}
