// Package email delivers outgoing mail through SMTP, a Redis-backed queue or the log.
package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"
)

// Message is one outgoing mail. It is also the queued job payload.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Mailer sends a message with a body to one recipient.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

const ResetSubject = "Reset Password"

// ResetURL builds the link embedded in a password reset mail.
func ResetURL(baseURL string, userID uuid.UUID, token string) string {
	return fmt.Sprintf("%s/password/reset-password/%s/%s", strings.TrimRight(baseURL, "/"), userID, token)
}

func PasswordResetMessage(to, url string) Message {
	return Message{
		To:      to,
		Subject: ResetSubject,
		HTML: fmt.Sprintf(
			"<div>\n  <h4>Click on the link below to reset your password</h4>\n  <p>%s</p>\n</div>",
			html.EscapeString(url),
		),
	}
}
