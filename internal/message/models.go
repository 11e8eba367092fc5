// Package message holds the notification message model and its storage.
package message

import (
	"fmt"
	"time"

	"notifygate/internal/domain"
)

// Content length bounds for a message, enforced before a message is accepted.
const (
	SubjectMinLength  = 10
	SubjectMaxLength  = 120
	MarkdownMinLength = 80
	MarkdownMaxLength = 10000
)

// MessageContent is the sender-provided body of a notification.
type MessageContent struct {
	Subject  string `json:"subject"`
	Markdown string `json:"markdown"`
}

// Validate enforces the content length bounds.
func (c MessageContent) Validate() error {
	if l := len(c.Subject); l < SubjectMinLength || l > SubjectMaxLength {
		return fmt.Errorf("subject length must be between %d and %d characters", SubjectMinLength, SubjectMaxLength)
	}
	if l := len(c.Markdown); l < MarkdownMinLength || l > MarkdownMaxLength {
		return fmt.Errorf("markdown length must be between %d and %d characters", MarkdownMinLength, MarkdownMaxLength)
	}
	return nil
}

// Message is a notification accepted for a recipient from a sender service.
type Message struct {
	ID              string            `json:"id"`
	FiscalCode      domain.FiscalCode `json:"fiscal_code"`
	SenderServiceID string            `json:"sender_service_id"`
	Content         MessageContent    `json:"content"`
	CreatedAt       time.Time         `json:"created_at"`
}
