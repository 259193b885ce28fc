// internal/relay/core/validators.go
package core

import (
	"strings"
	"unicode/utf8"

	"github.com/onimusic/notifications-helper/telegram"
)

// ValidateNotification checks the request shape only. Token, chat ID and
// platform limits are left to Telegram.
func ValidateNotification(n Notification) error {
	if strings.TrimSpace(n.Target) == "" {
		return NewValidationError("target", ErrEmptyTarget)
	}

	if n.Kind.Method() == "" {
		return NewValidationError("kind", ErrUnsupportedKind)
	}

	if n.Content == "" {
		return NewValidationError("content", ErrEmptyContent)
	}

	if n.Kind == telegram.KindText && n.Caption != "" {
		return NewValidationError("caption", ErrCaptionNotAllowed)
	}

	if !utf8.ValidString(n.Content) || !utf8.ValidString(n.Caption) {
		return ValidationError{Field: "content", Message: "contains invalid UTF-8 characters"}
	}

	return nil
}

// ParseNotification builds a Notification from a kind name
func ParseNotification(kind, target, content, caption string) (Notification, error) {
	parsed, err := telegram.ParseContentKind(kind)
	if err != nil {
		return Notification{}, NewValidationError("kind", ErrUnsupportedKind)
	}

	n := Notification{
		Kind:    parsed,
		Target:  strings.TrimSpace(target),
		Content: content,
		Caption: caption,
	}

	if err := ValidateNotification(n); err != nil {
		return Notification{}, err
	}

	return n, nil
}
