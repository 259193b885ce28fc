package telegram

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrUnknownContentKind is matched by every ConfigurationError.
var ErrUnknownContentKind = errors.New("unknown content kind")

// ConfigurationError reports a content kind with no endpoint mapping.
// No request is made when it is returned.
type ConfigurationError struct {
	Kind ContentKind
	// Name is set when the kind came from ParseContentKind.
	Name string
}

func (e *ConfigurationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("telegram: %s: %q", ErrUnknownContentKind, e.Name)
	}
	return fmt.Sprintf("telegram: %s: %d", ErrUnknownContentKind, int(e.Kind))
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrUnknownContentKind
}

// TransportError wraps whatever the HTTP layer reported for a send.
// Unwrap yields that error untouched.
type TransportError struct {
	Method string
	Err    error
}

// Error leaves out the request URL because it embeds the bot token.
func (e *TransportError) Error() string {
	var urlErr *url.Error
	if errors.As(e.Err, &urlErr) {
		return fmt.Sprintf("telegram: %s: %s: %v", e.Method, urlErr.Op, urlErr.Err)
	}
	return fmt.Sprintf("telegram: %s: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
