package core

import (
	"context"

	"github.com/onimusic/notifications-helper/telegram"
)

// Primary Ports (APIs that drive our application)

// RelayService defines the main business logic interface
type RelayService interface {
	// Send relays a notification once and returns Telegram's answer untouched
	Send(ctx context.Context, n Notification) (*DispatchResult, error)

	// Stats summarizes past dispatches
	Stats(ctx context.Context) (*DispatchStats, error)
}

// Secondary Ports (SPIs that are driven by our application)

// Dispatcher sends a notification to a resolved chat ID through the Bot API
type Dispatcher interface {
	Dispatch(ctx context.Context, chatID string, n Notification) (*telegram.Response, error)
}

// TargetResolver maps aliases to chat IDs
type TargetResolver interface {
	// Resolve returns the chat ID for target, passing raw chat IDs through
	Resolve(ctx context.Context, target string) (string, error)
}

// DispatchRecorder persists dispatch outcomes
type DispatchRecorder interface {
	RecordDispatch(ctx context.Context, record DispatchRecord) error
	GetStats(ctx context.Context) (*DispatchStats, error)
}
