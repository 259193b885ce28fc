// internal/relay/adapters/telegramdispatcher/dispatcher.go
package telegramdispatcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/onimusic/notifications-helper/internal/relay/core"
	"github.com/onimusic/notifications-helper/telegram"
	"gopkg.in/validator.v2"
)

// Dispatcher sends relay notifications with a single bot token
type Dispatcher struct {
	client   *telegram.Client
	botToken string
	logger   *slog.Logger
}

type Config struct {
	BaseURL        string        `validate:"nonzero"`
	BotToken       string        `validate:"nonzero"`
	RequestTimeout time.Duration `validate:"min=1"`
	Logger         *slog.Logger  `validate:"nonnil"`
}

func NewDispatcher(cfg Config) (*Dispatcher, error) {
	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid dispatcher configuration: %w", err)
	}

	client, err := telegram.NewClient(telegram.ClientConfig{
		BaseURL: cfg.BaseURL,
		HTTPClient: &http.Client{
			Timeout: cfg.RequestTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConnsPerHost: 2,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	cfg.Logger.InfoContext(context.Background(), "Telegram dispatcher initialized",
		"base_url", cfg.BaseURL,
		"bot", MaskToken(cfg.BotToken),
		"request_timeout", cfg.RequestTimeout,
	)

	return &Dispatcher{
		client:   client,
		botToken: cfg.BotToken,
		logger:   cfg.Logger,
	}, nil
}

// Dispatch sends n to chatID once
func (d *Dispatcher) Dispatch(ctx context.Context, chatID string, n core.Notification) (*telegram.Response, error) {
	d.logger.DebugContext(ctx, "Dispatching notification",
		"method", n.Kind.Method(),
		"chat_id", chatID,
		"content_length", len(n.Content),
		"has_caption", n.Caption != "",
	)

	return d.client.Send(ctx, d.botToken, chatID, n.Kind, n.Content, n.Caption)
}

// MaskToken keeps the bot ID part of a token and hides the secret
func MaskToken(token string) string {
	const visible = 6
	if len(token) <= visible {
		return "***"
	}
	return token[:visible] + "***"
}
