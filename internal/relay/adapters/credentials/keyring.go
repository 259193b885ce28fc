package credentials

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	serviceName = "oni-notifications"
	tokenEnvVar = "TELEGRAM_BOT_TOKEN"
)

// ErrTokenNotFound is returned when no bot token is configured anywhere
var ErrTokenNotFound = errors.New("bot token not found")

// Store keeps bot tokens in the system keychain, one per bot name
type Store struct {
	service string
}

func NewStore() *Store {
	return &Store{service: serviceName}
}

// Get retrieves the token saved for bot
func (s *Store) Get(bot string) (string, error) {
	token, err := keyring.Get(s.service, bot)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("%w: %s", ErrTokenNotFound, bot)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read keychain: %w", err)
	}
	return token, nil
}

// Set stores the token for bot
func (s *Store) Set(bot, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}
	if err := keyring.Set(s.service, bot, token); err != nil {
		return fmt.Errorf("failed to write keychain: %w", err)
	}
	return nil
}

// Delete removes the token for bot
func (s *Store) Delete(bot string) error {
	err := keyring.Delete(s.service, bot)
	if errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrTokenNotFound, bot)
	}
	return err
}

// Lookup picks the token from the flag value, then TELEGRAM_BOT_TOKEN,
// then the keychain entry for bot.
func (s *Store) Lookup(flagValue, bot string) (string, error) {
	if token := strings.TrimSpace(flagValue); token != "" {
		return token, nil
	}
	if token := strings.TrimSpace(os.Getenv(tokenEnvVar)); token != "" {
		return token, nil
	}
	return s.Get(bot)
}
