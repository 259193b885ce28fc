// internal/relay/core/constants.go
package core

// Application constants
const (
	AppName    = "OniNotificationsRelay"
	AppVersion = "1.0.0"

	// Telegram counts caption length after URL encoding. Only reported, never enforced.
	TelegramCaptionLimit = 1024

	// Error codes used in ServiceError
	ErrCodeRecordFailed  = "RECORD_FAILED"
	ErrCodeInvalidTarget = "INVALID_TARGET"
)

// Log levels
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)
