// internal/relay/core/models.go
package core

import (
	"time"

	"github.com/onimusic/notifications-helper/telegram"
)

// Notification is one message to relay to a chat
type Notification struct {
	Kind    telegram.ContentKind
	Target  string // chat ID, @channel or alias
	Content string // text for KindText, URL or file_id otherwise
	Caption string
}

// DispatchResult is what the relay hands back after a send
type DispatchResult struct {
	ID       string
	ChatID   string
	Response *telegram.Response
	Duration time.Duration
}

// DispatchRecord is one row of the dispatch log
type DispatchRecord struct {
	ID         string
	Kind       string
	Method     string
	ChatID     string
	StatusCode int
	Success    bool
	Error      string
	Duration   time.Duration
	Timestamp  time.Time
}

// DispatchStats summarizes the dispatch log
type DispatchStats struct {
	Total             int            `json:"total"`
	Succeeded         int            `json:"succeeded"`
	Failed            int            `json:"failed"`
	TransportFailures int            `json:"transport_failures"`
	ByKind            map[string]int `json:"by_kind"`
	AvgDurationMs     float64        `json:"avg_duration_ms"`
	LastDispatchAt    *time.Time     `json:"last_dispatch_at,omitempty"`
}
