package targetdirectory

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/onimusic/notifications-helper/internal/relay/core"
	"gopkg.in/yaml.v3"
)

// TargetDirectory resolves chat aliases defined in a YAML file
type TargetDirectory struct {
	path   string
	logger *slog.Logger

	mu      sync.RWMutex
	targets map[string]string
}

// File represents the aliases file
type File struct {
	Targets map[string]string `yaml:"targets"`
}

// NewTargetDirectory loads aliases from path. An empty path gives a
// directory with no aliases that passes every target through.
func NewTargetDirectory(path string, logger *slog.Logger) (*TargetDirectory, error) {
	td := &TargetDirectory{
		path:    path,
		logger:  logger,
		targets: make(map[string]string),
	}

	if path != "" {
		if err := td.Reload(context.Background()); err != nil {
			return nil, err
		}
	}

	logger.InfoContext(context.Background(), "Target directory initialized",
		"path", path,
		"aliases", td.Len(),
	)

	return td, nil
}

// Resolve returns the chat ID an alias points to. Targets that are not
// aliases are returned unchanged; Telegram decides whether they are valid.
func (td *TargetDirectory) Resolve(ctx context.Context, target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", core.ErrEmptyTarget
	}

	td.mu.RLock()
	chatID, ok := td.targets[strings.ToLower(target)]
	td.mu.RUnlock()

	if !ok {
		td.logger.DebugContext(ctx, "Target is not an alias, passing through", "target", target)
		return target, nil
	}

	return chatID, nil
}

// Reload re-reads the aliases file. The previous aliases stay in place if
// the file cannot be read or parsed.
func (td *TargetDirectory) Reload(ctx context.Context) error {
	if td.path == "" {
		return nil
	}

	data, err := os.ReadFile(td.path)
	if err != nil {
		return fmt.Errorf("failed to read targets file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse targets file: %w", err)
	}

	targets := make(map[string]string, len(file.Targets))
	for alias, chatID := range file.Targets {
		chatID = strings.TrimSpace(chatID)
		if chatID == "" {
			td.logger.WarnContext(ctx, "Skipping alias without chat ID", "alias", alias)
			continue
		}
		targets[strings.ToLower(strings.TrimSpace(alias))] = chatID
	}

	td.mu.Lock()
	td.targets = targets
	td.mu.Unlock()

	td.logger.InfoContext(ctx, "Targets reloaded",
		"path", td.path,
		"aliases", len(targets),
	)

	return nil
}

// Len returns the number of known aliases
func (td *TargetDirectory) Len() int {
	td.mu.RLock()
	defer td.mu.RUnlock()
	return len(td.targets)
}
