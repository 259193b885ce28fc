// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/onimusic/notifications-helper/internal/relay/adapters/dispatchlog"
	"github.com/onimusic/notifications-helper/internal/relay/adapters/targetdirectory"
	"github.com/onimusic/notifications-helper/internal/relay/adapters/telegramdispatcher"
	"github.com/onimusic/notifications-helper/internal/relay/config"
	"github.com/onimusic/notifications-helper/internal/relay/core"
	"github.com/onimusic/notifications-helper/internal/relay/presentation/rest"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := setupLogger(cfg.ApplicationConfig.LogLevel)

	// Initialize dependencies
	deps, err := initializeDependencies(cfg, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Cleanup()

	service, err := core.NewService(core.ServiceConfig{
		Dispatcher:     deps.Dispatcher,
		TargetResolver: deps.Targets,
		Recorder:       deps.DispatchLog,
		Logger:         logger,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create relay service", "error", err)
		os.Exit(1)
	}

	server, err := rest.NewServer(rest.ServerConfig{
		RelayService:   service,
		TargetReloader: deps.Targets,
		Logger:         logger,
		Addr:           cfg.ServerConfig.Addr(),
		ReadTimeout:    cfg.ServerConfig.ReadTimeout,
		WriteTimeout:   cfg.ServerConfig.WriteTimeout,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create HTTP server", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Starting notifications relay",
		"app", core.AppName,
		"version", core.AppVersion,
		"port", cfg.ServerConfig.Port,
	)

	// Start server (this blocks until shutdown)
	if err := server.Start(ctx); err != nil {
		logger.ErrorContext(ctx, "Server error", "error", err)
		deps.Cleanup()
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Application shutdown completed")
}

// Dependencies holds all initialized dependencies
type Dependencies struct {
	Dispatcher  *telegramdispatcher.Dispatcher
	Targets     *targetdirectory.TargetDirectory
	DispatchLog *dispatchlog.DispatchLog
}

// Cleanup cleans up all dependencies
func (d *Dependencies) Cleanup() {
	if d.DispatchLog != nil {
		d.DispatchLog.Close()
	}
}

// setupLogger creates and configures the logger
func setupLogger(logLevel string) *slog.Logger {
	var level slog.Level
	switch logLevel {
	case core.LogLevelInfo:
		level = slog.LevelInfo
	case core.LogLevelWarn:
		level = slog.LevelWarn
	case core.LogLevelError:
		level = slog.LevelError
	default:
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return logger
}

// initializeDependencies initializes all external dependencies
func initializeDependencies(cfg *config.Configs, logger *slog.Logger) (*Dependencies, error) {
	appCfg := cfg.ApplicationConfig

	if err := os.MkdirAll(filepath.Dir(appCfg.DispatchDBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dispatchLog, err := dispatchlog.NewDispatchLog(appCfg.DispatchDBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dispatch log: %w", err)
	}

	targets, err := targetdirectory.NewTargetDirectory(appCfg.TargetsPath, logger)
	if err != nil {
		dispatchLog.Close()
		return nil, fmt.Errorf("failed to initialize target directory: %w", err)
	}

	dispatcher, err := telegramdispatcher.NewDispatcher(telegramdispatcher.Config{
		BaseURL:        appCfg.TelegramBaseURL,
		BotToken:       appCfg.TelegramBotToken,
		RequestTimeout: appCfg.RequestTimeout,
		Logger:         logger,
	})
	if err != nil {
		dispatchLog.Close()
		return nil, fmt.Errorf("failed to initialize Telegram dispatcher: %w", err)
	}

	return &Dependencies{
		Dispatcher:  dispatcher,
		Targets:     targets,
		DispatchLog: dispatchLog,
	}, nil
}
