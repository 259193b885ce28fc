package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/onimusic/notifications-helper/internal/relay/core"
	"github.com/onimusic/notifications-helper/internal/relay/presentation/rest/handlers"
	"gopkg.in/validator.v2"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	addr         string
	readTimeout  time.Duration
	writeTimeout time.Duration
	logger       *slog.Logger

	router *gin.Engine
}

type ServerConfig struct {
	RelayService   core.RelayService       `validate:"nonnil"`
	TargetReloader handlers.TargetReloader `validate:"nonnil"`
	Logger         *slog.Logger            `validate:"nonnil"`
	Addr           string                  `validate:"nonzero"`
	ReadTimeout    time.Duration           `validate:"nonzero"`
	WriteTimeout   time.Duration           `validate:"nonzero"`
}

func NewServer(config ServerConfig) (*Server, error) {
	if err := validator.Validate(config); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(
		RequestID(),
		Logging(config.Logger),
		Recovery(config.Logger),
	)

	router.GET("/health", handlers.Health)

	v1 := router.Group("/v1")
	v1.POST("/notifications", handlers.SendNotification(config.RelayService))
	v1.GET("/stats", handlers.GetStats(config.RelayService))
	v1.POST("/targets/reload", handlers.ReloadTargets(config.TargetReloader))

	return &Server{
		addr:         config.Addr,
		readTimeout:  config.ReadTimeout,
		writeTimeout: config.WriteTimeout,
		logger:       config.Logger,
		router:       router,
	}, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is done or an interrupt arrives, then shuts down
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "HTTP server listening", "addr", s.addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		s.logger.WarnContext(context.Background(), "Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
