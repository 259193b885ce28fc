// internal/relay/core/service.go
package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/onimusic/notifications-helper/telegram"
	"github.com/onimusic/notifications-helper/urlencode"
	"gopkg.in/validator.v2"
)

// ServiceConfig holds the dependencies of the relay service
type ServiceConfig struct {
	Dispatcher     Dispatcher       `validate:"nonnil"`
	TargetResolver TargetResolver   `validate:"nonnil"`
	Recorder       DispatchRecorder `validate:"nonnil"`
	Logger         *slog.Logger     `validate:"nonnil"`
}

// Service implements the RelayService interface
type Service struct {
	dispatcher     Dispatcher
	targetResolver TargetResolver
	recorder       DispatchRecorder
	logger         *slog.Logger

	now func() time.Time
}

// NewService creates a new relay service with all dependencies
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid service configuration: %w", err)
	}

	return &Service{
		dispatcher:     cfg.Dispatcher,
		targetResolver: cfg.TargetResolver,
		recorder:       cfg.Recorder,
		logger:         cfg.Logger,
		now:            time.Now,
	}, nil
}

// Send validates n, resolves its target and dispatches it exactly once.
// A non-2xx Telegram answer is returned as a result, not an error.
func (s *Service) Send(ctx context.Context, n Notification) (*DispatchResult, error) {
	if err := ValidateNotification(n); err != nil {
		return nil, err
	}

	chatID, err := s.targetResolver.Resolve(ctx, n.Target)
	if err != nil {
		if errors.Is(err, ErrTargetNotFound) {
			return nil, err
		}
		return nil, NewServiceError(ErrCodeInvalidTarget, "failed to resolve target", err)
	}

	if n.Caption != "" && len(urlencode.Encode(n.Caption)) > TelegramCaptionLimit {
		s.logger.WarnContext(ctx, "Caption exceeds Telegram limit after encoding",
			"chat_id", chatID,
			"encoded_length", len(urlencode.Encode(n.Caption)),
			"limit", TelegramCaptionLimit,
		)
	}

	dispatchID := uuid.New().String()
	startTime := s.now()

	resp, dispatchErr := s.dispatcher.Dispatch(ctx, chatID, n)
	duration := s.now().Sub(startTime)

	record := DispatchRecord{
		ID:        dispatchID,
		Kind:      n.Kind.String(),
		Method:    n.Kind.Method(),
		ChatID:    chatID,
		Duration:  duration,
		Timestamp: startTime,
	}
	if dispatchErr != nil {
		record.Error = dispatchErr.Error()
	} else {
		record.StatusCode = resp.StatusCode
		record.Success = resp.OK()
	}

	if err := s.recorder.RecordDispatch(ctx, record); err != nil {
		s.logger.WarnContext(ctx, "Failed to record dispatch",
			"dispatch_id", dispatchID,
			"error", err.Error(),
		)
	}

	if dispatchErr != nil {
		s.logger.ErrorContext(ctx, "Dispatch failed",
			"dispatch_id", dispatchID,
			"method", record.Method,
			"chat_id", chatID,
			"error", dispatchErr.Error(),
		)
		return nil, dispatchErr
	}

	s.logger.InfoContext(ctx, "Notification dispatched",
		"dispatch_id", dispatchID,
		"method", record.Method,
		"chat_id", chatID,
		"status_code", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	)

	return &DispatchResult{
		ID:       dispatchID,
		ChatID:   chatID,
		Response: resp,
		Duration: duration,
	}, nil
}

// Stats summarizes past dispatches
func (s *Service) Stats(ctx context.Context) (*DispatchStats, error) {
	stats, err := s.recorder.GetStats(ctx)
	if err != nil {
		return nil, NewServiceError(ErrCodeRecordFailed, "failed to read dispatch stats", err)
	}
	return stats, nil
}

// IsTransportError reports whether err came from the HTTP layer
func IsTransportError(err error) bool {
	var transportErr *telegram.TransportError
	return errors.As(err, &transportErr)
}
