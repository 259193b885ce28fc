package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onimusic/notifications-helper/internal/relay/core"
	"gopkg.in/validator.v2"
)

const (
	RequestIDKey     = "request_id"
	DispatchIDHeader = "X-Dispatch-ID"
)

// NotificationRequest is the body of POST /v1/notifications
type NotificationRequest struct {
	Kind    string `json:"kind" validate:"nonzero"`
	Target  string `json:"target" validate:"nonzero"`
	Content string `json:"content" validate:"nonzero"`
	Caption string `json:"caption"`
}

// TargetReloader re-reads the alias file
type TargetReloader interface {
	Reload(ctx context.Context) error
}

// SendNotification relays one notification and answers with Telegram's own
// status code and body.
func SendNotification(service core.RelayService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req NotificationRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			abortWithError(ctx, http.StatusBadRequest, err)
			return
		}
		if err := validator.Validate(req); err != nil {
			abortWithError(ctx, http.StatusBadRequest, err)
			return
		}

		n, err := core.ParseNotification(req.Kind, req.Target, req.Content, req.Caption)
		if err != nil {
			abortWithError(ctx, http.StatusBadRequest, err)
			return
		}

		result, err := service.Send(ctx.Request.Context(), n)
		if err != nil {
			abortWithError(ctx, statusForError(err), err)
			return
		}

		contentType := result.Response.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/json"
		}

		ctx.Header(DispatchIDHeader, result.ID)
		ctx.Data(result.Response.StatusCode, contentType, result.Response.Body)
	}
}

// GetStats returns the dispatch log summary
func GetStats(service core.RelayService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		stats, err := service.Stats(ctx.Request.Context())
		if err != nil {
			abortWithError(ctx, http.StatusInternalServerError, err)
			return
		}
		ctx.JSON(http.StatusOK, NewSuccessResponse(stats).WithRequestID(ctx.GetString(RequestIDKey)))
	}
}

// ReloadTargets re-reads the alias file
func ReloadTargets(reloader TargetReloader) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := reloader.Reload(ctx.Request.Context()); err != nil {
			abortWithError(ctx, http.StatusInternalServerError, err)
			return
		}
		ctx.JSON(http.StatusOK, NewSuccessResponse("targets reloaded").WithRequestID(ctx.GetString(RequestIDKey)))
	}
}

// Health reports that the relay is up
func Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, NewSuccessResponse(gin.H{
		"app":     core.AppName,
		"version": core.AppVersion,
		"status":  "ok",
	}))
}

func statusForError(err error) int {
	var validationErr core.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrTargetNotFound):
		return http.StatusNotFound
	case core.IsTransportError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(ctx *gin.Context, status int, err error) {
	ctx.AbortWithStatusJSON(status, NewErrorResponse(err.Error()).WithRequestID(ctx.GetString(RequestIDKey)))
}
