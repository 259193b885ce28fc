package rest

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/onimusic/notifications-helper/internal/relay/presentation/rest/handlers"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an ID, reusing the caller's when sent
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx.Set(handlers.RequestIDKey, requestID)
		ctx.Header(requestIDHeader, requestID)
		ctx.Next()
	}
}

// Logging logs HTTP requests
func Logging(logger *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		logger.InfoContext(ctx.Request.Context(), "HTTP request processed",
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", ctx.Writer.Status(),
			"duration", time.Since(start),
			"remote_addr", ctx.ClientIP(),
			"user_agent", ctx.Request.UserAgent(),
			"request_id", ctx.GetString(handlers.RequestIDKey),
			"content_length", ctx.Request.ContentLength,
		)
	}
}

// Recovery recovers from panics
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID := ctx.GetString(handlers.RequestIDKey)

				logger.ErrorContext(ctx.Request.Context(), "Panic recovered",
					"error", err,
					"stack", string(debug.Stack()),
					"method", ctx.Request.Method,
					"path", ctx.Request.URL.Path,
					"request_id", requestID,
				)

				ctx.AbortWithStatusJSON(http.StatusInternalServerError,
					handlers.NewErrorResponse("Internal server error").WithRequestID(requestID))
			}
		}()

		ctx.Next()
	}
}
