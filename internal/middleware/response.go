package middleware

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/player_tracker/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Status    string `json:"status"` // "ok" or "error"
	Data      any    `json:"data,omitempty"`
	Code      string `json:"code,omitempty"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// RespondOK writes data in a success envelope.
func RespondOK(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{
		Status:    "ok",
		Data:      data,
		RequestID: GetRequestID(c.Request.Context()),
	})
}

// RespondError writes err in an error envelope and aborts the chain. Server errors are logged
// with their cause and rendered without it.
func RespondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	logger := GetLoggerFromCtx(c.Request.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.String("code", apperrors.CodeOf(err)), slog.String("error", err.Error()))
	}
	c.AbortWithStatusJSON(status, Envelope{
		Status:    "error",
		Code:      apperrors.CodeOf(err),
		Error:     apperrors.PublicMessage(err),
		RequestID: GetRequestID(c.Request.Context()),
	})
}
