package middleware

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/player_tracker/internal/apperrors"
	"github.com/SscSPs/player_tracker/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	errMissingAuthHeader = apperrors.New("AUTH_HEADER_REQUIRED", apperrors.ErrUnauthorized, "Authorization header required")
	errBadAuthHeader     = apperrors.New("AUTH_HEADER_INVALID", apperrors.ErrUnauthorized, "Authorization header format must be Bearer {token}")
	errTokenExpired      = apperrors.New("AUTH_TOKEN_EXPIRED", apperrors.ErrUnauthorized, "Token has expired")
	errTokenInvalid      = apperrors.New("AUTH_TOKEN_INVALID", apperrors.ErrUnauthorized, "Invalid token")
)

// AuthMiddleware creates a Gin middleware handler that validates staff JWTs and puts the
// actor they describe into the request context. The casino of every later operation comes
// from here, never from the request.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		// Browsers cannot set headers on websocket handshakes.
		if authHeader == "" && strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
			if token := c.Query("access_token"); token != "" {
				authHeader = "Bearer " + token
			}
		}
		if authHeader == "" {
			RespondError(c, errMissingAuthHeader)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			RespondError(c, errBadAuthHeader)
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			if errors.Is(err, jwt.ErrTokenExpired) {
				RespondError(c, errTokenExpired)
			} else {
				RespondError(c, errTokenInvalid)
			}
			return
		}

		actor := claims.Actor()
		enrichedLogger := logger.With(
			slog.String("staff_id", actor.StaffID),
			slog.String("casino_id", actor.CasinoID),
			slog.String("role", string(actor.Role)),
		)
		ctx := WithActor(c.Request.Context(), actor)
		ctx = WithLogger(ctx, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
