package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/player_tracker/internal/apperrors"
	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/SscSPs/player_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var errNoActor = apperrors.New("UNAUTHORIZED", apperrors.ErrUnauthorized, "Unauthorized")

// bindError describes why a request could not be bound, naming the failing fields.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s failed '%s'", fe.Field(), fe.Tag()))
		}
		return apperrors.Wrapf(apperrors.ErrValidation, "invalid request: %s", strings.Join(fields, ", "))
	}
	return apperrors.Wrapf(apperrors.ErrValidation, "invalid request format: %s", err.Error())
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.RespondError(c, bindError(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, params any) bool {
	if err := c.ShouldBindQuery(params); err != nil {
		middleware.RespondError(c, bindError(err))
		return false
	}
	return true
}

// requireActor returns the authenticated staff member or writes a 401.
func requireActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		middleware.RespondError(c, errNoActor)
	}
	return actor, ok
}

// pathID returns the path parameter name when it is a UUID. Other values cannot name an
// entity, so they are answered with notFound.
func pathID(c *gin.Context, name string, notFound error) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		middleware.RespondError(c, notFound)
		return "", false
	}
	return id, true
}

// parseAt reads an optional RFC 3339 instant from the query, defaulting to now.
func parseAt(c *gin.Context, key string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return time.Now().UTC(), true
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		middleware.RespondError(c, apperrors.Wrapf(apperrors.ErrValidation, "%s must be an RFC 3339 timestamp", key))
		return time.Time{}, false
	}
	return at, true
}
