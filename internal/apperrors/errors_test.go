package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/player_tracker/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestCodedError_MatchesCategory(t *testing.T) {
	errNotOpen := apperrors.New("RATING_SLIP_NOT_OPEN", apperrors.ErrConflict, "rating slip is not open")
	wrapped := fmt.Errorf("pause slip abc: %w", errNotOpen)

	assert.ErrorIs(t, wrapped, errNotOpen)
	assert.ErrorIs(t, wrapped, apperrors.ErrConflict)
	assert.NotErrorIs(t, wrapped, apperrors.ErrValidation)
	assert.Equal(t, "RATING_SLIP_NOT_OPEN", apperrors.CodeOf(wrapped))
	assert.Equal(t, http.StatusConflict, apperrors.HTTPStatus(wrapped))
	assert.Equal(t, "rating slip is not open", apperrors.PublicMessage(wrapped))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		code     string
		wantsMsg bool
	}{
		{"validation", apperrors.Wrapf(apperrors.ErrValidation, "seat out of range"), http.StatusBadRequest, apperrors.CodeValidation, true},
		{"not found", apperrors.ErrNotFound, http.StatusNotFound, apperrors.CodeNotFound, true},
		{"duplicate", apperrors.ErrDuplicate, http.StatusConflict, apperrors.CodeDuplicate, true},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, apperrors.CodeForbidden, true},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, apperrors.CodeUnauthorized, true},
		{"internal app error", apperrors.NewAppError(500, "failed to query", errors.New("connection reset")), http.StatusInternalServerError, apperrors.CodeInternal, false},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, apperrors.CodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, apperrors.HTTPStatus(tt.err))
			assert.Equal(t, tt.code, apperrors.CodeOf(tt.err))
			if tt.wantsMsg {
				assert.Equal(t, tt.err.Error(), apperrors.PublicMessage(tt.err))
			} else {
				assert.Equal(t, "internal server error", apperrors.PublicMessage(tt.err))
			}
		})
	}
}

func TestAppError_WrapsNotFound(t *testing.T) {
	err := apperrors.NewAppError(500, "failed to lock slip", apperrors.ErrNotFound)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, err, apperrors.ErrInternal)
	assert.Equal(t, http.StatusNotFound, apperrors.HTTPStatus(err))
}
