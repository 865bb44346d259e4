package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/player_tracker/internal/apperrors"
	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/SscSPs/player_tracker/internal/platform/idempotency"
	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader names the header clients set on every mutating request.
const IdempotencyKeyHeader = "Idempotency-Key"

const idempotencyKeyCtxKey = contextKey("idempotencyKey")

// GetIdempotencyKey returns the key of the current request.
func GetIdempotencyKey(c *gin.Context) string {
	key, _ := c.Request.Context().Value(idempotencyKeyCtxKey).(string)
	return key
}

// capturingWriter keeps a copy of the response body.
type capturingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// requestFingerprint covers the concrete path as well as the body, so one key sent to the
// same route for two different resources is a reuse, not a replay.
func requestFingerprint(path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(path))
	h.Write([]byte{'\n'})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// Idempotency requires an Idempotency-Key on mutating requests and replays the stored
// response when the same casino, route and key are seen again. A key reused with a
// different path or body is rejected. Only successful responses are stored.
// It must run after AuthMiddleware.
func Idempotency(store idempotency.Store, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isMutating(c.Request.Method) {
			c.Next()
			return
		}
		logger := GetLoggerFromCtx(c.Request.Context())

		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" || len(key) > 255 {
			RespondError(c, domain.ErrIdempotencyKeyNeeded)
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			RespondError(c, apperrors.Wrapf(apperrors.ErrValidation, "unreadable request body"))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		fingerprint := requestFingerprint(c.Request.URL.Path, body)

		actor, _ := GetActor(c)
		storeKey := strings.Join([]string{actor.CasinoID, c.Request.Method, c.FullPath(), key}, "|")

		stored, found, err := store.Get(c.Request.Context(), storeKey)
		if err != nil {
			// Replay is best effort.
			logger.Error("Failed to read idempotency store", slog.String("error", err.Error()))
		}
		if found {
			if stored.Fingerprint != fingerprint {
				RespondError(c, domain.ErrIdempotencyKeyReused)
				return
			}
			logger.Info("Replaying stored response", slog.String("idempotency_key", key))
			c.Header("Idempotent-Replayed", "true")
			c.Data(stored.Status, stored.ContentType, stored.Body)
			c.Abort()
			return
		}

		ctx := WithLogger(c.Request.Context(), logger.With(slog.String("idempotency_key", key)))
		c.Request = c.Request.WithContext(contextWithKey(ctx, key))
		writer := &capturingWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		resp := idempotency.StoredResponse{
			Fingerprint: fingerprint,
			Status:      status,
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body.Bytes(),
			StoredAt:    time.Now().UTC(),
		}
		if err := store.Save(c.Request.Context(), storeKey, resp, ttl); err != nil {
			logger.Error("Failed to store response for replay", slog.String("error", err.Error()))
		}
	}
}
