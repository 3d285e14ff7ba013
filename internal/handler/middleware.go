package handler

import (
	"log/slog"
	"strings"
	"time"

	"cloudapi/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	profileKey      = "Profile"
	requestIDKey    = "RequestID"
	requestIDHeader = "X-Request-Id"
)

// AuthMiddleware resolves the bearer token to a profile, rejecting the
// request with a bearer challenge when it cannot.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			newUnauthorizedResponse(c, "empty authorization header")

			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			newUnauthorizedResponse(c, "invalid authorization header")

			return
		}

		profile, err := h.serviceLayer.CurrentUser(c.Request.Context(), parts[1])
		if err != nil {
			newUnauthorizedResponse(c, "invalid token")

			return
		}

		c.Set(profileKey, profile)

		c.Next()
	}
}

func currentProfile(c *gin.Context) (models.PublicProfile, bool) {
	value, ok := c.Get(profileKey)
	if !ok {
		return models.PublicProfile{}, false
	}

	profile, ok := value.(models.PublicProfile)

	return profile, ok
}

// RequestID stamps every request with an id, honoring one supplied by the
// caller.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)

		c.Next()
	}
}

func (h *Handler) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		h.log.Info("request handled",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", c.GetString(requestIDKey)),
		)
	}
}
