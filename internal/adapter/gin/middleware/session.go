package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"userdeck/pkg/logger"
)

// sessionIDKey is the gin context key holding the session ID
const sessionIDKey = "session_id"

// SessionConfig configures the session cookie.
type SessionConfig struct {
	CookieName string
	MaxAge     int // seconds
	Secure     bool
}

// Session ensures every request carries a browser session ID. A missing or
// malformed cookie gets a fresh random ID.
func Session(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cfg.CookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}

		// Refresh the cookie on every response so it slides with the store TTL.
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     cfg.CookieName,
			Value:    id,
			Path:     "/",
			MaxAge:   cfg.MaxAge,
			Secure:   cfg.Secure,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		c.Set(sessionIDKey, id)
		c.Request = c.Request.WithContext(logger.ContextWithSessionID(c.Request.Context(), id))
		c.Next()
	}
}

// SessionID returns the session ID set by Session, or "" outside it.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
