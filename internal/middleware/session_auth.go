package middleware

import (
	"net/http"

	"github.com/Forest815/web-sec-playground-1-main/internal/config"
	"github.com/Forest815/web-sec-playground-1-main/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookieName is deliberately not an obvious "session_id".
const SessionCookieName = "secure_auth_token"

// SetSessionCookie writes the session cookie: http-only, SameSite=Lax,
// path "/", secure when the server runs in release mode, max-age equal to the
// session TTL.
func SetSessionCookie(c *gin.Context, cfg *config.ServerConfig, sessionID string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, sessionID, maxAge, "/", "", cfg.Mode == "release", true)
}

// ClearSessionCookie overwrites the cookie with an empty value and a negative
// max-age so the browser drops it.
func ClearSessionCookie(c *gin.Context, cfg *config.ServerConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", cfg.Mode == "release", true)
}

// SessionAuth resolves the session cookie to a user ID via
// SessionService.ValidateAndRenew. Every authenticated request slides the
// session expiry forward and re-issues the cookie with a fresh max-age. An
// invalid or expired session clears the cookie and aborts with 401; a store
// failure aborts with 500 and leaves the cookie alone.
func SessionAuth(sessions *services.SessionService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := c.Cookie(SessionCookieName)
		if err != nil || value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Authentication required",
			})
			return
		}

		sessionID, err := uuid.Parse(value)
		if err != nil {
			ClearSessionCookie(c, &cfg.Server)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Invalid session",
			})
			return
		}

		userID, ok, err := sessions.ValidateAndRenew(sessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"message": "Unable to verify session",
			})
			return
		}
		if !ok {
			ClearSessionCookie(c, &cfg.Server)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Session expired or invalid",
			})
			return
		}

		SetSessionCookie(c, &cfg.Server, sessionID.String(), int(sessions.TTL().Seconds()))
		c.Set("userID", userID)
		c.Set("sessionID", sessionID)
		c.Next()
	}
}
