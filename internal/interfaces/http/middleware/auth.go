package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"captn.backend/pkg/redis"
)

const (
	// SessionCookie is the cookie holding the opaque session ID
	SessionCookie = "captn_session"
	// AuthEmailKey is the context key for the authenticated email
	AuthEmailKey = "authEmail"
	// SessionIDKey is the context key for the current session ID
	SessionIDKey = "sessionID"
)

// SessionMiddleware resolves the session cookie to the verified email of the
// signed-in user. Requests without a valid session pass through
// unauthenticated; individual routes decide whether that matters.
func SessionMiddleware(store *redis.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || sid == "" {
			c.Next()
			return
		}

		data, err := store.GetSession(c.Request.Context(), sid)
		if err != nil || data.Email == "" {
			c.Next()
			return
		}

		c.Set(SessionIDKey, sid)
		c.Set(AuthEmailKey, data.Email)
		c.Next()
	}
}

// RequireAuth aborts requests that carry no authenticated identity
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetAuthEmail(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		c.Next()
	}
}

// GetAuthEmail gets the authenticated email from context
func GetAuthEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(AuthEmailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}

// GetSessionID gets the current session ID from context
func GetSessionID(c *gin.Context) (string, bool) {
	sid, exists := c.Get(SessionIDKey)
	if !exists {
		return "", false
	}
	return sid.(string), true
}
