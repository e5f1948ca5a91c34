package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"conversations/internal/pkg/identity/session"
)

// SessionCookie is the cookie the browser client stores its token in.
// API clients may send the same token as a bearer header instead.
const SessionCookie = "session_token"

const userIDKey = "current_user_id"

// RequireUser resolves the request's session token and aborts with 401
// when there is none. Handlers downstream read the identity via UserID.
func RequireUser(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := sessions.Resolve(c.Request.Context(), TokenFromRequest(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user for the request, or 0 when the
// request did not pass RequireUser.
func UserID(c *gin.Context) int64 {
	id, _ := c.Get(userIDKey)
	userID, _ := id.(int64)
	return userID
}

// TokenFromRequest extracts the session token from the Authorization
// header or the session cookie.
func TokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}
