package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"conversations/internal/pkg/identity/presentation/middleware"
	"conversations/internal/pkg/identity/session"
)

// LogoutController revokes the request's session token.
type LogoutController struct {
	Sessions *session.Store
}

func NewLogoutController(sessions *session.Store) *LogoutController {
	return &LogoutController{Sessions: sessions}
}

func (h *LogoutController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := middleware.TokenFromRequest(c)
		if err := h.Sessions.Revoke(c.Request.Context(), token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to close session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "logged out"})
	}
}
