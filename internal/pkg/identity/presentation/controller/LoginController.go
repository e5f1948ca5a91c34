package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	identity "conversations/internal/pkg/identity/application/domain"
	"conversations/internal/pkg/identity/application/usecase"
	"conversations/internal/pkg/identity/persistence/repository/adapter"
	"conversations/internal/pkg/identity/session"
)

// LoginController handles the login endpoint (one controller per endpoint)
type LoginController struct {
	UC       *usecase.AuthenticateUserUseCase
	Sessions *session.Store
}

func NewLoginController(pool *pgxpool.Pool, sessions *session.Store) *LoginController {
	repo := adapter.NewPgUserRepository(pool)
	return &LoginController{UC: usecase.NewAuthenticateUserUseCase(repo), Sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *LoginController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		user, err := h.UC.Execute(ctx, usecase.AuthenticateUserInput{Email: req.Email, Password: req.Password})
		if err != nil {
			if errors.Is(err, identity.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid login credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		token, err := h.Sessions.Issue(ctx, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":       user.ID,
			"username": user.Username,
			"name":     user.Name,
			"token":    token,
		})
	}
}
