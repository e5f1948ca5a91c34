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

// RegisterController handles the sign-up endpoint (one controller per endpoint)
type RegisterController struct {
	UC       *usecase.RegisterUserUseCase
	Sessions *session.Store
}

func NewRegisterController(pool *pgxpool.Pool, sessions *session.Store) *RegisterController {
	repo := adapter.NewPgUserRepository(pool)
	return &RegisterController{UC: usecase.NewRegisterUserUseCase(repo), Sessions: sessions}
}

type registerRequest struct {
	Username             string `json:"username" binding:"required"`
	Name                 string `json:"name"`
	Email                string `json:"email" binding:"required"`
	Password             string `json:"password" binding:"required"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required"`
}

func (h *RegisterController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		user, err := h.UC.Execute(ctx, usecase.RegisterUserInput{
			Username:             req.Username,
			Name:                 req.Name,
			Email:                req.Email,
			Password:             req.Password,
			PasswordConfirmation: req.PasswordConfirmation,
		})
		if err != nil {
			status := http.StatusBadRequest
			switch {
			case errors.Is(err, identity.ErrEmailTaken):
				status = http.StatusConflict
			case errors.Is(err, usecase.ErrPersistence):
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		// register logs the user straight in
		token, err := h.Sessions.Issue(ctx, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open session"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":       user.ID,
			"username": user.Username,
			"name":     user.Name,
			"email":    user.Email,
			"token":    token,
		})
	}
}
