package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"conversations/internal/pkg/identity/presentation/middleware"
	messaging "conversations/internal/pkg/messaging/application/domain"
	"conversations/internal/pkg/messaging/application/usecase"
	"conversations/internal/pkg/messaging/persistence/repository/adapter"
)

// CreateConversationController handles conversation creation (one controller per endpoint)
type CreateConversationController struct {
	UC *usecase.CreateConversationUseCase
}

func NewCreateConversationController(pool *pgxpool.Pool) *CreateConversationController {
	repo := adapter.NewPgMessagingRepository(pool)
	return &CreateConversationController{UC: usecase.NewCreateConversationUseCase(repo)}
}

type createConversationRequest struct {
	RecipientID int64 `json:"recipient_id" binding:"required"`
}

func (h *CreateConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createConversationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		in := usecase.CreateConversationInput{
			InitiatorID: middleware.UserID(c),
			RecipientID: req.RecipientID,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		conv, err := h.UC.Execute(ctx, in)
		if err != nil {
			status := http.StatusBadRequest
			switch {
			case errors.Is(err, messaging.ErrUserNotFound):
				status = http.StatusNotFound
			case errors.Is(err, usecase.ErrPersistence):
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":           conv.ID,
			"initiator_id": conv.InitiatorID,
			"recipient_id": conv.RecipientID,
			"created_at":   conv.CreatedAt,
		})
	}
}
