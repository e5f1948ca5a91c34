package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"conversations/internal/infrastructure/realtime"
	"conversations/internal/pkg/identity/presentation/middleware"
	messaging "conversations/internal/pkg/messaging/application/domain"
	"conversations/internal/pkg/messaging/application/usecase"
	"conversations/internal/pkg/messaging/persistence/repository/adapter"
)

// SendMessageController handles the send-message endpoint (one controller per endpoint)
type SendMessageController struct {
	UC *usecase.SendMessageUseCase
}

func NewSendMessageController(pool *pgxpool.Pool, broker *realtime.Broker) *SendMessageController {
	repo := adapter.NewPgMessagingRepository(pool)
	return &SendMessageController{UC: usecase.NewSendMessageUseCase(repo, broker)}
}

type sendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID, err := strconv.ParseInt(c.Param("conversationId"), 10, 64)
		if err != nil || conversationID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId must be an integer"})
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		in := usecase.SendMessageInput{
			ConversationID: conversationID,
			AuthorID:       middleware.UserID(c),
			Body:           req.Body,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msg, err := h.UC.Execute(ctx, in)
		if err != nil {
			status := http.StatusBadRequest
			switch {
			case errors.Is(err, messaging.ErrConversationNotFound), errors.Is(err, messaging.ErrUserNotFound):
				status = http.StatusNotFound
			case errors.Is(err, messaging.ErrNotParticipant):
				status = http.StatusForbidden
			case errors.Is(err, usecase.ErrPersistence):
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":              msg.ID,
			"conversation_id": msg.ConversationID,
			"author_id":       msg.AuthorID,
			"body":            msg.Body,
			"read":            msg.Read,
			"created_at":      msg.CreatedAt,
		})
	}
}
