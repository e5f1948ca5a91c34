package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"conversations/internal/pkg/identity/presentation/middleware"
	"conversations/internal/pkg/messaging/application/usecase"
	"conversations/internal/pkg/messaging/persistence/repository/adapter"
)

// ListConversationsController handles the conversation list endpoint (one controller per endpoint)
type ListConversationsController struct {
	UC *usecase.ListConversationsUseCase
}

func NewListConversationsController(pool *pgxpool.Pool) *ListConversationsController {
	repo := adapter.NewPgMessagingRepository(pool)
	return &ListConversationsController{UC: usecase.NewListConversationsUseCase(repo)}
}

func (h *ListConversationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		summaries, err := h.UC.Execute(ctx, usecase.ListConversationsInput{UserID: middleware.UserID(c)})
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(summaries))
		for _, s := range summaries {
			out = append(out, gin.H{
				"id":           s.ID,
				"peer_id":      s.PeerID,
				"peer_name":    s.PeerName,
				"peer_avatar":  s.PeerAvatar,
				"unread_count": s.UnreadCount,
				"created_at":   s.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"conversations": out,
			"count":         len(out),
		})
	}
}
