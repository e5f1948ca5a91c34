package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"conversations/internal/pkg/identity/presentation/middleware"
	messaging "conversations/internal/pkg/messaging/application/domain"
	"conversations/internal/pkg/messaging/application/usecase"
	"conversations/internal/pkg/messaging/persistence/repository/adapter"
)

// ConversationViewController serves a conversation view: inbound unread
// messages are reconciled to read for the viewer, then the full ordered
// log is returned. Reconciliation runs exactly once per view, before
// the list is rendered.
type ConversationViewController struct {
	ReconcileUC *usecase.MarkInboundReadUseCase
	ListUC      *usecase.ListMessagesUseCase
}

func NewConversationViewController(pool *pgxpool.Pool) *ConversationViewController {
	repo := adapter.NewPgMessagingRepository(pool)
	return &ConversationViewController{
		ReconcileUC: usecase.NewMarkInboundReadUseCase(repo),
		ListUC:      usecase.NewListMessagesUseCase(repo),
	}
}

func (h *ConversationViewController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID, err := strconv.ParseInt(c.Param("conversationId"), 10, 64)
		if err != nil || conversationID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId must be an integer"})
			return
		}
		viewerID := middleware.UserID(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		updated, err := h.ReconcileUC.Execute(ctx, usecase.MarkInboundReadInput{
			ConversationID: conversationID,
			ViewerID:       viewerID,
		})
		if err != nil {
			status := http.StatusBadRequest
			switch {
			case errors.Is(err, messaging.ErrConversationNotFound):
				status = http.StatusNotFound
			case errors.Is(err, messaging.ErrNotParticipant):
				status = http.StatusForbidden
			case errors.Is(err, usecase.ErrPersistence):
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		msgs, err := h.ListUC.Execute(ctx, usecase.ListMessagesInput{ConversationID: conversationID})
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, gin.H{
				"id":              m.ID,
				"conversation_id": m.ConversationID,
				"author_id":       m.AuthorID,
				"body":            m.Body,
				"read":            m.Read,
				"created_at":      m.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"messages":        out,
			"count":           len(out),
			"marked_read":     updated,
			"conversation_id": conversationID,
		})
	}
}
