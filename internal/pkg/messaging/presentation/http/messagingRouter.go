package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"conversations/internal/infrastructure/realtime"
	"conversations/internal/pkg/identity/presentation/middleware"
	"conversations/internal/pkg/identity/session"
	"conversations/internal/pkg/messaging/presentation/controller"
)

// RegisterRoutes registers messaging endpoints under the given router group.
// All routes require an authenticated session.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, broker *realtime.Broker, sessions *session.Store) {
	createCtl := controller.NewCreateConversationController(pool)
	listCtl := controller.NewListConversationsController(pool)
	viewCtl := controller.NewConversationViewController(pool)
	sendCtl := controller.NewSendMessageController(pool, broker)
	socketCtl := controller.NewNotificationSocketController(broker)

	auth := middleware.RequireUser(sessions)

	// POST /api/v1/conversations -> find or start a conversation with a recipient
	g.POST("/conversations", auth, createCtl.Handle())

	// GET /api/v1/conversations -> list the user's conversations with unread counts
	g.GET("/conversations", auth, listCtl.Handle())

	// GET /api/v1/conversations/:conversationId/messages -> open a conversation,
	// marking inbound messages read before returning the transcript
	g.GET("/conversations/:conversationId/messages", auth, viewCtl.Handle())

	// POST /api/v1/conversations/:conversationId/messages -> send a message
	g.POST("/conversations/:conversationId/messages", auth, sendCtl.Handle())

	// GET /api/v1/notifications/ws -> websocket feed of refresh notifications
	g.GET("/notifications/ws", auth, socketCtl.Handle())
}
