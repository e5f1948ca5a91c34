package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	qport "conversations/internal/infrastructure/queue/port"
	"conversations/internal/infrastructure/realtime"
	identityHTTP "conversations/internal/pkg/identity/presentation/http"
	"conversations/internal/pkg/identity/session"
	messagingHTTP "conversations/internal/pkg/messaging/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(r *gin.Engine, pool *pgxpool.Pool, client qport.Client, broker *realtime.Broker, sessions *session.Store, uploadsDir string) {
	v1 := r.Group("/api/v1")
	identityHTTP.RegisterRoutes(v1, pool, client, sessions, uploadsDir)
	messagingHTTP.RegisterRoutes(v1, pool, broker, sessions)
}
