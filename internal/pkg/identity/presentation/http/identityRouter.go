package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	qport "conversations/internal/infrastructure/queue/port"
	"conversations/internal/pkg/identity/presentation/controller"
	"conversations/internal/pkg/identity/presentation/middleware"
	"conversations/internal/pkg/identity/session"
)

// RegisterRoutes registers identity endpoints under the given router group.
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, client qport.Client, sessions *session.Store, uploadsDir string) {
	registerCtl := controller.NewRegisterController(pool, sessions)
	loginCtl := controller.NewLoginController(pool, sessions)
	logoutCtl := controller.NewLogoutController(sessions)
	avatarCtl := controller.NewAvatarController(pool, client, uploadsDir)

	// POST /api/v1/register -> create an account and open a session
	g.POST("/register", registerCtl.Handle())

	// POST /api/v1/login -> open a session
	g.POST("/login", loginCtl.Handle())

	// DELETE /api/v1/logout -> close the current session
	g.DELETE("/logout", middleware.RequireUser(sessions), logoutCtl.Handle())

	// POST /api/v1/users/avatar -> upload an avatar image
	g.POST("/users/avatar", middleware.RequireUser(sessions), avatarCtl.Handle())
}
