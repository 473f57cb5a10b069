package httptransport

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/neeraj476/notes-app/internal/transport/http/handler"
	"github.com/neeraj476/notes-app/internal/transport/http/middleware"
)

func NewRouter(
	logger *slog.Logger,
	allowedOrigin string,
	authHandler *handler.AuthHandler,
	noteHandler *handler.NoteHandler,
	verifier middleware.TokenVerifier,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{allowedOrigin},
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders: []string{"Content-Type"},
		// Cookie-based sessions require credentialed CORS.
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	gate := middleware.Auth(verifier)

	users := r.Group("/api/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("/logout", authHandler.Logout)
	users.GET("/verify", gate, authHandler.Verify)
	users.GET("/profile", gate, authHandler.Profile)

	notes := r.Group("/api", gate)
	notes.POST("/create-notes", noteHandler.Create)
	notes.GET("/get-notes", noteHandler.List)
	notes.GET("/notes/search", noteHandler.Search)
	notes.GET("/notes/:id", noteHandler.GetByID)
	notes.PATCH("/notes/:id/style", noteHandler.Update)
	notes.DELETE("/notes/delete/:id", noteHandler.Delete)

	return r
}
