package handler

import (
	"fmt"
	"net/http"

	"notemark/middleware"
	"notemark/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type RouterConfig struct {
	AllowedOrigins []string
	MaxBodyBytes   int64
}

// Router bundles everything the HTTP surface needs.
type Router struct {
	Config      RouterConfig
	Logger      *zap.Logger
	Tokens      middleware.TokenVerifier
	Revocations middleware.RevocationChecker
	Auth        *AuthHandler
	Notes       *NotesHandler
	Bookmarks   *BookmarksHandler
	Health      *HealthHandler
}

// NewRouter assembles the gin engine with middleware and every route.
func NewRouter(r Router) *gin.Engine {
	engine := gin.New()

	engine.Use(
		middleware.RequestTracingMiddleware(r.Logger),
		middleware.RecoveryMiddleware(r.Logger),
		middleware.CORSMiddleware(r.Config.AllowedOrigins),
		middleware.MetricsMiddleware(),
		middleware.RequestSizeLimiter(r.Config.MaxBodyBytes),
	)

	engine.GET("/", Root)
	engine.GET("/health", r.Health.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	protected := middleware.AuthMiddleware(r.Tokens, r.Revocations, r.Logger)

	auth := engine.Group("/api/auth")
	{
		auth.POST("/signup", r.Auth.Signup)
		auth.POST("/login", r.Auth.Login)
		auth.POST("/logout", r.Auth.Logout)
		auth.GET("/profile", protected, r.Auth.Profile)
		auth.DELETE("/delete", protected, r.Auth.DeleteAccount)
	}

	notes := engine.Group("/api/notes", protected)
	{
		notes.GET("", r.Notes.ListNotes)
		notes.POST("", r.Notes.CreateNote)
		notes.GET("/:id", r.Notes.GetNote)
		notes.PUT("/:id", r.Notes.UpdateNote)
		notes.DELETE("/:id", r.Notes.DeleteNote)
	}

	bookmarks := engine.Group("/api/bookmarks", protected)
	{
		bookmarks.GET("", r.Bookmarks.ListBookmarks)
		bookmarks.POST("", r.Bookmarks.CreateBookmark)
		bookmarks.GET("/:id", r.Bookmarks.GetBookmark)
		bookmarks.PUT("/:id", r.Bookmarks.UpdateBookmark)
		bookmarks.DELETE("/:id", r.Bookmarks.DeleteBookmark)
	}

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusNotFound, &utils.Response{
			Success: false,
			Error:   "Not Found",
			Message: fmt.Sprintf("Cannot %s %s", c.Request.Method, c.Request.URL.Path),
		})
	})

	return engine
}
