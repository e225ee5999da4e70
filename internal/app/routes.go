package app

import (
	"corkboard/internal/config"
	"corkboard/internal/handlers"
	"corkboard/internal/middleware"
	"corkboard/internal/repo"
	"corkboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.Use(middleware.RequestID())

	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))

	api := r.Group("/api/v1")

	limiter := middleware.NewRateLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window.Duration())

	todoRepo := repo.NewPGTodoRepo(db)
	todoSvc := service.NewTodoService(todoRepo)
	todoHandler := handlers.NewTodoHandler(todoSvc)
	registerTodoRoutes(api, todoHandler, limiter)

	guestRepo := repo.NewPGGuestRepo(db)
	guestSvc := service.NewGuestService(guestRepo)
	guestHandler := handlers.NewGuestBookHandler(guestSvc)
	registerGuestBookRoutes(api, guestHandler, limiter)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Corkboard",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

// Mutations go through the rate limiter; reads are unthrottled.
func registerTodoRoutes(api *gin.RouterGroup, h *handlers.TodoHandler, rl *middleware.RateLimiter) {
	api.GET("/todos", h.List)
	api.GET("/todos/search", h.Search)
	api.GET("/todos/stats", h.Stats)
	api.GET("/todos/:id", h.GetByID)

	writes := api.Group("", rl.Handler())
	writes.POST("/todos", h.Create)
	writes.PATCH("/todos/bulk", h.BulkUpdate)
	writes.PATCH("/todos/:id", h.Update)
	writes.DELETE("/todos/:id", h.Delete)
	writes.POST("/todos/:id/toggle", h.Toggle)
}

func registerGuestBookRoutes(api *gin.RouterGroup, h *handlers.GuestBookHandler, rl *middleware.RateLimiter) {
	api.GET("/guestbook", h.List)
	api.POST("/guestbook", rl.Handler(), h.Sign)
}
