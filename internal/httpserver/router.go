package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"habittracker/internal/habit"
	"habittracker/internal/handler"
	"habittracker/internal/service"
	"habittracker/pkg/kv"
)

// Deps 路由依赖
type Deps struct {
	Store      *habit.Store
	Backend    kv.Backend
	Auth       *service.AuthService
	WindowDays int
	Logger     *zap.Logger
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(TraceMiddleware())
	r.Use(RequestLogMiddleware(deps.Logger))
	r.Use(MetricsMiddleware())

	// Health endpoints (放在最前面)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.HEAD("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r.GET("/readyz", func(c *gin.Context) {
		if !deps.Store.Ready() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := kv.Ping(ctx, deps.Backend); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "storage_not_ready", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Logger)
	r.POST("/auth/token", authHandler.IssueToken)

	// Protected
	habitHandler := handler.NewHabitHandler(deps.Store, deps.WindowDays, deps.Logger)
	habits := r.Group("/habits")
	habits.Use(AuthMiddleware(deps.Auth), habitHandler.RequireReady)
	{
		habits.GET("", habitHandler.ListHabits)
		habits.POST("", habitHandler.CreateHabit)
		habits.GET("/:id", habitHandler.GetHabit)
		habits.POST("/:id/toggle", habitHandler.ToggleCompletion)
		habits.DELETE("/:id", habitHandler.DeleteHabit)
	}

	return r
}
