package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/s9b/memenem/internal/api/handler"
	"github.com/s9b/memenem/internal/api/middleware"
	"github.com/s9b/memenem/internal/config"
	"github.com/s9b/memenem/internal/logger"
	"github.com/s9b/memenem/internal/service"
)

// ServiceName labels this server in logs and metrics.
const ServiceName = "memenem-server"

// Services bundles what the routes are served from.
type Services struct {
	Collection *service.CollectionService
	Memes      *service.MemeService
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(svc *Services, cfg *config.ServerConfig, log *logger.Logger, version string) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.PrometheusMiddleware(ServiceName))
	r.Use(middleware.CORS(cfg.CORS))

	var backend handler.BackendChecker
	if svc.Memes != nil {
		backend = svc.Memes
	}
	healthHandler := handler.NewHealthHandler(backend, version)
	collectionHandler := handler.NewCollectionHandler(svc.Collection)
	memeHandler := handler.NewMemeHandler(svc.Memes)

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		// Saved collection
		v1.GET("/collection", collectionHandler.List)
		v1.POST("/collection", collectionHandler.Save)
		v1.GET("/collection/stats", collectionHandler.Stats)
		v1.POST("/collection/bulk-delete", collectionHandler.BulkDelete)
		v1.DELETE("/collection/:id", collectionHandler.Remove)

		// Backend actions
		v1.POST("/generate", memeHandler.Generate)
		v1.GET("/trending", memeHandler.Trending)
		v1.GET("/templates", memeHandler.Templates)
		v1.POST("/upvote", memeHandler.Upvote)
		v1.POST("/score", memeHandler.Score)
		v1.GET("/status", memeHandler.Status)
	}

	return r
}
