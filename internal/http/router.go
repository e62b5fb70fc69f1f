package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/safakhan413/user-data-api/internal/http/handlers"
	httpMW "github.com/safakhan413/user-data-api/internal/http/middleware"
	"github.com/safakhan413/user-data-api/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	HealthHandler  *httpH.HealthHandler
	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	UserHandler    *httpH.UserHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	// Auth (public)
	if cfg.AuthHandler != nil {
		r.POST("/token", cfg.AuthHandler.Token)
	}

	protected := r.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.UserHandler != nil {
			protected.GET("/users/", cfg.UserHandler.GetUsers)
			protected.GET("/users/download", cfg.UserHandler.DownloadUsers)
		}
	}

	return r
}
