package app

import (
	"github.com/gin-gonic/gin"

	appHTTP "github.com/safakhan413/user-data-api/internal/http"
	httpH "github.com/safakhan413/user-data-api/internal/http/handlers"
	httpMW "github.com/safakhan413/user-data-api/internal/http/middleware"
	"github.com/safakhan413/user-data-api/internal/pkg/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health *httpH.HealthHandler
	Auth   *httpH.AuthHandler
	User   *httpH.UserHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(),
		Auth:   httpH.NewAuthHandler(services.Auth),
		User:   httpH.NewUserHandler(log, services.Directory),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware) *gin.Engine {
	return appHTTP.NewRouter(appHTTP.RouterConfig{
		Log:            log,
		HealthHandler:  handlers.Health,
		AuthHandler:    handlers.Auth,
		AuthMiddleware: middleware.Auth,
		UserHandler:    handlers.User,
	})
}
