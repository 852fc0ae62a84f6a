package app

import (
	apphttp "github.com/yungbote/codelearn-backend/internal/http"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) apphttp.RouterConfig {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return apphttp.RouterConfig{
		Log:            log,
		ServiceName:    serviceName,
		CORSOrigins:    cfg.CORSOrigins,
		AuthMiddleware: middleware.Auth,
		HealthHandler:  handlers.Health,
		CourseHandler:  handlers.Course,
		TopicHandler:   handlers.Topic,
		UserHandler:    handlers.User,
		AIHandler:      handlers.AI,
	}
}
