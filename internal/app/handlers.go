package app

import (
	httpH "github.com/yungbote/codelearn-backend/internal/http/handlers"
	httpMW "github.com/yungbote/codelearn-backend/internal/http/middleware"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
)

type Handlers struct {
	Health *httpH.HealthHandler
	Course *httpH.CourseHandler
	Topic  *httpH.TopicHandler
	User   *httpH.UserHandler
	AI     *httpH.AIHandler
}

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireHandlers(log *logger.Logger, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	users := httpH.UserResolver{DefaultUserID: cfg.DefaultUserID}
	return Handlers{
		Health: httpH.NewHealthHandler(),
		Course: httpH.NewCourseHandler(log, services.Catalog, users),
		Topic:  httpH.NewTopicHandler(log, services.Catalog, services.Progress, users),
		User:   httpH.NewUserHandler(log, services.Auth, services.Progress),
		AI:     httpH.NewAIHandler(log, services.Translation),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	return Middleware{Auth: httpMW.NewAuthMiddleware(log, services.Auth)}
}
