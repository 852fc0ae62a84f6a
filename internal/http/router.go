package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/codelearn-backend/internal/http/handlers"
	httpMW "github.com/yungbote/codelearn-backend/internal/http/middleware"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	CORSOrigins    []string
	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler *httpH.HealthHandler
	CourseHandler *httpH.CourseHandler
	TopicHandler  *httpH.TopicHandler
	UserHandler   *httpH.UserHandler
	AIHandler     *httpH.AIHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	if cfg.AuthMiddleware != nil {
		r.Use(cfg.AuthMiddleware.OptionalAuth())
	}
	r.Use(httpMW.RequestLogger(cfg.Log))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Root)
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Courses
		if cfg.CourseHandler != nil {
			api.GET("/courses", cfg.CourseHandler.ListCourses)
			api.GET("/courses/:courseId", cfg.CourseHandler.GetCourse)
			api.GET("/courses/:courseId/topics", cfg.CourseHandler.ListCourseTopics)
		}

		// Topics
		if cfg.TopicHandler != nil {
			api.GET("/topics/:topicId", cfg.TopicHandler.GetTopic)
			api.POST("/topics/:topicId/progress", cfg.TopicHandler.RecordProgress)
		}

		// Users
		if cfg.UserHandler != nil {
			api.POST("/users/register", cfg.UserHandler.Register)
			api.POST("/users/login", cfg.UserHandler.Login)
			api.GET("/users/:userId/progress", cfg.UserHandler.ListProgress)
		}

		// AI
		if cfg.AIHandler != nil {
			api.POST("/ai/translate-code", cfg.AIHandler.TranslateCode)
			api.GET("/ai/languages", cfg.AIHandler.Languages)
		}
	}

	return r
}
