package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/codelearn-backend/internal/http/response"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
	"github.com/yungbote/codelearn-backend/internal/services"
)

type CourseHandler struct {
	log     *logger.Logger
	catalog services.CatalogService
	users   UserResolver
}

func NewCourseHandler(log *logger.Logger, catalog services.CatalogService, users UserResolver) *CourseHandler {
	return &CourseHandler{
		log:     log.With("handler", "CourseHandler"),
		catalog: catalog,
		users:   users,
	}
}

// GET /api/courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	userID, err := h.users.Resolve(c, c.Query("userId"), true)
	if err != nil {
		response.RespondErr(c, err, "invalid_user_id")
		return
	}
	courses, err := h.catalog.ListCourses(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("ListCourses failed", "error", err)
		response.RespondErr(c, err, "load_courses_failed")
		return
	}
	response.RespondOK(c, courses)
}

// GET /api/courses/:courseId
func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.catalog.GetCourse(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		h.log.Warn("GetCourse failed", "course_id", c.Param("courseId"), "error", err)
		response.RespondErr(c, err, "load_course_failed")
		return
	}
	response.RespondOK(c, course)
}

// GET /api/courses/:courseId/topics
func (h *CourseHandler) ListCourseTopics(c *gin.Context) {
	userID, err := h.users.Resolve(c, c.Query("userId"), true)
	if err != nil {
		response.RespondErr(c, err, "invalid_user_id")
		return
	}
	topics, err := h.catalog.ListCourseTopics(c.Request.Context(), c.Param("courseId"), userID)
	if err != nil {
		h.log.Warn("ListCourseTopics failed", "course_id", c.Param("courseId"), "error", err)
		response.RespondErr(c, err, "load_topics_failed")
		return
	}
	response.RespondOK(c, topics)
}
