package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/codelearn-backend/internal/http/response"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
	"github.com/yungbote/codelearn-backend/internal/services"
)

type TopicHandler struct {
	log      *logger.Logger
	catalog  services.CatalogService
	progress services.ProgressService
	users    UserResolver
}

func NewTopicHandler(log *logger.Logger, catalog services.CatalogService, progress services.ProgressService, users UserResolver) *TopicHandler {
	return &TopicHandler{
		log:      log.With("handler", "TopicHandler"),
		catalog:  catalog,
		progress: progress,
		users:    users,
	}
}

// GET /api/topics/:topicId
func (h *TopicHandler) GetTopic(c *gin.Context) {
	userID, err := h.users.Resolve(c, c.Query("userId"), true)
	if err != nil {
		response.RespondErr(c, err, "invalid_user_id")
		return
	}
	topic, err := h.catalog.GetTopic(c.Request.Context(), c.Param("topicId"), userID)
	if err != nil {
		h.log.Warn("GetTopic failed", "topic_id", c.Param("topicId"), "error", err)
		response.RespondErr(c, err, "load_topic_failed")
		return
	}
	response.RespondOK(c, topic)
}

type recordProgressRequest struct {
	UserID    string `json:"userId"`
	Completed *bool  `json:"completed"`
}

// POST /api/topics/:topicId/progress
func (h *TopicHandler) RecordProgress(c *gin.Context) {
	var req recordProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	// Writes never fall back to the placeholder learner.
	userID, err := h.users.Resolve(c, req.UserID, false)
	if err != nil {
		response.RespondErr(c, err, "invalid_user_id")
		return
	}
	in := services.RecordCompletionInput{
		TopicID:   c.Param("topicId"),
		Completed: req.Completed,
	}
	if userID != nil {
		in.UserID = *userID
	}
	row, err := h.progress.RecordCompletion(c.Request.Context(), in)
	if err != nil {
		h.log.Warn("RecordProgress failed", "topic_id", in.TopicID, "error", err)
		response.RespondErr(c, err, "update_progress_failed")
		return
	}
	response.RespondOK(c, row)
}
