package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/codelearn-backend/internal/http/response"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
	"github.com/yungbote/codelearn-backend/internal/services"
)

type UserHandler struct {
	log      *logger.Logger
	auth     services.AuthService
	progress services.ProgressService
}

func NewUserHandler(log *logger.Logger, auth services.AuthService, progress services.ProgressService) *UserHandler {
	return &UserHandler{
		log:      log.With("handler", "UserHandler"),
		auth:     auth,
		progress: progress,
	}
}

// POST /api/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		h.log.Warn("Register failed", "error", err)
		response.RespondErr(c, err, "registration_failed")
		return
	}
	response.RespondCreated(c, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondErr(c, err, "login_failed")
		return
	}
	response.RespondOK(c, res)
}

// GET /api/users/:userId/progress
func (h *UserHandler) ListProgress(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	items, err := h.progress.ListUserProgress(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("ListProgress failed", "user_id", userID, "error", err)
		response.RespondErr(c, err, "load_progress_failed")
		return
	}
	response.RespondOK(c, items)
}
