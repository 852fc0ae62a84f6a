package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/codelearn-backend/internal/http/response"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
	"github.com/yungbote/codelearn-backend/internal/services"
)

type AIHandler struct {
	log         *logger.Logger
	translation services.TranslationService
}

func NewAIHandler(log *logger.Logger, translation services.TranslationService) *AIHandler {
	return &AIHandler{
		log:         log.With("handler", "AIHandler"),
		translation: translation,
	}
}

// POST /api/ai/translate-code
func (h *AIHandler) TranslateCode(c *gin.Context) {
	var req services.TranslateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.translation.Translate(c.Request.Context(), req)
	if err != nil {
		response.RespondErr(c, err, "translation_failed")
		return
	}
	response.RespondOK(c, out)
}

// GET /api/ai/languages
func (h *AIHandler) Languages(c *gin.Context) {
	response.RespondOK(c, gin.H{"languages": h.translation.SupportedLanguages()})
}
