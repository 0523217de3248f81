package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/luminalearn/lumina-backend/internal/logger"
	"github.com/luminalearn/lumina-backend/internal/services"
)

type RecommendationHandler struct {
	log    *logger.Logger
	recSvc services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, recSvc services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		log:    log.With("handler", "RecommendationHandler"),
		recSvc: recSvc,
	}
}

// GET /lessons/:id/recommend-style
// recommended_style is null when no style has enough support.
func (h *RecommendationHandler) RecommendStyle(c *gin.Context) {
	lessonID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_lesson_id", err)
		return
	}
	style, err := h.recSvc.RecommendStyle(c.Request.Context(), uint(lessonID))
	if err != nil {
		h.log.Error("RecommendStyle failed", "error", err, "lesson_id", lessonID)
		RespondError(c, http.StatusInternalServerError, "recommend_style_failed", err)
		return
	}
	if style == "" {
		RespondOK(c, gin.H{"recommended_style": nil})
		return
	}
	RespondOK(c, gin.H{"recommended_style": style})
}
