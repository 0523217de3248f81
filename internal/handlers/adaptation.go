package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/luminalearn/lumina-backend/internal/logger"
	"github.com/luminalearn/lumina-backend/internal/services"
)

type AdaptationHandler struct {
	log            *logger.Logger
	contentService services.ContentService
}

func NewAdaptationHandler(log *logger.Logger, contentService services.ContentService) *AdaptationHandler {
	return &AdaptationHandler{
		log:            log.With("handler", "AdaptationHandler"),
		contentService: contentService,
	}
}

type adaptationRequest struct {
	LessonID uint   `json:"lesson_id" binding:"required"`
	Style    string `json:"style" binding:"required"`
}

// POST /generate-adapted-content
// Cache hits and misses return the same shape; a miss is just slower.
func (h *AdaptationHandler) GenerateAdaptedContent(c *gin.Context) {
	var req adaptationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	content, err := h.contentService.GetOrGenerate(c.Request.Context(), req.LessonID, req.Style)
	if err != nil {
		if errors.Is(err, services.ErrLessonNotFound) {
			RespondError(c, http.StatusNotFound, "lesson_not_found", err)
			return
		}
		h.log.Error("GenerateAdaptedContent failed", "error", err, "lesson_id", req.LessonID, "style", req.Style)
		RespondError(c, http.StatusInternalServerError, "generate_content_failed", err)
		return
	}
	RespondOK(c, content)
}

// POST /lessons/:id/pregenerate
func (h *AdaptationHandler) PregenerateLesson(c *gin.Context) {
	lessonID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_lesson_id", err)
		return
	}
	if err := h.contentService.Pregenerate(c.Request.Context(), uint(lessonID)); err != nil {
		if errors.Is(err, services.ErrLessonNotFound) {
			RespondError(c, http.StatusNotFound, "lesson_not_found", err)
			return
		}
		h.log.Error("PregenerateLesson failed", "error", err, "lesson_id", lessonID)
		RespondError(c, http.StatusInternalServerError, "pregenerate_failed", err)
		return
	}
	RespondOK(c, gin.H{"status": "ok"})
}
