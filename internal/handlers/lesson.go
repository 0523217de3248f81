package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/luminalearn/lumina-backend/internal/logger"
	"github.com/luminalearn/lumina-backend/internal/services"
)

type LessonHandler struct {
	log           *logger.Logger
	lessonService services.LessonService
}

func NewLessonHandler(log *logger.Logger, lessonService services.LessonService) *LessonHandler {
	return &LessonHandler{
		log:           log.With("handler", "LessonHandler"),
		lessonService: lessonService,
	}
}

type createLessonRequest struct {
	LessonTitle  string `json:"lesson_title" binding:"required"`
	CourseID     uint   `json:"course_id" binding:"required"`
	OriginalText string `json:"original_text" binding:"required"`
}

// POST /lessons
func (h *LessonHandler) CreateLesson(c *gin.Context) {
	var req createLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	lesson, err := h.lessonService.CreateLesson(c.Request.Context(), nil, req.LessonTitle, req.CourseID, req.OriginalText)
	if err != nil {
		h.log.Error("CreateLesson failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "create_lesson_failed", err)
		return
	}
	RespondCreated(c, gin.H{
		"lesson_id":     lesson.ID,
		"lesson_title":  lesson.LessonTitle,
		"course_id":     lesson.CourseID,
		"original_text": lesson.OriginalText,
	})
}

// DELETE /lessons/:id
func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	lessonID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_lesson_id", err)
		return
	}
	if err := h.lessonService.DeleteLesson(c.Request.Context(), nil, uint(lessonID)); err != nil {
		h.log.Error("DeleteLesson failed", "error", err, "lesson_id", lessonID)
		RespondError(c, http.StatusInternalServerError, "delete_lesson_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /lessons/:id/similar
func (h *LessonHandler) SimilarLessons(c *gin.Context) {
	lessonID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_lesson_id", err)
		return
	}
	similar, err := h.lessonService.SimilarLessons(c.Request.Context(), uint(lessonID))
	if err != nil {
		h.log.Error("SimilarLessons failed", "error", err, "lesson_id", lessonID)
		RespondError(c, http.StatusInternalServerError, "similar_lessons_failed", err)
		return
	}
	if similar == nil {
		similar = []services.SimilarLesson{}
	}
	RespondOK(c, similar)
}
