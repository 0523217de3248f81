package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luminalearn/lumina-backend/internal/logger"
	"github.com/luminalearn/lumina-backend/internal/services"
	"github.com/luminalearn/lumina-backend/internal/types"
)

type SocraticHandler struct {
	log         *logger.Logger
	socraticSvc services.SocraticService
}

func NewSocraticHandler(log *logger.Logger, socraticSvc services.SocraticService) *SocraticHandler {
	return &SocraticHandler{
		log:         log.With("handler", "SocraticHandler"),
		socraticSvc: socraticSvc,
	}
}

type socraticChatRequest struct {
	LessonID    uint                 `json:"lesson_id" binding:"required"`
	Style       string               `json:"style"`
	ChatHistory []types.DialogueTurn `json:"chat_history"`
}

type gradeConversationRequest struct {
	LessonID    uint                 `json:"lesson_id" binding:"required"`
	Style       string               `json:"style" binding:"required"`
	SessionID   string               `json:"session_id"`
	ChatHistory []types.DialogueTurn `json:"chat_history"`
}

// POST /socratic-chat
func (h *SocraticHandler) Chat(c *gin.Context) {
	var req socraticChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	reply, err := h.socraticSvc.Chat(c.Request.Context(), req.LessonID, req.ChatHistory)
	if err != nil {
		if errors.Is(err, services.ErrLessonNotFound) {
			RespondError(c, http.StatusNotFound, "lesson_not_found", err)
			return
		}
		h.log.Error("Socratic chat failed", "error", err, "lesson_id", req.LessonID)
		RespondError(c, http.StatusInternalServerError, "socratic_chat_failed", err)
		return
	}
	RespondOK(c, gin.H{"role": types.RoleAssistant, "content": reply})
}

// POST /grade-conversation
func (h *SocraticHandler) GradeConversation(c *gin.Context) {
	var req gradeConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := h.socraticSvc.Grade(c.Request.Context(), req.LessonID, req.SessionID, req.Style, req.ChatHistory)
	if err != nil {
		h.log.Error("GradeConversation failed", "error", err, "lesson_id", req.LessonID)
		RespondError(c, http.StatusInternalServerError, "grade_conversation_failed", err)
		return
	}
	RespondOK(c, gin.H{"final_score": result.Score})
}
