package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/luminalearn/lumina-backend/internal/logger"
	"github.com/luminalearn/lumina-backend/internal/services"
)

type CourseHandler struct {
	log           *logger.Logger
	courseService services.CourseService
	lessonService services.LessonService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService, lessonService services.LessonService) *CourseHandler {
	return &CourseHandler{
		log:           log.With("handler", "CourseHandler"),
		courseService: courseService,
		lessonService: lessonService,
	}
}

type createCourseRequest struct {
	CourseName string `json:"course_name" binding:"required"`
	TeacherID  uint   `json:"teacher_id" binding:"required"`
}

// POST /courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req createCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	course, err := h.courseService.CreateCourse(c.Request.Context(), nil, req.CourseName, req.TeacherID)
	if err != nil {
		h.log.Error("CreateCourse failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "create_course_failed", err)
		return
	}
	RespondCreated(c, gin.H{"course_id": course.ID, "course_name": course.CourseName})
}

// GET /courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.GetAllCourses(c.Request.Context(), nil)
	if err != nil {
		h.log.Error("ListCourses failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_courses_failed", err)
		return
	}
	out := make([]gin.H, 0, len(courses))
	for _, course := range courses {
		out = append(out, gin.H{"id": course.ID, "course_name": course.CourseName})
	}
	RespondOK(c, out)
}

// GET /courses/:id/lessons
func (h *CourseHandler) ListLessonsForCourse(c *gin.Context) {
	courseID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	lessons, err := h.lessonService.GetLessonsForCourse(c.Request.Context(), nil, uint(courseID))
	if err != nil {
		h.log.Error("ListLessonsForCourse failed", "error", err, "course_id", courseID)
		RespondError(c, http.StatusInternalServerError, "load_lessons_failed", err)
		return
	}
	out := make([]gin.H, 0, len(lessons))
	for _, lesson := range lessons {
		out = append(out, gin.H{"id": lesson.ID, "lesson_title": lesson.LessonTitle})
	}
	RespondOK(c, out)
}
