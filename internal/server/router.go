package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/luminalearn/lumina-backend/internal/handlers"
)

type RouterConfig struct {
	AllowOrigins          []string
	ServiceName           string
	MediaDir              string
	CourseHandler         *handlers.CourseHandler
	LessonHandler         *handlers.LessonHandler
	AdaptationHandler     *handlers.AdaptationHandler
	SocraticHandler       *handlers.SocraticHandler
	RecommendationHandler *handlers.RecommendationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "lumina-backend"
	}
	router.Use(otelgin.Middleware(serviceName))

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:8501"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	// Generated audio is written to disk and served statically.
	if cfg.MediaDir != "" {
		router.Static("/media", cfg.MediaDir)
	}

	// Teacher
	router.POST("/courses", cfg.CourseHandler.CreateCourse)
	router.GET("/courses", cfg.CourseHandler.ListCourses)
	router.GET("/courses/:id/lessons", cfg.CourseHandler.ListLessonsForCourse)
	router.POST("/lessons", cfg.LessonHandler.CreateLesson)
	router.DELETE("/lessons/:id", cfg.LessonHandler.DeleteLesson)

	// Student
	router.GET("/lessons/:id/similar", cfg.LessonHandler.SimilarLessons)
	router.POST("/generate-adapted-content", cfg.AdaptationHandler.GenerateAdaptedContent)
	router.POST("/lessons/:id/pregenerate", cfg.AdaptationHandler.PregenerateLesson)
	router.POST("/socratic-chat", cfg.SocraticHandler.Chat)
	router.POST("/grade-conversation", cfg.SocraticHandler.GradeConversation)
	router.GET("/lessons/:id/recommend-style", cfg.RecommendationHandler.RecommendStyle)

	return router
}
