package app

import (
	"github.com/luminalearn/lumina-backend/internal/handlers"
	"github.com/luminalearn/lumina-backend/internal/logger"
)

type Handlers struct {
	Course         *handlers.CourseHandler
	Lesson         *handlers.LessonHandler
	Adaptation     *handlers.AdaptationHandler
	Socratic       *handlers.SocraticHandler
	Recommendation *handlers.RecommendationHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Course:         handlers.NewCourseHandler(log, serviceset.Course, serviceset.Lesson),
		Lesson:         handlers.NewLessonHandler(log, serviceset.Lesson),
		Adaptation:     handlers.NewAdaptationHandler(log, serviceset.Content),
		Socratic:       handlers.NewSocraticHandler(log, serviceset.Socratic),
		Recommendation: handlers.NewRecommendationHandler(log, serviceset.Recommendation),
	}
}
