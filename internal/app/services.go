package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/luminalearn/lumina-backend/internal/logger"
	"github.com/luminalearn/lumina-backend/internal/services"
)

type Services struct {
	Course         services.CourseService
	Lesson         services.LessonService
	Content        services.ContentService
	Recommendation services.RecommendationService
	Socratic       services.SocraticService
	Similarity     services.SimilarityService
	Media          services.MediaStore
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	mediaStore, err := services.NewMediaStore(log)
	if err != nil {
		return Services{}, fmt.Errorf("init media store: %w", err)
	}

	generator := services.NewOpenAIContentGenerator(log, clients.OpenAI, mediaStore)

	var similarity services.SimilarityService
	if clients.VectorStore != nil {
		similarity = services.NewSimilarityService(log, clients.OpenAI, clients.VectorStore)
	}

	courseService := services.NewCourseService(db, log, reposet.Course)
	lessonService := services.NewLessonService(db, log, reposet.Lesson, similarity)
	contentService := services.NewContentService(db, log, reposet.GeneratedContent, reposet.Lesson, generator, clients.ContentCache)
	recommendationService := services.NewRecommendationService(db, log, reposet.SocraticDialogue)
	socraticService := services.NewSocraticService(db, log, reposet.Lesson, reposet.SocraticDialogue, clients.OpenAI)

	return Services{
		Course:         courseService,
		Lesson:         lessonService,
		Content:        contentService,
		Recommendation: recommendationService,
		Socratic:       socraticService,
		Similarity:     similarity,
		Media:          mediaStore,
	}, nil
}
