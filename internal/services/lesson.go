package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/luminalearn/lumina-backend/internal/logger"
	"github.com/luminalearn/lumina-backend/internal/repos"
	"github.com/luminalearn/lumina-backend/internal/types"
)

// SimilarLesson is a neighbor from the vector index, hydrated with the titles
// the client renders.
type SimilarLesson struct {
	ID          uint   `json:"id"`
	LessonTitle string `json:"lesson_title"`
	CourseName  string `json:"course_name"`
}

type LessonService interface {
	CreateLesson(ctx context.Context, tx *gorm.DB, lessonTitle string, courseID uint, originalText string) (*types.Lesson, error)
	GetLessonsForCourse(ctx context.Context, tx *gorm.DB, courseID uint) ([]*types.Lesson, error)
	// DeleteLesson removes only the lesson row. Cached content and dialogue
	// records keyed by the id stay behind.
	DeleteLesson(ctx context.Context, tx *gorm.DB, lessonID uint) error
	SimilarLessons(ctx context.Context, lessonID uint) ([]SimilarLesson, error)
}

type lessonService struct {
	db         *gorm.DB
	log        *logger.Logger
	lessonRepo repos.LessonRepo
	similarity SimilarityService
}

// NewLessonService wires lesson CRUD plus the embedding index hooks.
// similarity may be nil when no vector index is configured.
func NewLessonService(db *gorm.DB, baseLog *logger.Logger, lessonRepo repos.LessonRepo, similarity SimilarityService) LessonService {
	return &lessonService{
		db:         db,
		log:        baseLog.With("service", "LessonService"),
		lessonRepo: lessonRepo,
		similarity: similarity,
	}
}

func (s *lessonService) CreateLesson(ctx context.Context, tx *gorm.DB, lessonTitle string, courseID uint, originalText string) (*types.Lesson, error) {
	lesson := &types.Lesson{
		LessonTitle:  lessonTitle,
		CourseID:     courseID,
		OriginalText: originalText,
	}
	if _, err := s.lessonRepo.Create(ctx, tx, lesson); err != nil {
		s.log.Error("CreateLesson failed", "error", err)
		return nil, fmt.Errorf("create lesson: %w", err)
	}
	// Indexing is best effort: a missing embedding only disables similar-lesson
	// lookups for this row, it never fails the create.
	if s.similarity != nil {
		if err := s.similarity.IndexLesson(ctx, lesson.ID, originalText); err != nil {
			s.log.Warn("Lesson embedding index failed", "error", err, "lesson_id", lesson.ID)
		}
	}
	return lesson, nil
}

func (s *lessonService) GetLessonsForCourse(ctx context.Context, tx *gorm.DB, courseID uint) ([]*types.Lesson, error) {
	lessons, err := s.lessonRepo.GetByCourseID(ctx, tx, courseID)
	if err != nil {
		s.log.Error("GetLessonsForCourse failed", "error", err, "course_id", courseID)
		return nil, fmt.Errorf("get lessons: %w", err)
	}
	return lessons, nil
}

func (s *lessonService) DeleteLesson(ctx context.Context, tx *gorm.DB, lessonID uint) error {
	if err := s.lessonRepo.Delete(ctx, tx, lessonID); err != nil {
		s.log.Error("DeleteLesson failed", "error", err, "lesson_id", lessonID)
		return fmt.Errorf("delete lesson: %w", err)
	}
	if s.similarity != nil {
		if err := s.similarity.RemoveLesson(ctx, lessonID); err != nil {
			s.log.Warn("Lesson vector delete failed", "error", err, "lesson_id", lessonID)
		}
	}
	return nil
}

func (s *lessonService) SimilarLessons(ctx context.Context, lessonID uint) ([]SimilarLesson, error) {
	if s.similarity == nil {
		return nil, nil
	}
	ids, err := s.similarity.SimilarLessonIDs(ctx, lessonID, 5)
	if err != nil {
		return nil, fmt.Errorf("similar lesson ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	lessons, err := s.lessonRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, fmt.Errorf("load similar lessons: %w", err)
	}
	out := make([]SimilarLesson, 0, len(lessons))
	for _, l := range lessons {
		item := SimilarLesson{ID: l.ID, LessonTitle: l.LessonTitle}
		if l.Course != nil {
			item.CourseName = l.Course.CourseName
		}
		out = append(out, item)
	}
	return out, nil
}
