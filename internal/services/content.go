package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	goredis "github.com/luminalearn/lumina-backend/internal/clients/redis"
	"github.com/luminalearn/lumina-backend/internal/logger"
	"github.com/luminalearn/lumina-backend/internal/repos"
	"github.com/luminalearn/lumina-backend/internal/types"
)

// ErrLessonNotFound is a missing lesson row, as opposed to a content-cache
// miss, which is a normal slow path and not an error.
var ErrLessonNotFound = errors.New("lesson not found")

// AdaptedContent is the response payload for an adaptation request. Hits and
// misses share this shape; a miss is just slower.
type AdaptedContent struct {
	LessonID      uint           `json:"lesson_id"`
	LessonTitle   string         `json:"lesson_title"`
	LearningStyle string         `json:"learning_style"`
	ContentType   string         `json:"content_type"`
	Data          datatypes.JSON `json:"data"`
	QuizData      datatypes.JSON `json:"quiz_data,omitempty"`
}

type ContentService interface {
	// GetOrGenerate serves cached content for (lessonID, style) when present,
	// otherwise invokes the generator, persists the result, and returns the
	// freshly generated payload even when a concurrent writer won the insert.
	GetOrGenerate(ctx context.Context, lessonID uint, style string) (*AdaptedContent, error)
	// Pregenerate warms the cache for every learning style of a lesson.
	Pregenerate(ctx context.Context, lessonID uint) error
}

type contentService struct {
	db          *gorm.DB
	log         *logger.Logger
	contentRepo repos.GeneratedContentRepo
	lessonRepo  repos.LessonRepo
	generator   ContentGenerator
	readCache   goredis.ContentCache
}

// NewContentService wires the content orchestrator. readCache may be nil, in
// which case every lookup goes straight to the database.
func NewContentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	contentRepo repos.GeneratedContentRepo,
	lessonRepo repos.LessonRepo,
	generator ContentGenerator,
	readCache goredis.ContentCache,
) ContentService {
	return &contentService{
		db:          db,
		log:         baseLog.With("service", "ContentService"),
		contentRepo: contentRepo,
		lessonRepo:  lessonRepo,
		generator:   generator,
		readCache:   readCache,
	}
}

func (s *contentService) GetOrGenerate(ctx context.Context, lessonID uint, style string) (*AdaptedContent, error) {
	cached, err := s.lookup(ctx, lessonID, style)
	if err != nil {
		return nil, fmt.Errorf("content cache lookup: %w", err)
	}
	if cached != nil {
		s.log.Debug("Serving adapted content from cache", "lesson_id", lessonID, "style", style)
		return &AdaptedContent{
			LessonID:      lessonID,
			LessonTitle:   s.lessonTitle(ctx, lessonID),
			LearningStyle: style,
			ContentType:   cached.ContentType,
			Data:          cached.Data,
			QuizData:      cached.QuizData,
		}, nil
	}

	lesson, err := s.lessonRepo.GetByID(ctx, nil, lessonID)
	if err != nil {
		return nil, fmt.Errorf("load lesson: %w", err)
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}

	s.log.Info("Adapted content not in cache, generating", "lesson_id", lessonID, "style", style)
	payload, err := s.generator.Generate(ctx, style, lesson)
	if err != nil {
		// Generation failures are the collaborator's to report; nothing is cached.
		return nil, err
	}

	row := &types.GeneratedContent{
		LessonID:    lessonID,
		Style:       style,
		ContentType: payload.ContentType,
		Data:        payload.Data,
		QuizData:    payload.QuizData,
	}
	outcome, err := s.contentRepo.Put(ctx, nil, row)
	if err != nil {
		return nil, fmt.Errorf("cache generated content: %w", err)
	}
	if outcome == repos.PutDuplicate {
		// A concurrent request generated and stored first. The stored row is
		// authoritative for future readers; this caller still gets its own result.
		s.log.Info("Concurrent generation won the cache insert", "lesson_id", lessonID, "style", style)
	} else if s.readCache != nil {
		if cErr := s.readCache.SetContent(ctx, row); cErr != nil {
			s.log.Warn("Read-cache populate failed", "error", cErr, "lesson_id", lessonID, "style", style)
		}
	}

	return &AdaptedContent{
		LessonID:      lessonID,
		LessonTitle:   lesson.LessonTitle,
		LearningStyle: style,
		ContentType:   payload.ContentType,
		Data:          payload.Data,
		QuizData:      payload.QuizData,
	}, nil
}

func (s *contentService) Pregenerate(ctx context.Context, lessonID uint) error {
	styles := []string{types.StyleVisual, types.StyleAuditory, types.StyleReading}
	g, gctx := errgroup.WithContext(ctx)
	for _, style := range styles {
		g.Go(func() error {
			_, err := s.GetOrGenerate(gctx, lessonID, style)
			return err
		})
	}
	return g.Wait()
}

// lookup checks the redis read cache first, then the database, backfilling
// redis on a database hit. The database row is authoritative either way.
func (s *contentService) lookup(ctx context.Context, lessonID uint, style string) (*types.GeneratedContent, error) {
	if s.readCache != nil {
		row, err := s.readCache.GetContent(ctx, lessonID, style)
		if err != nil {
			s.log.Warn("Read-cache lookup failed, falling back to database", "error", err)
		} else if row != nil {
			return row, nil
		}
	}
	row, err := s.contentRepo.Get(ctx, nil, lessonID, style)
	if err != nil {
		return nil, err
	}
	if row != nil && s.readCache != nil {
		if cErr := s.readCache.SetContent(ctx, row); cErr != nil {
			s.log.Warn("Read-cache populate failed", "error", cErr)
		}
	}
	return row, nil
}

// lessonTitle resolves a title for cached responses. The cache can outlive its
// lesson, so a missing row degrades to a placeholder rather than an error.
func (s *contentService) lessonTitle(ctx context.Context, lessonID uint) string {
	lesson, err := s.lessonRepo.GetByID(ctx, nil, lessonID)
	if err != nil || lesson == nil {
		return "Unknown Topic"
	}
	return lesson.LessonTitle
}
