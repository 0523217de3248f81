package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/luminalearn/lumina-backend/internal/logger"
	"github.com/luminalearn/lumina-backend/internal/repos"
)

// recommendationThreshold is the minimum per-style mean understanding score
// before a style is suggested. Below it the recommendation is withheld rather
// than guessed; the client's default-style picker depends on this exact gate.
const recommendationThreshold = 4.0

type RecommendationService interface {
	// RecommendStyle returns the learning style with the highest mean
	// understanding score for the lesson, ties broken by record count, or ""
	// when no style clears the threshold or no dialogue history exists.
	RecommendStyle(ctx context.Context, lessonID uint) (string, error)
}

type recommendationService struct {
	db           *gorm.DB
	log          *logger.Logger
	dialogueRepo repos.SocraticDialogueRepo
}

func NewRecommendationService(db *gorm.DB, baseLog *logger.Logger, dialogueRepo repos.SocraticDialogueRepo) RecommendationService {
	return &recommendationService{
		db:           db,
		log:          baseLog.With("service", "RecommendationService"),
		dialogueRepo: dialogueRepo,
	}
}

func (s *recommendationService) RecommendStyle(ctx context.Context, lessonID uint) (string, error) {
	aggregates, err := s.dialogueRepo.AggregateStylesByLesson(ctx, nil, lessonID)
	if err != nil {
		return "", fmt.Errorf("aggregate dialogue styles: %w", err)
	}
	if len(aggregates) == 0 {
		return "", nil
	}
	top := aggregates[0]
	if top.AvgScore < recommendationThreshold {
		s.log.Debug("Best style below recommendation threshold",
			"lesson_id", lessonID, "style", top.Style, "avg_score", top.AvgScore)
		return "", nil
	}
	return top.Style, nil
}
