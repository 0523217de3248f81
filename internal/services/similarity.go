package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/luminalearn/lumina-backend/internal/clients/pinecone"
	"github.com/luminalearn/lumina-backend/internal/logger"
)

// SimilarityService maintains the lesson-embedding index and answers
// nearest-neighbor queries over it. Both the embedder and the index are
// external collaborators; lessons that never made it into the index simply
// have no neighbors.
type SimilarityService interface {
	IndexLesson(ctx context.Context, lessonID uint, lessonText string) error
	SimilarLessonIDs(ctx context.Context, lessonID uint, topK int) ([]uint, error)
	RemoveLesson(ctx context.Context, lessonID uint) error
}

type similarityService struct {
	log     *logger.Logger
	ai      OpenAIClient
	vectors pinecone.VectorStore
}

func NewSimilarityService(baseLog *logger.Logger, ai OpenAIClient, vectors pinecone.VectorStore) SimilarityService {
	return &similarityService{
		log:     baseLog.With("service", "SimilarityService"),
		ai:      ai,
		vectors: vectors,
	}
}

func (s *similarityService) IndexLesson(ctx context.Context, lessonID uint, lessonText string) error {
	embeddings, err := s.ai.Embed(ctx, []string{lessonText})
	if err != nil {
		return fmt.Errorf("embed lesson: %w", err)
	}
	if len(embeddings) == 0 {
		return fmt.Errorf("embedder returned no vector")
	}
	err = s.vectors.Upsert(ctx, []pinecone.Vector{{
		ID:     lessonVectorID(lessonID),
		Values: embeddings[0],
	}})
	if err != nil {
		return fmt.Errorf("upsert lesson vector: %w", err)
	}
	s.log.Debug("Indexed lesson embedding", "lesson_id", lessonID)
	return nil
}

func (s *similarityService) SimilarLessonIDs(ctx context.Context, lessonID uint, topK int) ([]uint, error) {
	if topK <= 0 {
		topK = 5
	}
	source, err := s.vectors.Fetch(ctx, lessonVectorID(lessonID))
	if err != nil {
		return nil, fmt.Errorf("fetch lesson vector: %w", err)
	}
	if source == nil {
		s.log.Debug("Lesson has no vector in the index", "lesson_id", lessonID)
		return nil, nil
	}
	// Ask for one extra match since the source lesson matches itself.
	ids, err := s.vectors.QueryIDs(ctx, source, topK+1)
	if err != nil {
		return nil, fmt.Errorf("query similar lessons: %w", err)
	}
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		parsed, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			s.log.Warn("Skipping non-numeric vector id", "id", id)
			continue
		}
		if uint(parsed) == lessonID {
			continue
		}
		out = append(out, uint(parsed))
		if len(out) == topK {
			break
		}
	}
	return out, nil
}

func (s *similarityService) RemoveLesson(ctx context.Context, lessonID uint) error {
	return s.vectors.DeleteIDs(ctx, []string{lessonVectorID(lessonID)})
}

func lessonVectorID(lessonID uint) string {
	return strconv.FormatUint(uint64(lessonID), 10)
}
