package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/luminalearn/lumina-backend/internal/logger"
	"github.com/luminalearn/lumina-backend/internal/types"
)

// PutOutcome reports what a content-cache insert actually did, so callers and
// tests can tell a stored row from a dropped duplicate without an error path.
type PutOutcome int

const (
	PutStored PutOutcome = iota
	PutDuplicate
)

func (o PutOutcome) String() string {
	if o == PutDuplicate {
		return "duplicate-ignored"
	}
	return "stored"
}

type GeneratedContentRepo interface {
	// Get returns the cached row for (lessonID, style), or nil on a miss.
	Get(ctx context.Context, tx *gorm.DB, lessonID uint, style string) (*types.GeneratedContent, error)
	// Put inserts a new cache row. When a row for (lessonID, style) already
	// exists the insert is dropped and PutDuplicate is returned: concurrent
	// generations race to write the same key, one wins, the rest no-op.
	Put(ctx context.Context, tx *gorm.DB, content *types.GeneratedContent) (PutOutcome, error)
}

type generatedContentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGeneratedContentRepo(db *gorm.DB, baseLog *logger.Logger) GeneratedContentRepo {
	return &generatedContentRepo{db: db, log: baseLog.With("repo", "GeneratedContentRepo")}
}

func (r *generatedContentRepo) Get(ctx context.Context, tx *gorm.DB, lessonID uint, style string) (*types.GeneratedContent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.GeneratedContent
	err := transaction.WithContext(ctx).
		Where("lesson_id = ? AND style = ?", lessonID, style).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *generatedContentRepo) Put(ctx context.Context, tx *gorm.DB, content *types.GeneratedContent) (PutOutcome, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "lesson_id"}, {Name: "style"}},
			DoNothing: true,
		}).
		Create(content)
	if res.Error != nil {
		return PutStored, res.Error
	}
	if res.RowsAffected == 0 {
		r.log.Debug("Content cache insert dropped, row already present",
			"lesson_id", content.LessonID, "style", content.Style)
		return PutDuplicate, nil
	}
	return PutStored, nil
}
