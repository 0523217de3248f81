package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/luminalearn/lumina-backend/internal/logger"
	"github.com/luminalearn/lumina-backend/internal/types"
)

type LessonRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) (*types.Lesson, error)
	GetByID(ctx context.Context, tx *gorm.DB, lessonID uint) (*types.Lesson, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uint) ([]*types.Lesson, error)
	GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uint) ([]*types.Lesson, error)
	// Delete removes the lesson row only. Cached content and dialogue records
	// keyed by the lesson id are left in place.
	Delete(ctx context.Context, tx *gorm.DB, lessonID uint) error
}

type lessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return &lessonRepo{db: db, log: baseLog.With("repo", "LessonRepo")}
}

func (r *lessonRepo) Create(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) (*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(lesson).Error; err != nil {
		return nil, err
	}
	return lesson, nil
}

func (r *lessonRepo) GetByID(ctx context.Context, tx *gorm.DB, lessonID uint) (*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.Lesson
	err := transaction.WithContext(ctx).
		Where("id = ?", lessonID).
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

func (r *lessonRepo) GetByIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uint) ([]*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Lesson
	if len(lessonIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Course").
		Where("id IN ?", lessonIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *lessonRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uint) ([]*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Lesson
	if err := transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *lessonRepo) Delete(ctx context.Context, tx *gorm.DB, lessonID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", lessonID).
		Delete(&types.Lesson{}).Error
}
