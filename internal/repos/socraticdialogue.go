package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/luminalearn/lumina-backend/internal/logger"
	"github.com/luminalearn/lumina-backend/internal/types"
)

// StyleAggregate is one GROUP BY style row for a lesson's dialogue history.
type StyleAggregate struct {
	Style       string  `json:"style"`
	AvgScore    float64 `json:"avg_score"`
	RecordCount int64   `json:"record_count"`
}

type SocraticDialogueRepo interface {
	// Append is a pure insert. Multiple records per (lesson_id, style) are
	// expected; they are what the per-style averages aggregate over.
	Append(ctx context.Context, tx *gorm.DB, dialogue *types.SocraticDialogue) error
	// AggregateStylesByLesson returns per-style mean score and record count,
	// ordered by mean desc then count desc. Rows tied on both sort in scan
	// order, which is not deterministic.
	AggregateStylesByLesson(ctx context.Context, tx *gorm.DB, lessonID uint) ([]StyleAggregate, error)
}

type socraticDialogueRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSocraticDialogueRepo(db *gorm.DB, baseLog *logger.Logger) SocraticDialogueRepo {
	return &socraticDialogueRepo{db: db, log: baseLog.With("repo", "SocraticDialogueRepo")}
}

func (r *socraticDialogueRepo) Append(ctx context.Context, tx *gorm.DB, dialogue *types.SocraticDialogue) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(dialogue).Error
}

func (r *socraticDialogueRepo) AggregateStylesByLesson(ctx context.Context, tx *gorm.DB, lessonID uint) ([]StyleAggregate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []StyleAggregate
	err := transaction.WithContext(ctx).
		Raw(`
			SELECT style, AVG(understanding_score) AS avg_score, COUNT(id) AS record_count
			FROM socratic_dialogue
			WHERE lesson_id = ?
			GROUP BY style
			ORDER BY avg_score DESC, record_count DESC
		`, lessonID).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
