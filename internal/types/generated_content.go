package types

import (
	"time"

	"gorm.io/datatypes"
)

// Learning styles accepted as cache keys and dialogue grouping keys.
const (
	StyleVisual   = "Visual"
	StyleAuditory = "Auditory"
	StyleReading  = "Reading/Writing"
)

// Content types for adapted lesson payloads.
const (
	ContentTypeText  = "text"
	ContentTypeImage = "image"
	ContentTypeAudio = "audio"
)

// GeneratedContent is the content cache: at most one row per (lesson_id, style).
// Rows are insert-only; a conflicting insert is dropped, never overwritten.
// Lesson deletion does not cascade here, so rows may outlive their lesson.
type GeneratedContent struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	LessonID    uint           `gorm:"column:lesson_id;not null;index:idx_generated_content_lesson_style,unique,priority:1" json:"lesson_id"`
	Style       string         `gorm:"column:style;not null;index:idx_generated_content_lesson_style,unique,priority:2" json:"style"`
	ContentType string         `gorm:"column:content_type;not null" json:"content_type"`
	Data        datatypes.JSON `gorm:"column:data;not null" json:"data"`
	QuizData    datatypes.JSON `gorm:"column:quiz_data" json:"quiz_data,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (GeneratedContent) TableName() string { return "generated_content" }
