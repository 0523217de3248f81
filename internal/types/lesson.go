package types

import (
	"time"
)

type Lesson struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	LessonTitle  string    `gorm:"column:lesson_title;not null" json:"lesson_title"`
	CourseID     uint      `gorm:"column:course_id;not null;index" json:"course_id"`
	Course       *Course   `gorm:"foreignKey:CourseID;references:ID" json:"course,omitempty"`
	OriginalText string    `gorm:"column:original_text;not null" json:"original_text"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Lesson) TableName() string { return "lesson" }
