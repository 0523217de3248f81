package types

import (
	"time"
)

type Course struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseName string    `gorm:"column:course_name;not null" json:"course_name"`
	TeacherID  uint      `gorm:"column:teacher_id;not null;index" json:"teacher_id"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Course) TableName() string { return "course" }
