package types

import (
	"time"

	"gorm.io/datatypes"
)

// Dialogue turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type DialogueTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SocraticDialogue is one graded tutoring session. Append-only, no uniqueness:
// many records per (lesson_id, style) feed the style recommendation averages.
// UnderstandingScore is 1-5, or 0 when the grader output could not be parsed.
type SocraticDialogue struct {
	ID                  uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	LessonID            uint           `gorm:"column:lesson_id;not null;index" json:"lesson_id"`
	SessionID           string         `gorm:"column:session_id;not null" json:"session_id"`
	Style               string         `gorm:"column:style;not null;index" json:"style"`
	ConversationHistory datatypes.JSON `gorm:"column:conversation_history;not null" json:"conversation_history"`
	UnderstandingScore  *int           `gorm:"column:understanding_score" json:"understanding_score,omitempty"`
	CreatedAt           time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (SocraticDialogue) TableName() string { return "socratic_dialogue" }
