package repos

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/luminalearn/lumina-backend/internal/logger"
)

// newTestDB opens a private in-memory database with the same shape the
// postgres migrations produce, minus postgres-only column defaults.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	ddl := []string{
		`CREATE TABLE course (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			course_name TEXT NOT NULL,
			teacher_id INTEGER NOT NULL,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE lesson (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			lesson_title TEXT NOT NULL,
			course_id INTEGER NOT NULL,
			original_text TEXT NOT NULL,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE generated_content (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			lesson_id INTEGER NOT NULL,
			style TEXT NOT NULL,
			content_type TEXT NOT NULL,
			data TEXT NOT NULL,
			quiz_data TEXT,
			created_at DATETIME,
			updated_at DATETIME,
			UNIQUE (lesson_id, style)
		)`,
		`CREATE TABLE socratic_dialogue (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			lesson_id INTEGER NOT NULL,
			session_id TEXT NOT NULL,
			style TEXT NOT NULL,
			conversation_history TEXT NOT NULL,
			understanding_score INTEGER,
			created_at DATETIME,
			updated_at DATETIME
		)`,
	}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create test schema: %v", err)
		}
	}
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}
