package app

import (
	"gorm.io/gorm"

	"github.com/luminalearn/lumina-backend/internal/logger"
	"github.com/luminalearn/lumina-backend/internal/repos"
)

type Repos struct {
	Course           repos.CourseRepo
	Lesson           repos.LessonRepo
	GeneratedContent repos.GeneratedContentRepo
	SocraticDialogue repos.SocraticDialogueRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Course:           repos.NewCourseRepo(db, log),
		Lesson:           repos.NewLessonRepo(db, log),
		GeneratedContent: repos.NewGeneratedContentRepo(db, log),
		SocraticDialogue: repos.NewSocraticDialogueRepo(db, log),
	}
}
