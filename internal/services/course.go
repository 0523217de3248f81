package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/luminalearn/lumina-backend/internal/logger"
	"github.com/luminalearn/lumina-backend/internal/repos"
	"github.com/luminalearn/lumina-backend/internal/types"
)

type CourseService interface {
	CreateCourse(ctx context.Context, tx *gorm.DB, courseName string, teacherID uint) (*types.Course, error)
	GetAllCourses(ctx context.Context, tx *gorm.DB) ([]*types.Course, error)
}

type courseService struct {
	db         *gorm.DB
	log        *logger.Logger
	courseRepo repos.CourseRepo
}

func NewCourseService(db *gorm.DB, baseLog *logger.Logger, courseRepo repos.CourseRepo) CourseService {
	return &courseService{
		db:         db,
		log:        baseLog.With("service", "CourseService"),
		courseRepo: courseRepo,
	}
}

func (s *courseService) CreateCourse(ctx context.Context, tx *gorm.DB, courseName string, teacherID uint) (*types.Course, error) {
	course := &types.Course{
		CourseName: courseName,
		TeacherID:  teacherID,
	}
	if _, err := s.courseRepo.Create(ctx, tx, course); err != nil {
		s.log.Error("CreateCourse failed", "error", err)
		return nil, fmt.Errorf("create course: %w", err)
	}
	return course, nil
}

func (s *courseService) GetAllCourses(ctx context.Context, tx *gorm.DB) ([]*types.Course, error) {
	courses, err := s.courseRepo.GetAll(ctx, tx)
	if err != nil {
		s.log.Error("GetAllCourses failed", "error", err)
		return nil, fmt.Errorf("get courses: %w", err)
	}
	return courses, nil
}
