package repos

import (
	"github.com/platziflix/catalog-backend/internal/data/repos/catalog"
	"github.com/platziflix/catalog-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type CourseRepo = catalog.CourseRepo
type TeacherRepo = catalog.TeacherRepo
type LessonRepo = catalog.LessonRepo
type CourseRatingRepo = catalog.CourseRatingRepo

// Set bundles every repository over one database handle.
type Set struct {
	Course       CourseRepo
	Teacher      TeacherRepo
	Lesson       LessonRepo
	CourseRating CourseRatingRepo
}

func NewSet(db *gorm.DB, log *logger.Logger) Set {
	return Set{
		Course:       catalog.NewCourseRepo(db, log),
		Teacher:      catalog.NewTeacherRepo(db, log),
		Lesson:       catalog.NewLessonRepo(db, log),
		CourseRating: catalog.NewCourseRatingRepo(db, log),
	}
}
