package domain

import (
	"github.com/platziflix/catalog-backend/internal/domain/catalog"
)

type Teacher = catalog.Teacher
type Course = catalog.Course
type Lesson = catalog.Lesson
type CourseRating = catalog.CourseRating

type RatingStats = catalog.RatingStats
type RatingState = catalog.RatingState

// CatalogModels lists every persisted catalog model in migration order; parents first.
func CatalogModels() []any {
	return []any{
		&Teacher{},
		&Course{},
		&Lesson{},
		&CourseRating{},
	}
}
