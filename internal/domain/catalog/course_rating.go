package catalog

import (
	"time"

	"gorm.io/gorm"
)

const (
	MinRating = 1
	MaxRating = 5
)

// ValidRating reports whether v is an allowed star value.
func ValidRating(v int) bool { return v >= MinRating && v <= MaxRating }

// CourseRating is one user's star rating for a course. user_id belongs to an external
// identity system and is intentionally not a foreign key.
//
// At most one active row may exist per (course_id, user_id); the partial unique index
// uq_course_ratings_active (see db.EnsureCatalogIndexes) enforces it in the store.
type CourseRating struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CourseID  uint           `gorm:"column:course_id;not null;index" json:"course_id"`
	UserID    uint           `gorm:"column:user_id;not null;index" json:"user_id"`
	Rating    int            `gorm:"column:rating;not null;check:ck_course_ratings_rating_range,rating >= 1 AND rating <= 5" json:"rating"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CourseRating) TableName() string { return "course_ratings" }

// State lifts the nullable deleted_at column into an explicit lifecycle state.
func (r *CourseRating) State() RatingState {
	if r == nil || !r.DeletedAt.Valid {
		return ActiveState()
	}
	return DeletedState(r.DeletedAt.Time)
}

// RatingState is either Active or Deleted(at).
type RatingState struct {
	deleted   bool
	deletedAt time.Time
}

func ActiveState() RatingState { return RatingState{} }

func DeletedState(at time.Time) RatingState {
	return RatingState{deleted: true, deletedAt: at}
}

func (s RatingState) IsActive() bool { return !s.deleted }

// DeletedAt returns the deletion time and true for a deleted rating.
func (s RatingState) DeletedAt() (time.Time, bool) {
	return s.deletedAt, s.deleted
}

func (s RatingState) String() string {
	if s.deleted {
		return "deleted"
	}
	return "active"
}
