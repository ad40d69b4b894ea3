package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	types "github.com/platziflix/catalog-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

func SeedTeacher(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.Teacher {
	tb.Helper()
	t := &types.Teacher{Name: "Teacher " + email, Email: email}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed teacher: %v", err)
	}
	return t
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, slug string) *types.Course {
	tb.Helper()
	c := &types.Course{
		Name:        "Course " + slug,
		Description: "description of " + slug,
		Thumbnail:   "https://via.placeholder.com/150",
		Slug:        slug,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedLesson(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID uint, slug string) *types.Lesson {
	tb.Helper()
	l := &types.Lesson{
		CourseID:    courseID,
		Name:        "Lesson " + slug,
		Description: "lesson",
		Slug:        slug,
		VideoURL:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}

// SeedRating inserts an active rating. created is used for both timestamps when non-zero.
func SeedRating(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID, userID uint, value int, created time.Time) *types.CourseRating {
	tb.Helper()
	r := &types.CourseRating{CourseID: courseID, UserID: userID, Rating: value}
	if !created.IsZero() {
		r.CreatedAt = created
		r.UpdatedAt = created
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed rating: %v", err)
	}
	return r
}

// UniqueSlug avoids collisions on the shared postgres database.
func UniqueSlug(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
