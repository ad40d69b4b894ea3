package services

import (
	"context"

	"github.com/platziflix/catalog-backend/internal/data/aggregates"
	"github.com/platziflix/catalog-backend/internal/data/repos"
	"github.com/platziflix/catalog-backend/internal/domain/catalog"
	"github.com/platziflix/catalog-backend/internal/platform/ctxutil"
	"github.com/platziflix/catalog-backend/internal/platform/dbctx"
	"github.com/platziflix/catalog-backend/internal/platform/logger"
)

// RatingStatsSource is the part of RatingService the course facade needs.
type RatingStatsSource interface {
	AggregateStats(ctx context.Context, courseID uint) (catalog.RatingStats, error)
}

type CourseService interface {
	ListCourses(ctx context.Context) ([]catalog.CourseSummary, error)
	// CourseBySlug returns nil, nil when no live course has the slug.
	CourseBySlug(ctx context.Context, slug string) (*catalog.CourseDetail, error)
	LessonByID(ctx context.Context, id uint) (*catalog.Lesson, error)
}

type courseService struct {
	log     *logger.Logger
	courses repos.CourseRepo
	lessons repos.LessonRepo
	stats   RatingStatsSource
}

func NewCourseService(
	baseLog *logger.Logger,
	courses repos.CourseRepo,
	lessons repos.LessonRepo,
	stats RatingStatsSource,
) CourseService {
	return &courseService{
		log:     baseLog.With("service", "CourseService"),
		courses: courses,
		lessons: lessons,
		stats:   stats,
	}
}

func (s *courseService) ListCourses(ctx context.Context) ([]catalog.CourseSummary, error) {
	rows, err := s.courses.ListAll(dbctx.New(ctx))
	if err != nil {
		return nil, aggregates.MapError("course.list", err)
	}
	out := make([]catalog.CourseSummary, 0, len(rows))
	for _, c := range rows {
		out = append(out, catalog.CourseSummary{Course: c, Stats: s.statsOrZero(ctx, c.ID)})
	}
	return out, nil
}

func (s *courseService) CourseBySlug(ctx context.Context, slug string) (*catalog.CourseDetail, error) {
	c, err := s.courses.GetBySlugWithRelations(dbctx.New(ctx), slug)
	if err != nil {
		return nil, aggregates.MapError("course.by_slug", err)
	}
	if c == nil {
		return nil, nil
	}
	teacherIDs := make([]uint, 0, len(c.Teachers))
	for _, t := range c.Teachers {
		teacherIDs = append(teacherIDs, t.ID)
	}
	lessons := c.Lessons
	if lessons == nil {
		lessons = []*catalog.Lesson{}
	}
	return &catalog.CourseDetail{
		Course:     c,
		TeacherIDs: teacherIDs,
		Lessons:    lessons,
		Stats:      s.statsOrZero(ctx, c.ID),
	}, nil
}

func (s *courseService) LessonByID(ctx context.Context, id uint) (*catalog.Lesson, error) {
	l, err := s.lessons.GetByID(dbctx.New(ctx), id)
	if err != nil {
		return nil, aggregates.MapError("course.lesson_by_id", err)
	}
	return l, nil
}

// statsOrZero degrades a single course to zero stats when aggregation fails.
func (s *courseService) statsOrZero(ctx context.Context, courseID uint) catalog.RatingStats {
	stats, err := s.stats.AggregateStats(ctx, courseID)
	if err != nil {
		s.log.Warn("rating aggregation failed; using zero stats", append(ctxutil.LogFields(ctx), "course_id", courseID, "error", err)...)
		return catalog.ZeroRatingStats()
	}
	return stats
}
