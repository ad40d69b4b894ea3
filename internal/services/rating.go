package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/platziflix/catalog-backend/internal/clients/redis"
	"github.com/platziflix/catalog-backend/internal/data/aggregates"
	"github.com/platziflix/catalog-backend/internal/data/repos"
	domainagg "github.com/platziflix/catalog-backend/internal/domain/aggregates"
	"github.com/platziflix/catalog-backend/internal/domain/catalog"
	"github.com/platziflix/catalog-backend/internal/observability"
	"github.com/platziflix/catalog-backend/internal/platform/ctxutil"
	"github.com/platziflix/catalog-backend/internal/platform/dbctx"
	"github.com/platziflix/catalog-backend/internal/platform/logger"
)

type RatingService interface {
	// Stats fails with not_found when the course is missing or deleted.
	Stats(ctx context.Context, courseID uint) (catalog.RatingStats, error)
	// AggregateStats computes stats without checking the course; used by listings.
	AggregateStats(ctx context.Context, courseID uint) (catalog.RatingStats, error)
	// Submit creates or overwrites the user's active rating. created reports an insert.
	Submit(ctx context.Context, courseID, userID uint, rating int) (out *catalog.CourseRating, created bool, err error)
	Update(ctx context.Context, courseID, userID uint, rating int) (*catalog.CourseRating, error)
	Delete(ctx context.Context, courseID, userID uint) (bool, error)
	GetUserRating(ctx context.Context, courseID, userID uint) (*catalog.CourseRating, error)
	List(ctx context.Context, courseID uint) ([]*catalog.CourseRating, error)
}

type ratingService struct {
	log     *logger.Logger
	tx      aggregates.TxRunner
	courses repos.CourseRepo
	ratings repos.CourseRatingRepo
	cache   redis.RatingStatsCache
	flight  singleflight.Group
	now     func() time.Time
}

func NewRatingService(
	baseLog *logger.Logger,
	tx aggregates.TxRunner,
	courses repos.CourseRepo,
	ratings repos.CourseRatingRepo,
	cache redis.RatingStatsCache,
) RatingService {
	if cache == nil {
		cache = redis.NewNoopRatingStatsCache()
	}
	return &ratingService{
		log:     baseLog.With("service", "RatingService"),
		tx:      tx,
		courses: courses,
		ratings: ratings,
		cache:   cache,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func validateRatingInput(op string, userID uint, rating int) error {
	if !catalog.ValidRating(rating) {
		return domainagg.Validation(op, "Rating must be between %d and %d", catalog.MinRating, catalog.MaxRating)
	}
	if userID == 0 {
		return domainagg.Validation(op, "user_id must be a positive integer")
	}
	return nil
}

func courseNotFound(op string, courseID uint) error {
	return domainagg.NotFound(op, "Course with id %d not found", courseID)
}

func (s *ratingService) Stats(ctx context.Context, courseID uint) (catalog.RatingStats, error) {
	const op = "rating.stats"
	course, err := s.courses.GetByID(dbctx.New(ctx), courseID)
	if err != nil {
		return catalog.RatingStats{}, aggregates.MapError(op, err)
	}
	if course == nil {
		return catalog.RatingStats{}, courseNotFound(op, courseID)
	}
	return s.AggregateStats(ctx, courseID)
}

func (s *ratingService) AggregateStats(ctx context.Context, courseID uint) (catalog.RatingStats, error) {
	const op = "rating.aggregate"
	metrics := observability.Current()
	if stats, ok, err := s.cache.Get(ctx, courseID); err != nil {
		metrics.IncStatsCache("error")
		s.log.Warn("rating stats cache get failed", append(ctxutil.LogFields(ctx), "course_id", courseID, "error", err)...)
	} else if ok {
		metrics.IncStatsCache("hit")
		return stats, nil
	} else {
		metrics.IncStatsCache("miss")
	}

	v, err, _ := s.flight.Do(strconv.FormatUint(uint64(courseID), 10), func() (interface{}, error) {
		buckets, err := s.ratings.CountByValue(dbctx.New(ctx), courseID)
		if err != nil {
			return nil, err
		}
		stats := catalog.BuildRatingStats(buckets)
		if err := s.cache.Set(ctx, courseID, stats); err != nil {
			s.log.Warn("rating stats cache set failed", "course_id", courseID, "error", err)
		}
		return stats, nil
	})
	if err != nil {
		return catalog.RatingStats{}, aggregates.MapError(op, err)
	}
	return cloneStats(v.(catalog.RatingStats)), nil
}

// cloneStats gives each caller its own distribution map; singleflight shares one result.
func cloneStats(in catalog.RatingStats) catalog.RatingStats {
	out := in
	out.RatingDistribution = make(map[int]int64, len(in.RatingDistribution))
	for k, v := range in.RatingDistribution {
		out.RatingDistribution[k] = v
	}
	return out
}

func (s *ratingService) Submit(ctx context.Context, courseID, userID uint, rating int) (*catalog.CourseRating, bool, error) {
	const op = "rating.submit"
	if err := validateRatingInput(op, userID, rating); err != nil {
		return nil, false, err
	}

	var (
		out     *catalog.CourseRating
		created bool
	)
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		course, err := s.courses.LockByID(dbc, courseID)
		if err != nil {
			return err
		}
		if course == nil {
			return courseNotFound(op, courseID)
		}

		existing, err := s.ratings.GetActive(dbc, courseID, userID)
		if err != nil {
			return err
		}
		now := s.now()
		if existing != nil {
			if err := s.ratings.UpdateRating(dbc, existing.ID, rating, now); err != nil {
				return err
			}
			existing.Rating = rating
			existing.UpdatedAt = now
			out = existing
			return nil
		}

		row, err := s.ratings.Create(dbc, &catalog.CourseRating{
			CourseID:  courseID,
			UserID:    userID,
			Rating:    rating,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainagg.NewError(domainagg.CodeConflict, op, "a rating for this user and course was created concurrently", err)
		}
		if err != nil {
			return err
		}
		out, created = row, true
		return nil
	})
	if err != nil {
		observability.Current().IncRatingWrite("submit", "error")
		return nil, false, aggregates.MapError(op, err)
	}
	if created {
		observability.Current().IncRatingWrite("submit", "created")
	} else {
		observability.Current().IncRatingWrite("submit", "updated")
	}

	s.invalidate(ctx, courseID)
	s.log.Info("rating submitted", append(ctxutil.LogFields(ctx),
		"course_id", courseID,
		"user_id", userID,
		"rating", rating,
		"created", created,
	)...)
	return out, created, nil
}

func (s *ratingService) Update(ctx context.Context, courseID, userID uint, rating int) (*catalog.CourseRating, error) {
	const op = "rating.update"
	if err := validateRatingInput(op, userID, rating); err != nil {
		return nil, err
	}

	var out *catalog.CourseRating
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		course, err := s.courses.LockByID(dbc, courseID)
		if err != nil {
			return err
		}
		if course == nil {
			return courseNotFound(op, courseID)
		}
		existing, err := s.ratings.GetActive(dbc, courseID, userID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domainagg.NotFound(op, "No active rating found for user %d on course %d", userID, courseID)
		}
		now := s.now()
		if err := s.ratings.UpdateRating(dbc, existing.ID, rating, now); err != nil {
			return err
		}
		existing.Rating = rating
		existing.UpdatedAt = now
		out = existing
		return nil
	})
	if err != nil {
		observability.Current().IncRatingWrite("update", "error")
		return nil, aggregates.MapError(op, err)
	}
	observability.Current().IncRatingWrite("update", "ok")

	s.invalidate(ctx, courseID)
	s.log.Info("rating updated", append(ctxutil.LogFields(ctx), "course_id", courseID, "user_id", userID, "rating", rating)...)
	return out, nil
}

func (s *ratingService) Delete(ctx context.Context, courseID, userID uint) (bool, error) {
	const op = "rating.delete"
	if courseID == 0 || userID == 0 {
		return false, nil
	}

	var deleted bool
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		course, err := s.courses.LockByID(dbc, courseID)
		if err != nil {
			return err
		}
		if course == nil {
			return nil
		}
		existing, err := s.ratings.GetActive(dbc, courseID, userID)
		if err != nil || existing == nil {
			return err
		}
		deleted, err = s.ratings.SoftDelete(dbc, existing.ID, s.now())
		return err
	})
	if err != nil {
		observability.Current().IncRatingWrite("delete", "error")
		return false, aggregates.MapError(op, err)
	}
	observability.Current().IncRatingWrite("delete", strconv.FormatBool(deleted))
	if deleted {
		s.invalidate(ctx, courseID)
		s.log.Info("rating deleted", append(ctxutil.LogFields(ctx), "course_id", courseID, "user_id", userID)...)
	}
	return deleted, nil
}

func (s *ratingService) GetUserRating(ctx context.Context, courseID, userID uint) (*catalog.CourseRating, error) {
	row, err := s.ratings.GetActive(dbctx.New(ctx), courseID, userID)
	if err != nil {
		return nil, aggregates.MapError("rating.get_user", err)
	}
	return row, nil
}

func (s *ratingService) List(ctx context.Context, courseID uint) ([]*catalog.CourseRating, error) {
	const op = "rating.list"
	dbc := dbctx.New(ctx)
	course, err := s.courses.GetByID(dbc, courseID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if course == nil {
		return nil, courseNotFound(op, courseID)
	}
	rows, err := s.ratings.ListActiveByCourse(dbc, courseID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	return rows, nil
}

// invalidate runs after commit. Failure leaves stale stats until the TTL expires.
func (s *ratingService) invalidate(ctx context.Context, courseID uint) {
	if err := s.cache.Invalidate(ctx, courseID); err != nil {
		s.log.Warn("rating stats cache invalidate failed", "course_id", courseID, "error", err)
	}
}
