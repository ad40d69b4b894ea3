package catalog

import (
	"errors"
	"time"

	"gorm.io/gorm"

	types "github.com/platziflix/catalog-backend/internal/domain/catalog"
	"github.com/platziflix/catalog-backend/internal/platform/dbctx"
	"github.com/platziflix/catalog-backend/internal/platform/logger"
)

// CourseRatingRepo only ever touches active rows unless a method says otherwise.
type CourseRatingRepo interface {
	Create(dbc dbctx.Context, rating *types.CourseRating) (*types.CourseRating, error)
	GetActive(dbc dbctx.Context, courseID, userID uint) (*types.CourseRating, error)
	GetByIDUnscoped(dbc dbctx.Context, id uint) (*types.CourseRating, error)
	ListActiveByCourse(dbc dbctx.Context, courseID uint) ([]*types.CourseRating, error)
	UpdateRating(dbc dbctx.Context, id uint, rating int, now time.Time) error
	SoftDelete(dbc dbctx.Context, id uint, now time.Time) (bool, error)
	CountByValue(dbc dbctx.Context, courseID uint) ([]types.RatingBucket, error)
}

type courseRatingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRatingRepo(db *gorm.DB, baseLog *logger.Logger) CourseRatingRepo {
	return &courseRatingRepo{db: db, log: baseLog.With("repo", "CourseRatingRepo")}
}

func (r *courseRatingRepo) Create(dbc dbctx.Context, rating *types.CourseRating) (*types.CourseRating, error) {
	if rating == nil {
		return nil, nil
	}
	if err := dbc.Conn(r.db).Create(rating).Error; err != nil {
		return nil, err
	}
	return rating, nil
}

// GetActive returns the active rating for (courseID, userID), or nil.
func (r *courseRatingRepo) GetActive(dbc dbctx.Context, courseID, userID uint) (*types.CourseRating, error) {
	if courseID == 0 || userID == 0 {
		return nil, nil
	}
	var out types.CourseRating
	err := dbc.Conn(r.db).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByIDUnscoped includes soft-deleted rows.
func (r *courseRatingRepo) GetByIDUnscoped(dbc dbctx.Context, id uint) (*types.CourseRating, error) {
	if id == 0 {
		return nil, nil
	}
	var out types.CourseRating
	err := dbc.Conn(r.db).Unscoped().Where("id = ?", id).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *courseRatingRepo) ListActiveByCourse(dbc dbctx.Context, courseID uint) ([]*types.CourseRating, error) {
	out := []*types.CourseRating{}
	if courseID == 0 {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateRating changes the value of an active rating. gorm.ErrRecordNotFound when no active row matched.
func (r *courseRatingRepo) UpdateRating(dbc dbctx.Context, id uint, rating int, now time.Time) error {
	res := dbc.Conn(r.db).
		Model(&types.CourseRating{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating":     rating,
			"updated_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDelete stamps deleted_at and updated_at on an active rating. False when it was not active.
func (r *courseRatingRepo) SoftDelete(dbc dbctx.Context, id uint, now time.Time) (bool, error) {
	res := dbc.Conn(r.db).
		Model(&types.CourseRating{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at": now,
			"updated_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CountByValue groups active ratings of a course by star value.
func (r *courseRatingRepo) CountByValue(dbc dbctx.Context, courseID uint) ([]types.RatingBucket, error) {
	out := []types.RatingBucket{}
	if courseID == 0 {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Model(&types.CourseRating{}).
		Select("rating, COUNT(*) AS count").
		Where("course_id = ?", courseID).
		Group("rating").
		Order("rating ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
