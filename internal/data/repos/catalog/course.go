package catalog

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/platziflix/catalog-backend/internal/domain/catalog"
	"github.com/platziflix/catalog-backend/internal/platform/dbctx"
	"github.com/platziflix/catalog-backend/internal/platform/logger"
)

type CourseRepo interface {
	Create(dbc dbctx.Context, courses []*types.Course) ([]*types.Course, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Course, error)
	GetBySlug(dbc dbctx.Context, slug string) (*types.Course, error)
	GetBySlugWithRelations(dbc dbctx.Context, slug string) (*types.Course, error)
	LockByID(dbc dbctx.Context, id uint) (*types.Course, error)
	ListAll(dbc dbctx.Context) ([]*types.Course, error)
	Count(dbc dbctx.Context) (int64, error)
	UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) error
	SoftDeleteByIDs(dbc dbctx.Context, ids []uint) error
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return &courseRepo{
		db:  db,
		log: baseLog.With("repo", "CourseRepo"),
	}
}

func (r *courseRepo) Create(dbc dbctx.Context, courses []*types.Course) ([]*types.Course, error) {
	if len(courses) == 0 {
		return []*types.Course{}, nil
	}
	if err := dbc.Conn(r.db).Create(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// GetByID returns the non-deleted course, or nil when there is none.
func (r *courseRepo) GetByID(dbc dbctx.Context, id uint) (*types.Course, error) {
	if id == 0 {
		return nil, nil
	}
	var c types.Course
	err := dbc.Conn(r.db).Where("id = ?", id).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *courseRepo) GetBySlug(dbc dbctx.Context, slug string) (*types.Course, error) {
	if slug == "" {
		return nil, nil
	}
	var c types.Course
	err := dbc.Conn(r.db).Where("slug = ?", slug).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetBySlugWithRelations loads the course with its non-deleted teachers and lessons, both by id.
func (r *courseRepo) GetBySlugWithRelations(dbc dbctx.Context, slug string) (*types.Course, error) {
	if slug == "" {
		return nil, nil
	}
	var c types.Course
	err := dbc.Conn(r.db).
		Preload("Teachers", func(db *gorm.DB) *gorm.DB { return db.Order("teachers.id ASC") }).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("lessons.id ASC") }).
		Where("slug = ?", slug).
		Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// LockByID takes a row lock on the course for the rest of the transaction. Writers for the
// same course serialize here. sqlite has no row locks; its single writer gives the same order.
func (r *courseRepo) LockByID(dbc dbctx.Context, id uint) (*types.Course, error) {
	if id == 0 {
		return nil, nil
	}
	var c types.Course
	err := dbc.Conn(r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *courseRepo) ListAll(dbc dbctx.Context) ([]*types.Course, error) {
	var out []*types.Course
	if err := dbc.Conn(r.db).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *courseRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := dbc.Conn(r.db).Model(&types.Course{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *courseRepo) UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) error {
	if id == 0 || len(updates) == 0 {
		return nil
	}
	return dbc.Conn(r.db).
		Model(&types.Course{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *courseRepo) SoftDeleteByIDs(dbc dbctx.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return dbc.Conn(r.db).
		Where("id IN ?", ids).
		Delete(&types.Course{}).Error
}
