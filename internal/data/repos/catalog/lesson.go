package catalog

import (
	"errors"

	"gorm.io/gorm"

	types "github.com/platziflix/catalog-backend/internal/domain/catalog"
	"github.com/platziflix/catalog-backend/internal/platform/dbctx"
	"github.com/platziflix/catalog-backend/internal/platform/logger"
)

type LessonRepo interface {
	Create(dbc dbctx.Context, lessons []*types.Lesson) ([]*types.Lesson, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Lesson, error)
	GetByCourseAndSlug(dbc dbctx.Context, courseID uint, slug string) (*types.Lesson, error)
	ListByCourseID(dbc dbctx.Context, courseID uint) ([]*types.Lesson, error)
}

type lessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return &lessonRepo{db: db, log: baseLog.With("repo", "LessonRepo")}
}

func (r *lessonRepo) Create(dbc dbctx.Context, lessons []*types.Lesson) ([]*types.Lesson, error) {
	if len(lessons) == 0 {
		return []*types.Lesson{}, nil
	}
	if err := dbc.Conn(r.db).Create(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *lessonRepo) GetByID(dbc dbctx.Context, id uint) (*types.Lesson, error) {
	if id == 0 {
		return nil, nil
	}
	var l types.Lesson
	err := dbc.Conn(r.db).Where("id = ?", id).Take(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *lessonRepo) GetByCourseAndSlug(dbc dbctx.Context, courseID uint, slug string) (*types.Lesson, error) {
	if courseID == 0 || slug == "" {
		return nil, nil
	}
	var l types.Lesson
	err := dbc.Conn(r.db).
		Where("course_id = ? AND slug = ?", courseID, slug).
		Take(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *lessonRepo) ListByCourseID(dbc dbctx.Context, courseID uint) ([]*types.Lesson, error) {
	var out []*types.Lesson
	if courseID == 0 {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Where("course_id = ?", courseID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
