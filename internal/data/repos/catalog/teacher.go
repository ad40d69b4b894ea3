package catalog

import (
	"errors"

	"gorm.io/gorm"

	types "github.com/platziflix/catalog-backend/internal/domain/catalog"
	"github.com/platziflix/catalog-backend/internal/platform/dbctx"
	"github.com/platziflix/catalog-backend/internal/platform/logger"
)

type TeacherRepo interface {
	Create(dbc dbctx.Context, teachers []*types.Teacher) ([]*types.Teacher, error)
	GetByEmail(dbc dbctx.Context, email string) (*types.Teacher, error)
	GetByEmails(dbc dbctx.Context, emails []string) ([]*types.Teacher, error)
	UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) error
	AttachToCourse(dbc dbctx.Context, course *types.Course, teachers []*types.Teacher) error
}

type teacherRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTeacherRepo(db *gorm.DB, baseLog *logger.Logger) TeacherRepo {
	return &teacherRepo{db: db, log: baseLog.With("repo", "TeacherRepo")}
}

func (r *teacherRepo) Create(dbc dbctx.Context, teachers []*types.Teacher) ([]*types.Teacher, error) {
	if len(teachers) == 0 {
		return []*types.Teacher{}, nil
	}
	if err := dbc.Conn(r.db).Create(&teachers).Error; err != nil {
		return nil, err
	}
	return teachers, nil
}

func (r *teacherRepo) GetByEmail(dbc dbctx.Context, email string) (*types.Teacher, error) {
	if email == "" {
		return nil, nil
	}
	var t types.Teacher
	err := dbc.Conn(r.db).Where("email = ?", email).Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *teacherRepo) GetByEmails(dbc dbctx.Context, emails []string) ([]*types.Teacher, error) {
	var out []*types.Teacher
	if len(emails) == 0 {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Where("email IN ?", emails).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *teacherRepo) UpdateFields(dbc dbctx.Context, id uint, updates map[string]interface{}) error {
	if id == 0 || len(updates) == 0 {
		return nil
	}
	return dbc.Conn(r.db).
		Model(&types.Teacher{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// AttachToCourse links teachers to the course; existing links are kept.
func (r *teacherRepo) AttachToCourse(dbc dbctx.Context, course *types.Course, teachers []*types.Teacher) error {
	if course == nil || course.ID == 0 || len(teachers) == 0 {
		return nil
	}
	return dbc.Conn(r.db).
		Model(course).
		Association("Teachers").
		Append(teachers)
}
