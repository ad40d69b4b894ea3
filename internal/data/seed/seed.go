package seed

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/platziflix/catalog-backend/internal/data/aggregates"
	"github.com/platziflix/catalog-backend/internal/data/repos"
	"github.com/platziflix/catalog-backend/internal/domain/catalog"
	"github.com/platziflix/catalog-backend/internal/platform/dbctx"
	"github.com/platziflix/catalog-backend/internal/platform/logger"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type File struct {
	Teachers []TeacherEntry `yaml:"teachers"`
	Courses  []CourseEntry  `yaml:"courses"`
}

type TeacherEntry struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

type CourseEntry struct {
	Name        string        `yaml:"name"`
	Slug        string        `yaml:"slug"`
	Description string        `yaml:"description"`
	Thumbnail   string        `yaml:"thumbnail"`
	Teachers    []string      `yaml:"teachers"`
	Lessons     []LessonEntry `yaml:"lessons"`
}

type LessonEntry struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	VideoURL    string `yaml:"video_url"`
}

// Result counts rows created by one Load.
type Result struct {
	TeachersCreated int
	CoursesCreated  int
	LessonsCreated  int
}

// Parse decodes and checks a catalog document.
func Parse(raw []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed catalog: %w", err)
	}
	emails := map[string]bool{}
	for _, t := range f.Teachers {
		if strings.TrimSpace(t.Email) == "" {
			return nil, fmt.Errorf("seed teacher %q has no email", t.Name)
		}
		emails[t.Email] = true
	}
	for _, c := range f.Courses {
		if strings.TrimSpace(c.Slug) == "" {
			return nil, fmt.Errorf("seed course %q has no slug", c.Name)
		}
		for _, e := range c.Teachers {
			if !emails[e] {
				return nil, fmt.Errorf("seed course %q references unknown teacher %q", c.Slug, e)
			}
		}
	}
	return &f, nil
}

// Load applies the embedded catalog.
func Load(ctx context.Context, db *gorm.DB, log *logger.Logger) (Result, error) {
	f, err := Parse(defaultCatalog)
	if err != nil {
		return Result{}, err
	}
	return Apply(ctx, db, log, f)
}

// Apply upserts teachers by email and courses by slug, links teachers and adds missing
// lessons, all in one transaction. Running it twice creates nothing the second time.
func Apply(ctx context.Context, db *gorm.DB, log *logger.Logger, f *File) (Result, error) {
	var res Result
	if f == nil {
		return res, nil
	}
	seedLog := log.With("component", "Seed")
	set := repos.NewSet(db, log)

	err := aggregates.NewGormTxRunner(db).InTx(ctx, func(dbc dbctx.Context) error {
		teachers := map[string]*catalog.Teacher{}
		for _, te := range f.Teachers {
			t, err := set.Teacher.GetByEmail(dbc, te.Email)
			if err != nil {
				return fmt.Errorf("load teacher %s: %w", te.Email, err)
			}
			if t == nil {
				t = &catalog.Teacher{Name: te.Name, Email: te.Email}
				if _, err := set.Teacher.Create(dbc, []*catalog.Teacher{t}); err != nil {
					return fmt.Errorf("create teacher %s: %w", te.Email, err)
				}
				res.TeachersCreated++
			} else if t.Name != te.Name {
				if err := set.Teacher.UpdateFields(dbc, t.ID, map[string]interface{}{"name": te.Name}); err != nil {
					return fmt.Errorf("update teacher %s: %w", te.Email, err)
				}
			}
			teachers[te.Email] = t
		}

		for _, ce := range f.Courses {
			c, err := set.Course.GetBySlug(dbc, ce.Slug)
			if err != nil {
				return fmt.Errorf("load course %s: %w", ce.Slug, err)
			}
			if c == nil {
				c = &catalog.Course{
					Name:        ce.Name,
					Slug:        ce.Slug,
					Description: ce.Description,
					Thumbnail:   ce.Thumbnail,
				}
				if _, err := set.Course.Create(dbc, []*catalog.Course{c}); err != nil {
					return fmt.Errorf("create course %s: %w", ce.Slug, err)
				}
				res.CoursesCreated++
			} else if err := set.Course.UpdateFields(dbc, c.ID, map[string]interface{}{
				"name":        ce.Name,
				"description": ce.Description,
				"thumbnail":   ce.Thumbnail,
			}); err != nil {
				return fmt.Errorf("update course %s: %w", ce.Slug, err)
			}

			linked := make([]*catalog.Teacher, 0, len(ce.Teachers))
			for _, email := range ce.Teachers {
				linked = append(linked, teachers[email])
			}
			if err := set.Teacher.AttachToCourse(dbc, c, linked); err != nil {
				return fmt.Errorf("link teachers to %s: %w", ce.Slug, err)
			}

			for _, le := range ce.Lessons {
				existing, err := set.Lesson.GetByCourseAndSlug(dbc, c.ID, le.Slug)
				if err != nil {
					return fmt.Errorf("load lesson %s/%s: %w", ce.Slug, le.Slug, err)
				}
				if existing != nil {
					continue
				}
				if _, err := set.Lesson.Create(dbc, []*catalog.Lesson{{
					CourseID:    c.ID,
					Name:        le.Name,
					Slug:        le.Slug,
					Description: le.Description,
					VideoURL:    le.VideoURL,
				}}); err != nil {
					return fmt.Errorf("create lesson %s/%s: %w", ce.Slug, le.Slug, err)
				}
				res.LessonsCreated++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	seedLog.Info("seed catalog applied",
		"teachers_created", res.TeachersCreated,
		"courses_created", res.CoursesCreated,
		"lessons_created", res.LessonsCreated,
	)
	return res, nil
}
