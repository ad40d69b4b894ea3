package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platziflix/catalog-backend/internal/data/repos"
	"github.com/platziflix/catalog-backend/internal/data/repos/testutil"
	"github.com/platziflix/catalog-backend/internal/domain/catalog"
	"github.com/platziflix/catalog-backend/internal/platform/dbctx"
)

func TestParseEmbeddedCatalog(t *testing.T) {
	f, err := Parse(defaultCatalog)
	require.NoError(t, err)
	assert.Len(t, f.Teachers, 3)
	require.Len(t, f.Courses, 3)
	assert.Equal(t, "curso-de-react", f.Courses[0].Slug)
	assert.Len(t, f.Courses[0].Lessons, 3)
}

func TestParseRejectsUnknownTeacher(t *testing.T) {
	_, err := Parse([]byte(`
teachers:
  - name: Ana
    email: ana@example.com
courses:
  - name: Go
    slug: curso-de-go
    teachers: [nadie@example.com]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown teacher")
}

func TestLoadIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	first, err := Load(ctx, db, log)
	require.NoError(t, err)
	assert.Equal(t, Result{TeachersCreated: 3, CoursesCreated: 3, LessonsCreated: 6}, first)

	second, err := Load(ctx, db, log)
	require.NoError(t, err)
	assert.Equal(t, Result{}, second)

	set := repos.NewSet(db, log)
	course, err := set.Course.GetBySlugWithRelations(dbctx.New(ctx), "curso-de-python")
	require.NoError(t, err)
	require.NotNil(t, course)
	assert.Len(t, course.Teachers, 2)
	assert.Len(t, course.Lessons, 2)

	var links int64
	require.NoError(t, db.Table(catalog.CourseTeachersTable).Count(&links).Error)
	assert.Equal(t, int64(6), links)
}
