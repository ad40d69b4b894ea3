package catalog

import (
	"context"
	"testing"

	"github.com/platziflix/catalog-backend/internal/data/repos/testutil"
	"github.com/platziflix/catalog-backend/internal/platform/dbctx"
)

func TestLessonRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.New(ctx)
	repo := NewLessonRepo(db, testutil.Logger(t))

	c := testutil.SeedCourse(t, ctx, db, "curso-de-javascript")
	l := testutil.SeedLesson(t, ctx, db, c.ID, "javascript-moderno")

	got, err := repo.GetByID(dbc, l.ID)
	if err != nil || got == nil || got.Slug != "javascript-moderno" {
		t.Fatalf("GetByID: err=%v got=%+v", err, got)
	}
	if got, err := repo.GetByCourseAndSlug(dbc, c.ID, "javascript-moderno"); err != nil || got == nil {
		t.Fatalf("GetByCourseAndSlug: err=%v", err)
	}
	if got, err := repo.GetByID(dbc, l.ID+1); err != nil || got != nil {
		t.Fatalf("GetByID missing: err=%v got=%+v", err, got)
	}
	rows, err := repo.ListByCourseID(dbc, c.ID)
	if err != nil || len(rows) != 1 {
		t.Fatalf("ListByCourseID: err=%v len=%d", err, len(rows))
	}
}
