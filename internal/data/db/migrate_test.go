package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platziflix/catalog-backend/internal/data/db"
	"github.com/platziflix/catalog-backend/internal/platform/logger"
)

func TestAutoMigrateAllIsIdempotentOnSQLite(t *testing.T) {
	svc, err := db.NewService(db.Config{Driver: db.DriverSQLite, DSN: "file:migrate_idempotent?mode=memory&cache=shared"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	require.NoError(t, db.AutoMigrateAll(svc.DB()))
	require.NoError(t, db.AutoMigrateAll(svc.DB()))

	var n int64
	require.NoError(t, svc.DB().Raw(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = ?`, "uq_course_ratings_active",
	).Scan(&n).Error)
	assert.Equal(t, int64(1), n)

	for _, table := range []string{"teachers", "courses", "lessons", "course_ratings", "course_teachers"} {
		assert.True(t, svc.DB().Migrator().HasTable(table), table)
	}
	assert.NoError(t, svc.Ping(context.Background()))
	assert.Equal(t, db.DriverSQLite, svc.Driver())
}

func TestNewServiceRejectsUnknownDriver(t *testing.T) {
	_, err := db.NewService(db.Config{Driver: "oracle", DSN: "x"}, logger.Nop())
	assert.Error(t, err)
}
