package db

import (
	"fmt"

	"github.com/platziflix/catalog-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(domain.CatalogModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := EnsureCatalogIndexes(db); err != nil {
		return err
	}
	if db.Dialector.Name() == DriverPostgres {
		return EnsureCatalogForeignKeys(db)
	}
	return nil
}

// EnsureCatalogIndexes creates indexes GORM tags cannot express. Both postgres and sqlite
// support partial indexes.
func EnsureCatalogIndexes(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_course_ratings_active
		ON course_ratings(course_id, user_id)
		WHERE deleted_at IS NULL;
	`).Error; err != nil {
		return fmt.Errorf("create uq_course_ratings_active: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_lessons_course_slug ON lessons(course_id, slug);`).Error; err != nil {
		return fmt.Errorf("create idx_lessons_course_slug: %w", err)
	}
	return nil
}

type foreignKey struct {
	name, table, column, refTable string
}

var catalogForeignKeys = []foreignKey{
	{"fk_lessons_course", "lessons", "course_id", "courses"},
	{"fk_course_ratings_course", "course_ratings", "course_id", "courses"},
	{"fk_course_teachers_course", "course_teachers", "course_id", "courses"},
	{"fk_course_teachers_teacher", "course_teachers", "teacher_id", "teachers"},
}

// EnsureCatalogForeignKeys adds cascading foreign keys once; migrations run with
// DisableForeignKeyConstraintWhenMigrating.
func EnsureCatalogForeignKeys(db *gorm.DB) error {
	for _, fk := range catalogForeignKeys {
		stmt := fmt.Sprintf(`
			DO $$
			BEGIN
				IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
					ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(id) ON DELETE CASCADE;
				END IF;
			END $$;
		`, fk.name, fk.table, fk.name, fk.column, fk.refTable)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create %s: %w", fk.name, err)
		}
	}
	return nil
}
