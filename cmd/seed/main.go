package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/platziflix/catalog-backend/internal/app"
	"github.com/platziflix/catalog-backend/internal/data/db"
	"github.com/platziflix/catalog-backend/internal/data/seed"
	"github.com/platziflix/catalog-backend/internal/platform/logger"
)

// seed loads the embedded demo catalog into the configured database.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := app.LoadDotEnv(); err != nil {
		return err
	}
	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	cfg, err := app.LoadConfig(log)
	if err != nil {
		return err
	}
	dbs, err := db.NewService(cfg.DB, log)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer dbs.Close()

	if err := db.AutoMigrateAll(dbs.DB()); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	res, err := seed.Load(ctx, dbs.DB(), log)
	if err != nil {
		return err
	}
	log.Info("Seed complete",
		"teachers_created", res.TeachersCreated,
		"courses_created", res.CoursesCreated,
		"lessons_created", res.LessonsCreated,
	)
	return nil
}
