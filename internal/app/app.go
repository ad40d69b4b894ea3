package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/platziflix/catalog-backend/internal/data/db"
	"github.com/platziflix/catalog-backend/internal/data/repos"
	"github.com/platziflix/catalog-backend/internal/data/seed"
	apphttp "github.com/platziflix/catalog-backend/internal/http"
	"github.com/platziflix/catalog-backend/internal/observability"
	"github.com/platziflix/catalog-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    repos.Set
	Services Services
	Clients  Clients
	Metrics  *observability.Metrics

	dbService    *db.Service
	otelShutdown func(context.Context) error
}

// New loads configuration and wires the whole application. Nothing is served until Run.
func New(ctx context.Context) (*App, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading configuration...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)
	metrics := observability.Init(cfg.Metric.Enabled)

	dbs, err := db.NewService(cfg.DB, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := db.AutoMigrateAll(dbs.DB()); err != nil {
		_ = dbs.Close()
		log.Sync()
		return nil, fmt.Errorf("database automigrate: %w", err)
	}

	clients, err := wireClients(log, cfg)
	if err != nil {
		_ = dbs.Close()
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(dbs.DB(), log)
	serviceset := wireServices(dbs.DB(), log, cfg, reposet, clients)
	handlerset := wireHandlers(log, cfg, serviceset)
	router := wireRouter(log, cfg, handlerset, metrics)

	return &App{
		Log:          log,
		DB:           dbs.DB(),
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Clients:      clients,
		Metrics:      metrics,
		dbService:    dbs,
		otelShutdown: otelShutdown,
	}, nil
}

// Seed loads the embedded catalog when SEED_ON_START is set.
func (a *App) Seed(ctx context.Context) error {
	if a == nil || !a.Cfg.Seed {
		return nil
	}
	res, err := seed.Load(ctx, a.DB, a.Log)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	a.Log.Info("Catalog seeded",
		"teachers_created", res.TeachersCreated,
		"courses_created", res.CoursesCreated,
		"lessons_created", res.LessonsCreated,
	)
	return nil
}

// Run serves HTTP and background collectors until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return errors.New("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)

	a.Metrics.StartCollectors(gctx, a.Log, a.DB, a.Clients.StatsCache, a.Cfg.Metric.CollectInterval)

	srv := apphttp.NewServer(a.Log, a.Cfg.HTTP, a.Router)
	g.Go(func() error { return srv.Run(gctx) })

	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Cfg.HTTP.ShutdownTimeout)
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if err := a.Clients.Close(); err != nil {
		a.Log.Warn("close clients failed", "error", err)
	}
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil {
			a.Log.Warn("close database failed", "error", err)
		}
	}
	a.Log.Sync()
}
