package app

import (
	"github.com/gin-gonic/gin"

	apphttp "github.com/platziflix/catalog-backend/internal/http"
	httpH "github.com/platziflix/catalog-backend/internal/http/handlers"
	"github.com/platziflix/catalog-backend/internal/observability"
	"github.com/platziflix/catalog-backend/internal/platform/logger"
)

type Handlers struct {
	Root   *httpH.RootHandler
	Health *httpH.HealthHandler
	Course *httpH.CourseHandler
	Lesson *httpH.LessonHandler
	Rating *httpH.RatingHandler
}

func wireHandlers(log *logger.Logger, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Root:   httpH.NewRootHandler(cfg.AppName),
		Health: httpH.NewHealthHandler(services.Health),
		Course: httpH.NewCourseHandler(log, services.Course),
		Lesson: httpH.NewLessonHandler(log, services.Course),
		Rating: httpH.NewRatingHandler(log, services.Rating),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, metrics *observability.Metrics) *gin.Engine {
	if cfg.LogMode == "production" || cfg.LogMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	return apphttp.NewRouter(apphttp.RouterConfig{
		Log:           log,
		ServiceName:   cfg.Otel.ServiceName,
		Tracing:       cfg.Otel.Enabled,
		AllowOrigins:  cfg.Cors,
		Metrics:       metrics,
		RootHandler:   handlers.Root,
		HealthHandler: handlers.Health,
		CourseHandler: handlers.Course,
		LessonHandler: handlers.Lesson,
		RatingHandler: handlers.Rating,
	})
}
