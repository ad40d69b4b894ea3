package app

import (
	"gorm.io/gorm"

	"github.com/platziflix/catalog-backend/internal/data/aggregates"
	"github.com/platziflix/catalog-backend/internal/data/repos"
	"github.com/platziflix/catalog-backend/internal/platform/logger"
	"github.com/platziflix/catalog-backend/internal/services"
)

type Services struct {
	Rating services.RatingService
	Course services.CourseService
	Health services.HealthService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet repos.Set, clients Clients) Services {
	log.Info("Wiring services...")
	rating := services.NewRatingService(log, aggregates.NewGormTxRunner(db), reposet.Course, reposet.CourseRating, clients.StatsCache)
	return Services{
		Rating: rating,
		Course: services.NewCourseService(log, reposet.Course, reposet.Lesson, rating),
		Health: services.NewHealthService(log, reposet.Course, cfg.AppName, cfg.AppVersion),
	}
}
