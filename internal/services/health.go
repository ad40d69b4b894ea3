package services

import (
	"context"
	"time"

	"github.com/platziflix/catalog-backend/internal/data/repos"
	"github.com/platziflix/catalog-backend/internal/platform/dbctx"
	"github.com/platziflix/catalog-backend/internal/platform/logger"
)

const (
	HealthStatusOK       = "ok"
	HealthStatusDegraded = "degraded"

	healthQueryTimeout = 3 * time.Second
)

type HealthReport struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	Version       string `json:"version"`
	Database      bool   `json:"database"`
	CoursesCount  *int64 `json:"courses_count,omitempty"`
	DatabaseError string `json:"database_error,omitempty"`
}

type HealthService interface {
	Check(ctx context.Context) HealthReport
}

type healthService struct {
	log     *logger.Logger
	courses repos.CourseRepo
	name    string
	version string
}

func NewHealthService(baseLog *logger.Logger, courses repos.CourseRepo, name, version string) HealthService {
	return &healthService{
		log:     baseLog.With("service", "HealthService"),
		courses: courses,
		name:    name,
		version: version,
	}
}

// Check counts live courses; a store failure degrades the report instead of failing.
func (s *healthService) Check(ctx context.Context) HealthReport {
	report := HealthReport{
		Status:  HealthStatusOK,
		Service: s.name,
		Version: s.version,
	}
	qctx, cancel := context.WithTimeout(ctx, healthQueryTimeout)
	defer cancel()

	n, err := s.courses.Count(dbctx.New(qctx))
	if err != nil {
		s.log.Warn("health check database query failed", "error", err)
		report.Status = HealthStatusDegraded
		report.DatabaseError = err.Error()
		return report
	}
	report.Database = true
	report.CoursesCount = &n
	return report
}
