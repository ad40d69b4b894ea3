package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/platziflix/catalog-backend/internal/http/handlers"
	httpMW "github.com/platziflix/catalog-backend/internal/http/middleware"
	"github.com/platziflix/catalog-backend/internal/observability"
	"github.com/platziflix/catalog-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	// Tracing adds otelgin spans; off when OTEL is disabled.
	Tracing      bool
	AllowOrigins []string
	Metrics      *observability.Metrics

	RootHandler   *httpH.RootHandler
	HealthHandler *httpH.HealthHandler
	CourseHandler *httpH.CourseHandler
	LessonHandler *httpH.LessonHandler
	RatingHandler *httpH.RatingHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowOrigins))
	r.Use(httpMW.Metrics(cfg.Metrics))

	if cfg.RootHandler != nil {
		r.GET("/", cfg.RootHandler.Welcome)
	}
	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	// Catalog. :course is a slug on the detail route and a numeric id under /ratings.
	if cfg.CourseHandler != nil {
		r.GET("/courses", cfg.CourseHandler.ListCourses)
		r.GET("/courses/:course", cfg.CourseHandler.GetCourseBySlug)
	}
	if cfg.LessonHandler != nil {
		r.GET("/classes/:id", cfg.LessonHandler.GetClass)
	}

	// Ratings
	if cfg.RatingHandler != nil {
		ratings := r.Group("/courses/:course/ratings")
		ratings.POST("", cfg.RatingHandler.Submit)
		ratings.GET("", cfg.RatingHandler.List)
		ratings.GET("/stats", cfg.RatingHandler.Stats)
		ratings.GET("/user/:user_id", cfg.RatingHandler.GetUserRating)
		ratings.PUT("/:user_id", cfg.RatingHandler.Update)
		ratings.DELETE("/:user_id", cfg.RatingHandler.Delete)
	}

	return r
}
