package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platziflix/catalog-backend/internal/domain/catalog"
	"github.com/platziflix/catalog-backend/internal/services"
)

func newCatalogRouter(t *testing.T, svc *fakeCourseService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := newTestLogger(t)
	courses := NewCourseHandler(log, svc)
	lessons := NewLessonHandler(log, svc)
	r := gin.New()
	r.GET("/", NewRootHandler("Platziflix").Welcome)
	r.GET("/courses", courses.ListCourses)
	r.GET("/courses/:course", courses.GetCourseBySlug)
	r.GET("/classes/:id", lessons.GetClass)
	return r
}

func TestWelcome(t *testing.T) {
	rec := serve(t, newCatalogRouter(t, &fakeCourseService{}), http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Bienvenido a Platziflix API"}`, rec.Body.String())
}

func TestListCourses(t *testing.T) {
	svc := &fakeCourseService{summaries: []catalog.CourseSummary{
		{Course: &catalog.Course{ID: 1, Name: "Curso de React", Slug: "curso-de-react", Thumbnail: "t.png"}, Stats: catalog.RatingStats{AverageRating: 4.5, TotalRatings: 2}},
		{Course: &catalog.Course{ID: 2, Name: "Curso de Go", Slug: "curso-de-go"}, Stats: catalog.ZeroRatingStats()},
	}}
	rec := serve(t, newCatalogRouter(t, svc), http.MethodGet, "/courses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]map[string]any](t, rec)
	require.Len(t, got, 2)
	assert.Equal(t, "curso-de-react", got[0]["slug"])
	assert.Equal(t, 4.5, got[0]["average_rating"])
	assert.EqualValues(t, 0, got[1]["total_ratings"])
	assert.NotContains(t, got[0], "rating_distribution")

	rec = serve(t, newCatalogRouter(t, &fakeCourseService{listErr: errors.New("db down")}), http.MethodGet, "/courses", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetCourseBySlug(t *testing.T) {
	svc := &fakeCourseService{detail: &catalog.CourseDetail{
		Course:     &catalog.Course{ID: 1, Name: "Curso de React", Slug: "curso-de-react"},
		TeacherIDs: []uint{1, 2},
		Lessons:    []*catalog.Lesson{{ID: 10, Name: "Intro", Slug: "intro"}},
		Stats:      catalog.ZeroRatingStats(),
	}}
	rec := serve(t, newCatalogRouter(t, svc), http.MethodGet, "/courses/curso-de-react", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[map[string]any](t, rec)
	assert.Equal(t, []any{1.0, 2.0}, got["teacher_id"])
	classes := got["classes"].([]any)
	require.Len(t, classes, 1)
	assert.Equal(t, "intro", classes[0].(map[string]any)["slug"])
	assert.Len(t, got["rating_distribution"], 5)

	rec = serve(t, newCatalogRouter(t, &fakeCourseService{}), http.MethodGet, "/courses/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetClass(t *testing.T) {
	svc := &fakeCourseService{lesson: &catalog.Lesson{ID: 5, Name: "Hooks", Slug: "hooks", VideoURL: "https://v/1.mp4"}}
	rec := serve(t, newCatalogRouter(t, svc), http.MethodGet, "/classes/5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":5,"title":"Hooks","description":"","slug":"hooks","video":"https://v/1.mp4","duration":0}`, rec.Body.String())

	rec = serve(t, newCatalogRouter(t, svc), http.MethodGet, "/classes/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, newCatalogRouter(t, &fakeCourseService{}), http.MethodGet, "/classes/9", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type fakeHealth struct{ report services.HealthReport }

func (f fakeHealth) Check(context.Context) services.HealthReport { return f.report }

func TestHealthCheckAlways200(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", NewHealthHandler(fakeHealth{report: services.HealthReport{
		Status:        services.HealthStatusDegraded,
		Service:       "Platziflix",
		Version:       "0.1.0",
		DatabaseError: "connection refused",
	}}).HealthCheck)

	rec := serve(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"degraded","service":"Platziflix","version":"0.1.0","database":false,"database_error":"connection refused"}`, rec.Body.String())
}
