package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/platziflix/catalog-backend/internal/domain/catalog"
	"github.com/platziflix/catalog-backend/internal/platform/logger"
	"github.com/platziflix/catalog-backend/internal/services"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

type fakeRatingService struct {
	stats    catalog.RatingStats
	statsErr error

	submitted  *catalog.CourseRating
	submitErr  error
	updated    *catalog.CourseRating
	updateErr  error
	deleted    bool
	deleteErr  error
	userRating *catalog.CourseRating
	userErr    error
	list       []*catalog.CourseRating
	listErr    error

	calls []string
}

var _ services.RatingService = (*fakeRatingService)(nil)

func (f *fakeRatingService) Stats(ctx context.Context, courseID uint) (catalog.RatingStats, error) {
	f.calls = append(f.calls, "stats")
	return f.stats, f.statsErr
}

func (f *fakeRatingService) AggregateStats(ctx context.Context, courseID uint) (catalog.RatingStats, error) {
	return f.stats, f.statsErr
}

func (f *fakeRatingService) Submit(ctx context.Context, courseID, userID uint, rating int) (*catalog.CourseRating, bool, error) {
	f.calls = append(f.calls, "submit")
	return f.submitted, f.submitted != nil, f.submitErr
}

func (f *fakeRatingService) Update(ctx context.Context, courseID, userID uint, rating int) (*catalog.CourseRating, error) {
	f.calls = append(f.calls, "update")
	return f.updated, f.updateErr
}

func (f *fakeRatingService) Delete(ctx context.Context, courseID, userID uint) (bool, error) {
	f.calls = append(f.calls, "delete")
	return f.deleted, f.deleteErr
}

func (f *fakeRatingService) GetUserRating(ctx context.Context, courseID, userID uint) (*catalog.CourseRating, error) {
	f.calls = append(f.calls, "get_user")
	return f.userRating, f.userErr
}

func (f *fakeRatingService) List(ctx context.Context, courseID uint) ([]*catalog.CourseRating, error) {
	f.calls = append(f.calls, "list")
	return f.list, f.listErr
}

type fakeCourseService struct {
	summaries []catalog.CourseSummary
	listErr   error
	detail    *catalog.CourseDetail
	detailErr error
	lesson    *catalog.Lesson
	lessonErr error
}

var _ services.CourseService = (*fakeCourseService)(nil)

func (f *fakeCourseService) ListCourses(ctx context.Context) ([]catalog.CourseSummary, error) {
	return f.summaries, f.listErr
}

func (f *fakeCourseService) CourseBySlug(ctx context.Context, slug string) (*catalog.CourseDetail, error) {
	return f.detail, f.detailErr
}

func (f *fakeCourseService) LessonByID(ctx context.Context, id uint) (*catalog.Lesson, error) {
	return f.lesson, f.lessonErr
}

func sampleRating(id, courseID, userID uint, value int) *catalog.CourseRating {
	at := time.Date(2025, 10, 14, 10, 30, 0, 0, time.UTC)
	return &catalog.CourseRating{ID: id, CourseID: courseID, UserID: userID, Rating: value, CreatedAt: at, UpdatedAt: at}
}

func serve(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	env := decode[struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}](t, rec)
	return env.Error.Code, env.Error.Message
}
