package aggregates

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	domainagg "github.com/platziflix/catalog-backend/internal/domain/aggregates"
	"gorm.io/gorm"
)

func TestMapError_Conflict(t *testing.T) {
	err := MapError("op", fmt.Errorf("insert rating: %w", gorm.ErrDuplicatedKey))
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_NotFound(t *testing.T) {
	err := MapError("op", fmt.Errorf("load: %w", gorm.ErrRecordNotFound))
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not_found code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_PostgresCodes(t *testing.T) {
	cases := map[string]domainagg.ErrorCode{
		"23505": domainagg.CodeConflict,
		"23503": domainagg.CodePreconditionFailed,
		"23514": domainagg.CodeValidation,
		"40P01": domainagg.CodeRetryable,
		"XX000": domainagg.CodeInternal,
	}
	for code, want := range cases {
		err := MapError("op", &pgconn.PgError{Code: code, Message: "boom"})
		if got := domainagg.CodeOf(err); got != want {
			t.Fatalf("pg code %s: got=%q want=%q", code, got, want)
		}
	}
}

func TestMapError_SQLiteMessages(t *testing.T) {
	err := MapError("op", errors.New("UNIQUE constraint failed: course_ratings.course_id, course_ratings.user_id"))
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict code, got %q", domainagg.CodeOf(err))
	}
	err = MapError("op", errors.New("CHECK constraint failed: ck_course_ratings_rating_range"))
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation code, got %q", domainagg.CodeOf(err))
	}
}

func TestMapError_ContextIsRetryable(t *testing.T) {
	err := MapError("op", context.DeadlineExceeded)
	if !domainagg.IsCode(err, domainagg.CodeRetryable) {
		t.Fatalf("expected retryable code, got %q", domainagg.CodeOf(err))
	}
}

func TestMapError_PassthroughCodedError(t *testing.T) {
	in := domainagg.NotFound("rating.update", "no active rating")
	out := MapError("other", fmt.Errorf("wrapped: %w", in))
	if !domainagg.IsCode(out, domainagg.CodeNotFound) {
		t.Fatalf("expected passthrough of coded error, got %v", out)
	}
}

func TestMapError_Nil(t *testing.T) {
	if MapError("op", nil) != nil {
		t.Fatalf("expected nil")
	}
}
