package aggregates

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := NotFound("rating.list", "course with id %d not found", 3)
	if got, want := err.Error(), "rating.list: course with id 3 not found (not_found)"; got != want {
		t.Fatalf("Error(): got=%q want=%q", got, want)
	}
	if got := MessageOf(err); got != "course with id 3 not found" {
		t.Fatalf("MessageOf: got=%q", got)
	}
}

func TestCodeOfSurvivesWrapping(t *testing.T) {
	base := Validation("rating.submit", "rating must be between 1 and 5")
	wrapped := fmt.Errorf("handler: %w", base)
	if !IsCode(wrapped, CodeValidation) {
		t.Fatalf("expected validation code, got %q", CodeOf(wrapped))
	}
	if CodeOf(errors.New("plain")) != "" {
		t.Fatalf("plain errors must not carry a code")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(CodeInternal, "op", nil) != nil {
		t.Fatalf("Wrap(nil) must be nil")
	}
}
