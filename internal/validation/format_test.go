package validation

import (
	"errors"
	"testing"
)

func TestFormatValidValues(t *testing.T) {
	type priority string

	got := FormatValidValues([]priority{"low", "medium", "high"})
	want := "low, medium, high"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatInvalidValueError(t *testing.T) {
	type priority string

	base := errors.New("invalid priority")
	err := FormatInvalidValueError(base, priority("sky-high"), []priority{"low", "medium", "high"})
	if !errors.Is(err, base) {
		t.Fatalf("expected error to wrap %v", base)
	}

	want := "invalid priority: \"sky-high\" (valid: low, medium, high)"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
