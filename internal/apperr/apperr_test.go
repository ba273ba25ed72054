package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	base := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "plain error is storage", err: base, want: Storage},
		{name: "validation", err: Validationf("title is required"), want: Validation},
		{name: "not found", err: NotFoundf("article %q not found", "x"), want: NotFound},
		{name: "conflict", err: Conflictf("duplicate slug"), want: Conflict},
		{name: "unauthorized", err: Unauthorizedf("no caller"), want: Unauthorized},
		{name: "wrapped with fmt", err: fmt.Errorf("create article: %w", Conflictf("dup")), want: Conflict},
		{name: "explicit storage wrap", err: Wrap(Storage, base, "query failed"), want: Storage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	if Is(nil, Storage) {
		t.Error("Is(nil, Storage) must be false")
	}
	if !Is(NotFoundf("x"), NotFound) {
		t.Error("Is(NotFound) must be true")
	}
	if Is(NotFoundf("x"), Conflict) {
		t.Error("Is(NotFound, Conflict) must be false")
	}
}

func TestUnwrap(t *testing.T) {
	base := errors.New("boom")
	err := Wrap(Validation, base, "bad category")
	if !errors.Is(err, base) {
		t.Error("errors.Is should reach the wrapped cause")
	}
	if got := err.Error(); got != "bad category: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestMessage(t *testing.T) {
	if got := Message(Conflictf("an article with this slug already exists")); got != "an article with this slug already exists" {
		t.Errorf("conflict message: got %q", got)
	}
	if got := Message(errors.New("pq: password authentication failed")); got != "internal server error" {
		t.Errorf("storage message leaked: %q", got)
	}
	if got := Message(Wrap(Storage, errors.New("x"), "secret detail")); got != "internal server error" {
		t.Errorf("storage kind message leaked: %q", got)
	}
}

func TestKindString(t *testing.T) {
	want := map[Kind]string{
		Storage:      "storage_error",
		Validation:   "validation_error",
		NotFound:     "not_found",
		Conflict:     "conflict",
		Unauthorized: "unauthorized",
	}
	for k, s := range want {
		if k.String() != s {
			t.Errorf("%d.String() = %q, want %q", k, k.String(), s)
		}
	}
}
