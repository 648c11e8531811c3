package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validationf("userId is required"), http.StatusBadRequest},
		{"upstream", Upstreamf("creating embedding", errors.New("timeout")), http.StatusInternalServerError},
		{"persistence", Persistencef("inserting record", errors.New("closed")), http.StatusInternalServerError},
		{"unclassified", errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestPublicMessageHidesInternalDetail(t *testing.T) {
	err := Upstreamf("creating completion", errors.New("api key invalid"))
	if got := PublicMessage(err); got != "internal server error" {
		t.Fatalf("expected generic message, got %q", got)
	}

	err = Validationf("messages must not be empty")
	if got := PublicMessage(err); got != "messages must not be empty" {
		t.Fatalf("validation message should pass through, got %q", got)
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := Persistencef("updating settings", errors.New("deadlock"))
	wrapped := fmt.Errorf("handling request: %w", inner)

	if got := KindOf(wrapped); got != Persistence {
		t.Fatalf("expected Persistence kind through wrapping, got %v", got)
	}
	if !errors.Is(wrapped, inner) {
		t.Fatal("expected errors.Is to find the inner error")
	}
}
