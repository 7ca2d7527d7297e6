package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("load menu: %w", NotFound("Menu not found"))
	if got := KindOf(wrapped); got != KindNotFound {
		t.Errorf("KindOf(wrapped) = %q, want %q", got, KindNotFound)
	}
	if got := KindOf(errors.New("boom")); got != KindInternal {
		t.Errorf("KindOf(plain) = %q, want %q", got, KindInternal)
	}
	if Is(nil, KindNotFound) {
		t.Error("Is(nil) should be false")
	}
}

func TestStatusFor(t *testing.T) {
	cases := map[Kind]int{
		KindNotFound:           http.StatusNotFound,
		KindInvalidDate:        http.StatusBadRequest,
		KindValidation:         http.StatusBadRequest,
		KindDomainRule:         http.StatusBadRequest,
		KindServiceUnavailable: http.StatusServiceUnavailable,
		KindInternal:           http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := StatusFor(kind); got != want {
			t.Errorf("StatusFor(%q) = %d, want %d", kind, got, want)
		}
	}
}

func TestServiceUnavailableHidesCause(t *testing.T) {
	cause := errors.New("401 invalid api key")
	err := ServiceUnavailable(cause)

	if err.Message != "AI service unavailable" {
		t.Errorf("message = %q, want generic message", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
}
