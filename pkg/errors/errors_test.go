package errors

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidationError("label", "bad"), http.StatusBadRequest},
		{"internal", NewInternalError("boom", nil), http.StatusInternalServerError},
		{"backend", NewBackendError(http.MethodGet, "http://x", 503, nil), http.StatusBadGateway},
		{"wrapped backend", fmt.Errorf("list users: %w", NewBackendError(http.MethodGet, "http://x", 500, nil)), http.StatusBadGateway},
		{"plain", fmt.Errorf("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func TestBackendError_TruncatesBody(t *testing.T) {
	body := []byte(strings.Repeat("a", 1000))

	err := NewBackendError(http.MethodPost, "http://x/api/rust/users", 500, body)

	assert.Len(t, err.Body, MaxBodyExcerpt)
	assert.Contains(t, err.Error(), "backend POST http://x/api/rust/users returned 500")
}

func TestBackendError_KeepsWholeRunes(t *testing.T) {
	// 255 ASCII bytes then a 3-byte rune, cut after its first byte
	body := []byte(strings.Repeat("a", MaxBodyExcerpt-1) + "€€")

	err := NewBackendError(http.MethodGet, "http://x", 500, body)

	assert.Len(t, err.Body, MaxBodyExcerpt-1)
	assert.True(t, utf8.ValidString(err.Body))
}

func TestBackendError_ShortBodyUntouched(t *testing.T) {
	err := NewBackendError(http.MethodGet, "http://x", 500, []byte("naïve €"))

	assert.Equal(t, "naïve €", err.Body)
}

func TestBackendError_PartialRuneAtLimitRead(t *testing.T) {
	// the client reads exactly MaxBodyExcerpt bytes, so the cut can land inside a rune
	body := []byte(strings.Repeat("a", MaxBodyExcerpt-2) + "€")[:MaxBodyExcerpt]

	err := NewBackendError(http.MethodGet, "http://x", 500, body)

	assert.Equal(t, strings.Repeat("a", MaxBodyExcerpt-2), err.Body)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("id", "User ID must be a valid number")

	assert.Equal(t, "validation failed: id - User ID must be a valid number", err.Error())
	assert.Equal(t, http.StatusBadRequest, StatusOf(fmt.Errorf("delete: %w", err)))
}

func TestInternalError_Unwraps(t *testing.T) {
	cause := fmt.Errorf("store down")
	err := NewInternalError("load session", cause)

	assert.Equal(t, "load session: store down", err.Error())
	assert.ErrorIs(t, err, cause)
}
