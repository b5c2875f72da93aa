package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampQuality(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{in: -5, want: 10},
		{in: 0, want: 10},
		{in: 9, want: 10},
		{in: 10, want: 10},
		{in: 80, want: 80},
		{in: 100, want: 100},
		{in: 101, want: 100},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, ClampQuality(tc.in), "quality %d", tc.in)
	}
}

func TestImageFormat(t *testing.T) {
	tests := []struct {
		mimeType string
		want     string
	}{
		{mimeType: "image/png", want: "png"},
		{mimeType: "image/webp", want: "webp"},
		{mimeType: "image/jpeg", want: "jpeg"},
		{mimeType: "image/gif", want: "jpeg"},
		{mimeType: "", want: "jpeg"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, Image{MimeType: tc.mimeType}.Format(), tc.mimeType)
	}
}

func TestSavedPercent(t *testing.T) {
	assert.InDelta(t, 75.0, CompressedImage{OriginalSize: 400, CompressedSize: 100}.SavedPercent(), 0.001)
	assert.InDelta(t, -50.0, CompressedImage{OriginalSize: 100, CompressedSize: 150}.SavedPercent(), 0.001)
	assert.Zero(t, CompressedImage{}.SavedPercent())
}

func TestUpstreamErrorStatus(t *testing.T) {
	tests := []struct {
		status int
		want   int
	}{
		{status: 0, want: http.StatusInternalServerError},
		{status: http.StatusOK, want: http.StatusInternalServerError},
		{status: http.StatusUnauthorized, want: http.StatusUnauthorized},
		{status: http.StatusBadGateway, want: http.StatusBadGateway},
		{status: 700, want: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		err := &UpstreamError{Provider: "ark", StatusCode: tc.status}
		assert.Equal(t, tc.want, err.Status(), "status %d", tc.status)
	}
}

func TestErrorUnwrapping(t *testing.T) {
	wrapped := fmt.Errorf("handling request: %w", NewConfigError("ark.api_key"))

	var configErr *ConfigError
	assert.True(t, errors.As(wrapped, &configErr))
	assert.Equal(t, "ark.api_key", configErr.Key)
	assert.ErrorIs(t, wrapped, ErrMissingAPIKey)

	upstream := &UpstreamError{Provider: "ark", Err: ErrNoImageReturned}
	assert.ErrorIs(t, upstream, ErrNoImageReturned)
	assert.Contains(t, upstream.Error(), "no image returned")

	validation := NewValidationError("please enter a prompt", ErrEmptyPrompt)
	assert.ErrorIs(t, validation, ErrEmptyPrompt)

	decode := &DecodeError{Err: errors.New("unknown format")}
	assert.EqualError(t, decode, "decode image: unknown format")
}
