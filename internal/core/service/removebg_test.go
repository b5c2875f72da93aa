package service

import (
	"context"
	"errors"
	"imagetools/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveBackgroundSuccessful(t *testing.T) {
	mr := &MockBackgroundRemover{response: []byte("png")}

	out, err := NewBackgroundRemoval(mr).RemoveBackground(context.Background(), testImage)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), out)
}

func TestRemoveBackgroundMissingImage(t *testing.T) {
	mr := &MockBackgroundRemover{}

	_, err := NewBackgroundRemoval(mr).RemoveBackground(context.Background(), domain.Image{})
	assert.ErrorIs(t, err, domain.ErrMissingImage)
	assert.Equal(t, 0, mr.Calls)
}

func TestRemoveBackgroundError(t *testing.T) {
	mr := &MockBackgroundRemover{err: errors.New("mock error")}

	_, err := NewBackgroundRemoval(mr).RemoveBackground(context.Background(), testImage)
	assert.EqualError(t, err, "mock error")
}
