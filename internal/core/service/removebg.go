package service

import (
	"context"
	"imagetools/internal/core/domain"
	"imagetools/internal/core/port"

	"github.com/rs/zerolog/log"
)

type BackgroundRemoval struct {
	remover port.BackgroundRemover
}

func NewBackgroundRemoval(remover port.BackgroundRemover) *BackgroundRemoval {
	return &BackgroundRemoval{remover: remover}
}

func (s *BackgroundRemoval) RemoveBackground(ctx context.Context, image domain.Image) ([]byte, error) {
	l := log.Ctx(ctx).With().
		Str("feature", "remove-bg").
		Str("filename", image.Filename).
		Int("bytes", image.Size()).
		Logger()

	if image.Size() == 0 {
		return nil, domain.NewValidationError("please upload an image file", domain.ErrMissingImage)
	}

	l.Info().Msg("removing background")

	out, err := s.remover.RemoveBackground(ctx, image)
	if err != nil {
		l.Error().Err(err).Msg("background removal failed")
		return nil, err
	}

	l.Info().Int("resultBytes", len(out)).Msg("background removed")

	return out, nil
}
