package service

import (
	"context"
	"imagetools/internal/core/domain"
	"imagetools/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Compression struct {
	compressor port.ImageCompressor
}

func NewCompression(compressor port.ImageCompressor) *Compression {
	return &Compression{compressor: compressor}
}

// Compress re-encodes the image at the clamped quality. The source image is left untouched.
func (s *Compression) Compress(ctx context.Context, image domain.Image, quality int) (domain.CompressedImage, error) {
	quality = domain.ClampQuality(quality)

	l := log.Ctx(ctx).With().
		Str("feature", "compress").
		Str("filename", image.Filename).
		Int("quality", quality).
		Logger()

	if image.Size() == 0 {
		return domain.CompressedImage{}, domain.NewValidationError("please upload an image file", domain.ErrMissingImage)
	}

	result, err := s.compressor.Compress(ctx, image, quality)
	if err != nil {
		l.Warn().Err(err).Msg("compression failed")
		return domain.CompressedImage{}, err
	}

	l.Info().
		Int("originalBytes", result.OriginalSize).
		Int("compressedBytes", result.CompressedSize).
		Float64("savedPercent", result.SavedPercent()).
		Msg("image compressed")

	return result, nil
}
