package port

import (
	"context"
	"imagetools/internal/core/domain"
)

type ImageCompressor interface {
	// Compress re-encodes the image as JPEG at the given quality without changing its dimensions.
	Compress(ctx context.Context, image domain.Image, quality int) (domain.CompressedImage, error)
}

type BackgroundRemover interface {
	// RemoveBackground returns the vendor's PNG output for the image.
	RemoveBackground(ctx context.Context, image domain.Image) ([]byte, error)
}
