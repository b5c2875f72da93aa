package handler

import (
	"context"
	"imagetools/internal/core/domain"
)

type generateUsecase interface {
	Generate(ctx context.Context, prompt string, size string) (domain.GenerationResult, error)
}

type recognizeUsecase interface {
	Recognize(ctx context.Context, image domain.Image, prompt string) (domain.Recognition, error)
}

type removeBackgroundUsecase interface {
	RemoveBackground(ctx context.Context, image domain.Image) ([]byte, error)
}

type compressUsecase interface {
	Compress(ctx context.Context, image domain.Image, quality int) (domain.CompressedImage, error)
}
