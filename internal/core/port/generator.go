package port

import (
	"context"
	"imagetools/internal/core/domain"
)

type ImageGenerator interface {
	// Generate requests exactly one image for the prompt and returns where the vendor stored it.
	Generate(ctx context.Context, request domain.GenerationRequest) (domain.GenerationResult, error)
}

type ImageDescriber interface {
	// Describe sends the image and the instruction to a multimodal model as a single user turn.
	Describe(ctx context.Context, image domain.Image, prompt string) (domain.Recognition, error)
}
