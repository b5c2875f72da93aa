package service

import (
	"context"
	"errors"
	"imagetools/internal/core/domain"
	"imagetools/internal/core/port"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

type Generator struct {
	imageGenerator port.ImageGenerator
	validate       *validator.Validate
}

func NewGenerator(imageGenerator port.ImageGenerator) *Generator {
	return &Generator{imageGenerator: imageGenerator, validate: validator.New()}
}

// Generate validates the prompt and size token and asks the backend for a single image.
// An empty size selects domain.DefaultSize.
func (s *Generator) Generate(ctx context.Context, prompt string, size string) (domain.GenerationResult, error) {
	request := domain.GenerationRequest{
		Prompt: strings.TrimSpace(prompt),
		Size:   domain.Size(strings.TrimSpace(size)),
	}
	if request.Size == "" {
		request.Size = domain.DefaultSize
	}

	l := log.Ctx(ctx).With().
		Str("feature", "generate").
		Str("size", string(request.Size)).
		Logger()

	if err := s.validate.Struct(request); err != nil {
		l.Debug().Err(err).Msg("invalid generation request")
		return domain.GenerationResult{}, generationValidationError(err)
	}

	l.Info().Str("prompt", request.Prompt).Msg("generating image")

	result, err := s.imageGenerator.Generate(ctx, request)
	if err != nil {
		l.Error().Err(err).Msg("image generation failed")
		return domain.GenerationResult{}, err
	}

	l.Info().Str("imageURL", result.ImageURL).Msg("image generated")

	return result, nil
}

func generationValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 && fieldErrs[0].Field() == "Size" {
		return domain.NewValidationError("size must be one of 1K, 2K or 4K", domain.ErrInvalidSize)
	}
	return domain.NewValidationError("please enter a prompt", domain.ErrEmptyPrompt)
}
