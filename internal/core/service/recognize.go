package service

import (
	"context"
	"errors"
	"imagetools/internal/core/domain"
	"imagetools/internal/core/port"
	"strings"

	"github.com/rs/zerolog/log"
)

const DefaultRecognitionPrompt = "Describe the content of this image in detail"

type Recognizer struct {
	describer     port.ImageDescriber
	defaultPrompt string
	exposeErrors  bool
}

// NewRecognizer builds the recognition use case. Unless exposeErrors is set, vendor error messages are
// logged but not returned to the caller.
func NewRecognizer(describer port.ImageDescriber, defaultPrompt string, exposeErrors bool) *Recognizer {
	if strings.TrimSpace(defaultPrompt) == "" {
		defaultPrompt = DefaultRecognitionPrompt
	}
	return &Recognizer{describer: describer, defaultPrompt: defaultPrompt, exposeErrors: exposeErrors}
}

func (s *Recognizer) Recognize(ctx context.Context, image domain.Image, prompt string) (domain.Recognition, error) {
	l := log.Ctx(ctx).With().
		Str("feature", "recognition").
		Str("filename", image.Filename).
		Str("mimeType", image.MimeType).
		Int("bytes", image.Size()).
		Logger()

	if image.Size() == 0 {
		return domain.Recognition{}, domain.NewValidationError("please upload an image file", domain.ErrMissingImage)
	}

	if strings.TrimSpace(prompt) == "" {
		prompt = s.defaultPrompt
	}

	l.Info().Str("prompt", prompt).Msg("recognizing image")

	result, err := s.describer.Describe(ctx, image, prompt)
	if err != nil {
		l.Error().Err(err).Msg("image recognition failed")

		var upstream *domain.UpstreamError
		if !s.exposeErrors && errors.As(err, &upstream) {
			stripped := *upstream
			stripped.Message = ""
			return domain.Recognition{}, &stripped
		}
		return domain.Recognition{}, err
	}

	return result, nil
}
