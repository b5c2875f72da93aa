package generator

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"imagetools/internal/core/domain"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// FallbackRecognition is returned when the model answers without any choices.
const FallbackRecognition = "Unable to recognize the image content"

// ArkDescriber runs image recognition against the OpenAI-compatible chat endpoint of the Ark API.
type ArkDescriber struct {
	client *openai.Client
	apiKey string
	model  string
}

func NewArkDescriber(httpClient *http.Client, baseURL, apiKey, model string) *ArkDescriber {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	config.HTTPClient = httpClient

	return &ArkDescriber{
		client: openai.NewClientWithConfig(config),
		apiKey: apiKey,
		model:  model,
	}
}

func (a *ArkDescriber) Describe(ctx context.Context, image domain.Image, prompt string) (domain.Recognition, error) {
	if a.apiKey == "" {
		return domain.Recognition{}, domain.NewConfigError("ark.api_key")
	}

	ccr := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: DataURI(image)},
					},
				},
			},
		},
	}

	resp, err := a.client.CreateChatCompletion(ctx, ccr)
	if err != nil {
		return domain.Recognition{}, openAIUpstreamError(err)
	}

	log.Debug().
		Str("model", resp.Model).
		Int("choices", len(resp.Choices)).
		Int("totalTokens", resp.Usage.TotalTokens).
		Msg("Ark chat completion")

	text := FallbackRecognition
	if len(resp.Choices) > 0 && resp.Choices[0].Message.Content != "" {
		text = resp.Choices[0].Message.Content
	}

	recognition := domain.Recognition{Text: text}
	if resp.Usage.TotalTokens > 0 || resp.Usage.PromptTokens > 0 || resp.Usage.CompletionTokens > 0 {
		recognition.Usage = &domain.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}

	return recognition, nil
}

// DataURI inlines the image as a format-tagged base64 data URI.
func DataURI(image domain.Image) string {
	return fmt.Sprintf("data:image/%s;base64,%s", image.Format(), base64.StdEncoding.EncodeToString(image.Data))
}

func openAIUpstreamError(err error) error {
	upstream := &domain.UpstreamError{Provider: arkProvider, Err: fmt.Errorf("ark API error: %w", err)}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		upstream.StatusCode = apiErr.HTTPStatusCode
		upstream.Message = apiErr.Message
	case errors.As(err, &reqErr):
		upstream.StatusCode = reqErr.HTTPStatusCode
	}

	return upstream
}
