package generator

import (
	"context"
	"errors"
	"fmt"
	"imagetools/internal/core/domain"

	"github.com/revrost/go-openrouter"
)

const openRouterProvider = "openrouter"

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context,
		ccr openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error)
}

// OpenRouterDescriber runs image recognition through any vision model available on OpenRouter.
type OpenRouterDescriber struct {
	client chatCompleter
	apiKey string
	model  string
}

func NewOpenRouterDescriber(apiKey, model string) *OpenRouterDescriber {
	return &OpenRouterDescriber{
		apiKey: apiKey,
		model:  model,
		client: openrouter.NewClient(
			apiKey,
			openrouter.WithXTitle("imagetools"),
		),
	}
}

func (c *OpenRouterDescriber) Describe(ctx context.Context, image domain.Image, prompt string) (domain.Recognition, error) {
	if c.apiKey == "" {
		return domain.Recognition{}, domain.NewConfigError("openrouter.api_key")
	}

	ccr := openrouter.ChatCompletionRequest{
		Model:    c.model,
		Messages: []openrouter.ChatCompletionMessage{createUserMessage(image, prompt)},
	}

	resp, err := c.client.CreateChatCompletion(ctx, ccr)
	if err != nil {
		return domain.Recognition{}, openRouterUpstreamError(err)
	}

	text := FallbackRecognition
	if len(resp.Choices) > 0 && resp.Choices[0].Message.Content.Text != "" {
		text = resp.Choices[0].Message.Content.Text
	}

	recognition := domain.Recognition{Text: text}
	if resp.Usage != nil {
		recognition.Usage = &domain.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}

	return recognition, nil
}

func openRouterUpstreamError(err error) error {
	upstream := &domain.UpstreamError{Provider: openRouterProvider, Err: fmt.Errorf("openrouter API error: %w", err)}

	var apiErr *openrouter.APIError
	var reqErr *openrouter.RequestError
	switch {
	case errors.As(err, &apiErr):
		upstream.StatusCode = apiErr.HTTPStatusCode
		upstream.Message = apiErr.Message
	case errors.As(err, &reqErr):
		upstream.StatusCode = reqErr.HTTPStatusCode
	}

	return upstream
}

func createUserMessage(image domain.Image, prompt string) openrouter.ChatCompletionMessage {
	return openrouter.ChatCompletionMessage{
		Role: openrouter.ChatMessageRoleUser,
		Content: openrouter.Content{Multi: []openrouter.ChatMessagePart{
			{
				Type: openrouter.ChatMessagePartTypeText,
				Text: prompt,
			},
			{
				Type:     openrouter.ChatMessagePartTypeImageURL,
				ImageURL: &openrouter.ChatMessageImageURL{URL: DataURI(image)},
			},
		},
		},
	}
}
