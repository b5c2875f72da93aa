package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"imagetools/internal/core/domain"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

const arkProvider = "ark"

// ArkGenerator provides text-to-image generation on the Volcengine Ark API.
type ArkGenerator struct {
	client  *http.Client
	apiKey  string
	baseURL string
	model   string
}

func NewArkGenerator(client *http.Client, baseURL, apiKey, model string) *ArkGenerator {
	return &ArkGenerator{
		client:  client,
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
	}
}

type imageGenerationRequest struct {
	Model                     string `json:"model"`
	Prompt                    string `json:"prompt"`
	SequentialImageGeneration string `json:"sequential_image_generation"`
	ResponseFormat            string `json:"response_format"`
	Size                      string `json:"size"`
	Stream                    bool   `json:"stream"`
	Watermark                 bool   `json:"watermark"`
}

type imageGenerationResponse struct {
	Data []struct {
		URL           string `json:"url"`
		RevisedPrompt string `json:"revised_prompt"`
	} `json:"data"`
	Usage *domain.Usage `json:"usage"`
}

type arkErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (a *ArkGenerator) Generate(ctx context.Context, request domain.GenerationRequest) (domain.GenerationResult, error) {
	if a.apiKey == "" {
		return domain.GenerationResult{}, domain.NewConfigError("ark.api_key")
	}

	arkRequest := imageGenerationRequest{
		Model:                     a.model,
		Prompt:                    request.Prompt,
		SequentialImageGeneration: "disabled",
		ResponseFormat:            "url",
		Size:                      string(request.Size),
		Stream:                    false,
		Watermark:                 true,
	}

	payloadBuf := new(bytes.Buffer)
	err := json.NewEncoder(payloadBuf).Encode(arkRequest)
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("error encoding Ark request: %w", err)
	}

	status, body, err := a.postArkRequest(ctx, a.baseURL+"/images/generations", payloadBuf)
	if err != nil {
		return domain.GenerationResult{}, &domain.UpstreamError{Provider: arkProvider, Err: err}
	}

	if status < 200 || status > 299 {
		var errResp arkErrorResponse
		_ = json.Unmarshal(body, &errResp)

		log.Error().
			Int("status", status).
			Str("code", errResp.Error.Code).
			Bytes("body", body).
			Msg("Ark image generation failed")

		return domain.GenerationResult{}, &domain.UpstreamError{
			Provider:   arkProvider,
			StatusCode: status,
			Message:    errResp.Error.Message,
			Err:        fmt.Errorf("unexpected status code from Ark: %d", status),
		}
	}

	var result imageGenerationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.GenerationResult{}, &domain.UpstreamError{
			Provider: arkProvider,
			Err:      fmt.Errorf("error unmarshalling Ark imageGenerationResponse: %w", err),
		}
	}

	log.Debug().Interface("result", result).Msg("Ark imageGenerationResponse")

	if len(result.Data) == 0 || result.Data[0].URL == "" {
		return domain.GenerationResult{}, &domain.UpstreamError{
			Provider: arkProvider,
			Err:      domain.ErrNoImageReturned,
		}
	}

	return domain.GenerationResult{
		ImageURL:      result.Data[0].URL,
		RevisedPrompt: result.Data[0].RevisedPrompt,
		Usage:         result.Usage,
	}, nil
}

func (a *ArkGenerator) postArkRequest(ctx context.Context, url string, payloadBuf *bytes.Buffer) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, payloadBuf)
	if err != nil {
		log.Error().Err(err).Msg("error creating POST request for Ark")
		return 0, nil, err
	}

	req.Header.Add("Authorization", "Bearer "+a.apiKey)
	req.Header.Add("Content-Type", "application/json")

	res, err := a.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("error executing Ark request: %w", err)
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("error reading Ark response: %w", err)
	}

	if len(body) == 0 && res.StatusCode == http.StatusOK {
		return 0, nil, errors.New("empty Ark response")
	}

	return res.StatusCode, body, nil
}
