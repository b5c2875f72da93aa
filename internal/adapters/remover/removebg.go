package remover

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"imagetools/internal/core/domain"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/rs/zerolog/log"
)

const provider = "remove.bg"

// RemoveBG provides a wrapper for the remove.bg background removal API.
type RemoveBG struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

func NewRemoveBG(client *http.Client, endpoint, apiKey string) *RemoveBG {
	return &RemoveBG{
		client:   client,
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

type errorResponse struct {
	Errors []struct {
		Title  string `json:"title"`
		Code   string `json:"code"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

func (r *RemoveBG) RemoveBackground(ctx context.Context, image domain.Image) ([]byte, error) {
	if r.apiKey == "" {
		return nil, domain.NewConfigError("removebg.api_key")
	}

	body, contentType, err := buildForm(image)
	if err != nil {
		return nil, fmt.Errorf("error building remove.bg form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("error creating POST request for remove.bg: %w", err)
	}

	req.Header.Set("X-Api-Key", r.apiKey)
	req.Header.Set("Content-Type", contentType)

	res, err := r.client.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{
			Provider: provider,
			Err:      fmt.Errorf("error executing remove.bg request: %w", err),
		}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &domain.UpstreamError{
			Provider: provider,
			Err:      fmt.Errorf("error reading remove.bg response: %w", err),
		}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		log.Error().Int("status", res.StatusCode).Bytes("body", data).Msg("remove.bg request failed")

		upstream := &domain.UpstreamError{
			Provider:   provider,
			StatusCode: res.StatusCode,
			Err:        fmt.Errorf("unexpected status code from remove.bg: %d", res.StatusCode),
		}

		var errResp errorResponse
		if json.Unmarshal(data, &errResp) == nil && len(errResp.Errors) > 0 {
			upstream.Message = errResp.Errors[0].Title
		}

		return nil, upstream
	}

	log.Debug().Int("bytes", len(data)).Msg("remove.bg response")

	return data, nil
}

func buildForm(image domain.Image) (*bytes.Buffer, string, error) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	filename := image.Filename
	if filename == "" {
		filename = "image." + image.Format()
	}

	part, err := writer.CreateFormFile("image_file", filename)
	if err != nil {
		return nil, "", err
	}

	if _, err := part.Write(image.Data); err != nil {
		return nil, "", err
	}

	if err := writer.WriteField("size", "auto"); err != nil {
		return nil, "", err
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}
