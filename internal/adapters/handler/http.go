package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"imagetools/internal/adapters/file"
	"imagetools/internal/core/domain"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	imageField   = "image_file"
	promptField  = "prompt"
	qualityField = "quality"

	multipartMemory = 8 << 20

	msgGenerateFailed  = "image generation failed, please try again later"
	msgRecognizeFailed = "image recognition failed, please try again later"
	msgRemoveBGFailed  = "background removal failed, please try again later"
)

type HTTP struct {
	generator  generateUsecase
	recognizer recognizeUsecase
	remover    removeBackgroundUsecase
	compressor compressUsecase
	maxUpload  int64
	now        func() time.Time
}

// NewHTTP builds the route handlers. maxUpload is the request body limit in bytes.
func NewHTTP(generator generateUsecase, recognizer recognizeUsecase, remover removeBackgroundUsecase,
	compressor compressUsecase, maxUpload int64) *HTTP {
	return &HTTP{
		generator:  generator,
		recognizer: recognizer,
		remover:    remover,
		compressor: compressor,
		maxUpload:  maxUpload,
		now:        time.Now,
	}
}

func (h *HTTP) Generate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondDomainError(w, r, err, msgGenerateFailed)
			return
		}
		log.Ctx(r.Context()).Debug().Err(err).Msg("invalid generation body")
		respondError(w, r, http.StatusBadRequest, msgBadRequest)
		return
	}

	result, err := h.generator.Generate(r.Context(), req.Prompt, req.Size)
	if err != nil {
		respondDomainError(w, r, err, msgGenerateFailed)
		return
	}

	respondJSON(w, r, http.StatusOK, generateResponse{
		Success:       true,
		ImageURL:      result.ImageURL,
		RevisedPrompt: result.RevisedPrompt,
		Usage:         result.Usage,
	})
}

func (h *HTTP) Recognize(w http.ResponseWriter, r *http.Request) {
	image, ok := h.readUpload(w, r, msgRecognizeFailed)
	if !ok {
		return
	}

	result, err := h.recognizer.Recognize(r.Context(), image, r.FormValue(promptField))
	if err != nil {
		respondDomainError(w, r, err, msgRecognizeFailed)
		return
	}

	respondJSON(w, r, http.StatusOK, recognitionResponse{
		Success: true,
		Result:  result.Text,
		Usage:   result.Usage,
	})
}

func (h *HTTP) RemoveBackground(w http.ResponseWriter, r *http.Request) {
	image, ok := h.readUpload(w, r, msgRemoveBGFailed)
	if !ok {
		return
	}

	out, err := h.remover.RemoveBackground(r.Context(), image)
	if err != nil {
		respondDomainError(w, r, err, msgRemoveBGFailed)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("failed to write image")
	}
}

func (h *HTTP) Compress(w http.ResponseWriter, r *http.Request) {
	image, ok := h.readUpload(w, r, msgServerError)
	if !ok {
		return
	}

	quality, err := parseQuality(r.FormValue(qualityField))
	if err != nil {
		respondDomainError(w, r, err, msgServerError)
		return
	}

	result, err := h.compressor.Compress(r.Context(), image, quality)
	if err != nil {
		respondDomainError(w, r, err, msgServerError)
		return
	}

	header := w.Header()
	header.Set("Content-Type", result.MimeType)
	header.Set("Content-Length", strconv.Itoa(len(result.Data)))
	header.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="compressed_%d.jpg"`, h.now().UnixMilli()))
	header.Set("X-Original-Size", strconv.Itoa(result.OriginalSize))
	header.Set("X-Compressed-Size", strconv.Itoa(result.CompressedSize))
	header.Set("X-Image-Width", strconv.Itoa(result.Width))
	header.Set("X-Image-Height", strconv.Itoa(result.Height))
	header.Set("X-Quality", strconv.Itoa(result.Quality))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Data); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("failed to write image")
	}
}

func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// readUpload limits the body, parses the multipart form and reads the image field. It writes the error response
// itself and reports false when the request cannot proceed.
func (h *HTTP) readUpload(w http.ResponseWriter, r *http.Request, fallback string) (domain.Image, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondDomainError(w, r, err, fallback)
			return domain.Image{}, false
		}
		log.Ctx(r.Context()).Debug().Err(err).Msg("failed to parse multipart form")
		respondDomainError(w, r, domain.NewValidationError("please upload an image file", domain.ErrMissingImage), fallback)
		return domain.Image{}, false
	}

	image, err := file.ReadImage(r, imageField)
	if err != nil {
		respondDomainError(w, r, err, fallback)
		return domain.Image{}, false
	}

	return image, true
}

// parseQuality reads the optional quality form value. Out of range values are clamped later.
func parseQuality(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.DefaultQuality, nil
	}

	q, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError("quality must be an integer between 10 and 100", domain.ErrInvalidQuality)
	}
	return q, nil
}
