package file

import (
	"errors"
	"fmt"
	"imagetools/internal/core/domain"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

// ReadImage returns the content of a multipart file field. The form must already be parsed or parseable by
// r.FormFile. A missing or empty field yields a validation error wrapping domain.ErrMissingImage.
func ReadImage(r *http.Request, field string) (domain.Image, error) {
	f, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return domain.Image{}, domain.NewValidationError("please upload an image file", domain.ErrMissingImage)
		}
		return domain.Image{}, fmt.Errorf("error reading form file %w", err)
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		err = fmt.Errorf("error reading upload %w", err)
		log.Error().Err(err).Str("field", field).Send()
		return domain.Image{}, err
	}

	if len(buf) == 0 {
		return domain.Image{}, domain.NewValidationError("please upload an image file", domain.ErrMissingImage)
	}

	image := domain.Image{
		Data:     buf,
		MimeType: DetectMimeType(header.Header.Get("Content-Type"), buf),
		Filename: header.Filename,
	}

	log.Debug().
		Str("filename", image.Filename).
		Str("mimeType", image.MimeType).
		Int("bytes", image.Size()).
		Msg("read upload")

	return image, nil
}

// DetectMimeType trusts a declared image/* type and sniffs the content otherwise.
func DetectMimeType(declared string, data []byte) string {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if strings.HasPrefix(declared, "image/") {
		if i := strings.IndexByte(declared, ';'); i >= 0 {
			declared = strings.TrimSpace(declared[:i])
		}
		return declared
	}

	return mimetype.Detect(data).String()
}
