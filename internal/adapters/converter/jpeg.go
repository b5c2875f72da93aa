package converter

import (
	"bytes"
	"context"
	"fmt"
	"imagetools/internal/core/domain"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	// webp is the only browser upload format imaging does not register itself.
	_ "golang.org/x/image/webp"
)

// JPEGConverter re-encodes images as baseline JPEG. It holds no state and is safe for concurrent use.
type JPEGConverter struct{}

func NewJPEGConverter() *JPEGConverter {
	return &JPEGConverter{}
}

func (c *JPEGConverter) Compress(ctx context.Context, image domain.Image, quality int) (domain.CompressedImage, error) {
	if err := ctx.Err(); err != nil {
		return domain.CompressedImage{}, err
	}

	quality = domain.ClampQuality(quality)

	img, err := imaging.Decode(bytes.NewReader(image.Data))
	if err != nil {
		return domain.CompressedImage{}, &domain.DecodeError{Err: err}
	}

	bounds := img.Bounds()
	log.Debug().
		Int("width", bounds.Dx()).
		Int("height", bounds.Dy()).
		Int("quality", quality).
		Msg("decoded source image")

	if err := ctx.Err(); err != nil {
		return domain.CompressedImage{}, err
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return domain.CompressedImage{}, fmt.Errorf("error encoding jpeg: %w", err)
	}

	return domain.CompressedImage{
		Data:           buf.Bytes(),
		MimeType:       "image/jpeg",
		Width:          bounds.Dx(),
		Height:         bounds.Dy(),
		Quality:        quality,
		OriginalSize:   image.Size(),
		CompressedSize: buf.Len(),
	}, nil
}
