package converter

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"imagetools/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testPattern(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{
				R: uint8(x * 255 / width),
				G: uint8(y * 255 / height),
				B: uint8((x*31 + y*17) ^ (x * y)),
				A: 255,
			})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestJPEGConverter_Compress(t *testing.T) {
	src := testPattern(120, 80)

	encoders := map[string]func(buf *bytes.Buffer) error{
		"png":  func(buf *bytes.Buffer) error { return png.Encode(buf, src) },
		"jpeg": func(buf *bytes.Buffer) error { return jpeg.Encode(buf, src, &jpeg.Options{Quality: 95}) },
		"gif":  func(buf *bytes.Buffer) error { return gif.Encode(buf, src, nil) },
		"bmp":  func(buf *bytes.Buffer) error { return bmp.Encode(buf, src) },
	}

	c := NewJPEGConverter()

	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			require.NoError(t, encode(buf))

			for _, q := range []int{10, 25, 50, 80, 100} {
				res, err := c.Compress(t.Context(), domain.Image{Data: buf.Bytes()}, q)
				require.NoError(t, err)

				assert.NotEmpty(t, res.Data)
				assert.Equal(t, "image/jpeg", res.MimeType)
				assert.Equal(t, 120, res.Width)
				assert.Equal(t, 80, res.Height)
				assert.Equal(t, q, res.Quality)
				assert.Equal(t, buf.Len(), res.OriginalSize)
				assert.Equal(t, len(res.Data), res.CompressedSize)

				cfg, format, err := image.DecodeConfig(bytes.NewReader(res.Data))
				require.NoError(t, err)
				assert.Equal(t, "jpeg", format)
				assert.Equal(t, 120, cfg.Width)
				assert.Equal(t, 80, cfg.Height)
			}
		})
	}
}

func TestJPEGConverter_CompressClampsQuality(t *testing.T) {
	data := encodePNG(t, testPattern(32, 32))
	c := NewJPEGConverter()

	tests := []struct {
		name    string
		quality int
		want    int
	}{
		{name: "below range", quality: 1, want: domain.MinQuality},
		{name: "negative", quality: -20, want: domain.MinQuality},
		{name: "above range", quality: 150, want: domain.MaxQuality},
		{name: "in range", quality: 42, want: 42},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := c.Compress(t.Context(), domain.Image{Data: data}, tc.quality)
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Quality)
		})
	}
}

func TestJPEGConverter_CompressMonotonicSize(t *testing.T) {
	data := encodePNG(t, testPattern(256, 256))
	c := NewJPEGConverter()

	low, err := c.Compress(t.Context(), domain.Image{Data: data}, 10)
	require.NoError(t, err)
	mid, err := c.Compress(t.Context(), domain.Image{Data: data}, 50)
	require.NoError(t, err)
	high, err := c.Compress(t.Context(), domain.Image{Data: data}, 100)
	require.NoError(t, err)

	assert.LessOrEqual(t, low.CompressedSize, mid.CompressedSize)
	assert.LessOrEqual(t, mid.CompressedSize, high.CompressedSize)
	assert.Less(t, low.CompressedSize, high.CompressedSize)
}

func TestJPEGConverter_CompressDeterministic(t *testing.T) {
	data := encodePNG(t, testPattern(64, 48))
	c := NewJPEGConverter()

	first, err := c.Compress(t.Context(), domain.Image{Data: data}, 70)
	require.NoError(t, err)
	second, err := c.Compress(t.Context(), domain.Image{Data: data}, 70)
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data)
}

func TestJPEGConverter_CompressDoesNotMutateSource(t *testing.T) {
	data := encodePNG(t, testPattern(64, 48))
	orig := append([]byte(nil), data...)

	res, err := NewJPEGConverter().Compress(t.Context(), domain.Image{Data: data}, 30)
	require.NoError(t, err)

	assert.Equal(t, orig, data)
	res.Data[0] ^= 0xff
	assert.Equal(t, orig, data)
}

func TestJPEGConverter_CompressTransparentSource(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	img.Set(5, 5, color.NRGBA{R: 255, A: 128})

	res, err := NewJPEGConverter().Compress(t.Context(), domain.Image{Data: encodePNG(t, img)}, 80)
	require.NoError(t, err)
	assert.Equal(t, 20, res.Width)
	assert.Equal(t, 10, res.Height)
}

func TestJPEGConverter_CompressDecodeError(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "garbage", data: []byte("definitely not an image")},
		{name: "empty", data: nil},
		{name: "truncated png", data: encodePNG(t, testPattern(16, 16))[:40]},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewJPEGConverter().Compress(t.Context(), domain.Image{Data: tc.data}, 80)
			require.Error(t, err)

			var decodeErr *domain.DecodeError
			assert.True(t, errors.As(err, &decodeErr))
		})
	}
}

func TestJPEGConverter_CompressCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := NewJPEGConverter().Compress(ctx, domain.Image{Data: encodePNG(t, testPattern(8, 8))}, 80)
	assert.ErrorIs(t, err, context.Canceled)
}
