package domain

// Image is an uploaded or vendor-produced image held in memory for the duration of one request.
type Image struct {
	Data     []byte
	MimeType string
	Filename string
}

func (i Image) Size() int {
	return len(i.Data)
}

// Format returns the subtype used to tag inline image payloads. Unknown types fall back to jpeg.
func (i Image) Format() string {
	switch i.MimeType {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	default:
		return "jpeg"
	}
}

type CompressedImage struct {
	Data           []byte
	MimeType       string
	Width          int
	Height         int
	Quality        int
	OriginalSize   int
	CompressedSize int
}

// SavedPercent reports how much smaller the compressed image is, negative if it grew.
func (c CompressedImage) SavedPercent() float64 {
	if c.OriginalSize == 0 {
		return 0
	}
	return float64(c.OriginalSize-c.CompressedSize) / float64(c.OriginalSize) * 100
}

const (
	MinQuality     = 10
	MaxQuality     = 100
	DefaultQuality = 80
)

// ClampQuality keeps a quality factor inside the range offered by the compression page.
func ClampQuality(q int) int {
	if q < MinQuality {
		return MinQuality
	}
	if q > MaxQuality {
		return MaxQuality
	}
	return q
}

type Size string

const (
	Size1K Size = "1K"
	Size2K Size = "2K"
	Size4K Size = "4K"

	DefaultSize = Size2K
)

type GenerationRequest struct {
	Prompt string `validate:"required"`
	Size   Size   `validate:"oneof=1K 2K 4K"`
}

type GenerationResult struct {
	ImageURL      string
	RevisedPrompt string
	Usage         *Usage
}

type Recognition struct {
	Text  string
	Usage *Usage
}

// Usage is the vendor's token accounting, relayed to the client as received.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
	GeneratedImages  int `json:"generated_images,omitempty"`
	OutputTokens     int `json:"output_tokens,omitempty"`
}
