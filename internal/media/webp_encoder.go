package media

import (
	"path/filepath"
	"strings"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/model"
	"github.com/h2non/bimg"
)

// WebPEncoder re-encodes post images as webp, bounded to MaxWidth x MaxHeight.
type WebPEncoder struct {
	Quality   int
	MaxWidth  int
	MaxHeight int
}

func NewWebPEncoder(quality int, maxWidth int, maxHeight int) *WebPEncoder {
	return &WebPEncoder{
		Quality:   quality,
		MaxWidth:  maxWidth,
		MaxHeight: maxHeight,
	}
}

func (encoder *WebPEncoder) Encode(file model.FilePayload) (model.FilePayload, error) {
	image := bimg.NewImage(file.Content)

	size, err := image.Size()
	if err != nil {
		return model.FilePayload{}, err
	}

	options := bimg.Options{
		Quality: encoder.Quality,
		Type:    bimg.WEBP,
	}

	// Only shrink, and only along the limiting side so the aspect ratio holds.
	if size.Width > encoder.MaxWidth || size.Height > encoder.MaxHeight {
		if size.Width*encoder.MaxHeight >= size.Height*encoder.MaxWidth {
			options.Width = encoder.MaxWidth
		} else {
			options.Height = encoder.MaxHeight
		}
	}

	output, err := image.Process(options)
	if err != nil {
		return model.FilePayload{}, err
	}

	name := strings.TrimSuffix(file.Name, filepath.Ext(file.Name)) + ".webp"

	return model.FilePayload{
		Name:        name,
		ContentType: "image/webp",
		Content:     output,
	}, nil
}
