package imageprocessor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var (
	ErrTooLarge    = errors.New("imageprocessor: image exceeds the upload limit")
	ErrUnsupported = errors.New("imageprocessor: unsupported image format")
)

// Image is a re-encoded upload ready to be sent to the API.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
	Width       int
	Height      int
}

// Processor prepares job images before upload: size check, downscale, re-encode.
type Processor struct {
	quality  int   // JPEG quality (1-100)
	maxWidth int   // wider images are scaled down
	maxSize  int64 // upload limit in bytes
}

func NewProcessor(quality, maxWidth int, maxSize int64) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Processor{
		quality:  quality,
		maxWidth: maxWidth,
		maxSize:  maxSize,
	}
}

// Prepare decodes data, scales it down to the configured width and re-encodes
// it. PNG stays PNG; everything else becomes JPEG.
func (p *Processor) Prepare(filename string, data []byte) (*Image, error) {
	if p.maxSize > 0 && int64(len(data)) > p.maxSize {
		return nil, ErrTooLarge
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	if p.maxWidth > 0 && img.Bounds().Dx() > p.maxWidth {
		img = p.resize(img, p.maxWidth)
	}

	var buf bytes.Buffer
	out := &Image{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}

	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if base == "" || base == "." {
		base = "image"
	}

	if format == "png" {
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
		out.Filename = base + ".png"
		out.ContentType = "image/png"
	} else {
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
		out.Filename = base + ".jpg"
		out.ContentType = "image/jpeg"
	}

	out.Data = buf.Bytes()
	return out, nil
}

// resize scales img to width keeping the aspect ratio
func (p *Processor) resize(img image.Image, width int) image.Image {
	bounds := img.Bounds()
	height := int(float64(bounds.Dy()) * float64(width) / float64(bounds.Dx()))
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
