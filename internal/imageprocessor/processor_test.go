package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPrepareDownscalesWideImages(t *testing.T) {
	p := NewProcessor(80, 100, 0)

	out, err := p.Prepare("logo.PNG", pngBytes(t, 400, 200))
	require.NoError(t, err)

	assert.Equal(t, 100, out.Width)
	assert.Equal(t, 50, out.Height)
	assert.Equal(t, "logo.png", out.Filename)
	assert.Equal(t, "image/png", out.ContentType)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out.Data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 100, cfg.Width)
}

func TestPrepareKeepsSmallImages(t *testing.T) {
	out, err := NewProcessor(80, 1200, 0).Prepare("a.png", pngBytes(t, 30, 20))
	require.NoError(t, err)
	assert.Equal(t, 30, out.Width)
	assert.Equal(t, 20, out.Height)
}

func TestPrepareRejects(t *testing.T) {
	p := NewProcessor(80, 100, 10)
	_, err := p.Prepare("a.png", pngBytes(t, 30, 20))
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = NewProcessor(80, 100, 0).Prepare("a.txt", []byte("not an image"))
	assert.ErrorIs(t, err, ErrUnsupported)
}
