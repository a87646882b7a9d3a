package services

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCompressPhoto(t *testing.T) {
	input := encodeTestPNG(t, 640, 480)

	out, err := CompressPhoto(input)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	decoded, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)

	// Small inputs keep their dimensions
	assert.Equal(t, 640, decoded.Bounds().Dx())
	assert.Equal(t, 480, decoded.Bounds().Dy())
}

func TestCompressPhotoScalesLargeImages(t *testing.T) {
	input := encodeTestPNG(t, 3840, 2160)

	out, err := CompressPhoto(input)
	require.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	// Longest edge fits the 1920 box, aspect ratio preserved
	assert.Equal(t, 1920, decoded.Bounds().Dx())
	assert.Equal(t, 1080, decoded.Bounds().Dy())
}

func TestCompressPhotoPortrait(t *testing.T) {
	input := encodeTestPNG(t, 1080, 2400)

	out, err := CompressPhoto(input)
	require.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 1920, decoded.Bounds().Dy())
	assert.LessOrEqual(t, decoded.Bounds().Dx(), 1920)
}

func TestCompressPhotoRejectsGarbage(t *testing.T) {
	_, err := CompressPhoto([]byte("not an image at all"))
	require.Error(t, err)
	assert.Equal(t, CodeValidation, AsServiceError(err).Code)
}
