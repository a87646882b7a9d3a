package services

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	// register PNG and GIF decoders for uploaded photos
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	compressMaxDimension = 1920
	compressTargetBytes  = 150 * 1024
	compressStartQuality = 80
	compressMinQuality   = 20
	compressQualityStep  = 10
)

// CompressPhoto re-encodes an uploaded photo as a progressive-quality JPEG
// sized for the order form: scaled into a 1920x1920 box, then re-encoded
// with decreasing quality until the output fits under 150KB or quality
// bottoms out at 20.
func CompressPhoto(input []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(input))
	if err != nil {
		return nil, NewValidationError("Unsupported or corrupt image: %v", err)
	}

	scaled := scaleDown(src, compressMaxDimension)

	quality := compressStartQuality
	out, err := encodeJPEG(scaled, quality)
	if err != nil {
		return nil, err
	}

	for len(out) > compressTargetBytes && quality > compressMinQuality {
		quality -= compressQualityStep
		out, err = encodeJPEG(scaled, quality)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// scaleDown fits img into a maxDim square without enlarging.
func scaleDown(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	scale := float64(maxDim) / float64(w)
	if h > w {
		scale = float64(maxDim) / float64(h)
	}
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
