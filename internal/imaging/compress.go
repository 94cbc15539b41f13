// Package imaging downscales and re-encodes card images so they fit under the
// per-field ceiling of the card store.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png"
	"math"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MaxPixels bounds the decoded size of any image this package accepts.
const MaxPixels = 40_000_000

var (
	ErrInvalidDataURL = errors.New("invalid data url")
	ErrImageTooLarge  = errors.New("image dimensions exceed the pixel limit")
)

// CheckDimensions reads only the image header and rejects images whose
// decoded size would exceed MaxPixels.
func CheckDimensions(raw []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to read image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}
	return nil
}

// Compress fits the image inside maxWidth x maxHeight, keeping the aspect
// ratio and never upscaling, and re-encodes it as JPEG at quality (0..1].
// A data URL input yields a data URL output; raw bytes yield raw bytes.
func Compress(input []byte, maxWidth, maxHeight int, quality float64) ([]byte, error) {
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", maxWidth, maxHeight)
	}

	raw, isDataURL, err := DecodeImagePayload(input)
	if err != nil {
		return nil, err
	}

	if err := CheckDimensions(raw); err != nil {
		return nil, err
	}
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	width, height := FitSize(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// JPEG has no alpha channel; flatten onto white like a printed card
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality(quality)}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	if isDataURL {
		return []byte("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())), nil
	}
	return buf.Bytes(), nil
}

// FitSize returns the largest size with the source aspect ratio that fits the
// bounds. Sources already inside the bounds are returned unchanged.
func FitSize(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= 0 || height <= 0 {
		return 1, 1
	}
	scale := math.Min(float64(maxWidth)/float64(width), float64(maxHeight)/float64(height))
	if scale >= 1 {
		return width, height
	}
	w := int(math.Round(float64(width) * scale))
	h := int(math.Round(float64(height) * scale))
	return max(w, 1), max(h, 1)
}

// DecodeImagePayload accepts raw image bytes, a data URL, or bare base64 and
// returns the binary image plus whether the input was a data URL.
func DecodeImagePayload(input []byte) ([]byte, bool, error) {
	text := strings.TrimSpace(string(input))
	if strings.HasPrefix(text, "data:") {
		comma := strings.IndexByte(text, ',')
		if comma < 0 || !strings.Contains(text[:comma], ";base64") {
			return nil, true, ErrInvalidDataURL
		}
		raw, err := base64.StdEncoding.DecodeString(text[comma+1:])
		if err != nil {
			return nil, true, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
		}
		return raw, true, nil
	}
	if looksLikeImage(input) {
		return input, false, nil
	}
	if raw, err := base64.StdEncoding.DecodeString(text); err == nil {
		return raw, false, nil
	}
	return input, false, nil
}

// MimeType sniffs the content type of a binary image payload.
func MimeType(raw []byte) string {
	switch {
	case bytes.HasPrefix(raw, []byte("\x89PNG\r\n\x1a\n")):
		return "image/png"
	case bytes.HasPrefix(raw, []byte{0xFF, 0xD8, 0xFF}):
		return "image/jpeg"
	case len(raw) > 12 && string(raw[0:4]) == "RIFF" && string(raw[8:12]) == "WEBP":
		return "image/webp"
	}
	return "application/octet-stream"
}

func looksLikeImage(raw []byte) bool {
	return MimeType(raw) != "application/octet-stream"
}

func jpegQuality(quality float64) int {
	q := int(math.Round(quality * 100))
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}
