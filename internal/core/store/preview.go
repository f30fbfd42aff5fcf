package store

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"
)

// thumbnailMax bounds the longest edge of a preview thumbnail.
const thumbnailMax = 64

// writeThumbnail decodes data, scales it down and writes it as a PNG temp
// file. The caller owns the returned path.
func writeThumbnail(data []byte) (string, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > h {
		h = h * thumbnailMax / w
		w = thumbnailMax
	} else {
		w = w * thumbnailMax / h
		h = thumbnailMax
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)

	f, err := os.CreateTemp("", "dermassist-preview-*.png")
	if err != nil {
		return "", fmt.Errorf("create preview: %w", err)
	}
	if err := png.Encode(f, dst); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("encode preview: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
