// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package primitive

import (
	"fmt"
	"image"
	"os"

	// Registered decoders for LoadImage.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"

	"github.com/gogpu/viewport/internal/logger"
)

// MaxTextureSize is the largest width or height a texture core keeps.
// Larger images are scaled down, preserving aspect ratio, when the core is
// initialized.
var MaxTextureSize = 2048

// LoadImage decodes the image file at path. PNG, JPEG, GIF, BMP, TIFF and
// WebP files are recognized by content.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("primitive: open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("primitive: decode %s: %w", path, err)
	}
	logger.Logger().Debug("primitive: image loaded",
		"path", path, "format", format, "size", img.Bounds().Size())
	return img, nil
}

// toNRGBA copies src into a non-premultiplied RGBA image whose bounds start
// at the origin, scaling it down to fit within limit pixels per side.
func toNRGBA(src image.Image, limit int) *image.NRGBA {
	sb := src.Bounds()
	w, h := sb.Dx(), sb.Dy()
	if limit > 0 && (w > limit || h > limit) {
		if w >= h {
			w, h = limit, max(1, h*limit/w)
		} else {
			w, h = max(1, w*limit/h), limit
		}
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, draw.Src, nil)
		logger.Logger().Debug("primitive: texture resampled",
			"from", sb.Size(), "to", dst.Bounds().Size())
		return dst
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), src, sb.Min, draw.Src)
	return dst
}
