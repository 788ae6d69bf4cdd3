// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/gogpu/gputypes"
)

// PixmapTarget is a CPU-backed render target using *image.RGBA.
//
// The canvas backend draws into it directly; the GPU backend resolves its
// frame into it when no device is attached.
//
// Example:
//
//	target := backend.NewPixmapTarget(800, 600)
//	r.Render(s, target)
//	img := target.Image()
type PixmapTarget struct {
	img *image.RGBA
}

// NewPixmapTarget creates a new transparent target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns direct access to the pixel data.
func (t *PixmapTarget) Pixels() []byte {
	return t.img.Pix
}

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int {
	return t.img.Stride
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Clear fills the entire target with c. A nil color clears to transparent.
func (t *PixmapTarget) Clear(c color.Color) {
	if c == nil {
		clear(t.img.Pix)
		return
	}
	draw.Draw(t.img, t.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// At returns the pixel at (x, y). Out-of-bounds reads return transparent.
func (t *PixmapTarget) At(x, y int) color.RGBA {
	return t.img.RGBAAt(x, y)
}

// EncodePNG writes the target as a PNG image.
func (t *PixmapTarget) EncodePNG(w io.Writer) error {
	return png.Encode(w, t.img)
}

// Ensure PixmapTarget implements PixelTarget.
var _ PixelTarget = (*PixmapTarget)(nil)
