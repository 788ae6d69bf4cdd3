// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package canvas implements the raster backend. It scan-converts element
// geometry with golang.org/x/image/vector into any backend.PixelTarget.
package canvas

import (
	"image"
	"image/draw"

	"github.com/gogpu/sketch/backend"
	"github.com/gogpu/sketch/internal/textshape"
	"github.com/gogpu/sketch/scene"
)

func init() {
	backend.Register(backend.NameCanvas, func() backend.Backend { return New() })
}

// Backend is the raster canvas backend.
type Backend struct {
	defaults backend.Defaults
	shaper   *textshape.Shaper
	skip     backend.SkipFunc
}

// Option configures a Backend.
type Option func(*Backend)

// WithDefaults overrides the draw-time fallbacks.
func WithDefaults(d backend.Defaults) Option {
	return func(b *Backend) { b.defaults = d }
}

// WithShaper sets the text shaper. The default is textshape.Default().
func WithShaper(s *textshape.Shaper) Option {
	return func(b *Backend) { b.shaper = s }
}

// New creates a canvas backend.
func New(opts ...Option) *Backend {
	b := &Backend{defaults: backend.Default}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return backend.NameCanvas }

// SetSkipFunc implements backend.SkipReporter.
func (b *Backend) SetSkipFunc(fn backend.SkipFunc) { b.skip = fn }

// Render clears t to transparent and draws s onto it. t must be a
// backend.PixelTarget.
func (b *Backend) Render(s *scene.Scene, t backend.Target) (backend.Target, error) {
	if t == nil {
		return nil, backend.ErrNilTarget
	}
	pt, ok := t.(backend.PixelTarget)
	if !ok {
		return nil, backend.ErrUnsupportedTarget
	}

	img := pt.Image()
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	if s == nil {
		return t, nil
	}

	c := NewContext(img, b.defaults, b.shaper)
	backend.Walk(s.Elements(), c, b.skip)
	return t, nil
}

var (
	_ backend.Backend      = (*Backend)(nil)
	_ backend.SkipReporter = (*Backend)(nil)
)
