// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu implements the GPU backend, registered as "webgl".
//
// Rendering produces a Frame: fan triangles for filled and stroked
// outlines, drawn with stencil-then-cover, and one SDF quad per circle or
// ellipse fill. A *Surface target keeps the frame and hands it to the
// host's Submitter. A backend.PixelTarget gets the frame resolved on the
// CPU, which lets the dispatcher pick this backend for any target.
package gpu

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/sketch/backend"
	"github.com/gogpu/sketch/internal/textshape"
	"github.com/gogpu/sketch/scene"
)

func init() {
	backend.Register(backend.NameWebGL, func() backend.Backend { return New() })
}

// Backend is the GPU backend.
type Backend struct {
	defaults backend.Defaults
	shaper   *textshape.Shaper
	skip     backend.SkipFunc
	log      *slog.Logger

	// frame is reused for pixel targets.
	frame *Frame
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

// WithLogger sets the logger for frame statistics, logged at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) { b.log = l }
}

// New creates a GPU backend.
func New(opts ...Option) *Backend {
	b := &Backend{defaults: backend.Default}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return backend.NameWebGL }

// SetSkipFunc implements backend.SkipReporter.
func (b *Backend) SetSkipFunc(fn backend.SkipFunc) { b.skip = fn }

// Render builds a frame for s. On a *Surface the frame replaces the
// surface's previous frame and is passed to its Submitter. On a
// backend.PixelTarget the frame is resolved into the pixels.
func (b *Backend) Render(s *scene.Scene, t backend.Target) (backend.Target, error) {
	if t == nil {
		return nil, backend.ErrNilTarget
	}

	switch tt := t.(type) {
	case *Surface:
		f := b.Build(s, tt.Width(), tt.Height())
		tt.frame = f
		if tt.submitter != nil {
			if err := tt.submitter.Submit(f); err != nil {
				return nil, fmt.Errorf("gpu: submit frame: %w", err)
			}
		}
		return t, nil

	case backend.PixelTarget:
		if b.frame == nil {
			b.frame = NewFrame(tt.Width(), tt.Height())
		}
		b.build(b.frame, s, tt.Width(), tt.Height())
		Resolve(b.frame, tt.Image())
		return t, nil

	default:
		return nil, backend.ErrUnsupportedTarget
	}
}

// Build returns a new frame drawing s onto a width x height target.
func (b *Backend) Build(s *scene.Scene, width, height int) *Frame {
	f := NewFrame(width, height)
	b.build(f, s, width, height)
	return f
}

func (b *Backend) build(f *Frame, s *scene.Scene, width, height int) {
	f.Reset(width, height)
	if s == nil {
		return
	}
	backend.Walk(s.Elements(), newBuilder(f, b.defaults, b.shaper), b.skip)
	if b.log != nil {
		b.log.Debug("gpu: frame built",
			"batches", len(f.Batches),
			"triangles", f.TriangleCount(),
			"texts", len(f.Text))
	}
}

var (
	_ backend.Backend      = (*Backend)(nil)
	_ backend.SkipReporter = (*Backend)(nil)
	_ backend.Target       = (*Surface)(nil)
)
