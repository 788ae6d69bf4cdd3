// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Submitter receives each frame rendered onto a Surface. A host with a real
// device uploads the vertex data and records the draw calls here.
type Submitter interface {
	Submit(f *Frame) error
}

// SubmitFunc adapts a function to Submitter.
type SubmitFunc func(f *Frame) error

// Submit calls fn(f).
func (fn SubmitFunc) Submit(f *Frame) error { return fn(f) }

// nullProvider stands in when the host supplies no device. Frames are still
// built and submitted; nothing touches a GPU.
type nullProvider struct{}

func (nullProvider) Device() gpucontext.Device   { return nil }
func (nullProvider) Queue() gpucontext.Queue     { return nil }
func (nullProvider) Adapter() gpucontext.Adapter { return nil }
func (nullProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}
func (nullProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

var _ gpucontext.DeviceProvider = nullProvider{}

// Surface is the render target of the GPU backend.
//
// A Surface is not safe for concurrent use.
type Surface struct {
	width, height int
	provider      gpucontext.DeviceProvider
	submitter     Submitter
	pipeline      *Pipeline
	frame         *Frame
}

// SurfaceOption configures a Surface.
type SurfaceOption func(*Surface)

// WithDeviceProvider attaches the host's GPU device.
func WithDeviceProvider(p gpucontext.DeviceProvider) SurfaceOption {
	return func(s *Surface) {
		if p != nil {
			s.provider = p
		}
	}
}

// WithSubmitter sets the receiver of rendered frames.
func WithSubmitter(sub Submitter) SurfaceOption {
	return func(s *Surface) { s.submitter = sub }
}

// NewSurface creates a width x height surface. Negative sizes are treated
// as zero.
func NewSurface(width, height int, opts ...SurfaceOption) *Surface {
	s := &Surface{
		width:    max(width, 0),
		height:   max(height, 0),
		provider: nullProvider{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.pipeline = NewPipeline(s.Format())
	return s
}

// Width implements backend.Target.
func (s *Surface) Width() int { return s.width }

// Height implements backend.Target.
func (s *Surface) Height() int { return s.height }

// DeviceProvider returns the attached device provider.
func (s *Surface) DeviceProvider() gpucontext.DeviceProvider { return s.provider }

// Format returns the color format frames are drawn in. A provider that
// reports no format gets RGBA8Unorm.
func (s *Surface) Format() gputypes.TextureFormat {
	if f := s.provider.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		return f
	}
	return gputypes.TextureFormatRGBA8Unorm
}

// Pipeline returns the pipeline description for this surface's format.
func (s *Surface) Pipeline() *Pipeline { return s.pipeline }

// Frame returns the last rendered frame, or nil before the first render.
func (s *Surface) Frame() *Frame { return s.frame }

// HasDevice reports whether a real device is attached.
func (s *Surface) HasDevice() bool { return s.provider.Device() != nil }
