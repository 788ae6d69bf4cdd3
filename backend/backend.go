package backend

import (
	"errors"
	"image"

	"github.com/gogpu/sketch/scene"
)

// Backend names.
const (
	NameCanvas = "canvas"
	NameSVG    = "svg"
	NameWebGL  = "webgl"

	// NameGPU is an alias for NameWebGL.
	NameGPU = "gpu"

	// NameAuto asks the dispatcher to choose by scene complexity.
	NameAuto = "auto"
)

// Errors returned by backends and the registry.
var (
	// ErrUnknownBackend is returned by New for a name with no factory.
	ErrUnknownBackend = errors.New("backend: unknown backend")

	// ErrUnsupportedTarget is returned when a backend cannot draw on the
	// kind of target it was given.
	ErrUnsupportedTarget = errors.New("backend: unsupported target")

	// ErrNilTarget is returned when Render is called without a target.
	ErrNilTarget = errors.New("backend: nil target")
)

// Target is an output surface.
type Target interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int
}

// PixelTarget is a Target backed by CPU-accessible RGBA pixels.
type PixelTarget interface {
	Target

	// Image returns the pixel buffer. It shares memory with the target.
	Image() *image.RGBA
}

// Backend renders a scene onto a target.
//
// Render clears the target, draws every element of s in order, and returns
// the target it was given. Render only reads the scene and must not retain
// it after returning. A nil scene renders as an empty one.
type Backend interface {
	// Name returns the registry name of the backend.
	Name() string

	// Render draws s onto t.
	Render(s *scene.Scene, t Target) (Target, error)
}

// SkipReporter is implemented by backends that can report skipped elements.
type SkipReporter interface {
	SetSkipFunc(fn SkipFunc)
}

// Canonical resolves aliases to the name the backend registers under.
func Canonical(name string) string {
	if name == NameGPU {
		return NameWebGL
	}
	return name
}
