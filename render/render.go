// Package render dispatches scene rendering to a backend.
//
// A Renderer holds either an explicitly chosen backend or an automatic
// policy that picks the raster canvas for light scenes and the GPU backend
// once the scene complexity exceeds a threshold. With caching enabled, the
// last result is kept together with the scene version that produced it, so
// rendering an unchanged scene onto the same target skips the backend.
//
// Importing this package registers the canvas, svg and webgl backends.
package render

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/sketch/backend"
	_ "github.com/gogpu/sketch/backend/canvas" // register "canvas"
	_ "github.com/gogpu/sketch/backend/gpu"    // register "webgl"
	_ "github.com/gogpu/sketch/backend/svg"    // register "svg"
	"github.com/gogpu/sketch/diag"
	"github.com/gogpu/sketch/element"
	"github.com/gogpu/sketch/scene"
)

// DefaultAutoThreshold is the complexity above which auto-selection picks
// the GPU backend.
const DefaultAutoThreshold = 1000

// ErrNilBackend is returned by New when WithBackend is given nil.
var ErrNilBackend = errors.New("render: nil backend")

// Config selects and tunes the backend.
type Config struct {
	// Backend is "canvas", "svg", "webgl" or its alias "gpu". Any other
	// value, including "" and "auto", selects by complexity on every render.
	Backend string

	// Cache enables reuse of the last result while the scene is unchanged.
	Cache bool

	// AutoThreshold is the complexity cutover. Zero or less means
	// DefaultAutoThreshold.
	AutoThreshold float64

	// Weight scores root elements for auto-selection. Nil means
	// element.UniformWeight.
	Weight element.Weight
}

// DefaultConfig returns the canvas backend with caching off.
func DefaultConfig() Config {
	return Config{
		Backend:       backend.NameCanvas,
		AutoThreshold: DefaultAutoThreshold,
		Weight:        element.UniformWeight,
	}
}

// IsExplicit reports whether name selects a backend directly rather than
// by complexity.
func IsExplicit(name string) bool {
	switch backend.Canonical(name) {
	case backend.NameCanvas, backend.NameSVG, backend.NameWebGL:
		return true
	}
	return false
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithDiagnostics sets the collector that receives render-time skips as
// warnings.
func WithDiagnostics(c *diag.Collector) Option {
	return func(r *Renderer) { r.diag = c }
}

// WithLogger sets the logger for backend selection and cache events.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// WithBackend uses b for every render, overriding Config.Backend.
func WithBackend(b backend.Backend) Option {
	return func(r *Renderer) {
		r.fixed = b
		r.hasFixed = true
	}
}

// entry is the cached result of the last render.
type entry struct {
	scene   *scene.Scene
	version uint64
	target  backend.Target
	result  backend.Target
}

// Renderer renders scenes through the configured backend. It is safe for
// concurrent use, though renders are serialized.
type Renderer struct {
	cfg  Config
	diag *diag.Collector
	log  *slog.Logger

	fixed    backend.Backend
	hasFixed bool

	mu        sync.Mutex
	current   backend.Backend
	instances map[string]backend.Backend
	last      *entry
	invalid   bool
}

// New creates a Renderer. An explicit Config.Backend must be registered.
func New(cfg Config, opts ...Option) (*Renderer, error) {
	if cfg.AutoThreshold <= 0 {
		cfg.AutoThreshold = DefaultAutoThreshold
	}
	if cfg.Weight == nil {
		cfg.Weight = element.UniformWeight
	}
	r := &Renderer{
		cfg:       cfg,
		log:       slog.New(slog.DiscardHandler),
		instances: make(map[string]backend.Backend),
	}
	for _, opt := range opts {
		opt(r)
	}

	switch {
	case r.hasFixed:
		if r.fixed == nil {
			return nil, ErrNilBackend
		}
		r.wire(r.fixed)
		r.current = r.fixed
	case IsExplicit(cfg.Backend):
		b, err := r.instance(backend.Canonical(cfg.Backend))
		if err != nil {
			return nil, err
		}
		r.current = b
	default:
		b, err := r.instance(backend.NameCanvas)
		if err != nil {
			return nil, err
		}
		r.current = b
	}
	return r, nil
}

// Config returns the effective configuration.
func (r *Renderer) Config() Config { return r.cfg }

// Auto reports whether the backend is chosen per render.
func (r *Renderer) Auto() bool {
	return !r.hasFixed && !IsExplicit(r.cfg.Backend)
}

// Backend returns the name of the backend used by the last render, or the
// initial choice before any render.
func (r *Renderer) Backend() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current.Name()
}

// Complexity returns the weighted complexity of s.
func (r *Renderer) Complexity(s *scene.Scene) float64 {
	if s == nil {
		return 0
	}
	return s.Complexity(r.cfg.Weight)
}

// SelectBackend returns the backend name a render of s would use.
func (r *Renderer) SelectBackend(s *scene.Scene) string {
	switch {
	case r.hasFixed:
		return r.fixed.Name()
	case IsExplicit(r.cfg.Backend):
		return backend.Canonical(r.cfg.Backend)
	case r.Complexity(s) > r.cfg.AutoThreshold:
		return backend.NameWebGL
	default:
		return backend.NameCanvas
	}
}

// Dirty reports whether the next render of s would call the backend: there
// is no cached result, it came from another scene or an older version of
// s, or Invalidate was called.
func (r *Renderer) Dirty(s *scene.Scene) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dirty(s, nil)
}

// Invalidate forces the next render to call the backend.
func (r *Renderer) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalid = true
}

// Render draws s onto t and returns the backend's result, normally t.
//
// With caching enabled, rendering the same scene at the same version onto
// the same target returns the previous result without calling the backend.
func (r *Renderer) Render(s *scene.Scene, t backend.Target) (backend.Target, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cfg.Cache && !r.dirty(s, t) {
		r.log.Debug("render: cache hit", "backend", r.current.Name(), "version", versionOf(s))
		return r.last.result, nil
	}

	if r.Auto() {
		name := r.SelectBackend(s)
		b, err := r.instance(name)
		if err != nil {
			return nil, err
		}
		if b != r.current {
			r.log.Debug("render: backend selected",
				"backend", name,
				"complexity", r.Complexity(s),
				"threshold", r.cfg.AutoThreshold)
		}
		r.current = b
	}

	result, err := r.current.Render(s, t)
	if err != nil {
		r.last = nil
		return nil, fmt.Errorf("render: %s: %w", r.current.Name(), err)
	}
	if r.cfg.Cache {
		r.last = &entry{scene: s, version: versionOf(s), target: t, result: result}
		r.invalid = false
	}
	return result, nil
}

// dirty must be called with r.mu held. A nil t matches any target.
func (r *Renderer) dirty(s *scene.Scene, t backend.Target) bool {
	if r.invalid || r.last == nil {
		return true
	}
	if r.last.scene != s || r.last.version != versionOf(s) {
		return true
	}
	return t != nil && r.last.target != t
}

// instance returns the shared backend for name, creating it on first use.
func (r *Renderer) instance(name string) (backend.Backend, error) {
	if b, ok := r.instances[name]; ok {
		return b, nil
	}
	b, err := backend.New(name)
	if err != nil {
		return nil, err
	}
	r.wire(b)
	r.instances[name] = b
	return b, nil
}

// wire routes the backend's skip reports to diagnostics.
func (r *Renderer) wire(b backend.Backend) {
	sr, ok := b.(backend.SkipReporter)
	if !ok {
		return
	}
	name := b.Name()
	sr.SetSkipFunc(func(el element.Element, reason error) {
		ctx := map[string]any{"backend": name, "kind": kindOf(el)}
		if reason != nil {
			ctx["reason"] = reason.Error()
		}
		if r.diag != nil {
			r.diag.Warn("render: element skipped", ctx)
			return
		}
		r.log.Warn("render: element skipped", "backend", name, "kind", ctx["kind"], "reason", ctx["reason"])
	})
}

func kindOf(el element.Element) string {
	if el == nil {
		return "<nil>"
	}
	return string(el.Kind())
}

func versionOf(s *scene.Scene) uint64 {
	if s == nil {
		return 0
	}
	return s.Version()
}
