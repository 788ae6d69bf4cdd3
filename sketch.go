package sketch

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/sketch/backend"
	"github.com/gogpu/sketch/diag"
	"github.com/gogpu/sketch/element"
	"github.com/gogpu/sketch/render"
	"github.com/gogpu/sketch/scene"
	"github.com/gogpu/sketch/validate"
)

// Sketch owns a scene and wires it to validation, diagnostics and
// rendering.
//
// A Sketch is not safe for concurrent mutation; confine each instance to
// one goroutine.
type Sketch struct {
	// Mid builds elements from geometry and options and appends them.
	Mid *MidLevel

	// Low is a terse positional wrapper over Mid.
	Low *LowLevel

	scene     *scene.Scene
	validator *validate.Validator
	diag      *diag.Collector
	renderer  *render.Renderer
	log       *slog.Logger
}

// New creates a Sketch with an empty scene.
func New(opts ...Option) (*Sketch, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = Logger()
	}
	collector := o.diag
	if collector == nil {
		collector = diag.New(diag.WithLogger(log))
	}

	ropts := []render.Option{render.WithDiagnostics(collector), render.WithLogger(log)}
	if o.backend != nil {
		ropts = append(ropts, render.WithBackend(o.backend))
	}
	r, err := render.New(o.cfg, ropts...)
	if err != nil {
		return nil, fmt.Errorf("sketch: %w", err)
	}

	s := &Sketch{
		scene:     scene.New(),
		validator: validate.New(),
		diag:      collector,
		renderer:  r,
		log:       log,
	}
	s.Mid = &MidLevel{s: s}
	s.Low = &LowLevel{mid: s.Mid}
	return s, nil
}

// Append adds el to the end of the scene. Nil elements are ignored.
// Elements are not validated here; use Validate or ValidateScene.
func (s *Sketch) Append(el element.Element) {
	if el == nil {
		return
	}
	s.scene.Append(el)
}

// Validate checks el without touching the scene.
func (s *Sketch) Validate(el element.Element) error {
	return s.validator.ValidateElement(el)
}

// ValidateScene checks every root element, records each failure as a
// diagnostics error and returns them joined.
func (s *Sketch) ValidateScene() error {
	var errs []error
	for i, el := range s.scene.Elements() {
		if err := s.validator.ValidateElement(el); err != nil {
			s.diag.Error(err.Error(), map[string]any{"index": i, "error": err})
			errs = append(errs, fmt.Errorf("element %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Render draws the scene onto target and returns the result, normally
// target itself. A failure is recorded in diagnostics and returned.
func (s *Sketch) Render(target backend.Target) (backend.Target, error) {
	out, err := s.renderer.Render(s.scene, target)
	if err != nil {
		s.diag.Error(err.Error(), map[string]any{"backend": s.renderer.SelectBackend(s.scene), "error": err})
		return nil, err
	}
	return out, nil
}

// Clear removes every element from the scene.
func (s *Sketch) Clear() { s.scene.Clear() }

// Scene returns the owned scene. Mutating it directly is allowed; Append
// and Clear on the scene bump its version like the facade methods do.
func (s *Sketch) Scene() *scene.Scene { return s.scene }

// Renderer returns the render dispatcher.
func (s *Sketch) Renderer() *render.Renderer { return s.renderer }

// Diagnostics returns the collector.
func (s *Sketch) Diagnostics() *diag.Collector { return s.diag }

// RecordError appends an error record.
func (s *Sketch) RecordError(msg string, ctx map[string]any) diag.Record {
	return s.diag.Error(msg, ctx)
}

// RecordWarning appends a warning record.
func (s *Sketch) RecordWarning(msg string, ctx map[string]any) diag.Record {
	return s.diag.Warn(msg, ctx)
}

// HasErrors reports whether any error was recorded.
func (s *Sketch) HasErrors() bool { return s.diag.HasErrors() }

// Errors returns the recorded errors.
func (s *Sketch) Errors() []diag.Record { return s.diag.Errors() }

// Warnings returns the recorded warnings.
func (s *Sketch) Warnings() []diag.Record { return s.diag.Warnings() }

// ClearDiagnostics empties both diagnostics lists.
func (s *Sketch) ClearDiagnostics() { s.diag.Clear() }

// Try runs op and records its error, or a panic, instead of propagating
// it. It reports whether op succeeded.
func (s *Sketch) Try(op func() error) bool { return s.diag.Go(op) }
