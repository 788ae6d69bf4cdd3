package sketch

import (
	"log/slog"

	"github.com/gogpu/sketch/backend"
	"github.com/gogpu/sketch/diag"
	"github.com/gogpu/sketch/element"
	"github.com/gogpu/sketch/render"
)

// Option configures a Sketch during creation.
//
// Example:
//
//	sk, err := sketch.New(
//	    sketch.WithBackend("auto"),
//	    sketch.WithCache(true),
//	)
type Option func(*options)

type options struct {
	cfg     render.Config
	logger  *slog.Logger
	diag    *diag.Collector
	backend backend.Backend
}

func defaultOptions() options {
	return options{cfg: render.DefaultConfig()}
}

// WithBackend selects the backend by name: "canvas", "svg", "webgl", "gpu"
// or "auto". Unrecognized names auto-select by scene complexity.
func WithBackend(name string) Option {
	return func(o *options) { o.cfg.Backend = name }
}

// WithCache enables reuse of the last render while the scene is unchanged.
func WithCache(enabled bool) Option {
	return func(o *options) { o.cfg.Cache = enabled }
}

// WithAutoThreshold sets the complexity above which auto-selection uses
// the GPU backend.
func WithAutoThreshold(threshold float64) Option {
	return func(o *options) { o.cfg.AutoThreshold = threshold }
}

// WithWeight sets the per-element complexity policy.
func WithWeight(w element.Weight) Option {
	return func(o *options) { o.cfg.Weight = w }
}

// WithConfig replaces the whole render configuration. Options applied after
// it still adjust individual fields.
func WithConfig(cfg render.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithLogger sets the logger for this instance. The default is Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithDiagnostics shares an existing collector instead of creating one.
func WithDiagnostics(c *diag.Collector) Option {
	return func(o *options) { o.diag = c }
}

// WithRenderBackend renders through b regardless of the configured name.
func WithRenderBackend(b backend.Backend) Option {
	return func(o *options) { o.backend = b }
}
