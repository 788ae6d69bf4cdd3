// Package diag collects the errors and warnings produced while building,
// validating and rendering a scene.
//
// A Collector belongs to one facade instance. Every record is kept in memory
// for inspection and also written to an operator log sink.
package diag

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a record.
type Kind string

// Record kinds.
const (
	KindError   Kind = "error"
	KindWarning Kind = "warning"
)

// Record is one diagnostic entry.
type Record struct {
	ID      uuid.UUID
	Kind    Kind
	Message string
	Context map[string]any
	Time    time.Time
}

// Collector accumulates records. It is safe for concurrent use.
type Collector struct {
	mu       sync.Mutex
	errors   []Record
	warnings []Record
	log      *slog.Logger
	now      func() time.Time
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger sets the operator log sink. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Collector) { c.log = l }
}

// New returns an empty Collector.
func New(opts ...Option) *Collector {
	c := &Collector{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	return c
}

// Error records an error and logs it at error level.
func (c *Collector) Error(msg string, ctx map[string]any) Record {
	return c.add(KindError, msg, ctx)
}

// Warn records a warning and logs it at warn level.
func (c *Collector) Warn(msg string, ctx map[string]any) Record {
	return c.add(KindWarning, msg, ctx)
}

func (c *Collector) add(kind Kind, msg string, ctx map[string]any) Record {
	r := Record{
		ID:      uuid.New(),
		Kind:    kind,
		Message: msg,
		Context: copyContext(ctx),
		Time:    c.now(),
	}

	c.mu.Lock()
	if kind == KindError {
		c.errors = append(c.errors, r)
	} else {
		c.warnings = append(c.warnings, r)
	}
	log := c.log
	c.mu.Unlock()

	level := slog.LevelWarn
	if kind == KindError {
		level = slog.LevelError
	}
	log.LogAttrs(context.Background(), level, msg, attrs(r)...)
	return r
}

// HasErrors reports whether any error has been recorded since the last Clear.
func (c *Collector) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errors) > 0
}

// Errors returns a copy of the recorded errors, oldest first.
func (c *Collector) Errors() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Record(nil), c.errors...)
}

// Warnings returns a copy of the recorded warnings, oldest first.
func (c *Collector) Warnings() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Record(nil), c.warnings...)
}

// Clear drops every record.
func (c *Collector) Clear() {
	c.mu.Lock()
	c.errors = nil
	c.warnings = nil
	c.mu.Unlock()
}

// Go runs op under Handle and reports whether it succeeded.
func (c *Collector) Go(op func() error) bool {
	return Handle(c, func() (bool, error) {
		if err := op(); err != nil {
			return false, err
		}
		return true, nil
	}, false)
}

// Handle runs op. If op returns an error or panics, the failure is recorded
// as an error on c and fallback is returned. A recovered panic carries the
// goroutine stack under the "stack" context key.
func Handle[T any](c *Collector, op func() (T, error), fallback T) (result T) {
	defer func() {
		if p := recover(); p != nil {
			c.Error(fmt.Sprint(p), map[string]any{
				"panic": true,
				"stack": string(debug.Stack()),
			})
			result = fallback
		}
	}()

	v, err := op()
	if err != nil {
		c.Error(err.Error(), map[string]any{"error": err})
		return fallback
	}
	return v
}

func copyContext(ctx map[string]any) map[string]any {
	if len(ctx) == 0 {
		return nil
	}
	out := make(map[string]any, len(ctx))
	for k, v := range ctx {
		out[k] = v
	}
	return out
}

// attrs flattens a record into log attributes with stable key order.
func attrs(r Record) []slog.Attr {
	out := make([]slog.Attr, 0, len(r.Context)+1)
	out = append(out, slog.String("id", r.ID.String()))
	keys := make([]string, 0, len(r.Context))
	for k := range r.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, slog.Any(k, r.Context[k]))
	}
	return out
}
