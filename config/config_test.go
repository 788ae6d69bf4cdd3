package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/sketch/element"
)

const yamlDoc = `
backend: auto
cache: true
auto_threshold: 250
weights: detail
log_level: debug
server:
  addr: ":9090"
  read_timeout: 2s
unknown_key: ignored
`

const tomlDoc = `
backend = "svg"
cache = true
log_level = "warn"
extra = 1

[server]
addr = "127.0.0.1:8081"
write_timeout = "1m"
`

func TestDefault(t *testing.T) {
	f := Default()
	require.NoError(t, f.Validate())
	assert.Equal(t, "canvas", f.Backend)
	assert.False(t, f.Cache)
	assert.Equal(t, 1000.0, f.AutoThreshold)
	assert.Equal(t, slog.LevelInfo, f.SlogLevel())
}

func TestParseYAML(t *testing.T) {
	f, err := Parse([]byte(yamlDoc), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "auto", f.Backend)
	assert.True(t, f.Cache)
	assert.Equal(t, 250.0, f.AutoThreshold)
	assert.Equal(t, slog.LevelDebug, f.SlogLevel())
	assert.Equal(t, ":9090", f.Server.Addr)
	assert.Equal(t, Duration(2*time.Second), f.Server.ReadTimeout)
	// Absent keys keep defaults.
	assert.Equal(t, Duration(10*time.Second), f.Server.WriteTimeout)
}

func TestParseTOML(t *testing.T) {
	f, err := Parse([]byte(tomlDoc), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, "svg", f.Backend)
	assert.True(t, f.Cache)
	assert.Equal(t, 1000.0, f.AutoThreshold)
	assert.Equal(t, slog.LevelWarn, f.SlogLevel())
	assert.Equal(t, "127.0.0.1:8081", f.Server.Addr)
	assert.Equal(t, Duration(time.Minute), f.Server.WriteTimeout)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"negative threshold", "auto_threshold: -1"},
		{"unknown weights", "weights: heavy"},
		{"bad log level", "log_level: loud"},
		{"bad duration", "server:\n  read_timeout: soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), FormatYAML)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte("backend = ["), FormatTOML)
	assert.Error(t, err)
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{
		"a.yaml": FormatYAML,
		"a.YML":  FormatYAML,
		"a.toml": FormatTOML,
	} {
		got, err := FormatOf(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := FormatOf("a.json")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sketch.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlDoc), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "svg", f.Backend)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRenderConfig(t *testing.T) {
	f := Default()
	f.Backend = "webgl"
	f.Cache = true
	f.Weights = WeightsDetail

	cfg := f.RenderConfig()
	assert.Equal(t, "webgl", cfg.Backend)
	assert.True(t, cfg.Cache)
	assert.Equal(t, 1000.0, cfg.AutoThreshold)

	poly := &element.Polygon{Points: make([]element.Point, 12)}
	assert.Equal(t, 4.0, cfg.Weight(poly), "detail weight scores by vertex count")
}

func TestDurationText(t *testing.T) {
	b, err := Duration(90 * time.Second).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(b))
}
