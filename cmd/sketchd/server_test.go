package main

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/sketch/config"
)

func do(t *testing.T, target string) *http.Response {
	t.Helper()
	app := newApp(config.Default(), slog.New(slog.DiscardHandler))
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthLive(t *testing.T) {
	resp := do(t, "/health/live")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "alive", body["status"])
}

func TestDemoSVG(t *testing.T) {
	resp := do(t, "/demo.svg")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<svg"), out)
	assert.Contains(t, out, "<circle")
	assert.Contains(t, out, "sketch</text>")
}

func decodePNG(t *testing.T, resp *http.Response) image.Image {
	t.Helper()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, demoWidth, demoHeight), img.Bounds())
	return img
}

func TestDemoPNGCanvas(t *testing.T) {
	resp := do(t, "/demo.png?backend=canvas")
	assert.Equal(t, "canvas", resp.Header.Get("X-Sketch-Backend"))
	img := decodePNG(t, resp)

	got := color.RGBAModel.Convert(img.At(80, 100)).(color.RGBA)
	assert.Equal(t, color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}, got)
}

func TestDemoPNGWebGL(t *testing.T) {
	resp := do(t, "/demo.png?backend=webgl")
	assert.Equal(t, "webgl", resp.Header.Get("X-Sketch-Backend"))
	img := decodePNG(t, resp)

	got := color.RGBAModel.Convert(img.At(80, 100)).(color.RGBA)
	assert.Greater(t, got.B, got.R)
	assert.Equal(t, uint8(0xff), got.A)
}

func TestDemoPNGDefaultBackend(t *testing.T) {
	resp := do(t, "/demo.png")
	assert.Equal(t, "canvas", resp.Header.Get("X-Sketch-Backend"))
	decodePNG(t, resp)
}

func TestDemoPNGAutoSmallScene(t *testing.T) {
	resp := do(t, "/demo.png?backend=auto")
	assert.Equal(t, "canvas", resp.Header.Get("X-Sketch-Backend"))
	decodePNG(t, resp)
}

func TestDemoPNGRejectsSVGBackend(t *testing.T) {
	resp := do(t, "/demo.png?backend=svg")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "unsupported")
}
