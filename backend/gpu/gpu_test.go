// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/sketch/backend"
	"github.com/gogpu/sketch/backend/svg"
	"github.com/gogpu/sketch/element"
	"github.com/gogpu/sketch/scene"
)

var red = color.RGBA{R: 255, A: 255}

func sceneOf(els ...element.Element) *scene.Scene {
	s := scene.New()
	for _, el := range els {
		s.Append(el)
	}
	return s
}

func resolve(t *testing.T, w, h int, els ...element.Element) *backend.PixmapTarget {
	t.Helper()
	target := backend.NewPixmapTarget(w, h)
	out, err := New().Render(sceneOf(els...), target)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out != backend.Target(target) {
		t.Fatal("Render() should return the target it was given")
	}
	return target
}

func TestCircleBuildsSDFQuad(t *testing.T) {
	c := &element.Circle{Style: element.Style{Fill: "#ff0000"}, X: 50, Y: 50, Radius: 20}
	f := New().Build(sceneOf(c), 100, 100)

	if len(f.Batches) != 1 {
		t.Fatalf("batches = %d, want 1", len(f.Batches))
	}
	b := f.Batches[0]
	if b.Kind != BatchSDF || b.Count != sdfVerticesPerQuad {
		t.Fatalf("batch = %+v, want one SDF quad", b)
	}
	if len(f.SDF) != 6 || len(f.Fill) != 0 {
		t.Fatalf("SDF = %d vertices, Fill = %d floats", len(f.SDF), len(f.Fill))
	}
	// TL corner: 50-21 = 29 px -> NDC -0.42, y flipped.
	tl := f.SDF[0]
	if tl.Local != [2]float32{-21, -21} {
		t.Errorf("TL local = %v, want [-21 -21]", tl.Local)
	}
	if d := tl.Position[0] - (-0.42); d > 1e-5 || d < -1e-5 {
		t.Errorf("TL x = %v, want -0.42", tl.Position[0])
	}
	if d := tl.Position[1] - 0.42; d > 1e-5 || d < -1e-5 {
		t.Errorf("TL y = %v, want 0.42", tl.Position[1])
	}
	if tl.Color != [4]float32{1, 0, 0, 1} {
		t.Errorf("color = %v", tl.Color)
	}
	if f.TriangleCount() != 2 {
		t.Errorf("TriangleCount() = %d, want 2", f.TriangleCount())
	}
}

func TestRectMapsToNDC(t *testing.T) {
	r := &element.Rect{Style: element.Style{Fill: "red"}, Width: 100, Height: 50}
	f := New().Build(sceneOf(r), 100, 50)

	if len(f.Batches) != 1 || f.Batches[0].Kind != BatchFill {
		t.Fatalf("batches = %+v, want one fill batch", f.Batches)
	}
	b := f.Batches[0]
	if b.Bounds != [4]float32{-1, -1, 1, 1} {
		t.Errorf("bounds = %v, want full viewport", b.Bounds)
	}
	if b.Count != 6 {
		t.Errorf("vertex count = %d, want 6 (two fan triangles)", b.Count)
	}
	quad := b.CoverQuad()
	if quad[0] != -1 || quad[3] != -1 || quad[4] != 1 {
		t.Errorf("cover quad = %v", quad)
	}
}

func TestPaintOrderPreserved(t *testing.T) {
	f := New().Build(sceneOf(
		&element.Rect{Style: element.Style{Fill: "blue"}, Width: 10, Height: 10},
		&element.Circle{Style: element.Style{Fill: "red"}, X: 5, Y: 5, Radius: 3},
		&element.Line{X2: 10, Y2: 10},
	), 20, 20)

	want := []BatchKind{BatchFill, BatchSDF, BatchFill}
	if len(f.Batches) != len(want) {
		t.Fatalf("batches = %d, want %d", len(f.Batches), len(want))
	}
	for i, k := range want {
		if f.Batches[i].Kind != k {
			t.Errorf("batch %d kind = %v, want %v", i, f.Batches[i].Kind, k)
		}
	}
	// The line has no stroke set and draws in black.
	if f.Batches[2].Color != [4]float32{0, 0, 0, 1} {
		t.Errorf("line color = %v, want opaque black", f.Batches[2].Color)
	}
}

func TestZeroOpacityDrawsNothing(t *testing.T) {
	c := &element.Circle{Style: element.Style{Fill: "red", Opacity: element.Ptr(0.0)}, X: 5, Y: 5, Radius: 3}
	f := New().Build(sceneOf(c), 10, 10)
	if !f.Empty() {
		t.Errorf("batches = %+v, want none", f.Batches)
	}
}

func TestResolveCircle(t *testing.T) {
	c := &element.Circle{Style: element.Style{Fill: "#ff0000"}, X: 50, Y: 50, Radius: 20}
	target := resolve(t, 100, 100, c)

	if got := target.At(50, 50); got != red {
		t.Errorf("center = %v, want %v", got, red)
	}
	if got := target.At(5, 5); got != (color.RGBA{}) {
		t.Errorf("corner = %v, want transparent", got)
	}
	// Just outside the radius along the axis.
	if got := target.At(50, 75); got != (color.RGBA{}) {
		t.Errorf("outside = %v, want transparent", got)
	}
}

func TestResolveRotatedEllipse(t *testing.T) {
	e := &element.Ellipse{
		Style: element.Style{
			Fill:      "red",
			Transform: &element.Transform{Translate: &element.Point{X: 50, Y: 50}, Rotate: 90},
		},
		RX: 40, RY: 10,
	}
	target := resolve(t, 100, 100, e)

	if got := target.At(50, 80); got != red {
		t.Errorf("along rotated major axis = %v, want %v", got, red)
	}
	if got := target.At(80, 50); got != (color.RGBA{}) {
		t.Errorf("along rotated minor axis = %v, want transparent", got)
	}
}

func TestResolveConcavePolygon(t *testing.T) {
	// An L shape; the notch at the top right must stay empty.
	p := &element.Polygon{
		Style: element.Style{Fill: "red"},
		Points: []element.Point{
			{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 60}, {X: 60, Y: 60}, {X: 60, Y: 80}, {X: 0, Y: 80},
		},
	}
	target := resolve(t, 100, 100, p)

	if got := target.At(15, 5); got != red {
		t.Errorf("stem = %v, want %v", got, red)
	}
	if got := target.At(50, 70); got != red {
		t.Errorf("foot = %v, want %v", got, red)
	}
	if got := target.At(50, 20); got != (color.RGBA{}) {
		t.Errorf("notch = %v, want transparent", got)
	}
}

func TestResolveClearsTarget(t *testing.T) {
	target := backend.NewPixmapTarget(4, 4)
	target.Clear(red)
	if _, err := New().Render(nil, target); err != nil {
		t.Fatal(err)
	}
	if got := target.At(1, 1); got != (color.RGBA{}) {
		t.Errorf("pixel = %v, want transparent", got)
	}
}

func TestTextRecordsRun(t *testing.T) {
	txt := &element.Text{Style: element.Style{Fill: "black"}, Text: "Hello", X: 10, Y: 40}
	f := New().Build(sceneOf(txt), 200, 60)

	if len(f.Text) != 1 {
		t.Fatalf("text runs = %d, want 1", len(f.Text))
	}
	run := f.Text[0]
	if run.Text != "Hello" || run.Size != 16 {
		t.Errorf("run = %+v", run)
	}
	if run.Advance <= 0 {
		t.Errorf("advance = %v, want > 0", run.Advance)
	}
	if run.Batch < 0 || f.Batches[run.Batch].Kind != BatchFill {
		t.Errorf("run batch = %d, want a fill batch", run.Batch)
	}
	if run.Anchor != [2]float32{10, 40} {
		t.Errorf("anchor = %v, want [10 40]", run.Anchor)
	}
}

func TestSurfaceKeepsFrameAndSubmits(t *testing.T) {
	var got *Frame
	surf := NewSurface(64, 64, WithSubmitter(SubmitFunc(func(f *Frame) error {
		got = f
		return nil
	})))
	c := &element.Circle{Style: element.Style{Fill: "red"}, X: 32, Y: 32, Radius: 8}

	out, err := New().Render(sceneOf(c), surf)
	if err != nil {
		t.Fatal(err)
	}
	if out != backend.Target(surf) {
		t.Error("Render() should return the surface")
	}
	if surf.Frame() == nil || got != surf.Frame() {
		t.Fatal("submitter should receive the surface frame")
	}
	if surf.Frame().Width != 64 || len(surf.Frame().Batches) != 1 {
		t.Errorf("frame = %+v", surf.Frame())
	}
}

func TestSurfaceSubmitError(t *testing.T) {
	boom := errors.New("device lost")
	surf := NewSurface(8, 8, WithSubmitter(SubmitFunc(func(*Frame) error { return boom })))
	if _, err := New().Render(scene.New(), surf); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}
}

func TestSurfaceDefaults(t *testing.T) {
	surf := NewSurface(-1, 10, WithDeviceProvider(nil))
	if surf.Width() != 0 || surf.Height() != 10 {
		t.Errorf("size = %dx%d", surf.Width(), surf.Height())
	}
	if surf.HasDevice() {
		t.Error("null provider should report no device")
	}
	var provider gpucontext.DeviceProvider = surf.DeviceProvider()
	if info := provider.AdapterInfo(); info.Type != gpucontext.AdapterTypeUnknown || info.Name != "" {
		t.Errorf("adapter info = %+v, want unknown", info)
	}
	if surf.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("format = %v, want RGBA8Unorm", surf.Format())
	}
	if surf.Frame() != nil {
		t.Error("frame should be nil before the first render")
	}
}

func TestRenderTargetErrors(t *testing.T) {
	b := New()
	if _, err := b.Render(scene.New(), nil); !errors.Is(err, backend.ErrNilTarget) {
		t.Errorf("nil target: err = %v", err)
	}
	if _, err := b.Render(scene.New(), svg.NewDocument(10, 10)); !errors.Is(err, backend.ErrUnsupportedTarget) {
		t.Errorf("svg target: err = %v", err)
	}
}

func TestUnresolvableColorSkipped(t *testing.T) {
	var skipped []element.Element
	b := New()
	b.SetSkipFunc(func(el element.Element, _ error) { skipped = append(skipped, el) })

	bad := &element.Rect{Style: element.Style{Fill: "notacolor"}, Width: 5, Height: 5}
	good := &element.Rect{Style: element.Style{Fill: "red"}, Width: 5, Height: 5}
	f := b.Build(sceneOf(bad, good), 10, 10)

	if len(skipped) != 1 || skipped[0] != element.Element(bad) {
		t.Errorf("skipped = %v, want the bad rect", skipped)
	}
	if len(f.Batches) != 1 {
		t.Errorf("batches = %d, want 1", len(f.Batches))
	}
}

func TestRegisteredAsWebGL(t *testing.T) {
	for _, name := range []string{backend.NameWebGL, backend.NameGPU} {
		b, err := backend.New(name)
		if err != nil {
			t.Fatalf("New(%q) error = %v", name, err)
		}
		if b.Name() != backend.NameWebGL {
			t.Errorf("New(%q).Name() = %q", name, b.Name())
		}
	}
}

func TestVertexBytes(t *testing.T) {
	f := New().Build(sceneOf(
		&element.Circle{Style: element.Style{Fill: "red"}, X: 5, Y: 5, Radius: 3},
		&element.Rect{Style: element.Style{Fill: "red"}, Width: 5, Height: 5},
	), 10, 10)

	if got, want := len(f.SDFBytes()), 6*sdfVertexStride; got != want {
		t.Errorf("SDFBytes() = %d bytes, want %d", got, want)
	}
	if got, want := len(f.FillBytes()), len(f.Fill)*4; got != want {
		t.Errorf("FillBytes() = %d bytes, want %d", got, want)
	}
}

func TestPipelineLayouts(t *testing.T) {
	p := NewPipeline(gputypes.TextureFormatBGRA8Unorm)

	if p.FillLayout[0].ArrayStride != fillVertexStride {
		t.Errorf("fill stride = %d", p.FillLayout[0].ArrayStride)
	}
	sdf := p.SDFLayout[0]
	if sdf.ArrayStride != sdfVertexStride || len(sdf.Attributes) != 4 {
		t.Errorf("sdf layout = %+v", sdf)
	}
	last := sdf.Attributes[len(sdf.Attributes)-1]
	if last.Offset+16 != sdfVertexStride {
		t.Errorf("color attribute ends at %d, want %d", last.Offset+16, sdfVertexStride)
	}
	if p.Primitive.Topology != gputypes.PrimitiveTopologyTriangleList {
		t.Errorf("topology = %v", p.Primitive.Topology)
	}
	if ct := p.ColorTarget(); ct.Format != gputypes.TextureFormatBGRA8Unorm || ct.Blend == nil {
		t.Errorf("color target = %+v", ct)
	}
}

func TestShaderSources(t *testing.T) {
	for name, src := range map[string]string{"fill": fillShaderSource, "sdf": sdfShaderSource} {
		for _, want := range []string{"@vertex", "@fragment", "fn " + VertexEntryPoint, "fn " + FragmentEntryPoint} {
			if !strings.Contains(src, want) {
				t.Errorf("%s shader missing %q", name, want)
			}
		}
	}
}

func TestShadersCompile(t *testing.T) {
	fill, sdf, err := NewPipeline(gputypes.TextureFormatRGBA8Unorm).SPIRV()
	if err != nil {
		// naga does not cover every WGSL builtin yet.
		t.Skipf("naga: %v", err)
	}
	for name, spv := range map[string][]byte{"fill": fill, "sdf": sdf} {
		if len(spv) < 4 {
			t.Fatalf("%s: SPIR-V too short (%d bytes)", name, len(spv))
		}
		magic := uint32(spv[0]) | uint32(spv[1])<<8 | uint32(spv[2])<<16 | uint32(spv[3])<<24
		if magic != 0x07230203 {
			t.Errorf("%s: magic = %#x, want 0x07230203", name, magic)
		}
	}
}
