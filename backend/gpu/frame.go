// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"encoding/binary"
	"math"
)

// BatchKind selects the pipeline a batch is drawn with.
type BatchKind uint8

const (
	// BatchFill is a run of fan triangles in Frame.Fill, drawn with
	// stencil-then-cover under the nonzero rule.
	BatchFill BatchKind = iota

	// BatchSDF is a run of ellipse quads in Frame.SDF.
	BatchSDF
)

// String returns the batch kind name.
func (k BatchKind) String() string {
	switch k {
	case BatchFill:
		return "fill"
	case BatchSDF:
		return "sdf"
	default:
		return "unknown"
	}
}

const (
	// fillVertexStride is the size of one Frame.Fill vertex: float32x2.
	fillVertexStride = 8

	// sdfVertexStride is the size of one SDFVertex on the wire.
	sdfVertexStride = 40

	// sdfVerticesPerQuad is two triangles: TL, TR, BL and TR, BR, BL.
	sdfVerticesPerQuad = 6
)

// Batch is one draw call. Batches are drawn in slice order, which is the
// paint order of the scene.
type Batch struct {
	Kind BatchKind

	// First and Count select vertices in Frame.Fill (pairs of floats) or
	// Frame.SDF, depending on Kind.
	First, Count int

	// Color is the premultiplied RGBA of a fill batch. SDF vertices carry
	// their own color.
	Color [4]float32

	// Bounds is the NDC bounding box: minX, minY, maxX, maxY.
	Bounds [4]float32
}

// SDFVertex is one corner of an ellipse quad.
type SDFVertex struct {
	// Position is in normalized device coordinates.
	Position [2]float32

	// Local is the corner relative to the ellipse center, in user units.
	Local [2]float32

	// Radii are the ellipse radii in user units.
	Radii [2]float32

	// Color is premultiplied RGBA.
	Color [4]float32
}

// TextRun records where a text element was placed. Its glyph outlines are
// in the fill batch at index Batch, or Batch is -1 when nothing was drawn.
type TextRun struct {
	Text    string
	Anchor  [2]float32 // pen origin in device pixels
	Size    float32    // device pixels
	Advance float32    // device pixels
	Color   [4]float32
	RTL     bool
	Batch   int
}

// Frame is the output of one GPU render: vertex data plus the ordered
// batches that draw it.
type Frame struct {
	Width, Height int

	// Fill holds x, y NDC pairs. Every three pairs form a fan triangle.
	Fill []float32

	// SDF holds ellipse quads, six vertices each.
	SDF []SDFVertex

	Batches []Batch
	Text    []TextRun
}

// NewFrame creates an empty frame for a width x height target.
func NewFrame(width, height int) *Frame {
	return &Frame{Width: width, Height: height}
}

// Reset empties the frame for reuse, keeping allocated memory.
func (f *Frame) Reset(width, height int) {
	f.Width, f.Height = width, height
	f.Fill = f.Fill[:0]
	f.SDF = f.SDF[:0]
	f.Batches = f.Batches[:0]
	f.Text = f.Text[:0]
}

// Empty reports whether the frame draws nothing.
func (f *Frame) Empty() bool { return len(f.Batches) == 0 }

// TriangleCount returns the number of triangles across both pipelines.
func (f *Frame) TriangleCount() int {
	return len(f.Fill)/6 + len(f.SDF)/3
}

// CoverQuad returns the two triangles covering b's bounds, for the cover
// pass of a fill batch.
func (b Batch) CoverQuad() [12]float32 {
	minX, minY, maxX, maxY := b.Bounds[0], b.Bounds[1], b.Bounds[2], b.Bounds[3]
	return [12]float32{
		minX, minY, maxX, minY, maxX, maxY,
		minX, minY, maxX, maxY, minX, maxY,
	}
}

// FillBytes encodes Fill as little-endian float32 vertex data.
func (f *Frame) FillBytes() []byte {
	buf := make([]byte, len(f.Fill)*4)
	for i, v := range f.Fill {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// SDFBytes encodes SDF in the layout described by Pipeline.SDFLayout.
func (f *Frame) SDFBytes() []byte {
	buf := make([]byte, len(f.SDF)*sdfVertexStride)
	for i := range f.SDF {
		v := &f.SDF[i]
		off := i * sdfVertexStride
		for _, x := range [...]float32{
			v.Position[0], v.Position[1],
			v.Local[0], v.Local[1],
			v.Radii[0], v.Radii[1],
			v.Color[0], v.Color[1], v.Color[2], v.Color[3],
		} {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(x))
			off += 4
		}
	}
	return buf
}
