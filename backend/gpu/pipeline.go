// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
)

//go:embed shaders/fill.wgsl
var fillShaderSource string

//go:embed shaders/sdf.wgsl
var sdfShaderSource string

// Entry points shared by both shaders.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// Pipeline describes the two render pipelines a Frame is drawn with. It
// holds no device objects; a host creates those from this description.
type Pipeline struct {
	Format    gputypes.TextureFormat
	Primitive gputypes.PrimitiveState
	Blend     gputypes.BlendState

	FillLayout []gputypes.VertexBufferLayout
	SDFLayout  []gputypes.VertexBufferLayout

	FillWGSL string
	SDFWGSL  string

	once     sync.Once
	fillSPV  []byte
	sdfSPV   []byte
	spvError error
}

// NewPipeline describes pipelines rendering into format.
func NewPipeline(format gputypes.TextureFormat) *Pipeline {
	return &Pipeline{
		Format: format,
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Blend:      gputypes.BlendStatePremultiplied(),
		FillLayout: fillVertexLayout(),
		SDFLayout:  sdfVertexLayout(),
		FillWGSL:   fillShaderSource,
		SDFWGSL:    sdfShaderSource,
	}
}

// ColorTarget returns the color attachment state for both pipelines.
func (p *Pipeline) ColorTarget() gputypes.ColorTargetState {
	blend := p.Blend
	return gputypes.ColorTargetState{
		Format:    p.Format,
		Blend:     &blend,
		WriteMask: gputypes.ColorWriteMaskAll,
	}
}

// SPIRV returns both shaders compiled to SPIR-V. Compilation happens on
// the first call; later calls return the cached result.
func (p *Pipeline) SPIRV() (fill, sdf []byte, err error) {
	p.once.Do(func() {
		p.fillSPV, p.spvError = naga.Compile(p.FillWGSL)
		if p.spvError != nil {
			p.spvError = fmt.Errorf("gpu: compile fill shader: %w", p.spvError)
			return
		}
		p.sdfSPV, p.spvError = naga.Compile(p.SDFWGSL)
		if p.spvError != nil {
			p.spvError = fmt.Errorf("gpu: compile sdf shader: %w", p.spvError)
		}
	})
	return p.fillSPV, p.sdfSPV, p.spvError
}

func fillVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: fillVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			},
		},
	}
}

func sdfVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: sdfVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // local
				{Format: gputypes.VertexFormatFloat32x2, Offset: 16, ShaderLocation: 2}, // radii
				{Format: gputypes.VertexFormatFloat32x4, Offset: 24, ShaderLocation: 3}, // color
			},
		},
	}
}
