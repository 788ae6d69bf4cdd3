// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/chewxy/math32"
	"golang.org/x/image/vector"
)

// Resolve rasterizes f into img on the CPU, producing what the two
// pipelines would produce on a device. img is cleared to transparent first
// and the frame's NDC space is mapped onto img's bounds.
func Resolve(f *Frame, img *image.RGBA) {
	b := img.Bounds()
	draw.Draw(img, b, image.Transparent, image.Point{}, draw.Src)
	if f == nil || f.Empty() || b.Empty() {
		return
	}

	r := resolver{
		img: img,
		ras: vector.NewRasterizer(b.Dx(), b.Dy()),
		w:   float32(b.Dx()),
		h:   float32(b.Dy()),
	}
	for _, batch := range f.Batches {
		switch batch.Kind {
		case BatchFill:
			r.fill(f.Fill[batch.First*2:(batch.First+batch.Count)*2], batch.Color)
		case BatchSDF:
			quads := f.SDF[batch.First : batch.First+batch.Count]
			for i := 0; i+sdfVerticesPerQuad <= len(quads); i += sdfVerticesPerQuad {
				r.ellipse(quads[i : i+sdfVerticesPerQuad])
			}
		}
	}
}

type resolver struct {
	img  *image.RGBA
	ras  *vector.Rasterizer
	w, h float32
}

// pixel maps NDC back to pixel coordinates relative to the image origin.
func (r *resolver) pixel(x, y float32) (float32, float32) {
	return (x + 1) * 0.5 * r.w, (1 - y) * 0.5 * r.h
}

// fill accumulates every triangle of a batch and composites it once. The
// rasterizer sums signed area, so overlapping fan triangles resolve like a
// nonzero stencil.
func (r *resolver) fill(tris []float32, premul [4]float32) {
	if premul[3] <= 0 {
		return
	}
	b := r.img.Bounds()
	r.ras.Reset(b.Dx(), b.Dy())
	r.ras.DrawOp = draw.Over
	for i := 0; i+6 <= len(tris); i += 6 {
		x0, y0 := r.pixel(tris[i], tris[i+1])
		x1, y1 := r.pixel(tris[i+2], tris[i+3])
		x2, y2 := r.pixel(tris[i+4], tris[i+5])
		r.ras.MoveTo(x0, y0)
		r.ras.LineTo(x1, y1)
		r.ras.LineTo(x2, y2)
		r.ras.ClosePath()
	}
	src := color.RGBA{
		R: unit8(premul[0]),
		G: unit8(premul[1]),
		B: unit8(premul[2]),
		A: unit8(premul[3]),
	}
	r.ras.Draw(r.img, b, image.NewUniform(src), image.Point{})
}

// ellipse evaluates one SDF quad per pixel. The quad's corners give the
// affine map from pixels to ellipse-local units; coverage is the implicit
// function divided by its pixel-space gradient, as the fragment shader
// does with fwidth.
func (r *resolver) ellipse(q []SDFVertex) {
	tl, tr, bl, br := q[0], q[1], q[2], q[4]
	radii, col := tl.Radii, tl.Color
	if radii[0] <= 0 || radii[1] <= 0 || col[3] <= 0 {
		return
	}

	p0x, p0y := r.pixel(tl.Position[0], tl.Position[1])
	pax, pay := r.pixel(tr.Position[0], tr.Position[1])
	pbx, pby := r.pixel(bl.Position[0], bl.Position[1])
	ex, ey := pax-p0x, pay-p0y // pixel edge TL->TR
	fx, fy := pbx-p0x, pby-p0y // pixel edge TL->BL
	det := ex*fy - ey*fx
	if math32.Abs(det) < 1e-12 {
		return
	}
	// Local edges along the same corners.
	lax, lay := tr.Local[0]-tl.Local[0], tr.Local[1]-tl.Local[1]
	lbx, lby := bl.Local[0]-tl.Local[0], bl.Local[1]-tl.Local[1]

	// J = [la lb] * inverse([e f]) maps pixel offsets to local offsets.
	ie00, ie01 := fy/det, -fx/det
	ie10, ie11 := -ey/det, ex/det
	j00 := lax*ie00 + lbx*ie10
	j01 := lax*ie01 + lbx*ie11
	j10 := lay*ie00 + lby*ie10
	j11 := lay*ie01 + lby*ie11

	minX, minY, maxX, maxY := p0x, p0y, p0x, p0y
	for _, v := range [...]SDFVertex{tr, bl, br} {
		x, y := r.pixel(v.Position[0], v.Position[1])
		minX, minY = math32.Min(minX, x), math32.Min(minY, y)
		maxX, maxY = math32.Max(maxX, x), math32.Max(maxY, y)
	}
	x0 := max(int(math32.Floor(minX)), 0)
	y0 := max(int(math32.Floor(minY)), 0)
	x1 := min(int(math32.Ceil(maxX)), int(r.w))
	y1 := min(int(math32.Ceil(maxY)), int(r.h))

	rx2, ry2 := radii[0]*radii[0], radii[1]*radii[1]
	origin := r.img.Bounds().Min
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			dx := float32(px) + 0.5 - p0x
			dy := float32(py) + 0.5 - p0y
			lx := tl.Local[0] + j00*dx + j01*dy
			ly := tl.Local[1] + j10*dx + j11*dy

			f := lx*lx/rx2 + ly*ly/ry2 - 1
			glx, gly := 2*lx/rx2, 2*ly/ry2
			gx := glx*j00 + gly*j10
			gy := glx*j01 + gly*j11
			g := math32.Sqrt(gx*gx + gy*gy)

			var cov float32
			switch {
			case g < 1e-6:
				if f < 0 {
					cov = 1
				}
			default:
				cov = clamp01(0.5 - f/g)
			}
			if cov > 0 {
				r.blend(origin.X+px, origin.Y+py, col, cov)
			}
		}
	}
}

// blend composites a premultiplied color scaled by cov over one pixel.
func (r *resolver) blend(x, y int, premul [4]float32, cov float32) {
	i := r.img.PixOffset(x, y)
	p := r.img.Pix[i : i+4 : i+4]
	inv := 1 - premul[3]*cov
	for c := 0; c < 4; c++ {
		v := premul[c]*cov*255 + float32(p[c])*inv
		p[c] = uint8(math32.Min(v+0.5, 255))
	}
}

func clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}

func unit8(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}
