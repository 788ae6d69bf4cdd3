package element

import (
	"math"
	"testing"
)

const eps = 1e-9

func pointsClose(a, b Point) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestMatrixTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		in   Point
		want Point
	}{
		{"identity", Identity(), Pt(3, 4), Pt(3, 4)},
		{"translate", Translate(10, -5), Pt(1, 1), Pt(11, -4)},
		{"scale", Scale(2, 3), Pt(1, 1), Pt(2, 3)},
		{"rotate 90", Rotate(math.Pi / 2), Pt(1, 0), Pt(0, 1)},
		{"translate then scale", Translate(10, 0).Multiply(Scale(2, 2)), Pt(1, 1), Pt(12, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformPoint(tt.in); !pointsClose(got, tt.want) {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatrixTransformVectorIgnoresTranslation(t *testing.T) {
	m := Translate(100, 100).Multiply(Scale(2, 2))
	if got := m.TransformVector(Pt(1, 1)); !pointsClose(got, Pt(2, 2)) {
		t.Errorf("TransformVector = %v, want (2, 2)", got)
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Translate(5, 7).Multiply(Rotate(0.3)).Multiply(Scale(2, 0.5))
	p := Pt(3, -2)
	if got := m.Invert().TransformPoint(m.TransformPoint(p)); !pointsClose(got, p) {
		t.Errorf("round trip = %v, want %v", got, p)
	}
	if !Scale(0, 0).Invert().IsIdentity() {
		t.Error("singular matrix should invert to identity")
	}
}

func TestMatrixScaleFactor(t *testing.T) {
	tests := []struct {
		m    Matrix
		want float64
	}{
		{Identity(), 1},
		{Scale(2, 2), 2},
		{Scale(4, 1), 2},
		{Rotate(1.2), 1},
		{Translate(9, 9), 1},
	}
	for _, tt := range tests {
		if got := tt.m.ScaleFactor(); math.Abs(got-tt.want) > eps {
			t.Errorf("%+v.ScaleFactor() = %v, want %v", tt.m, got, tt.want)
		}
	}
}
