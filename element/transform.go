package element

import "math"

// Transform is a translate/rotate/scale composition applied to one element
// and its descendants. Components are applied in a fixed order: translate,
// then rotate, then scale.
type Transform struct {
	// Translate offsets the element. Nil means no translation.
	Translate *Point

	// Rotate is the rotation in degrees.
	Rotate float64

	// Scale scales the element. Nil means no scaling; a zero component
	// resolves to 1.
	Scale *Point
}

// Matrix returns the composed affine matrix T * R * S.
func (t Transform) Matrix() Matrix {
	m := Identity()
	if t.Translate != nil {
		m = m.Multiply(Translate(t.Translate.X, t.Translate.Y))
	}
	if t.Rotate != 0 {
		m = m.Multiply(Rotate(t.Rotate * math.Pi / 180))
	}
	if t.Scale != nil {
		sx, sy := t.Scale.X, t.Scale.Y
		if sx == 0 {
			sx = 1
		}
		if sy == 0 {
			sy = 1
		}
		m = m.Multiply(Scale(sx, sy))
	}
	return m
}

// IsZero reports whether t has no effect.
func (t Transform) IsZero() bool {
	return t.Translate == nil && t.Rotate == 0 && t.Scale == nil
}

// Translated returns a transform with only a translation.
func Translated(x, y float64) *Transform {
	return &Transform{Translate: &Point{X: x, Y: y}}
}

// Rotated returns a transform with only a rotation in degrees.
func Rotated(deg float64) *Transform {
	return &Transform{Rotate: deg}
}

// Scaled returns a transform with only a scale.
func Scaled(x, y float64) *Transform {
	return &Transform{Scale: &Point{X: x, Y: y}}
}
