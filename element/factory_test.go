package element

import (
	"errors"
	"math"
	"testing"
)

func TestNewCircleDefaults(t *testing.T) {
	c, err := NewCircle(100, 100, 50, Options{Fill: "#3498db"})
	if err != nil {
		t.Fatalf("NewCircle() error = %v", err)
	}
	if c.X != 100 || c.Y != 100 || c.Radius != 50 {
		t.Errorf("geometry = (%v, %v, %v), want (100, 100, 50)", c.X, c.Y, c.Radius)
	}
	if c.Fill != "#3498db" {
		t.Errorf("Fill = %q, want %q", c.Fill, "#3498db")
	}
	if c.Stroke != "" {
		t.Errorf("Stroke = %q, want empty", c.Stroke)
	}
	if got := c.StrokeWidthOr(-1); got != 1 {
		t.Errorf("StrokeWidth = %v, want 1", got)
	}
	if got := c.OpacityOr(-1); got != 1 {
		t.Errorf("Opacity = %v, want 1", got)
	}
	if c.Kind() != KindCircle {
		t.Errorf("Kind() = %q, want %q", c.Kind(), KindCircle)
	}
}

func TestFactoryDefaultFill(t *testing.T) {
	r, err := NewRect(0, 0, 10, 10, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if r.Fill != DefaultFill {
		t.Errorf("rect Fill = %q, want %q", r.Fill, DefaultFill)
	}

	l, err := NewLine(0, 0, 10, 10, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if l.Fill != "" {
		t.Errorf("line Fill = %q, want empty", l.Fill)
	}
	if l.Cap != CapButt {
		t.Errorf("line Cap = %q, want %q", l.Cap, CapButt)
	}
}

func TestFactoryKeepsExplicitOptions(t *testing.T) {
	tr := Rotated(45)
	e, err := NewEllipse(5, 6, 7, 8, Options{
		Fill:        "red",
		Stroke:      "#fff",
		StrokeWidth: Ptr(0.0),
		Opacity:     Ptr(0.0),
		Transform:   tr,
	})
	if err != nil {
		t.Fatal(err)
	}
	if e.StrokeWidthOr(1) != 0 {
		t.Errorf("StrokeWidth = %v, want 0", e.StrokeWidthOr(1))
	}
	if e.OpacityOr(1) != 0 {
		t.Errorf("Opacity = %v, want 0", e.OpacityOr(1))
	}
	if e.Transform != tr {
		t.Error("Transform not kept")
	}
}

func TestFactoryInvalidGeometry(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)
	tests := []struct {
		name  string
		build func() error
	}{
		{"circle negative radius", func() error { _, err := NewCircle(0, 0, -1, Options{}); return err }},
		{"circle NaN x", func() error { _, err := NewCircle(nan, 0, 1, Options{}); return err }},
		{"circle Inf y", func() error { _, err := NewCircle(0, inf, 1, Options{}); return err }},
		{"rect negative width", func() error { _, err := NewRect(0, 0, -1, 1, Options{}); return err }},
		{"rect negative height", func() error { _, err := NewRect(0, 0, 1, -1, Options{}); return err }},
		{"rect negative corner", func() error { _, err := NewRect(0, 0, 1, 1, Options{CornerRadius: -2}); return err }},
		{"line NaN", func() error { _, err := NewLine(0, 0, nan, 0, Options{}); return err }},
		{"line bad cap", func() error { _, err := NewLine(0, 0, 1, 1, Options{Cap: "hex"}); return err }},
		{"ellipse negative rx", func() error { _, err := NewEllipse(0, 0, -1, 1, Options{}); return err }},
		{"ellipse negative ry", func() error { _, err := NewEllipse(0, 0, 1, -1, Options{}); return err }},
		{"polygon two points", func() error { _, err := NewPolygon([]Point{{0, 0}, {1, 1}}, Options{}); return err }},
		{"polygon Inf point", func() error {
			_, err := NewPolygon([]Point{{0, 0}, {1, 1}, {inf, 0}}, Options{})
			return err
		}},
		{"text zero size", func() error { _, err := NewText("a", 0, 0, Options{Size: Ptr(0.0)}); return err }},
		{"text negative size", func() error { _, err := NewText("a", 0, 0, Options{Size: Ptr(-3.0)}); return err }},
		{"negative stroke width", func() error {
			_, err := NewCircle(0, 0, 1, Options{StrokeWidth: Ptr(-1.0)})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("error = %v, want ErrInvalidGeometry", err)
			}
		})
	}
}

func TestFactoryInvalidStyle(t *testing.T) {
	if _, err := NewCircle(0, 0, 1, Options{Opacity: Ptr(1.5)}); !errors.Is(err, ErrInvalidOpacity) {
		t.Errorf("opacity 1.5: error = %v, want ErrInvalidOpacity", err)
	}
	if _, err := NewCircle(0, 0, 1, Options{Fill: "not-a-color"}); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("bad fill: error = %v, want ErrInvalidColor", err)
	}
	if _, err := NewRect(0, 0, 1, 1, Options{Stroke: "#ff"}); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("bad stroke: error = %v, want ErrInvalidColor", err)
	}
}

func TestFactoryNonFiniteTransform(t *testing.T) {
	tests := []struct {
		name string
		tr   *Transform
	}{
		{"translate NaN", Translated(math.NaN(), 0)},
		{"translate +Inf", Translated(0, math.Inf(1))},
		{"rotate +Inf", Rotated(math.Inf(1))},
		{"rotate NaN", Rotated(math.NaN())},
		{"scale -Inf", Scaled(math.Inf(-1), 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCircle(0, 0, 1, Options{Transform: tt.tr}); !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("error = %v, want ErrInvalidGeometry", err)
			}
		})
	}
	if _, err := NewCircle(0, 0, 1, Options{Transform: &Transform{Translate: &Point{X: 1, Y: 2}, Rotate: 45, Scale: &Point{X: 2}}}); err != nil {
		t.Errorf("finite transform: error = %v", err)
	}
}

func TestFactoryZeroSizesAllowed(t *testing.T) {
	if _, err := NewCircle(0, 0, 0, Options{}); err != nil {
		t.Errorf("zero radius: %v", err)
	}
	if _, err := NewRect(0, 0, 0, 0, Options{}); err != nil {
		t.Errorf("zero rect: %v", err)
	}
	if _, err := NewEllipse(0, 0, 0, 0, Options{}); err != nil {
		t.Errorf("zero ellipse: %v", err)
	}
}

func TestNewPolygonCopiesPoints(t *testing.T) {
	pts := []Point{{0, 0}, {10, 0}, {10, 10}}
	p, err := NewPolygon(pts, Options{})
	if err != nil {
		t.Fatal(err)
	}
	pts[0] = Point{99, 99}
	if p.Points[0] != (Point{0, 0}) {
		t.Errorf("Points[0] = %v, polygon aliases caller slice", p.Points[0])
	}
}

func TestNewText(t *testing.T) {
	txt, err := NewText("hello", 10, 20, Options{Size: Ptr(24.0), Font: "serif", Weight: "bold", Align: "center"})
	if err != nil {
		t.Fatal(err)
	}
	if txt.Text != "hello" || txt.X != 10 || txt.Y != 20 {
		t.Errorf("text = %+v", txt)
	}
	if txt.SizeOr(16) != 24 {
		t.Errorf("Size = %v, want 24", txt.SizeOr(16))
	}
	if txt.Fill != DefaultFill {
		t.Errorf("Fill = %q, want %q", txt.Fill, DefaultFill)
	}
}

func TestNewPath(t *testing.T) {
	if _, err := NewPath(nil, Options{}); !errors.Is(err, ErrMissingPathData) {
		t.Errorf("empty path: error = %v, want ErrMissingPathData", err)
	}
	bad := []PathCommand{{Op: OpLine, Args: []float64{1}}}
	if _, err := NewPath(bad, Options{}); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("short args: error = %v, want ErrInvalidGeometry", err)
	}
	p, err := NewPath([]PathCommand{MoveTo(0, 0), LineTo(10, 0), Close()}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Commands) != 3 {
		t.Errorf("len(Commands) = %d, want 3", len(p.Commands))
	}
}

func TestNewGroup(t *testing.T) {
	c, _ := NewCircle(0, 0, 1, Options{})
	g, err := NewGroup(Options{Fill: "red", Opacity: Ptr(0.5)}, c)
	if err != nil {
		t.Fatal(err)
	}
	if g.Fill != "" {
		t.Errorf("group Fill = %q, want empty", g.Fill)
	}
	if len(g.Children) != 1 || g.Children[0] != c {
		t.Errorf("Children = %v", g.Children)
	}
	if _, err := NewGroup(Options{}, c, nil); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("nil child: error = %v, want ErrInvalidGeometry", err)
	}
}

type customElement struct{ Style }

func (*customElement) Kind() Kind { return "sprite" }

func TestCheckGeometryUnknownKind(t *testing.T) {
	if err := CheckGeometry(&customElement{}); !errors.Is(err, ErrUnknownElementType) {
		t.Errorf("error = %v, want ErrUnknownElementType", err)
	}
	if err := CheckGeometry(nil); !errors.Is(err, ErrUnknownElementType) {
		t.Errorf("nil: error = %v, want ErrUnknownElementType", err)
	}
}

func TestErrCycleWrapsInvalidGeometry(t *testing.T) {
	if !errors.Is(ErrCycle, ErrInvalidGeometry) {
		t.Error("ErrCycle should wrap ErrInvalidGeometry")
	}
}
