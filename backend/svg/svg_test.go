// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package svg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/gogpu/sketch/backend"
	"github.com/gogpu/sketch/element"
	"github.com/gogpu/sketch/scene"
)

func render(t *testing.T, els ...element.Element) *Document {
	t.Helper()
	s := scene.New()
	for _, el := range els {
		s.Append(el)
	}
	doc := NewDocument(200, 100)
	out, err := New().Render(s, doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out != backend.Target(doc) {
		t.Fatal("Render() should return its target")
	}
	return doc
}

func TestDocumentEnvelope(t *testing.T) {
	doc := render(t)
	want := `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="100" viewBox="0 0 200 100"></svg>`
	if got := doc.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	var buf bytes.Buffer
	n, err := doc.WriteTo(&buf)
	if err != nil || n != int64(len(want)) {
		t.Errorf("WriteTo() = %d, %v", n, err)
	}
}

func TestRenderShapes(t *testing.T) {
	c, _ := element.NewCircle(10, 20, 5, element.Options{Fill: "#3498db"})
	r, _ := element.NewRect(1, 2, 30, 40, element.Options{CornerRadius: 4, Stroke: "red", StrokeWidth: element.Ptr(2.0)})
	l, _ := element.NewLine(0, 0, 5, 5, element.Options{Cap: element.CapRound})
	e, _ := element.NewEllipse(3, 4, 5, 6, element.Options{Opacity: element.Ptr(0.5)})
	p, _ := element.NewPolygon([]element.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, element.Options{})
	doc := render(t, c, r, l, e, p)
	body := doc.Body()

	for _, want := range []string{
		`<circle cx="10" cy="20" r="5" fill="#3498db"/>`,
		`<rect x="1" y="2" width="30" height="40" rx="4" ry="4" fill="#000000" stroke="red" stroke-width="2"/>`,
		`<line x1="0" y1="0" x2="5" y2="5" stroke-linecap="round" fill="none" stroke="#000000" stroke-width="1"/>`,
		`<ellipse cx="3" cy="4" rx="5" ry="6" fill="#000000" opacity="0.5"/>`,
		`<polygon points="0,0 1,0 1,1" fill="#000000"/>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %s\n%s", want, body)
		}
	}
	if strings.Index(body, "<circle") > strings.Index(body, "<rect") {
		t.Error("paint order must follow append order")
	}
}

func TestRenderPath(t *testing.T) {
	p := &element.Path{Commands: []element.PathCommand{element.MoveTo(0, 0), element.QuadTo(1, 2, 3, 4), element.Close()}}
	pts := &element.Path{Points: []element.Point{{X: 1, Y: 1}, {X: 2, Y: 3}}, Closed: true}
	body := render(t, p, pts).Body()
	if !strings.Contains(body, `d="M 0 0 Q 1 2 3 4 Z"`) {
		t.Errorf("commands path: %s", body)
	}
	if !strings.Contains(body, `d="M 1 1 L 2 3 Z"`) {
		t.Errorf("points path: %s", body)
	}
}

func TestRenderTransforms(t *testing.T) {
	a := &element.Rect{Width: 1, Height: 1, Style: element.Style{Transform: &element.Transform{
		Translate: &element.Point{X: 10, Y: 20}, Rotate: 45, Scale: &element.Point{X: 2, Y: 3},
	}}}
	b := &element.Circle{Radius: 1}
	body := render(t, a, b).Body()

	want := `<g transform="translate(10 20) rotate(45) scale(2 3)"><rect`
	if !strings.HasPrefix(body, want) {
		t.Errorf("body = %s, want prefix %s", body, want)
	}
	// The transform group closes before the next element.
	if !strings.Contains(body, `/></g><circle`) {
		t.Errorf("transform leaked to sibling: %s", body)
	}
}

func TestRenderGroup(t *testing.T) {
	g := &element.Group{
		Style:    element.Style{Opacity: element.Ptr(0.5), Transform: element.Translated(5, 5)},
		Children: []element.Element{&element.Circle{Radius: 1}, &element.Circle{Radius: 2}},
	}
	plain := &element.Group{Children: []element.Element{&element.Circle{Radius: 3}}}
	body := render(t, g, plain).Body()

	if !strings.HasPrefix(body, `<g transform="translate(5 5)" opacity="0.5"><circle`) {
		t.Errorf("group: %s", body)
	}
	if strings.Count(body, "<g") != 1 || strings.Count(body, "</g>") != 1 {
		t.Errorf("a group with no style should not emit <g>: %s", body)
	}
}

func TestRenderTextSanitized(t *testing.T) {
	txt := &element.Text{Text: `<script>"x"</script>`, X: 1, Y: 2, Align: "center", Baseline: "middle"}
	body := render(t, txt).Body()
	if strings.Contains(body, "<script>") {
		t.Fatalf("unsanitized text: %s", body)
	}
	for _, want := range []string{
		`&lt;script&gt;&quot;x&quot;&lt;/script&gt;</text>`,
		`font-family="sans-serif"`,
		`font-size="16"`,
		`text-anchor="middle"`,
		`dominant-baseline="middle"`,
		`fill="#000000"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %s\n%s", want, body)
		}
	}
}

func TestRenderAttributeSanitized(t *testing.T) {
	c := &element.Circle{Radius: 1, Style: element.Style{Fill: `red" onload="x`}}
	body := render(t, c).Body()
	if strings.Contains(body, `onload="`) {
		t.Errorf("attribute injection: %s", body)
	}
}

func TestRenderWellFormedXML(t *testing.T) {
	doc := render(t,
		&element.Text{Text: `Tom & Jerry's <"show">`, X: 1, Y: 2, Font: "A&B"},
		&element.Circle{Radius: 1, Style: element.Style{Fill: "a&b"}},
	)

	dec := xml.NewDecoder(strings.NewReader(doc.String()))
	var text strings.Builder
	var inText bool
	attrs := map[string]string{}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("invalid XML: %v\n%s", err, doc.String())
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			inText = tok.Name.Local == "text"
			for _, a := range tok.Attr {
				attrs[tok.Name.Local+"."+a.Name.Local] = a.Value
			}
		case xml.EndElement:
			inText = false
		case xml.CharData:
			if inText {
				text.Write(tok)
			}
		}
	}
	if got, want := text.String(), `Tom & Jerry's <"show">`; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
	if got := attrs["text.font-family"]; got != "A&B" {
		t.Errorf("font-family = %q, want %q", got, "A&B")
	}
	if got := attrs["circle.fill"]; got != "a&b" {
		t.Errorf("circle fill = %q, want %q", got, "a&b")
	}
}

func TestRenderRTLText(t *testing.T) {
	body := render(t, &element.Text{Text: "שלום", X: 50, Y: 50}).Body()
	if !strings.Contains(body, `direction="rtl"`) {
		t.Errorf("missing direction: %s", body)
	}
	if !strings.Contains(body, `text-anchor="end"`) {
		t.Errorf("left-aligned RTL text should anchor at the end: %s", body)
	}
}

func TestRenderReplacesContent(t *testing.T) {
	doc := NewDocument(10, 10)
	s := scene.New()
	s.Append(&element.Circle{Radius: 1})
	b := New()
	_, _ = b.Render(s, doc)
	_, _ = b.Render(s, doc)
	if n := strings.Count(doc.Body(), "<circle"); n != 1 {
		t.Errorf("circle count = %d, want 1", n)
	}
}

type sprite struct{ element.Style }

func (*sprite) Kind() element.Kind { return "sprite" }

func TestRenderSkipsUnknown(t *testing.T) {
	s := scene.New()
	s.Append(&sprite{})
	b := New()
	skipped := 0
	b.SetSkipFunc(func(element.Element, error) { skipped++ })
	doc := NewDocument(1, 1)
	if _, err := b.Render(s, doc); err != nil {
		t.Fatal(err)
	}
	if skipped != 1 || doc.Body() != "" {
		t.Errorf("skipped=%d body=%q", skipped, doc.Body())
	}
}

func TestRenderTargetErrors(t *testing.T) {
	b := New()
	if _, err := b.Render(scene.New(), nil); !errors.Is(err, backend.ErrNilTarget) {
		t.Errorf("nil target: %v", err)
	}
	if _, err := b.Render(scene.New(), backend.NewPixmapTarget(1, 1)); !errors.Is(err, backend.ErrUnsupportedTarget) {
		t.Errorf("pixel target: %v", err)
	}
}
