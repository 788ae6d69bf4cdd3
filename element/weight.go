package element

import (
	"math"
	"unicode/utf8"
)

// Weight assigns a complexity score to one root element. The render
// dispatcher sums it over a scene to pick a backend.
type Weight func(Element) float64

// UniformWeight scores every element 1, so the scene score is its
// element count.
func UniformWeight(Element) float64 { return 1 }

// DetailWeight scores elements by the amount of geometry they carry:
// polygons and paths by vertex count, text by length, groups by their
// descendants. Simple shapes score 1.
func DetailWeight(el Element) float64 {
	return detailWeight(el, map[*Group]bool{})
}

func detailWeight(el Element, open map[*Group]bool) float64 {
	switch e := el.(type) {
	case *Polygon:
		return math.Max(1, float64(len(e.Points))/3)
	case *Path:
		return math.Max(1, float64(len(e.Commands)+len(e.Points))/3)
	case *Text:
		return 1 + float64(utf8.RuneCountInString(e.Text))/32
	case *Group:
		if open[e] {
			return 0
		}
		open[e] = true
		defer delete(open, e)
		w := 1.0
		for _, c := range e.Children {
			w += detailWeight(c, open)
		}
		return w
	}
	return 1
}
