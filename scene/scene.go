// Package scene holds the ordered list of root elements that make up a
// drawing, together with a version counter used for cache invalidation.
package scene

import "github.com/gogpu/sketch/element"

// Scene is an ordered collection of root elements. Draw order is insertion
// order: later elements paint over earlier ones.
//
// A Scene has a single owner and is not safe for concurrent mutation.
type Scene struct {
	elements []element.Element

	// version is incremented on each modification for cache invalidation
	version uint64
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{elements: make([]element.Element, 0, 16)}
}

// Append adds el after every existing element. The caller keeps ownership
// semantics simple by not mutating el afterwards; if it does, it must call
// Touch so that cached renders are discarded.
func (s *Scene) Append(el element.Element) {
	s.elements = append(s.elements, el)
	s.version++
}

// Elements returns the root elements in draw order. The slice is a view of
// the scene's storage and must not be modified.
func (s *Scene) Elements() []element.Element {
	return s.elements
}

// Len returns the number of root elements.
func (s *Scene) Len() int { return len(s.elements) }

// Clear removes every element.
func (s *Scene) Clear() {
	clear(s.elements)
	s.elements = s.elements[:0]
	s.version++
}

// Touch marks the scene as modified without changing its contents.
func (s *Scene) Touch() { s.version++ }

// Version returns the modification counter. It changes on every Append,
// Clear and Touch and never decreases.
func (s *Scene) Version() uint64 { return s.version }

// Walk visits every element depth-first in draw order, descending into
// groups. It stops early when fn returns false. Groups that contain one of
// their ancestors are not descended into a second time.
func (s *Scene) Walk(fn func(el element.Element, depth int) bool) {
	var onPath []*element.Group
	var visit func(el element.Element, depth int) bool
	visit = func(el element.Element, depth int) bool {
		if !fn(el, depth) {
			return false
		}
		g, ok := el.(*element.Group)
		if !ok {
			return true
		}
		for _, a := range onPath {
			if a == g {
				return true
			}
		}
		onPath = append(onPath, g)
		defer func() { onPath = onPath[:len(onPath)-1] }()
		for _, c := range g.Children {
			if c != nil && !visit(c, depth+1) {
				return false
			}
		}
		return true
	}

	for _, el := range s.elements {
		if el == nil {
			continue
		}
		if !visit(el, 0) {
			return
		}
	}
}

// Complexity sums weight over the root elements. A nil weight counts each
// root element as 1.
func (s *Scene) Complexity(weight element.Weight) float64 {
	if weight == nil {
		weight = element.UniformWeight
	}
	var total float64
	for _, el := range s.elements {
		total += weight(el)
	}
	return total
}
