// Package sketch is a retained-mode 2D drawing library: build a scene of
// shapes, validate it, and render it through a raster, SVG or GPU backend.
//
// # Quick Start
//
//	sk, err := sketch.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sk.Mid.Circle(100, 100, 50, element.Options{Fill: "#3498db"})
//	sk.Low.R(10, 10, 40, 20, "tomato", "black", 2)
//
//	target := backend.NewPixmapTarget(200, 200)
//	if _, err := sk.Render(target); err != nil {
//	    log.Fatal(err)
//	}
//
// # Layers
//
// Elements come from the element package's factory functions, which
// validate geometry at construction. The Mid and Low fields append
// factory-built elements to the scene; Append takes elements built any
// other way. The validate package re-checks any element on demand.
//
// Rendering goes through render.Renderer, which picks a backend by name or,
// in "auto" mode, by scene complexity: above the threshold (1000 by
// default) the GPU backend is used, otherwise the raster canvas. With
// caching on, an unchanged scene is not re-rendered onto the same target.
//
// Elements of unknown kinds, and elements whose colors cannot be resolved,
// are skipped at render time and reported as diagnostics warnings.
//
// # Coordinate System
//
// Origin at the top-left, x to the right, y down. Rotations are in degrees.
package sketch
