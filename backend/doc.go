// Package backend defines the contract between the render dispatcher and
// the surfaces a scene can be drawn on.
//
// A Backend turns a scene into output on one kind of Target: the raster
// canvas draws into an *image.RGBA, the SVG backend writes markup, and the
// GPU backend builds vertex batches for a host-provided device. Backends
// register a factory by name; the dispatcher instantiates them through New.
//
// All backends share one traversal, Walk, which visits elements in scene
// order and brackets every element with Save and Restore so that an
// element's transform never leaks to its siblings. Elements of an unknown
// kind, and groups that contain one of their ancestors, are skipped rather
// than failing the render; a SkipFunc can observe them.
//
// # Registering a backend
//
//	func init() {
//	    backend.Register(backend.NameCanvas, func() backend.Backend { return canvas.New() })
//	}
//
// The built-in backends register themselves when their packages are
// imported; the render package imports all three.
package backend
