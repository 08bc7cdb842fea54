// Package docview provides a unified abstraction over three structurally
// different document backends: raster images, vector graphics (SVG) and
// paginated portable documents (PDF).
//
// # Overview
//
// A caller holds exactly one DocumentContent per open document. The document
// kind is detected from the file extension, the matching backend is
// constructed, and every subsequent operation (rendering, rotation, flipping,
// cropping, page navigation, thumbnail generation) dispatches through the
// same contract without the caller ever branching on kind.
//
// # Quick Start
//
//	import "github.com/gogpu/docview"
//
//	doc, err := docview.Open("report.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
//
//	doc.RotateCW()
//	h := doc.Handle() // RGBA buffer + dimensions, ready for display
//
// # Backends
//
// Raster documents decode once and mutate a single owned pixel buffer in
// place: rotation and flipping are exact pixel permutations with no quality
// loss, and cropping is destructive. Vector documents retain the parsed SVG
// tree and re-rasterize from it on every scale or transform change so edges
// never degrade. Portable documents retain the parsed page set and render one
// page at a time to an off-screen drawing surface; thumbnails for the page
// strip are generated incrementally, one page per call, backed by an on-disk
// cache.
//
// # Logging
//
// docview produces no log output by default. Call SetLogger to enable it.
package docview
