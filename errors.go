package docview

import "errors"

// Sentinel errors returned by document operations. Callers match them with
// errors.Is; open and render failures wrap an underlying codec error.
var (
	// ErrUnsupportedFormat is returned by Open when the file extension does
	// not map to any known document kind. No backend is constructed.
	ErrUnsupportedFormat = errors.New("docview: unsupported document format")

	// ErrEmptyDocument is returned when a portable document parses
	// successfully but contains zero pages.
	ErrEmptyDocument = errors.New("docview: document has no pages")

	// ErrPageOutOfRange is returned by page navigation and thumbnail
	// requests outside [0, PageCount). No state is mutated.
	ErrPageOutOfRange = errors.New("docview: page index out of range")

	// ErrCropOutOfBounds is returned when a crop region exceeds the current
	// image bounds. The pixel buffer is left untouched.
	ErrCropOutOfBounds = errors.New("docview: crop region out of bounds")

	// ErrUnsupportedOperation is returned for operations a backend cannot
	// perform, such as fine rotation on raster content.
	ErrUnsupportedOperation = errors.New("docview: operation not supported for this document kind")
)
