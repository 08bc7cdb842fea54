package docview

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gogpu/docview/thumbcache"
)

// DocumentContent is the closed tagged union over the three backends.
// Exactly one variant is live per open document; switching documents
// replaces the whole value. All operations dispatch on the kind tag into
// the owning backend, so callers never branch on document kind themselves.
type DocumentContent struct {
	kind DocumentKind
	path string

	raster   *RasterDocument
	vector   *VectorDocument
	portable *PortableDocument
}

// Open detects the document kind from the file extension, constructs the
// matching backend and performs the initial render. An unrecognized
// extension returns ErrUnsupportedFormat without constructing any backend.
//
// A failed Open never affects a previously opened document: the caller
// only replaces its held DocumentContent when Open succeeds.
func Open(path string, opts ...Option) (*DocumentContent, error) {
	kind, ok := DetectKind(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	d := &DocumentContent{kind: kind, path: path}
	var err error
	switch kind {
	case KindRaster:
		d.raster, err = OpenRaster(path)
	case KindVector:
		d.vector, err = OpenVector(path)
	case KindPortable:
		// Only the paginated backend consults the store; other kinds must
		// not create cache directories they will never use.
		if !cfg.cacheSet {
			store, cerr := thumbcache.Default()
			if cerr != nil {
				Logger().Warn("thumbnail disk cache unavailable", slog.Any("error", cerr))
			}
			cfg.thumbCache = store
		}
		d.portable, err = openPortable(path, cfg)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Close releases backend resources. Only the portable backend holds any.
func (d *DocumentContent) Close() error {
	if d.portable != nil {
		return d.portable.Close()
	}
	return nil
}

// Kind returns the detected document kind.
func (d *DocumentContent) Kind() DocumentKind { return d.kind }

// Path returns the path the document was opened from.
func (d *DocumentContent) Path() string { return d.path }

// Handle returns the current display handle.
func (d *DocumentContent) Handle() *Handle {
	switch d.kind {
	case KindVector:
		return d.vector.Handle()
	case KindPortable:
		return d.portable.Handle()
	default:
		return d.raster.Handle()
	}
}

// Dimensions returns the current pixel dimensions after transformations.
func (d *DocumentContent) Dimensions() (int, int) {
	switch d.kind {
	case KindVector:
		return d.vector.Dimensions()
	case KindPortable:
		return d.portable.Dimensions()
	default:
		return d.raster.Dimensions()
	}
}

// TransformState returns the accumulated transform of the live backend.
func (d *DocumentContent) TransformState() TransformState {
	switch d.kind {
	case KindVector:
		return d.vector.TransformState()
	case KindPortable:
		return d.portable.TransformState()
	default:
		return d.raster.TransformState()
	}
}

// Render produces a display handle at the requested scale. Raster content
// ignores the scale; vector and portable content re-derive from their
// retained source.
func (d *DocumentContent) Render(scale float64) (*Handle, error) {
	switch d.kind {
	case KindVector:
		return d.vector.Render(scale), nil
	case KindPortable:
		return d.portable.Render(scale)
	default:
		return d.raster.Render(scale), nil
	}
}

// RotateCW rotates the document 90 degrees clockwise. Any prior fine
// rotation is reconciled to the nearest standard step first, so backends
// only ever receive standard values.
func (d *DocumentContent) RotateCW() { d.rotate(Rotate90) }

// RotateCCW rotates the document 90 degrees counter-clockwise, with the
// same fine-rotation reconciliation as RotateCW.
func (d *DocumentContent) RotateCCW() { d.rotate(Rotate270) }

func (d *DocumentContent) rotate(step Rotation) {
	switch d.kind {
	case KindVector:
		d.vector.Rotate(step)
	case KindPortable:
		d.portable.Rotate(step)
	default:
		d.raster.Rotate(step)
	}
}

// RotateFine rotates by an arbitrary angle in clockwise degrees. Raster
// content only supports standard steps, so the request is a benign no-op
// for that kind.
func (d *DocumentContent) RotateFine(degrees float32) {
	switch d.kind {
	case KindVector:
		d.vector.RotateFine(degrees)
	case KindPortable:
		d.portable.RotateFine(degrees)
	default:
		Logger().Debug("fine rotation ignored for raster content",
			slog.String("path", d.path))
	}
}

// Flip mirrors the document along the given axis and re-renders.
func (d *DocumentContent) Flip(dir FlipDirection) {
	switch d.kind {
	case KindVector:
		d.vector.Flip(dir)
	case KindPortable:
		d.portable.Flip(dir)
	default:
		d.raster.Flip(dir)
	}
}

// Crop cuts the document to the given region of the current pixel space.
// Raster and vector reject out-of-bounds regions strictly; portable clamps
// width and height when the origin is in bounds.
func (d *DocumentContent) Crop(region CropRegion) error {
	switch d.kind {
	case KindVector:
		return d.vector.Crop(region)
	case KindPortable:
		return d.portable.Crop(region)
	default:
		return d.raster.Crop(region)
	}
}

// ExtractMeta builds a read-only metadata snapshot on demand.
func (d *DocumentContent) ExtractMeta() DocumentMeta {
	switch d.kind {
	case KindVector:
		return d.vector.ExtractMeta(d.path)
	case KindPortable:
		return d.portable.ExtractMeta(d.path)
	default:
		return d.raster.ExtractMeta(d.path)
	}
}

// IsMultiPage reports whether the document has more than one page.
func (d *DocumentContent) IsMultiPage() bool {
	return d.kind == KindPortable && d.portable.PageCount() > 1
}

// PageCount returns the total page count; non-paginated kinds report 1.
func (d *DocumentContent) PageCount() int {
	if d.kind == KindPortable {
		return d.portable.PageCount()
	}
	return 1
}

// CurrentPage returns the 0-based page cursor; non-paginated kinds report 0.
func (d *DocumentContent) CurrentPage() int {
	if d.kind == KindPortable {
		return d.portable.CurrentPage()
	}
	return 0
}

// GoToPage navigates to a page. Non-paginated kinds succeed trivially for
// page 0 and reject anything else.
func (d *DocumentContent) GoToPage(page int) error {
	if d.kind == KindPortable {
		return d.portable.GoToPage(page)
	}
	if page != 0 {
		return fmt.Errorf("%w: %d (document has 1 page)", ErrPageOutOfRange, page)
	}
	return nil
}

// NextPage advances the page cursor; false for non-paginated kinds.
func (d *DocumentContent) NextPage() bool {
	return d.kind == KindPortable && d.portable.NextPage()
}

// PrevPage moves the page cursor back; false for non-paginated kinds.
func (d *DocumentContent) PrevPage() bool {
	return d.kind == KindPortable && d.portable.PrevPage()
}

// GenerateThumbnailPage generates one page thumbnail; see
// PortableDocument.GenerateThumbnailPage. Non-paginated kinds report done
// immediately.
func (d *DocumentContent) GenerateThumbnailPage(page int) (int, bool) {
	if d.kind == KindPortable {
		return d.portable.GenerateThumbnailPage(page)
	}
	return 0, false
}

// GenerateThumbnails generates every page thumbnail synchronously; a no-op
// for non-paginated kinds.
func (d *DocumentContent) GenerateThumbnails() {
	if d.kind == KindPortable {
		d.portable.GenerateThumbnails()
	}
}

// ThumbnailsReady reports whether every page thumbnail is available; false
// for non-paginated kinds.
func (d *DocumentContent) ThumbnailsReady() bool {
	return d.kind == KindPortable && d.portable.ThumbnailsReady()
}

// ThumbnailsLoaded returns the number of thumbnails generated so far.
func (d *DocumentContent) ThumbnailsLoaded() int {
	if d.kind == KindPortable {
		return d.portable.ThumbnailsLoaded()
	}
	return 0
}

// Thumbnail returns the cached thumbnail for a page, or nil when absent or
// not applicable.
func (d *DocumentContent) Thumbnail(page int) *Handle {
	if d.kind == KindPortable {
		return d.portable.Thumbnail(page)
	}
	return nil
}
