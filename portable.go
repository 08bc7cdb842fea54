package docview

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
	"github.com/gogpu/gg"

	"github.com/gogpu/docview/internal/imaging"
	"github.com/gogpu/docview/thumbcache"
)

const (
	// defaultRenderScale is the sharp-display multiplier for page renders.
	// Pages are rasterized at twice their nominal size so they stay crisp
	// on scaled displays.
	defaultRenderScale = 2.0

	// defaultThumbnailScale is the preview multiplier for page-strip
	// thumbnails.
	defaultThumbnailScale = 0.25

	// baseDPI is the nominal resolution of page geometry; render DPI is
	// baseDPI times the requested scale.
	baseDPI = 72.0
)

// PortableDocument is the paginated backend. The parsed document is
// retained and immutable; one page at a time is rendered to an off-screen
// drawing surface at a given scale and rotation. The backend owns the page
// cursor and an incrementally-populated thumbnail store.
type PortableDocument struct {
	doc        *fitz.Document
	sourcePath string
	pageCount  int
	pageIndex  int
	transform  TransformState

	renderScale float64
	thumbScale  float64
	cache       *thumbcache.Store

	buf    *image.NRGBA
	handle *Handle

	// thumbs is nil until the first generation request. Its length is the
	// number of leading pages with cached thumbnails; entries are appended
	// strictly in page order, never with gaps.
	thumbs []*Handle

	// renderThumb produces one page's preview render. Held as a field so
	// tests can inject a failing page.
	renderThumb func(page int) (*image.NRGBA, error)
}

// openPortable parses the document at path and renders page 0 at the sharp
// display scale with no rotation.
func openPortable(path string, cfg config) (*PortableDocument, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("docview: parse %s: %w", filepath.Base(path), err)
	}
	pageCount := doc.NumPage()
	if pageCount == 0 {
		doc.Close()
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, filepath.Base(path))
	}

	d := &PortableDocument{
		doc:         doc,
		sourcePath:  path,
		pageCount:   pageCount,
		renderScale: cfg.renderScale,
		thumbScale:  cfg.thumbnailScale,
		cache:       cfg.thumbCache,
	}
	d.renderThumb = func(page int) (*image.NRGBA, error) {
		return d.renderPage(page, 0, d.thumbScale)
	}
	buf, err := d.renderPage(0, 0, d.renderScale)
	if err != nil {
		doc.Close()
		return nil, err
	}
	d.buf = buf
	d.refreshHandle()
	return d, nil
}

// Close releases the parsed document.
func (d *PortableDocument) Close() error {
	return d.doc.Close()
}

// Dimensions returns the dimensions of the currently rendered page.
func (d *PortableDocument) Dimensions() (int, int) {
	return d.buf.Rect.Dx(), d.buf.Rect.Dy()
}

// Handle returns the current display handle.
func (d *PortableDocument) Handle() *Handle { return d.handle }

// TransformState returns the accumulated transform.
func (d *PortableDocument) TransformState() TransformState { return d.transform }

// PageCount returns the total number of pages.
func (d *PortableDocument) PageCount() int { return d.pageCount }

// CurrentPage returns the 0-based page cursor.
func (d *PortableDocument) CurrentPage() int { return d.pageIndex }

// Render re-renders the current page at the given scale with the current
// transform. A request within tolerance of the current scale returns the
// cached result.
func (d *PortableDocument) Render(scale float64) (*Handle, error) {
	if math.Abs(scale-d.renderScale) < scaleEpsilon {
		return d.handle, nil
	}
	if err := d.rerenderAt(d.pageIndex, scale); err != nil {
		return d.handle, err
	}
	d.renderScale = scale
	return d.handle, nil
}

// Rotate applies an additional quarter-turn clockwise step. The page is
// re-rendered from the source and the turn applied as an exact permutation
// of the fresh raster.
func (d *PortableDocument) Rotate(step Rotation) {
	abs := Rotation((d.transform.Rotation.Snap().Degrees() + step.Degrees()) % 360)
	prior := d.transform.Rotation
	d.transform.Rotation = StandardRotation(abs)
	if err := d.rerenderAt(d.pageIndex, d.renderScale); err != nil {
		d.transform.Rotation = prior
		Logger().Error("page render failed, prior state retained",
			slog.Int("page", d.pageIndex), slog.Any("error", err))
	}
}

// RotateFine sets a fine-grained rotation angle, applied to the fresh page
// render as a center-pivot resample. The angle stays authoritative until the
// next quarter-turn snaps it to standard.
func (d *PortableDocument) RotateFine(degrees float32) {
	prior := d.transform.Rotation
	d.transform.Rotation = FineRotation(degrees)
	if err := d.rerenderAt(d.pageIndex, d.renderScale); err != nil {
		d.transform.Rotation = prior
		Logger().Error("page render failed, prior state retained",
			slog.Int("page", d.pageIndex), slog.Any("error", err))
	}
}

// Flip toggles the given axis. Unlike rotation, flip is applied as a pixel
// mirror on the rendered raster rather than through the surface transform.
func (d *PortableDocument) Flip(dir FlipDirection) {
	d.transform = d.transform.Flipped(dir)
	switch dir {
	case FlipHorizontal:
		d.buf = imaging.FlipH(d.buf)
	case FlipVertical:
		d.buf = imaging.FlipV(d.buf)
	}
	d.refreshHandle()
}

// GoToPage moves the cursor and re-renders the new page with the current
// transform state. The cursor only moves if the render succeeds.
func (d *PortableDocument) GoToPage(page int) error {
	if page < 0 || page >= d.pageCount {
		return fmt.Errorf("%w: %d (document has %d pages)", ErrPageOutOfRange, page, d.pageCount)
	}
	if err := d.rerenderAt(page, d.renderScale); err != nil {
		return err
	}
	d.pageIndex = page
	return nil
}

// NextPage advances the cursor, reporting whether navigation happened.
func (d *PortableDocument) NextPage() bool {
	if d.pageIndex+1 >= d.pageCount {
		return false
	}
	return d.GoToPage(d.pageIndex+1) == nil
}

// PrevPage moves the cursor back, reporting whether navigation happened.
func (d *PortableDocument) PrevPage() bool {
	if d.pageIndex == 0 {
		return false
	}
	return d.GoToPage(d.pageIndex-1) == nil
}

// Crop replaces the rendered page raster with the sub-region. X and Y must
// be in bounds; width and height are clamped to the available region rather
// than rejected. This is the one backend where clamping replaces strict
// rejection.
func (d *PortableDocument) Crop(region CropRegion) error {
	w, h := d.Dimensions()
	clamped, err := region.clampTo(w, h)
	if err != nil {
		return err
	}
	d.buf = imaging.Crop(d.buf, int(clamped.X), int(clamped.Y), int(clamped.Width), int(clamped.Height))
	d.refreshHandle()
	return nil
}

// ExtractMeta builds the metadata snapshot. The format label carries the
// page count.
func (d *PortableDocument) ExtractMeta(path string) DocumentMeta {
	w, h := d.Dimensions()
	format := fmt.Sprintf("PDF (%d pages)", d.pageCount)
	return buildMeta(path, format, w, h, "RGBA (8-bit)")
}

// GenerateThumbnailPage generates the thumbnail for one page, the unit of
// work for resumable generation. The store is initialized lazily; a page
// already covered by the store's length, or past the end, generates
// nothing. The disk cache is consulted before rendering; a miss renders at
// the preview scale and persists the result. Thumbnails are appended
// strictly in page order so the store never has gaps.
//
// It returns (page+1, true) while pages remain, and (0, false) once
// page+1 equals the page count, letting a caller drive generation one page
// per tick without blocking.
func (d *PortableDocument) GenerateThumbnailPage(page int) (int, bool) {
	if d.thumbs == nil {
		d.thumbs = make([]*Handle, 0, d.pageCount)
	}
	if page >= len(d.thumbs) && page < d.pageCount {
		d.thumbs = append(d.thumbs, d.loadOrGenerateThumbnail(page))
	}
	next := page + 1
	if next < d.pageCount {
		return next, true
	}
	return 0, false
}

// GenerateThumbnails drives GenerateThumbnailPage over every page,
// blocking until the store is complete.
func (d *PortableDocument) GenerateThumbnails() {
	if d.ThumbnailsReady() {
		return
	}
	for page, more := 0, true; more; {
		page, more = d.GenerateThumbnailPage(page)
	}
}

// ThumbnailsReady reports whether every page has a cached thumbnail.
func (d *PortableDocument) ThumbnailsReady() bool {
	return d.thumbs != nil && len(d.thumbs) >= d.pageCount
}

// ThumbnailsLoaded returns the number of thumbnails generated so far.
func (d *PortableDocument) ThumbnailsLoaded() int { return len(d.thumbs) }

// Thumbnail returns the cached thumbnail handle for a page, or nil if it
// has not been generated yet.
func (d *PortableDocument) Thumbnail(page int) *Handle {
	if page < 0 || page >= len(d.thumbs) {
		return nil
	}
	return d.thumbs[page]
}

// loadOrGenerateThumbnail resolves one thumbnail: disk cache first, then a
// fresh render at the preview scale which is persisted for next time. A
// failed render is logged and yields a transparent placeholder so sequence
// generation is never aborted by one bad page.
func (d *PortableDocument) loadOrGenerateThumbnail(page int) *Handle {
	if d.cache != nil {
		if img, ok := d.cache.Load(d.sourcePath, page); ok {
			return HandleFromImage(img)
		}
	}

	buf, err := d.renderThumb(page)
	if err != nil {
		Logger().Warn("thumbnail render failed, using placeholder",
			slog.Int("page", page), slog.Any("error", err))
		return placeholderHandle()
	}
	if d.cache != nil {
		if err := d.cache.Save(d.sourcePath, page, buf); err != nil {
			Logger().Warn("thumbnail not persisted", slog.Int("page", page), slog.Any("error", err))
		}
	}
	return NewHandle(buf.Rect.Dx(), buf.Rect.Dy(), buf.Pix)
}

// rerenderAt renders one page with the current rotation at the given scale
// and re-applies any flips as a post-process. State is only committed on
// success.
func (d *PortableDocument) rerenderAt(page int, scale float64) error {
	deg := float64(d.transform.Rotation.FineDegrees())
	if !d.transform.Rotation.IsFine() {
		deg = float64(d.transform.Rotation.Snap().Degrees())
	}
	buf, err := d.renderPage(page, deg, scale)
	if err != nil {
		return err
	}
	if d.transform.FlipH {
		buf = imaging.FlipH(buf)
	}
	if d.transform.FlipV {
		buf = imaging.FlipV(buf)
	}
	d.buf = buf
	d.refreshHandle()
	return nil
}

// renderPage rasterizes one page at the given scale and clockwise rotation.
//
// The composition order is fixed: the page is rasterized by MuPDF at
// baseDPI*scale (the scale leg of the affine); the raster is flattened onto
// a white surface since pages are not guaranteed opaque; rotation is then
// applied to the flattened raster. Quarter turns are exact permutations and
// swap width and height themselves; any other angle pivots on the buffer
// center, keeping the bounding box and filling uncovered regions white.
// Rotation cannot ride the surface transform: an image draw only honors an
// axis-aligned destination rect.
func (d *PortableDocument) renderPage(page int, rotationDeg, scale float64) (*image.NRGBA, error) {
	pageImg, err := d.doc.ImageDPI(page, baseDPI*scale)
	if err != nil {
		return nil, fmt.Errorf("docview: render page %d: %w", page, err)
	}

	b := pageImg.Bounds()
	dc := gg.NewContext(max(1, b.Dx()), max(1, b.Dy()))
	defer dc.Close()
	dc.ClearWithColor(gg.White)
	dc.DrawImage(gg.ImageBufFromImage(pageImg), 0, 0)
	buf := toNRGBA(dc.Image())

	switch rotationDeg {
	case 0:
	case 90, 180, 270:
		buf = imaging.Rotate(buf, int(rotationDeg))
	default:
		buf = imaging.RotateAbout(buf, rotationDeg, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return buf, nil
}

func (d *PortableDocument) refreshHandle() {
	d.handle = NewHandle(d.buf.Rect.Dx(), d.buf.Rect.Dy(), d.buf.Pix)
}
