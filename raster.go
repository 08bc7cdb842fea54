package docview

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/gen2brain/jpegn"
	"github.com/gogpu/docview/internal/imaging"

	// Raster codecs beyond JPEG register themselves with image.Decode.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// RasterDocument is the raster backend. It owns one decoded pixel buffer
// holding the cumulative result of every transform and crop applied so far.
// Operations mutate that buffer destructively: cheap, and exact for the
// quarter-turn and mirror permutations this backend supports.
type RasterDocument struct {
	buf          *image.NRGBA
	handle       *Handle
	nativeWidth  int
	nativeHeight int
	transform    TransformState
	formatLabel  string
	colorLabel   string
}

// OpenRaster decodes the image at path in full and builds the initial
// display handle. JPEG goes through the jpegn decoder, which honors the
// EXIF orientation tag; everything else goes through the stdlib registry.
func OpenRaster(path string) (*RasterDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("docview: open %s: %w", path, err)
	}
	defer f.Close()

	var img image.Image
	switch normalizedExt(path) {
	case "jpg", "jpeg":
		img, err = jpegn.Decode(f, &jpegn.Options{
			ToRGBA:         true,
			UpsampleMethod: jpegn.CatmullRom,
			AutoRotate:     true,
		})
	default:
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("docview: decode %s: %w", filepath.Base(path), err)
	}

	buf := toNRGBA(img)
	d := &RasterDocument{
		buf:          buf,
		nativeWidth:  buf.Rect.Dx(),
		nativeHeight: buf.Rect.Dy(),
		formatLabel:  rasterFormatLabel(path),
		colorLabel:   colorTypeLabel(img),
	}
	d.refreshHandle()
	return d, nil
}

// Dimensions returns the current pixel dimensions of the buffer.
func (d *RasterDocument) Dimensions() (int, int) {
	return d.buf.Rect.Dx(), d.buf.Rect.Dy()
}

// Handle returns the current display handle.
func (d *RasterDocument) Handle() *Handle { return d.handle }

// TransformState returns the accumulated transform.
func (d *RasterDocument) TransformState() TransformState { return d.transform }

// Render returns the already-materialized buffer regardless of the
// requested scale. Raster content is never re-derived: upsampling would add
// no information and the original source bytes are not retained.
func (d *RasterDocument) Render(scale float64) *Handle {
	_ = scale
	return d.handle
}

// Rotate applies an additional quarter-turn clockwise step as an exact
// pixel permutation. The dispatcher guarantees only standard steps reach
// this backend.
func (d *RasterDocument) Rotate(step Rotation) {
	if step != RotateNone {
		d.buf = imaging.Rotate(d.buf, step.Degrees())
	}
	abs := Rotation((d.transform.Rotation.Snap().Degrees() + step.Degrees()) % 360)
	d.transform.Rotation = StandardRotation(abs)
	d.refreshHandle()
}

// Flip mirrors the buffer in place along the given axis.
func (d *RasterDocument) Flip(dir FlipDirection) {
	switch dir {
	case FlipHorizontal:
		d.buf = imaging.FlipH(d.buf)
	case FlipVertical:
		d.buf = imaging.FlipV(d.buf)
	}
	d.transform = d.transform.Flipped(dir)
	d.refreshHandle()
}

// Crop replaces the buffer with the given sub-region. The region is
// validated strictly against the current bounds; on rejection the buffer is
// untouched. A successful crop finalizes a new native image: the recorded
// native dimensions become the crop size and the transform state resets to
// identity, since prior transform intent does not persist past a
// destructive crop.
func (d *RasterDocument) Crop(region CropRegion) error {
	w, h := d.Dimensions()
	if err := region.validate(w, h); err != nil {
		return err
	}
	d.buf = imaging.Crop(d.buf, int(region.X), int(region.Y), int(region.Width), int(region.Height))
	d.nativeWidth = int(region.Width)
	d.nativeHeight = int(region.Height)
	d.transform = TransformState{}
	d.refreshHandle()
	return nil
}

// ExtractMeta builds the metadata snapshot for this document.
func (d *RasterDocument) ExtractMeta(path string) DocumentMeta {
	w, h := d.Dimensions()
	meta := buildMeta(path, d.formatLabel, w, h, d.colorLabel)
	meta.Exif = extractExif(path)
	return meta
}

func (d *RasterDocument) refreshHandle() {
	d.handle = NewHandle(d.buf.Rect.Dx(), d.buf.Rect.Dy(), d.buf.Pix)
}
