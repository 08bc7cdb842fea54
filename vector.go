package docview

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/gogpu/docview/internal/imaging"
)

const (
	// scaleEpsilon is the tolerance for scale comparisons; requests within
	// it of the cached scale are treated as no-ops.
	scaleEpsilon = 1e-4

	// minRasterSize clamps target dimensions so a vector render never
	// produces a zero-area raster.
	minRasterSize = 1
)

// VectorDocument is the vector backend. The parsed scene is retained and
// never mutated; the raster buffer and handle are fully recomputed from
// (scene, scale, transform) on every change. Deriving a new scale from a
// previous raster would lose edge fidelity, so re-rendering always starts
// from the scene.
type VectorDocument struct {
	icon         *oksvg.SvgIcon
	nativeWidth  int
	nativeHeight int
	scale        float64
	transform    TransformState
	buf          *image.NRGBA
	handle       *Handle

	// cropped marks the instance terminal: the raster no longer matches the
	// scene, so scale-driven re-derivation is disabled.
	cropped bool
}

// OpenVector parses the SVG at path into a retained scene and performs the
// initial render at scale 1.0. Gzip-compressed sources (.svgz) are
// decompressed transparently.
func OpenVector(path string) (*VectorDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("docview: open %s: %w", path, err)
	}
	if len(data) > 2 && data[0] == 0x1f && data[1] == 0x8b {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("docview: decompress %s: %w", filepath.Base(path), err)
		}
		data, err = io.ReadAll(zr)
		zr.Close()
		if err != nil {
			return nil, fmt.Errorf("docview: decompress %s: %w", filepath.Base(path), err)
		}
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("docview: parse %s: %w", filepath.Base(path), err)
	}

	d := &VectorDocument{
		icon:         icon,
		nativeWidth:  max(minRasterSize, int(math.Ceil(icon.ViewBox.W))),
		nativeHeight: max(minRasterSize, int(math.Ceil(icon.ViewBox.H))),
		scale:        1.0,
	}
	d.rerenderAt(1.0)
	return d, nil
}

// Dimensions returns the current rendered dimensions.
func (d *VectorDocument) Dimensions() (int, int) {
	return d.buf.Rect.Dx(), d.buf.Rect.Dy()
}

// Handle returns the current display handle.
func (d *VectorDocument) Handle() *Handle { return d.handle }

// TransformState returns the accumulated transform.
func (d *VectorDocument) TransformState() TransformState { return d.transform }

// NativeDimensions returns the intrinsic scene size in pixels.
func (d *VectorDocument) NativeDimensions() (int, int) {
	return d.nativeWidth, d.nativeHeight
}

// Render re-derives the raster from the retained scene at the given scale.
// A request within scaleEpsilon of the cached scale returns the cached
// result without recomputation. After a crop the instance is terminal and
// every scale is answered with the current buffer.
func (d *VectorDocument) Render(scale float64) *Handle {
	if d.cropped || math.Abs(scale-d.scale) < scaleEpsilon {
		return d.handle
	}
	d.rerenderAt(scale)
	return d.handle
}

// Rotate applies an additional quarter-turn clockwise step, then fully
// re-renders from the scene at the current scale.
func (d *VectorDocument) Rotate(step Rotation) {
	abs := Rotation((d.transform.Rotation.Snap().Degrees() + step.Degrees()) % 360)
	d.transform.Rotation = StandardRotation(abs)
	d.rerenderAt(d.scale)
}

// RotateFine sets a fine-grained rotation angle and re-renders. The angle
// stays authoritative until the next quarter-turn snaps it to standard.
func (d *VectorDocument) RotateFine(degrees float32) {
	d.transform.Rotation = FineRotation(degrees)
	d.rerenderAt(d.scale)
}

// Flip toggles the given axis and re-renders from the scene.
func (d *VectorDocument) Flip(dir FlipDirection) {
	d.transform = d.transform.Flipped(dir)
	d.rerenderAt(d.scale)
}

// Crop replaces the current raster with the sub-region, using the same
// strict bounds contract as the raster backend. The crop is terminal for
// this instance: scale-driven re-rendering is disabled afterwards and the
// transform state resets to identity.
func (d *VectorDocument) Crop(region CropRegion) error {
	w, h := d.Dimensions()
	if err := region.validate(w, h); err != nil {
		return err
	}
	d.buf = imaging.Crop(d.buf, int(region.X), int(region.Y), int(region.Width), int(region.Height))
	d.cropped = true
	d.transform = TransformState{}
	d.refreshHandle()
	return nil
}

// ExtractMeta builds the metadata snapshot. Native dimensions are reported,
// matching what the scene declares rather than the current render scale.
func (d *VectorDocument) ExtractMeta(path string) DocumentMeta {
	return buildMeta(path, "SVG", d.nativeWidth, d.nativeHeight, "RGBA (8-bit)")
}

// rerenderAt rasterizes the retained scene at the given scale and applies
// the transform stack in fixed order: rasterize, flip horizontal, flip
// vertical, rotate.
func (d *VectorDocument) rerenderAt(scale float64) {
	w := max(minRasterSize, int(math.Ceil(float64(d.nativeWidth)*scale)))
	h := max(minRasterSize, int(math.Ceil(float64(d.nativeHeight)*scale)))

	// The rasterizer writes premultiplied alpha; convert to the straight
	// alpha every other component expects.
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	d.icon.SetTarget(0, 0, float64(w), float64(h))
	d.icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	buf := imaging.Unpremultiply(rgba)

	if d.transform.FlipH {
		buf = imaging.FlipH(buf)
	}
	if d.transform.FlipV {
		buf = imaging.FlipV(buf)
	}
	if d.transform.Rotation.IsFine() {
		// Center-pivot resample; outside the scene stays transparent.
		buf = imaging.RotateAbout(buf, float64(d.transform.Rotation.FineDegrees()), color.NRGBA{})
	} else {
		buf = imaging.Rotate(buf, d.transform.Rotation.Snap().Degrees())
	}

	d.scale = scale
	d.buf = buf
	d.refreshHandle()
}

func (d *VectorDocument) refreshHandle() {
	d.handle = NewHandle(d.buf.Rect.Dx(), d.buf.Rect.Dy(), d.buf.Pix)
}
