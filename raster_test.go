package docview

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeFixturePNG writes a w x h PNG whose pixel at (x, y) encodes its own
// coordinates in the red and green channels.
func writeFixturePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "fixture.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenRaster(t *testing.T) {
	path := writeFixturePNG(t, 6, 4)
	doc, err := OpenRaster(path)
	if err != nil {
		t.Fatalf("OpenRaster: %v", err)
	}

	if w, h := doc.Dimensions(); w != 6 || h != 4 {
		t.Errorf("Dimensions() = %dx%d, want 6x4", w, h)
	}
	if !doc.TransformState().IsIdentity() {
		t.Error("fresh document has non-identity transform")
	}
	if got := doc.Handle().Image().NRGBAAt(3, 2); got.R != 3 || got.G != 2 {
		t.Errorf("pixel (3,2) = (%d,%d), want (3,2)", got.R, got.G)
	}
}

func TestOpenRaster_MissingFile(t *testing.T) {
	if _, err := OpenRaster(filepath.Join(t.TempDir(), "absent.png")); err == nil {
		t.Fatal("OpenRaster succeeded on a missing file")
	}
}

func TestOpenRaster_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenRaster(path); err == nil {
		t.Fatal("OpenRaster succeeded on corrupt data")
	}
}

func TestRasterDocument_Rotate(t *testing.T) {
	doc, err := OpenRaster(writeFixturePNG(t, 6, 4))
	if err != nil {
		t.Fatal(err)
	}

	doc.Rotate(Rotate90)
	if w, h := doc.Dimensions(); w != 4 || h != 6 {
		t.Fatalf("after 90: %dx%d, want 4x6", w, h)
	}
	if got := doc.TransformState().Rotation.Snap(); got != Rotate90 {
		t.Errorf("rotation state = %v, want %v", got, Rotate90)
	}
	// Top-left of the source lands at the top-right.
	if got := doc.Handle().Image().NRGBAAt(3, 0); got.R != 0 || got.G != 0 {
		t.Errorf("rotated corner = (%d,%d), want (0,0)", got.R, got.G)
	}

	// Three more quarter turns restore the original orientation and state.
	doc.Rotate(Rotate90)
	doc.Rotate(Rotate90)
	doc.Rotate(Rotate90)
	if w, h := doc.Dimensions(); w != 6 || h != 4 {
		t.Errorf("after full turn: %dx%d, want 6x4", w, h)
	}
	if got := doc.TransformState().Rotation.Snap(); got != RotateNone {
		t.Errorf("rotation state after full turn = %v, want %v", got, RotateNone)
	}
	if got := doc.Handle().Image().NRGBAAt(3, 2); got.R != 3 || got.G != 2 {
		t.Errorf("pixel (3,2) after full turn = (%d,%d), want (3,2)", got.R, got.G)
	}
}

func TestRasterDocument_Flip(t *testing.T) {
	doc, err := OpenRaster(writeFixturePNG(t, 6, 4))
	if err != nil {
		t.Fatal(err)
	}

	doc.Flip(FlipHorizontal)
	if !doc.TransformState().FlipH {
		t.Error("FlipH state not set")
	}
	if got := doc.Handle().Image().NRGBAAt(0, 0); got.R != 5 {
		t.Errorf("mirrored corner R = %d, want 5", got.R)
	}

	// The same flip again restores content and state.
	doc.Flip(FlipHorizontal)
	if doc.TransformState().FlipH {
		t.Error("double flip left FlipH set")
	}
	if got := doc.Handle().Image().NRGBAAt(0, 0); got.R != 0 {
		t.Errorf("corner R after double flip = %d, want 0", got.R)
	}

	doc.Flip(FlipVertical)
	if got := doc.Handle().Image().NRGBAAt(0, 0); got.G != 3 {
		t.Errorf("vertically mirrored corner G = %d, want 3", got.G)
	}
}

func TestRasterDocument_Crop(t *testing.T) {
	doc, err := OpenRaster(writeFixturePNG(t, 6, 4))
	if err != nil {
		t.Fatal(err)
	}
	doc.Rotate(Rotate90)

	if err := doc.Crop(NewCropRegion(1, 1, 2, 3)); err != nil {
		t.Fatalf("Crop: %v", err)
	}
	if w, h := doc.Dimensions(); w != 2 || h != 3 {
		t.Errorf("after crop: %dx%d, want 2x3", w, h)
	}
	// A destructive crop finalizes a new native image.
	if !doc.TransformState().IsIdentity() {
		t.Error("crop did not reset the transform state")
	}
}

func TestRasterDocument_CropRejected(t *testing.T) {
	doc, err := OpenRaster(writeFixturePNG(t, 6, 4))
	if err != nil {
		t.Fatal(err)
	}

	err = doc.Crop(NewCropRegion(4, 0, 10, 4))
	if !errors.Is(err, ErrCropOutOfBounds) {
		t.Fatalf("Crop error = %v, want ErrCropOutOfBounds", err)
	}
	// Rejection leaves the document untouched.
	if w, h := doc.Dimensions(); w != 6 || h != 4 {
		t.Errorf("dimensions after rejected crop: %dx%d, want 6x4", w, h)
	}
	if got := doc.Handle().Image().NRGBAAt(3, 2); got.R != 3 || got.G != 2 {
		t.Errorf("pixels changed after rejected crop")
	}
}

func TestRasterDocument_RenderIgnoresScale(t *testing.T) {
	doc, err := OpenRaster(writeFixturePNG(t, 6, 4))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Render(3.0) != doc.Handle() {
		t.Error("Render returned a different handle for a scale request")
	}
	if w, h := doc.Dimensions(); w != 6 || h != 4 {
		t.Errorf("scale request changed dimensions to %dx%d", w, h)
	}
}

func TestRasterDocument_ExtractMeta(t *testing.T) {
	path := writeFixturePNG(t, 6, 4)
	doc, err := OpenRaster(path)
	if err != nil {
		t.Fatal(err)
	}

	meta := doc.ExtractMeta(path)
	if meta.FileName != "fixture.png" {
		t.Errorf("FileName = %q", meta.FileName)
	}
	if meta.Format != "PNG" {
		t.Errorf("Format = %q, want PNG", meta.Format)
	}
	if meta.Width != 6 || meta.Height != 4 {
		t.Errorf("size = %dx%d, want 6x4", meta.Width, meta.Height)
	}
	if meta.FileSizeBytes <= 0 {
		t.Errorf("FileSizeBytes = %d", meta.FileSizeBytes)
	}
	if meta.Exif != nil {
		t.Error("PNG reported EXIF data")
	}

	// Metadata tracks the current state, not the state at open.
	doc.Rotate(Rotate90)
	meta = doc.ExtractMeta(path)
	if meta.Width != 4 || meta.Height != 6 {
		t.Errorf("size after rotate = %dx%d, want 4x6", meta.Width, meta.Height)
	}
}
