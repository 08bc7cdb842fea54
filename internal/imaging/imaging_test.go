package imaging

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

// testImage builds a w x h image whose pixel at (x, y) encodes its own
// coordinates, so permutations can be verified exactly.
func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0, A: 255})
		}
	}
	return img
}

func pixelsEqual(a, b *image.NRGBA) bool {
	return a.Rect.Dx() == b.Rect.Dx() && a.Rect.Dy() == b.Rect.Dy() &&
		bytes.Equal(a.Pix, b.Pix)
}

func TestRotate90(t *testing.T) {
	src := testImage(3, 2)
	dst := Rotate90(src)

	if dst.Rect.Dx() != 2 || dst.Rect.Dy() != 3 {
		t.Fatalf("dimensions = %dx%d, want 2x3", dst.Rect.Dx(), dst.Rect.Dy())
	}
	// (x, y) moves to (h-1-y, x).
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			got := dst.NRGBAAt(2-1-y, x)
			if got.R != uint8(x) || got.G != uint8(y) {
				t.Errorf("source (%d,%d) landed wrong: got (%d,%d)", x, y, got.R, got.G)
			}
		}
	}
}

func TestRotate270(t *testing.T) {
	src := testImage(3, 2)
	dst := Rotate270(src)

	if dst.Rect.Dx() != 2 || dst.Rect.Dy() != 3 {
		t.Fatalf("dimensions = %dx%d, want 2x3", dst.Rect.Dx(), dst.Rect.Dy())
	}
	// (x, y) moves to (y, w-1-x).
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			got := dst.NRGBAAt(y, 3-1-x)
			if got.R != uint8(x) || got.G != uint8(y) {
				t.Errorf("source (%d,%d) landed wrong: got (%d,%d)", x, y, got.R, got.G)
			}
		}
	}
}

func TestRotate_Identities(t *testing.T) {
	src := testImage(5, 3)

	// Four quarter turns restore the original exactly.
	img := src
	for i := 0; i < 4; i++ {
		img = Rotate90(img)
	}
	if !pixelsEqual(img, src) {
		t.Error("four 90-degree turns did not restore the original")
	}

	// 90 then 270 cancels.
	if !pixelsEqual(Rotate270(Rotate90(src)), src) {
		t.Error("90 followed by 270 did not cancel")
	}

	// Two half turns cancel.
	if !pixelsEqual(Rotate180(Rotate180(src)), src) {
		t.Error("two 180-degree turns did not cancel")
	}

	// 180 equals two 90s.
	if !pixelsEqual(Rotate180(src), Rotate90(Rotate90(src))) {
		t.Error("180 differs from two 90s")
	}

	// 0 passes through.
	if Rotate(src, 0) != src {
		t.Error("Rotate(src, 0) did not return src unchanged")
	}
}

func TestFlip_Identities(t *testing.T) {
	src := testImage(4, 3)

	if !pixelsEqual(FlipH(FlipH(src)), src) {
		t.Error("double horizontal flip did not cancel")
	}
	if !pixelsEqual(FlipV(FlipV(src)), src) {
		t.Error("double vertical flip did not cancel")
	}

	// FlipH mirrors columns.
	got := FlipH(src).NRGBAAt(0, 0)
	if got.R != 3 || got.G != 0 {
		t.Errorf("FlipH corner = (%d,%d), want (3,0)", got.R, got.G)
	}

	// FlipV mirrors rows.
	got = FlipV(src).NRGBAAt(0, 0)
	if got.R != 0 || got.G != 2 {
		t.Errorf("FlipV corner = (%d,%d), want (0,2)", got.R, got.G)
	}

	// Flipping both axes equals a half turn.
	if !pixelsEqual(FlipV(FlipH(src)), Rotate180(src)) {
		t.Error("FlipH+FlipV differs from Rotate180")
	}
}

func TestCrop(t *testing.T) {
	src := testImage(6, 4)
	dst := Crop(src, 2, 1, 3, 2)

	if dst.Rect.Dx() != 3 || dst.Rect.Dy() != 2 {
		t.Fatalf("dimensions = %dx%d, want 3x2", dst.Rect.Dx(), dst.Rect.Dy())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			got := dst.NRGBAAt(x, y)
			if got.R != uint8(2+x) || got.G != uint8(1+y) {
				t.Errorf("crop (%d,%d) = (%d,%d), want (%d,%d)",
					x, y, got.R, got.G, 2+x, 1+y)
			}
		}
	}

	// The crop is a copy, not a view.
	src.SetNRGBA(2, 1, color.NRGBA{R: 99, G: 99, A: 255})
	if dst.NRGBAAt(0, 0).R == 99 {
		t.Error("crop shares pixels with the source")
	}
}

func TestRotateAbout(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 200, A: 255})
		}
	}

	// Zero degrees is an exact identity.
	if !pixelsEqual(RotateAbout(src, 0, color.NRGBA{}), src) {
		t.Error("RotateAbout(0) changed the image")
	}

	// A 45-degree turn keeps the bounding box, keeps the center covered,
	// and clips the corners to the background.
	dst := RotateAbout(src, 45, color.NRGBA{})
	if dst.Rect.Dx() != 8 || dst.Rect.Dy() != 8 {
		t.Fatalf("dimensions = %dx%d, want 8x8", dst.Rect.Dx(), dst.Rect.Dy())
	}
	if got := dst.NRGBAAt(4, 4); got.A < 200 || got.R < 150 {
		t.Errorf("center after 45 = %+v, want red content", got)
	}
	if got := dst.NRGBAAt(0, 0); got.A > 50 {
		t.Errorf("corner after 45 = %+v, want near-transparent", got)
	}

	// An opaque background shows through the clipped corners instead.
	dst = RotateAbout(src, 45, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	if got := dst.NRGBAAt(0, 0); got.A != 255 || got.G < 200 {
		t.Errorf("corner with white bg = %+v, want white", got)
	}

	// Content must actually move: rotating a marked edge pixel by 90
	// degrees lands it a quarter turn around the center.
	src.SetNRGBA(4, 0, color.NRGBA{B: 255, A: 255})
	dst = RotateAbout(src, 90, color.NRGBA{})
	if got := dst.NRGBAAt(7, 4); got.B < 100 {
		t.Errorf("edge marker after 90 = %+v, want blue", got)
	}
	if got := dst.NRGBAAt(4, 0); got.B > 100 {
		t.Errorf("edge marker did not move: %+v", got)
	}
}

func TestUnpremultiply(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 1))
	// Half-transparent red, premultiplied.
	src.SetRGBA(0, 0, color.RGBA{R: 64, G: 0, B: 0, A: 128})
	// Opaque passes through.
	src.SetRGBA(1, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	// Fully transparent must not divide by zero.
	src.SetRGBA(2, 0, color.RGBA{R: 7, G: 7, B: 7, A: 0})

	dst := Unpremultiply(src)

	got := dst.NRGBAAt(0, 0)
	if got.R != 127 || got.A != 128 {
		t.Errorf("half-transparent = %+v, want R=127 A=128", got)
	}
	got = dst.NRGBAAt(1, 0)
	if got != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("opaque = %+v, want unchanged", got)
	}
	got = dst.NRGBAAt(2, 0)
	if got != (color.NRGBA{}) {
		t.Errorf("transparent = %+v, want all zero", got)
	}
}
