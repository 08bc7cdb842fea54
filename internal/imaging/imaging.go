// Package imaging implements pixel operations on straight-alpha RGBA
// buffers: quarter-turn rotations, axis mirrors, cropping, conversion from
// premultiplied alpha, and arbitrary-angle rotation. Quarter turns and flips
// are pure permutations with no interpolation and no quality loss; only
// RotateAbout resamples.
package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Rotate returns src rotated clockwise by the given number of degrees,
// which must be 0, 90, 180 or 270. 0 returns src unchanged.
func Rotate(src *image.NRGBA, degrees int) *image.NRGBA {
	switch degrees {
	case 90:
		return Rotate90(src)
	case 180:
		return Rotate180(src)
	case 270:
		return Rotate270(src)
	default:
		return src
	}
}

// Rotate90 returns src rotated 90 degrees clockwise. Width and height swap.
func Rotate90(src *image.NRGBA) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, h, w))
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			// (sx, sy) -> (h-1-sy, sx)
			copyPixel(dst, h-1-sy, sx, src, sx, sy)
		}
	}
	return dst
}

// Rotate180 returns src rotated 180 degrees.
func Rotate180(src *image.NRGBA) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			copyPixel(dst, w-1-sx, h-1-sy, src, sx, sy)
		}
	}
	return dst
}

// Rotate270 returns src rotated 270 degrees clockwise (90 counter-clockwise).
func Rotate270(src *image.NRGBA) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, h, w))
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			copyPixel(dst, sy, w-1-sx, src, sx, sy)
		}
	}
	return dst
}

// FlipH returns src mirrored left-right.
func FlipH(src *image.NRGBA) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			copyPixel(dst, w-1-sx, sy, src, sx, sy)
		}
	}
	return dst
}

// FlipV returns src mirrored top-bottom.
func FlipV(src *image.NRGBA) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	rowBytes := w * 4
	for sy := 0; sy < h; sy++ {
		srcOff := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+sy)
		dstOff := dst.PixOffset(0, h-1-sy)
		copy(dst.Pix[dstOff:dstOff+rowBytes], src.Pix[srcOff:srcOff+rowBytes])
	}
	return dst
}

// Crop returns a tightly-packed copy of the sub-region. The caller is
// responsible for bounds validation.
func Crop(src *image.NRGBA, x, y, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	rowBytes := w * 4
	for dy := 0; dy < h; dy++ {
		srcOff := src.PixOffset(src.Rect.Min.X+x, src.Rect.Min.Y+y+dy)
		dstOff := dst.PixOffset(0, dy)
		copy(dst.Pix[dstOff:dstOff+rowBytes], src.Pix[srcOff:srcOff+rowBytes])
	}
	return dst
}

// Unpremultiply converts a premultiplied-alpha RGBA buffer to straight
// alpha: channel = channel * 255 / alpha. Fully transparent pixels map to
// (0,0,0,0) rather than dividing by zero.
func Unpremultiply(src *image.RGBA) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		srcOff := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		dstOff := dst.PixOffset(0, y)
		for x := 0; x < w; x++ {
			a := src.Pix[srcOff+3]
			if a == 0 {
				dst.Pix[dstOff+0] = 0
				dst.Pix[dstOff+1] = 0
				dst.Pix[dstOff+2] = 0
				dst.Pix[dstOff+3] = 0
			} else {
				dst.Pix[dstOff+0] = uint8(uint16(src.Pix[srcOff+0]) * 255 / uint16(a))
				dst.Pix[dstOff+1] = uint8(uint16(src.Pix[srcOff+1]) * 255 / uint16(a))
				dst.Pix[dstOff+2] = uint8(uint16(src.Pix[srcOff+2]) * 255 / uint16(a))
				dst.Pix[dstOff+3] = a
			}
			srcOff += 4
			dstOff += 4
		}
	}
	return dst
}

// RotateAbout resamples src rotated clockwise about its center by an
// arbitrary angle in degrees. The bounding box is preserved: content
// rotating past the edges is clipped and uncovered regions take bg.
// Exact multiples of 90 belong in Rotate, which permutes losslessly.
func RotateAbout(src *image.NRGBA, degrees float64, bg color.NRGBA) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if bg.A != 0 {
		draw.Draw(dst, dst.Rect, image.NewUniform(bg), image.Point{}, draw.Src)
	}

	sin, cos := math.Sincos(degrees * math.Pi / 180)
	cx, cy := float64(w)/2, float64(h)/2
	// In the y-down pixel space this matrix turns content clockwise on
	// screen, pivoting on the buffer center.
	m := f64.Aff3{
		cos, -sin, cx - cos*cx + sin*cy,
		sin, cos, cy - sin*cx - cos*cy,
	}
	xdraw.BiLinear.Transform(dst, m, src, src.Rect, xdraw.Over, nil)
	return dst
}

// copyPixel copies one RGBA pixel between buffers.
func copyPixel(dst *image.NRGBA, dx, dy int, src *image.NRGBA, sx, sy int) {
	srcOff := src.PixOffset(src.Rect.Min.X+sx, src.Rect.Min.Y+sy)
	dstOff := dst.PixOffset(dx, dy)
	copy(dst.Pix[dstOff:dstOff+4], src.Pix[srcOff:srcOff+4])
}
