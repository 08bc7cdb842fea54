package docview

import (
	"image"
	"image/draw"
)

// Handle is a display-ready image: a straight-alpha RGBA byte buffer plus
// its dimensions. Backends rebuild the handle synchronously after every
// mutating call, so the value returned by DocumentContent.Handle always
// reflects the current document state.
type Handle struct {
	width  int
	height int
	pix    []uint8 // RGBA, 4 bytes per pixel
}

// NewHandle wraps an RGBA pixel buffer. The buffer must hold exactly
// width*height*4 bytes; the handle takes ownership of it.
func NewHandle(width, height int, pix []uint8) *Handle {
	return &Handle{width: width, height: height, pix: pix}
}

// HandleFromImage copies an image into a new handle, converting to
// straight-alpha RGBA if needed.
func HandleFromImage(img image.Image) *Handle {
	nrgba := toNRGBA(img)
	return &Handle{
		width:  nrgba.Rect.Dx(),
		height: nrgba.Rect.Dy(),
		pix:    nrgba.Pix,
	}
}

// placeholderHandle is the 1x1 fully-transparent handle substituted for a
// thumbnail page that failed to render.
func placeholderHandle() *Handle {
	return NewHandle(1, 1, make([]uint8, 4))
}

// Width returns the image width in pixels.
func (h *Handle) Width() int { return h.width }

// Height returns the image height in pixels.
func (h *Handle) Height() int { return h.height }

// Pix returns the raw pixel data (straight-alpha RGBA, 4 bytes per pixel).
func (h *Handle) Pix() []uint8 { return h.pix }

// Image returns the handle contents as an *image.NRGBA sharing the
// underlying buffer.
func (h *Handle) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    h.pix,
		Stride: h.width * 4,
		Rect:   image.Rect(0, 0, h.width, h.height),
	}
}

// toNRGBA normalizes any image to a tightly-packed NRGBA copy with its
// origin at (0,0).
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		b := n.Bounds()
		if b.Min == (image.Point{}) && n.Stride == b.Dx()*4 && len(n.Pix) == b.Dx()*b.Dy()*4 {
			out := image.NewNRGBA(b)
			copy(out.Pix, n.Pix)
			return out
		}
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
