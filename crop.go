package docview

import "fmt"

// CropRegion is a rectangular region in the current (post-transform) pixel
// space of a document.
type CropRegion struct {
	X      uint32
	Y      uint32
	Width  uint32
	Height uint32
}

// NewCropRegion builds a crop region from pixel coordinates.
func NewCropRegion(x, y, width, height uint32) CropRegion {
	return CropRegion{X: x, Y: y, Width: width, Height: height}
}

// IsValid reports whether the region has positive area.
func (r CropRegion) IsValid() bool {
	return r.Width > 0 && r.Height > 0
}

// validate checks the region strictly against the current image bounds.
// A violating request is rejected, never clamped.
func (r CropRegion) validate(curWidth, curHeight int) error {
	if !r.IsValid() {
		return fmt.Errorf("%w: zero-area region %dx%d", ErrCropOutOfBounds, r.Width, r.Height)
	}
	if uint64(r.X)+uint64(r.Width) > uint64(curWidth) || uint64(r.Y)+uint64(r.Height) > uint64(curHeight) {
		return fmt.Errorf("%w: region (%d,%d %dx%d) exceeds %dx%d",
			ErrCropOutOfBounds, r.X, r.Y, r.Width, r.Height, curWidth, curHeight)
	}
	return nil
}

// clampTo validates X and Y strictly but clamps Width and Height to the
// available region beyond (X,Y). This is the portable-document policy; the
// other backends reject instead.
func (r CropRegion) clampTo(curWidth, curHeight int) (CropRegion, error) {
	if !r.IsValid() {
		return r, fmt.Errorf("%w: zero-area region %dx%d", ErrCropOutOfBounds, r.Width, r.Height)
	}
	if uint64(r.X) >= uint64(curWidth) || uint64(r.Y) >= uint64(curHeight) {
		return r, fmt.Errorf("%w: origin (%d,%d) outside %dx%d",
			ErrCropOutOfBounds, r.X, r.Y, curWidth, curHeight)
	}
	if uint64(r.X)+uint64(r.Width) > uint64(curWidth) {
		r.Width = uint32(curWidth) - r.X
	}
	if uint64(r.Y)+uint64(r.Height) > uint64(curHeight) {
		r.Height = uint32(curHeight) - r.Y
	}
	return r, nil
}
