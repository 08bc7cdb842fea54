package docview

import "math"

// Rotation is a standard quarter-turn rotation in clockwise degrees.
type Rotation int

// Standard rotation steps.
const (
	RotateNone Rotation = 0
	Rotate90   Rotation = 90
	Rotate180  Rotation = 180
	Rotate270  Rotation = 270
)

// Degrees returns the rotation as clockwise degrees in [0, 360).
func (r Rotation) Degrees() int { return int(r) }

// SwapsAxes reports whether the rotation exchanges width and height.
func (r Rotation) SwapsAxes() bool { return r == Rotate90 || r == Rotate270 }

// FlipDirection selects the axis of a mirror operation.
type FlipDirection int

const (
	// FlipHorizontal mirrors columns (left-right).
	FlipHorizontal FlipDirection = iota
	// FlipVertical mirrors rows (top-bottom).
	FlipVertical
)

// RotationMode is the rotation component of a TransformState. Exactly one
// representation is authoritative at a time: either a standard quarter-turn
// or a fine-grained angle in degrees. Converting from fine to standard snaps
// to the nearest multiple of 90 with ties rounding away from zero.
type RotationMode struct {
	fine     bool
	degrees  float32
	standard Rotation
}

// StandardRotation returns a RotationMode holding a quarter-turn.
func StandardRotation(r Rotation) RotationMode {
	return RotationMode{standard: r}
}

// FineRotation returns a RotationMode holding an arbitrary angle in
// clockwise degrees.
func FineRotation(degrees float32) RotationMode {
	return RotationMode{fine: true, degrees: degrees}
}

// IsFine reports whether the fine-grained representation is authoritative.
func (m RotationMode) IsFine() bool { return m.fine }

// FineDegrees returns the fine angle. Zero unless IsFine.
func (m RotationMode) FineDegrees() float32 {
	if !m.fine {
		return float32(m.standard)
	}
	return m.degrees
}

// Snap reduces the mode to a standard quarter-turn. A fine angle rounds to
// the nearest multiple of 90 degrees, ties away from zero, normalized into
// [0, 360).
func (m RotationMode) Snap() Rotation {
	if !m.fine {
		return m.standard
	}
	deg := int(math.Round(float64(m.degrees)/90)) * 90
	deg = ((deg % 360) + 360) % 360
	return Rotation(deg)
}

// RotateCW returns the mode after a quarter-turn clockwise. A fine angle is
// snapped to standard first: a prior fine rotation must not leave the
// document in an undefined coarse state.
func (m RotationMode) RotateCW() RotationMode {
	return StandardRotation(Rotation((m.Snap().Degrees() + 90) % 360))
}

// RotateCCW returns the mode after a quarter-turn counter-clockwise.
func (m RotationMode) RotateCCW() RotationMode {
	return StandardRotation(Rotation((m.Snap().Degrees() + 270) % 360))
}

// TransformState is the accumulated rotation and flip state of a document.
// All mutations are pure value operations; the dispatcher triggers the
// re-render after applying one.
type TransformState struct {
	Rotation RotationMode
	FlipH    bool
	FlipV    bool
}

// Flipped returns the state with the given axis toggled. Two flips on the
// same axis cancel in image content but are not collapsed here: every flip
// is a distinct state change followed by a re-render.
func (t TransformState) Flipped(dir FlipDirection) TransformState {
	switch dir {
	case FlipHorizontal:
		t.FlipH = !t.FlipH
	case FlipVertical:
		t.FlipV = !t.FlipV
	}
	return t
}

// IsIdentity reports whether the state performs no transformation.
func (t TransformState) IsIdentity() bool {
	return !t.FlipH && !t.FlipV && !t.Rotation.IsFine() && t.Rotation.Snap() == RotateNone
}
