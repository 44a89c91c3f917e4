package imaging

import (
	"fmt"
	"image"
	"math"
)

// BBox is an axis-aligned bounding box in pixel space.
//
// (X, Y) is the top-left pixel; W and H are the extent in pixels, so the box
// covers columns X..X+W-1 and rows Y..Y+H-1. A present BBox always has
// W > 0 and H > 0; "no box" is represented by absence (a nil *BBox or a false
// ok result), never by a zero-size box.
type BBox struct {
	X int `json:"x"` // Left edge (inclusive)
	Y int `json:"y"` // Top edge (inclusive)
	W int `json:"w"` // Width in pixels
	H int `json:"h"` // Height in pixels
}

// Rect converts the box to an image.Rectangle with an exclusive max corner.
func (b BBox) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H)
}

// Contains reports whether o lies entirely within b.
func (b BBox) Contains(o BBox) bool {
	return o.X >= b.X && o.Y >= b.Y && o.X+o.W <= b.X+b.W && o.Y+o.H <= b.Y+b.H
}

func (b BBox) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", b.W, b.H, b.X, b.Y)
}

// Padding grows (positive) or shrinks (negative) a box independently on each
// side.
type Padding struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// ApplyPadding pads b and clamps the result to a width x height image.
//
// Both corners of the padded box are clamped to [0,width-1] x [0,height-1]
// and the size is recomputed from the clamped corners. The second result is
// false when the padded box degenerates to nothing (negative padding larger
// than the box, or a box pushed entirely off-canvas). That outcome is
// expected during calibration and is not an error.
//
// Parameters:
//   - b: Box to pad, in pixel coordinates of the image.
//   - p: Pixels added on each side. Negative values shrink the box.
//   - width, height: Image dimensions the result is clamped to.
//
// Returns:
//   - BBox: The padded and clamped box. Only meaningful when ok is true.
//   - bool: false when the result has no positive width or height.
func ApplyPadding(b BBox, p Padding, width, height int) (BBox, bool) {
	x0 := b.X - p.Left
	y0 := b.Y - p.Top
	w := b.W + p.Left + p.Right
	h := b.H + p.Top + p.Bottom

	cx0 := clamp(x0, 0, width-1)
	cy0 := clamp(y0, 0, height-1)
	cx1 := clamp(x0+w-1, 0, width-1)
	cy1 := clamp(y0+h-1, 0, height-1)

	out := BBox{X: cx0, Y: cy0, W: cx1 - cx0 + 1, H: cy1 - cy0 + 1}
	if out.W <= 0 || out.H <= 0 {
		return BBox{}, false
	}
	return out, true
}

// Scale multiplies every field of b by factor, rounding to the nearest pixel.
//
// Scale maps a box found on a small preview onto a larger render, which lives
// in a different coordinate space, so no clamping is applied.
func (b BBox) Scale(factor float64) BBox {
	return BBox{
		X: scaleInt(b.X, factor),
		Y: scaleInt(b.Y, factor),
		W: scaleInt(b.W, factor),
		H: scaleInt(b.H, factor),
	}
}

func scaleInt(v int, factor float64) int {
	return int(math.Round(float64(v) * factor))
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
