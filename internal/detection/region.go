package detection

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRegion is returned by Region.Validate.
var ErrInvalidRegion = errors.New("invalid region")

// Region is a sub-rectangle of an image in fractional coordinates, where 0 is
// the left/top edge and 1 the right/bottom edge.
//
// A valid region satisfies 0 <= X0 < X1 <= 1 and 0 <= Y0 < Y1 <= 1. Detect does
// not check this; callers validate user input with Validate first.
type Region struct {
	X0 float64 `json:"x0"`
	X1 float64 `json:"x1"`
	Y0 float64 `json:"y0"`
	Y1 float64 `json:"y1"`
}

// FullRegion covers the whole image.
var FullRegion = Region{X0: 0, X1: 1, Y0: 0, Y1: 1}

// Validate reports whether r satisfies the region invariant.
func (r Region) Validate() error {
	for _, v := range []float64{r.X0, r.X1, r.Y0, r.Y1} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: %s has coordinate outside [0,1]", ErrInvalidRegion, r)
		}
	}
	if r.X0 >= r.X1 {
		return fmt.Errorf("%w: %s requires x0 < x1", ErrInvalidRegion, r)
	}
	if r.Y0 >= r.Y1 {
		return fmt.Errorf("%w: %s requires y0 < y1", ErrInvalidRegion, r)
	}
	return nil
}

func (r Region) String() string {
	return fmt.Sprintf("x[%g,%g] y[%g,%g]", r.X0, r.X1, r.Y0, r.Y1)
}

// PixelBounds converts r to the half-open pixel range scanned by Detect on a
// width x height image.
//
// Bounds are inset by one pixel from every image edge so that each scanned
// pixel has a full 3x3 neighborhood:
//
//	x0 = max(1, floor(width*X0))    x1 = min(width-1, floor(width*X1))
//	y0 = max(1, floor(height*Y0))   y1 = min(height-1, floor(height*Y1))
//
// The range is empty when x0 >= x1 or y0 >= y1.
func (r Region) PixelBounds(width, height int) (x0, x1, y0, y1 int) {
	x0 = max(1, int(math.Floor(float64(width)*r.X0)))
	x1 = min(width-1, int(math.Floor(float64(width)*r.X1)))
	y0 = max(1, int(math.Floor(float64(height)*r.Y0)))
	y1 = min(height-1, int(math.Floor(float64(height)*r.Y1)))
	return x0, x1, y0, y1
}
