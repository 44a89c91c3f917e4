package detection

import (
	"math"

	"github.com/ironsheep/printarea-mcp/internal/imaging"
)

// Calibration presets. These values were tuned by hand against garment
// mockups; they are starting points for a sweep, not properties of the
// algorithm.
const (
	// DefaultThreshold is the gradient magnitude a pixel must reach to count
	// as an edge hit.
	DefaultThreshold = 120.0
)

// DefaultRegion is the central search area. Print artwork is normally centered
// on a mockup, and staying away from the borders avoids collars, sleeves and
// garment outlines.
var DefaultRegion = Region{X0: 0.28, X1: 0.72, Y0: 0.22, Y1: 0.78}

// DefaultSweepThresholds are the thresholds evaluated by a sweep when none are
// given.
var DefaultSweepThresholds = []float64{80, 100, 120, 140, 160}

// DefaultSweepRegions are the regions evaluated by a sweep when none are given.
// They are opaque presets carried over from earlier calibration runs.
var DefaultSweepRegions = []Region{
	DefaultRegion,
	{X0: 0.25, X1: 0.75, Y0: 0.20, Y1: 0.80},
	{X0: 0.30, X1: 0.70, Y0: 0.25, Y1: 0.70},
	{X0: 0.32, X1: 0.68, Y0: 0.18, Y1: 0.62},
}

// Result is the outcome of one Detect call.
type Result struct {
	// Hits counts pixels in the region whose gradient magnitude met or
	// exceeded Threshold.
	Hits int `json:"hits"`

	// Threshold is the threshold the detection ran with.
	Threshold float64 `json:"threshold"`

	// Region is the search region the detection ran with.
	Region Region `json:"region"`

	// BBox is the tightest box enclosing every hit, or nil when Hits is 0.
	BBox *imaging.BBox `json:"bbox"`

	// MaxGradient is the largest magnitude seen in the region, whether or
	// not it reached Threshold. It tells a caller how far to lower the
	// threshold when nothing was found.
	MaxGradient float64 `json:"max_gradient"`
}

// Detect finds the bounding box of high-gradient pixels inside region.
//
// # Algorithm
//
//  1. region is converted to pixel bounds with Region.PixelBounds, which
//     keeps a one-pixel margin so every pixel has a full 3x3 neighborhood.
//
//  2. Each pixel in the bounds is skipped when it is fully transparent, or
//     when any of its eight neighbors is. This keeps the boundary between
//     opaque artwork and a transparent background from reading as an edge.
//
//  3. Sobel gradients are computed on BT.709 luminance (0-255 scale):
//     Gx = -tl + tr - 2*ml + 2*mr - bl + br
//     Gy =  tl + 2*tc + tr - bl - 2*bc - br
//     and the magnitude is the L1 norm |Gx| + |Gy|, unnormalized.
//
//  4. MaxGradient tracks every magnitude. Pixels whose magnitude is at least
//     threshold are hits and grow the bounding envelope.
//
// Detect never fails: when no pixel qualifies, Result.BBox is nil. An invalid
// region simply produces an empty search.
func Detect(img *imaging.Image, threshold float64, region Region) Result {
	x0, x1, y0, y1 := region.PixelBounds(img.Width(), img.Height())

	res := Result{Threshold: threshold, Region: region}
	minX, minY := math.MaxInt, math.MaxInt
	maxX, maxY := -1, -1

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			mag, ok := gradientAt(img, x, y)
			if !ok {
				continue
			}
			if mag > res.MaxGradient {
				res.MaxGradient = mag
			}
			if mag < threshold {
				continue
			}

			res.Hits++
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x)
			maxY = max(maxY, y)
		}
	}

	if res.Hits > 0 {
		res.BBox = &imaging.BBox{X: minX, Y: minY, W: maxX - minX + 1, H: maxY - minY + 1}
	}
	return res
}

// neighborOffsets lists the 3x3 neighborhood in row-major order, skipping the
// center: tl, tc, tr, ml, mr, bl, bc, br.
var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// gradientAt returns the L1 Sobel magnitude at (x, y). The second result is
// false when the pixel or any neighbor is fully transparent. The caller
// guarantees a full neighborhood inside the image.
func gradientAt(img *imaging.Image, x, y int) (float64, bool) {
	if img.PixelAt(x, y).A == 0 {
		return 0, false
	}

	var n [8]float64
	for i, off := range neighborOffsets {
		l, ok := imaging.PixelLuminance(img, x+off[0], y+off[1])
		if !ok {
			return 0, false
		}
		n[i] = l
	}
	tl, tc, tr, ml, mr, bl, bc, br := n[0], n[1], n[2], n[3], n[4], n[5], n[6], n[7]

	gx := -tl + tr - 2*ml + 2*mr - bl + br
	gy := tl + 2*tc + tr - bl - 2*bc - br
	return math.Abs(gx) + math.Abs(gy), true
}
