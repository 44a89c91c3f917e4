package detection

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/printarea-mcp/internal/imaging"
)

// Summary condenses a sweep into consensus boxes.
type Summary struct {
	// Combinations is the number of sweep results summarized.
	Combinations int `json:"combinations"`

	// WithBox is how many of them produced a box.
	WithBox int `json:"with_box"`

	// Median is the per-field median of the boxes, or nil when WithBox is 0.
	Median *imaging.BBox `json:"median_bbox"`

	// Mean is the per-field mean of the boxes, rounded to whole pixels, or
	// nil when WithBox is 0.
	Mean *imaging.BBox `json:"mean_bbox"`

	// MaxGradient is the largest MaxGradient across all combinations.
	MaxGradient float64 `json:"max_gradient"`
}

// Summarize computes per-field median and mean boxes over the results that
// found a box. The median is robust against a single region picking up a
// collar or seam, which makes it a reasonable default when choosing one box
// from a sweep.
func Summarize(results []Result) Summary {
	s := Summary{Combinations: len(results)}

	var xs, ys, ws, hs []float64
	for _, r := range results {
		s.MaxGradient = math.Max(s.MaxGradient, r.MaxGradient)
		if r.BBox == nil {
			continue
		}
		xs = append(xs, float64(r.BBox.X))
		ys = append(ys, float64(r.BBox.Y))
		ws = append(ws, float64(r.BBox.W))
		hs = append(hs, float64(r.BBox.H))
	}

	s.WithBox = len(xs)
	if s.WithBox == 0 {
		return s
	}

	s.Mean = &imaging.BBox{
		X: roundMean(xs),
		Y: roundMean(ys),
		W: roundMean(ws),
		H: roundMean(hs),
	}
	s.Median = &imaging.BBox{
		X: median(xs),
		Y: median(ys),
		W: median(ws),
		H: median(hs),
	}
	return s
}

func roundMean(v []float64) int {
	return int(math.Round(stat.Mean(v, nil)))
}

// median sorts v in place and returns its lower median.
func median(v []float64) int {
	sort.Float64s(v)
	return int(stat.Quantile(0.5, stat.Empirical, v, nil))
}
