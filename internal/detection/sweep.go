package detection

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/printarea-mcp/internal/imaging"
)

// Sweep runs Detect for every (region, threshold) combination.
//
// Regions form the outer loop and thresholds the inner loop, so the result
// for regions[i] and thresholds[j] is at index i*len(thresholds)+j. Every
// combination is evaluated; an empty result for one combination is useful
// calibration data in itself and does not stop the sweep.
func Sweep(img *imaging.Image, thresholds []float64, regions []Region) []Result {
	results := make([]Result, 0, len(thresholds)*len(regions))
	for _, r := range regions {
		for _, t := range thresholds {
			results = append(results, Detect(img, t, r))
		}
	}
	return results
}

// SweepParallel is Sweep spread across up to workers goroutines. The result
// order is identical to Sweep.
//
// If workers <= 0, runtime.GOMAXPROCS(0) is used. The image is shared
// read-only by all workers.
//
// Parameters:
//   - ctx: Cancels combinations that have not started yet.
//   - img: Image to analyze.
//   - thresholds: Inner loop of the grid.
//   - regions: Outer loop of the grid. Regions are not validated here.
//   - workers: Maximum concurrent Detect calls.
//
// Returns:
//   - []Result: len(regions)*len(thresholds) results, regions outer.
//   - error: Non-nil only when ctx is cancelled.
//
// # Errors
//
//   - Returns ctx.Err() if ctx is cancelled before every combination has
//     started. No partial results are returned in that case.
func SweepParallel(ctx context.Context, img *imaging.Image, thresholds []float64, regions []Region, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(thresholds)*len(regions))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, r := range regions {
		for j, t := range thresholds {
			r, t := r, t
			idx := i*len(thresholds) + j
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[idx] = Detect(img, t, r)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
