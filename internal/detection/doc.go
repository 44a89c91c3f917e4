// Package detection locates the printable artwork area on a product mockup.
//
// The detector looks for the tightest axis-aligned rectangle enclosing pixels
// whose local gradient magnitude reaches a threshold, restricted to a
// fractional search region near the image center. It does not recognize
// shapes or content; it only finds where high-contrast edges are.
//
// # Pipeline
//
//  1. Detect: Sobel gradients over BT.709 luminance, thresholded, bounded.
//  2. Calibrate: pad and clamp the box to the image, then scale it to the
//     final render resolution.
//  3. Sweep / SweepParallel: repeat Detect across every threshold and region
//     combination for calibration.
//  4. Summarize: condense a sweep into median and mean boxes.
//
// # Absent Results
//
// Nothing in this package returns an error for "nothing found". A Result with
// a nil BBox means no pixel reached the threshold; MaxGradient still reports
// the strongest edge seen so a lower threshold can be chosen. A Calibration
// with a nil Padded box means padding shrank the box to nothing.
//
// # Presets
//
// DefaultThreshold, DefaultRegion, DefaultSweepThresholds and
// DefaultSweepRegions are empirically chosen starting points and may be
// overridden freely.
package detection
