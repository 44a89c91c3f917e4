package detection

import (
	"github.com/ironsheep/printarea-mcp/internal/imaging"
)

// Calibration pairs a detection with the boxes derived from it.
type Calibration struct {
	Result

	// Padded is the detected box after padding and clamping to the image,
	// or nil when there was no detection or padding removed the box.
	Padded *imaging.BBox `json:"padded_bbox"`

	// Scaled is Padded multiplied by the render scale factor, or nil when
	// Padded is nil.
	Scaled *imaging.BBox `json:"scaled_bbox"`
}

// Calibrate derives the padded and scaled boxes for res on a width x height
// image.
func Calibrate(res Result, padding imaging.Padding, scale float64, width, height int) Calibration {
	c := Calibration{Result: res}
	if res.BBox == nil {
		return c
	}

	padded, ok := imaging.ApplyPadding(*res.BBox, padding, width, height)
	if !ok {
		return c
	}
	scaled := padded.Scale(scale)
	c.Padded = &padded
	c.Scaled = &scaled
	return c
}

// CalibrateAll applies Calibrate to every result, preserving order.
func CalibrateAll(results []Result, padding imaging.Padding, scale float64, width, height int) []Calibration {
	out := make([]Calibration, len(results))
	for i, r := range results {
		out[i] = Calibrate(r, padding, scale, width, height)
	}
	return out
}
