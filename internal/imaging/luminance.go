package imaging

// LuminanceSampleStride is the step, in pixels along both axes, used by
// AverageLuminance. It is a speed/accuracy preset, not an algorithmic
// invariant; changing it changes reference output.
const LuminanceSampleStride = 8

// ITU-R BT.709 perceptual weights.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// Luminance converts 8-bit RGB components to a perceptual brightness in the
// range 0-255 using BT.709 weights.
func Luminance(r, g, b uint8) float64 {
	return lumaR*float64(r) + lumaG*float64(g) + lumaB*float64(b)
}

// PixelLuminance returns the luminance of the pixel at (x, y).
//
// The second result is false when the pixel is fully transparent (alpha 0);
// such pixels carry no edge information. Partially transparent pixels use
// their straight RGB values.
func PixelLuminance(img *Image, x, y int) (float64, bool) {
	c := img.PixelAt(x, y)
	if c.A == 0 {
		return 0, false
	}
	return Luminance(c.R, c.G, c.B), true
}

// AverageLuminance estimates the mean luminance of an image.
//
// Every LuminanceSampleStride-th pixel is sampled along both axes, starting at
// (0,0). Fully transparent samples are skipped. When no sample qualifies the
// image is treated as light and 255 is returned.
func AverageLuminance(img *Image) float64 {
	w, h := img.Width(), img.Height()

	var sum float64
	count := 0
	for y := 0; y < h; y += LuminanceSampleStride {
		for x := 0; x < w; x += LuminanceSampleStride {
			l, ok := PixelLuminance(img, x, y)
			if !ok {
				continue
			}
			sum += l
			count++
		}
	}

	if count == 0 {
		return 255
	}
	return sum / float64(count)
}
