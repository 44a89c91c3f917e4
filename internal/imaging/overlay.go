package imaging

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// FillStyle is the translucent color blended over a box by RenderOverlay.
// A is the fill opacity: 0 leaves pixels unchanged, 255 paints solid color.
type FillStyle struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Hex returns the style as "#RRGGBBAA".
func (f FillStyle) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", f.R, f.G, f.B, f.A)
}

// Overlay fill presets. These are tunable defaults, chosen so the fill stays
// visible against the background it is drawn on.
var (
	// DarkBackgroundFill is a light gray, distinct from white artwork.
	DarkBackgroundFill = FillStyle{R: 200, G: 200, B: 200, A: 110}

	// LightBackgroundFill is a translucent green.
	LightBackgroundFill = FillStyle{R: 0, G: 200, B: 80, A: 96}
)

// DarkLuminanceCutoff is the AverageLuminance below which an image is
// considered dark by SelectFill.
const DarkLuminanceCutoff = 85.0

// SelectFill picks an overlay fill for img: DarkBackgroundFill when the
// image's average luminance is below DarkLuminanceCutoff, otherwise
// LightBackgroundFill.
func SelectFill(img *Image) FillStyle {
	return SelectFillWith(img, DarkLuminanceCutoff, DarkBackgroundFill, LightBackgroundFill)
}

// SelectFillWith is SelectFill with a caller-supplied cutoff and fills.
func SelectFillWith(img *Image, cutoff float64, dark, light FillStyle) FillStyle {
	if AverageLuminance(img) < cutoff {
		return dark
	}
	return light
}

// RenderOverlay returns a copy of img with style blended over box.
//
// The box is clamped to the image bounds first. Every pixel inside the
// clamped box is blended as
//
//	t  = A / 255
//	c' = round(c*(1-t) + fill*t)   for each of R, G, B
//	a' = 255
//
// so the covered area always ends up fully opaque. Pixels outside the box are
// copied unchanged, and img itself is never modified.
//
// Parameters:
//   - img: Source image. It is only read.
//   - box: Area to highlight. Parts outside the image are ignored.
//   - style: Fill color; its alpha sets the blend strength (0 leaves RGB
//     unchanged, 255 replaces it).
//
// Returns:
//   - *Image: A new image of the same size as img.
func RenderOverlay(img *Image, box BBox, style FillStyle) *Image {
	out := img.NRGBA()
	r := box.Rect().Intersect(out.Rect)
	if r.Empty() {
		return wrap(out)
	}

	t := math.Max(0, math.Min(1, float64(style.A)/255))
	fr, fg, fb := float64(style.R)*t, float64(style.G)*t, float64(style.B)*t
	keep := 1 - t

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := out.PixOffset(x, y)
			p := out.Pix[i : i+4 : i+4]
			p[0] = blendChannel(p[0], keep, fr)
			p[1] = blendChannel(p[1], keep, fg)
			p[2] = blendChannel(p[2], keep, fb)
			p[3] = forceOpaque(p[3])
		}
	}
	return wrap(out)
}

func blendChannel(dst uint8, keep, fill float64) uint8 {
	v := math.Round(float64(dst)*keep + fill)
	return uint8(math.Max(0, math.Min(255, v)))
}

// forceOpaque mirrors the blend rule round(max(a/255, 1) * 255), which is
// always 255.
func forceOpaque(a uint8) uint8 {
	return uint8(math.Round(math.Max(float64(a)/255, 1) * 255))
}

// ParseFillStyle parses a hex color of the form "#RRGGBB" or "#RRGGBBAA".
// When the alpha byte is omitted, defaultAlpha is used.
func ParseFillStyle(hex string, defaultAlpha uint8) (FillStyle, error) {
	s := strings.TrimSpace(hex)
	if s == "" {
		return FillStyle{}, fmt.Errorf("empty color string")
	}
	if s[0] != '#' {
		s = "#" + s
	}

	alpha := defaultAlpha
	switch len(s) {
	case 7:
	case 9:
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return FillStyle{}, fmt.Errorf("invalid alpha in %q: %w", hex, err)
		}
		alpha = uint8(a)
		s = s[:7]
	default:
		return FillStyle{}, fmt.Errorf("invalid hex color length: %q", hex)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return FillStyle{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return FillStyle{R: r, G: g, B: b, A: alpha}, nil
}
