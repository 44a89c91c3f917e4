package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
)

// EdgeMap renders a Sobel edge image of img for visual inspection.
//
// It is a debugging aid only. The map is computed per channel by bild and
// uses Euclidean magnitude, so its values are not comparable with the L1
// luminance magnitudes that the print-area detector thresholds against.
// The result is always fully opaque.
func EdgeMap(img *Image) *Image {
	edges := effect.Sobel(img.pix)
	w, h := edges.Rect.Dx(), edges.Rect.Dy()

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := edges.Pix[edges.PixOffset(edges.Rect.Min.X, edges.Rect.Min.Y+y):]
		dst := out.Pix[out.PixOffset(0, y):]
		for i := 0; i < w*4; i += 4 {
			dst[i] = src[i]
			dst[i+1] = src[i+1]
			dst[i+2] = src[i+2]
			dst[i+3] = 0xff
		}
	}
	return wrap(out)
}
