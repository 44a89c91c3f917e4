package imaging

import (
	"github.com/disintegration/imaging"
)

// FitWidth returns img downscaled so it is at most maxWidth pixels wide,
// together with the factor that maps coordinates in the returned image back
// to img (original / resized). Aspect ratio is preserved.
//
// If maxWidth <= 0 or img is already narrow enough, img itself is returned
// with a factor of 1.
//
// Downscaling uses the Lanczos filter. It softens hard edges slightly, so
// thresholds tuned on full-size renders may need lowering on downscaled ones.
func FitWidth(img *Image, maxWidth int) (*Image, float64) {
	w := img.Width()
	if maxWidth <= 0 || w <= maxWidth {
		return img, 1
	}
	resized := imaging.Resize(img.pix, maxWidth, 0, imaging.Lanczos)
	return wrap(resized), float64(w) / float64(resized.Rect.Dx())
}
