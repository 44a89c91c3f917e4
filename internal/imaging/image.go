package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Image is an immutable, read-only view over a straight (non-premultiplied)
// RGBA8 pixel buffer.
//
// The buffer always starts at the origin, so pixel (0,0) is the top-left
// corner regardless of the bounds of the source it was built from. No method
// mutates the buffer; operations that produce pixels (such as RenderOverlay)
// return a new Image.
//
// Image is safe for concurrent reads from multiple goroutines.
type Image struct {
	pix *image.NRGBA
}

// NewImage copies src into a new Image.
//
// The copy is converted to NRGBA, so alpha-premultiplied sources (*image.RGBA)
// are un-premultiplied and 16-bit sources are reduced to 8 bits per channel.
// Later changes to src are not visible through the returned Image.
func NewImage(src image.Image) *Image {
	return &Image{pix: imaging.Clone(src)}
}

// Width returns the image width in pixels.
func (im *Image) Width() int {
	return im.pix.Rect.Dx()
}

// Height returns the image height in pixels.
func (im *Image) Height() int {
	return im.pix.Rect.Dy()
}

// Bounds returns the pixel rectangle (0,0)-(Width,Height).
func (im *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, im.Width(), im.Height())
}

// PixelAt returns the RGBA8 quadruple at (x, y).
//
// Coordinates must lie within [0,Width) x [0,Height). An out-of-range access
// is a programming error and panics instead of being clamped.
func (im *Image) PixelAt(x, y int) color.NRGBA {
	if x < 0 || y < 0 || x >= im.Width() || y >= im.Height() {
		panic(fmt.Sprintf("imaging: pixel (%d,%d) outside %dx%d image", x, y, im.Width(), im.Height()))
	}
	i := im.pix.PixOffset(im.pix.Rect.Min.X+x, im.pix.Rect.Min.Y+y)
	s := im.pix.Pix[i : i+4 : i+4]
	return color.NRGBA{R: s[0], G: s[1], B: s[2], A: s[3]}
}

// NRGBA returns a copy of the underlying pixel buffer for encoding or for
// handing to other image libraries.
func (im *Image) NRGBA() *image.NRGBA {
	return imaging.Clone(im.pix)
}

// wrap takes ownership of p without copying. p must start at the origin and
// must not be modified afterwards.
func wrap(p *image.NRGBA) *Image {
	return &Image{pix: p}
}
