// Package imaging provides the pixel-level building blocks of print-area
// calibration: an immutable RGBA pixel view, luminance sampling, bounding box
// geometry, overlay rendering, and image encoding/decoding.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with the origin at the
// top-left corner. X increases rightward and Y increases downward. A BBox
// covers X..X+W-1 horizontally and Y..Y+H-1 vertically.
//
// # Pixel Model
//
// Image stores straight (non-premultiplied) 8-bit RGBA. Fully transparent
// pixels (alpha 0) are treated as carrying no luminance: PixelLuminance
// reports them as absent and AverageLuminance skips them.
//
// # Immutability
//
// Image values are never modified after construction. RenderOverlay and the
// resize helpers return new images, so an Image can be shared freely between
// goroutines, for example by a parallel parameter sweep.
//
// # Error Handling
//
// Geometry, luminance and overlay functions never return errors; an empty
// result (such as a box padded out of existence) is reported through an ok
// flag. Accessing a pixel outside the image panics, since it can only result
// from a programming error. Functions that touch the file system or encoders
// return wrapped errors.
//
// # Caching
//
// ImageCache keeps decoded images in memory keyed by path. It is safe for
// concurrent use. Long-running processes should call Evict or Clear to bound
// memory.
package imaging
