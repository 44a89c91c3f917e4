package imaging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ImageCache provides thread-safe caching of decoded images to avoid redundant
// disk reads when the same mockup is analyzed repeatedly (for example a
// detect call followed by a sweep and an overlay).
//
// Images are keyed by the exact path string passed to Load. Cached images
// remain in memory until Evict or Clear is called.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk if not
// cached.
func (c *ImageCache) Load(path string) (*Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := Open(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Get returns the cached image for key, if any.
func (c *ImageCache) Get(key string) (*Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.images[key]
	return img, ok
}

// Put stores img under key. It is used for images that do not come from
// disk, such as downloads keyed by URL.
func (c *ImageCache) Put(key string, img *Image) {
	c.mu.Lock()
	c.images[key] = img
	c.mu.Unlock()
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path. Unknown paths
// are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is "png", "jpeg", "gif", or "unknown". It comes from the file
	// extension for local files and from the Content-Type of downloads.
	Format string `json:"format"`

	// HasTransparency is true when at least one pixel is not fully opaque.
	// Transparent pixels are excluded from edge detection.
	HasTransparency bool `json:"has_transparency"`

	// AverageLuminance is the sampled mean luminance (0-255).
	AverageLuminance float64 `json:"average_luminance"`

	// FileSizeBytes is the size of the file on disk, or of the downloaded
	// body. It is 0 when the size is unknown.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image file through cache and returns metadata about it.
//
// Parameters:
//   - cache: Cache the decoded image is read from or stored in.
//   - path: Local file path. URLs are not accepted here; callers that
//     download images build the info with NewImageInfo instead.
//
// Returns:
//   - *ImageInfo: Dimensions, format, transparency, luminance and file size.
//   - error: Non-nil if the image cannot be loaded or the file cannot be stat'ed.
//
// # Errors
//
//   - Returns error if the file does not exist or is not a decodable image
//   - Returns error if the file disappears between decoding and stat
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return NewImageInfo(img, FormatFromPath(path), stat.Size()), nil
}

// NewImageInfo describes an already decoded image.
func NewImageInfo(img *Image, format string, size int64) *ImageInfo {
	return &ImageInfo{
		Width:            img.Width(),
		Height:           img.Height(),
		Format:           format,
		HasTransparency:  hasTransparency(img),
		AverageLuminance: AverageLuminance(img),
		FileSizeBytes:    size,
	}
}

// FormatFromPath maps a file extension to an image format name.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	}
	return "unknown"
}

// FormatFromContentType maps an HTTP Content-Type to an image format name.
// Parameters such as charset are ignored.
func FormatFromContentType(contentType string) string {
	mediaType, _, _ := strings.Cut(contentType, ";")
	switch strings.ToLower(strings.TrimSpace(mediaType)) {
	case "image/png":
		return "png"
	case "image/jpeg", "image/jpg":
		return "jpeg"
	case "image/gif":
		return "gif"
	}
	return "unknown"
}

func hasTransparency(img *Image) bool {
	pix := img.pix.Pix
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 0xff {
			return true
		}
	}
	return false
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without additional
// metadata. The image is loaded into the cache if not already present.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	return &DimensionsResult{
		Width:  img.Width(),
		Height: img.Height(),
	}, nil
}
