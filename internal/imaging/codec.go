package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// Open reads and decodes an image file. PNG, JPEG, GIF, BMP and TIFF are
// supported. EXIF orientation is applied so JPEG previews come out upright.
func Open(path string) (*Image, error) {
	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return NewImage(src), nil
}

// Decode decodes an image from r.
func Decode(r io.Reader) (*Image, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return NewImage(src), nil
}

// DecodeBytes decodes an in-memory image, such as a downloaded preview.
func DecodeBytes(data []byte) (*Image, error) {
	return Decode(bytes.NewReader(data))
}

// Save encodes img to path. The format is chosen from the file extension.
func Save(img *Image, path string) error {
	if err := imaging.Save(img.pix, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// EncodePNG encodes img as PNG.
func EncodePNG(img *Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img.pix, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeBase64PNG encodes img as PNG and returns it base64-encoded, ready to
// embed in a JSON result.
func EncodeBase64PNG(img *Image) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
