package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality matches the encoder default of the imaging library.
const DefaultJPEGQuality = 95

// CropRect extracts r from img. The region is relative to the image's own
// coordinate space and must lie inside it.
func CropRect(img image.Image, r image.Rectangle) (*image.NRGBA, error) {
	bounds := img.Bounds()

	if r.Empty() {
		return nil, fmt.Errorf("invalid crop region %v: width and height must be positive", r)
	}
	if !r.In(bounds) {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", r, bounds)
	}

	return imaging.Crop(img, r), nil
}

// Save encodes img to path. The format is chosen from the extension; JPEG
// output uses quality (1-100, 0 for the default).
func Save(img image.Image, path string, quality int) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("unsupported output format for %s: %w", path, err)
	}
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}

	if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
