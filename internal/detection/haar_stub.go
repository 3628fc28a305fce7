//go:build !cgo

package detection

import (
	"fmt"
	"image"
)

// HaarDetector is unavailable without cgo.
type HaarDetector struct{}

// NewHaar always fails: the OpenCV bindings need cgo.
func NewHaar(path string) (*HaarDetector, error) {
	return nil, fmt.Errorf("%w: haar requires a cgo build with OpenCV", ErrBackendUnavailable)
}

func (d *HaarDetector) Name() Backend { return BackendHaar }

func (d *HaarDetector) Detect(img image.Image, p Params) ([]Rect, error) {
	return nil, ErrBackendUnavailable
}

func (d *HaarDetector) Close() error { return nil }
