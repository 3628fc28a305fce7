//go:build cgo

package detection

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

// HaarDetector runs an OpenCV Haar cascade classifier.
type HaarDetector struct {
	mu         sync.Mutex // Protects the classifier
	classifier gocv.CascadeClassifier
	closed     bool
}

// NewHaar loads an OpenCV cascade XML file.
func NewHaar(path string) (*HaarDetector, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierLoad, err)
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(path) {
		classifier.Close()
		return nil, fmt.Errorf("%w: %s", ErrClassifierLoad, path)
	}

	return &HaarDetector{classifier: classifier}, nil
}

// Name implements Detector.
func (d *HaarDetector) Name() Backend {
	return BackendHaar
}

// Detect converts img to an equalized grayscale Mat and runs
// detectMultiScale with p.
func (d *HaarDetector) Detect(img image.Image, p Params) ([]Rect, error) {
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer src.Close()

	if src.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if err := gocv.CvtColor(src, &gray, gocv.ColorBGRToGray); err != nil {
		return nil, fmt.Errorf("convert to grayscale: %w", err)
	}

	equalized := gocv.NewMat()
	defer equalized.Close()
	if err := gocv.EqualizeHist(gray, &equalized); err != nil {
		return nil, fmt.Errorf("equalize histogram: %w", err)
	}

	bounds := ImageBounds{Width: equalized.Cols(), Height: equalized.Rows()}
	minSize, maxSize := p.SizeBounds(bounds)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, fmt.Errorf("haar detector is closed")
	}

	found := d.classifier.DetectMultiScaleWithParams(
		equalized,
		p.ScaleFactor,
		p.MinNeighbors,
		0, // flags
		minSize,
		maxSize,
	)

	faces := make([]Rect, 0, len(found))
	for _, r := range found {
		if face := clampToBounds(RectFromImage(r), bounds); !face.Empty() {
			faces = append(faces, face)
		}
	}
	return faces, nil
}

// Close releases the classifier.
func (d *HaarDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	return d.classifier.Close()
}
