package detection

import (
	"fmt"
	"image"
	"os"
	"sync"

	pigo "github.com/esimov/pigo/core"

	"github.com/ironsheep/facecrop/internal/imaging"
)

// pigoMinSize is used when Params.MinSize is unset; pigo cannot scan
// windows much smaller than this.
const pigoMinSize = 20

// PigoDetector runs a pigo pixel intensity comparison cascade. It needs no
// native libraries.
type PigoDetector struct {
	mu         sync.Mutex
	classifier *pigo.Pigo
}

// NewPigo reads and unpacks a pigo binary cascade file.
func NewPigo(path string) (*PigoDetector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierLoad, err)
	}
	return NewPigoFromBytes(data)
}

// NewPigoFromBytes unpacks an in-memory pigo cascade.
func NewPigoFromBytes(cascade []byte) (*PigoDetector, error) {
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierLoad, err)
	}
	return &PigoDetector{classifier: classifier}, nil
}

// Name implements Detector.
func (d *PigoDetector) Name() Backend {
	return BackendPigo
}

// Detect equalizes img and runs the cascade over it. Detections are
// clustered by overlap and filtered by p.PigoQThreshold.
func (d *PigoDetector) Detect(img image.Image, p Params) ([]Rect, error) {
	gray := imaging.Equalize(img)
	bounds := ImageBounds{Width: gray.Rect.Dx(), Height: gray.Rect.Dy()}
	if bounds.Width == 0 || bounds.Height == 0 {
		return nil, fmt.Errorf("empty image")
	}

	cp := pigoParams(p, bounds)
	cp.ImageParams = pigo.ImageParams{
		Pixels: gray.Pix,
		Rows:   bounds.Height,
		Cols:   bounds.Width,
		Dim:    gray.Stride,
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.classifier == nil {
		return nil, fmt.Errorf("pigo detector is closed")
	}

	dets := d.classifier.RunCascade(cp, 0)
	dets = d.classifier.ClusterDetections(dets, p.PigoIoU)

	return pigoRects(dets, p.PigoQThreshold, bounds), nil
}

// Close drops the classifier.
func (d *PigoDetector) Close() error {
	d.mu.Lock()
	d.classifier = nil
	d.mu.Unlock()
	return nil
}

// pigoParams maps Params onto pigo's square-window cascade settings.
func pigoParams(p Params, b ImageBounds) pigo.CascadeParams {
	minSize, maxSize := p.SizeBounds(b)

	minSide := min(minSize.X, minSize.Y)
	if minSide <= 0 {
		minSide = pigoMinSize
	}
	maxSide := max(maxSize.X, maxSize.Y)
	if maxSide <= 0 {
		maxSide = max(b.Width, b.Height)
	}

	shift := p.PigoShift
	if shift <= 0 {
		shift = DefaultParams().PigoShift
	}

	return pigo.CascadeParams{
		MinSize:     minSide,
		MaxSize:     maxSide,
		ShiftFactor: shift,
		ScaleFactor: p.ScaleFactor,
	}
}

// pigoRects converts centre/scale detections into clamped rectangles,
// preserving detector order.
func pigoRects(dets []pigo.Detection, qThresh float32, b ImageBounds) []Rect {
	faces := make([]Rect, 0, len(dets))
	for _, det := range dets {
		if det.Q <= qThresh {
			continue
		}
		r := Rect{
			X:      det.Col - det.Scale/2,
			Y:      det.Row - det.Scale/2,
			Width:  det.Scale,
			Height: det.Scale,
		}
		if face := clampToBounds(r, b); !face.Empty() {
			faces = append(faces, face)
		}
	}
	return faces
}
