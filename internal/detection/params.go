package detection

import "image"

// Size is a detection size bound, given either in pixels or as a fraction
// of the image dimensions. The zero Size means "no bound".
type Size struct {
	Width    int     `json:"width,omitempty"`    // Pixels
	Height   int     `json:"height,omitempty"`   // Pixels
	Fraction float64 `json:"fraction,omitempty"` // Of image width/height; wins over pixels when > 0
}

// Pixels resolves the bound against the image dimensions.
func (s Size) Pixels(b ImageBounds) image.Point {
	if s.Fraction > 0 {
		return image.Pt(int(float64(b.Width)*s.Fraction), int(float64(b.Height)*s.Fraction))
	}
	return image.Pt(s.Width, s.Height)
}

// IsZero reports whether the bound is unset.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0 && s.Fraction == 0
}

// Params tunes a detection run.
type Params struct {
	// ScaleFactor is how much the search window grows between scales.
	// Smaller values are more thorough and slower. Must be > 1.
	ScaleFactor float64 `json:"scale_factor"`

	// MinNeighbors is how many overlapping raw detections a candidate needs
	// to be kept (haar only). Higher values are stricter.
	MinNeighbors int `json:"min_neighbors"`

	// MinSize and MaxSize bound the face size. Zero means unbounded.
	MinSize Size `json:"min_size"`
	MaxSize Size `json:"max_size"`

	// PigoQThreshold drops pigo detections scoring at or below it.
	PigoQThreshold float32 `json:"pigo_q_threshold"`

	// PigoIoU is the overlap above which pigo detections are merged.
	PigoIoU float64 `json:"pigo_iou"`

	// PigoShift is the pigo window step as a fraction of the window size.
	PigoShift float64 `json:"pigo_shift"`
}

// DefaultParams returns the OpenCV detectMultiScale defaults plus sane pigo
// settings.
func DefaultParams() Params {
	return Params{
		ScaleFactor:    1.1,
		MinNeighbors:   3,
		PigoQThreshold: 5.0,
		PigoIoU:        0.2,
		PigoShift:      0.1,
	}
}

// SizeBounds resolves MinSize and MaxSize for an image of the given bounds.
// An unset MaxSize resolves to the zero point.
func (p Params) SizeBounds(b ImageBounds) (minSize, maxSize image.Point) {
	return p.MinSize.Pixels(b), p.MaxSize.Pixels(b)
}
