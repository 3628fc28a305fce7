package detection

import (
	"fmt"
	"math"
)

// Strategy names how a face is chosen among several candidates.
type Strategy string

const (
	// SelectionLargest picks the candidate with the largest area.
	SelectionLargest Strategy = "largest"

	// SelectionFirst picks the first candidate reported by the detector.
	SelectionFirst Strategy = "first"
)

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case SelectionLargest, SelectionFirst:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown selection strategy %q (want %q or %q)", s, SelectionLargest, SelectionFirst)
	}
}

// SelectLargest returns the rectangle with the largest area. When several
// share the maximum, the first one encountered wins. ok is false when faces
// is empty.
func SelectLargest(faces []Rect) (best Rect, ok bool) {
	if len(faces) == 0 {
		return Rect{}, false
	}
	best = faces[0]
	for _, f := range faces[1:] {
		if f.Area() > best.Area() {
			best = f
		}
	}
	return best, true
}

// SelectFirst returns the first rectangle. ok is false when faces is empty.
func SelectFirst(faces []Rect) (Rect, bool) {
	if len(faces) == 0 {
		return Rect{}, false
	}
	return faces[0], true
}

// Select dispatches to the selector for strategy. Unknown strategies fall
// back to SelectLargest.
func Select(strategy Strategy, faces []Rect) (Rect, bool) {
	if strategy == SelectionFirst {
		return SelectFirst(faces)
	}
	return SelectLargest(faces)
}

// PaddedCrop expands face by floor(face.Width * padding) pixels on each side
// and clamps the result to bounds. A negative padding is treated as zero.
// Faces with a zero width or height are not padded.
//
// The face is expected to lie inside bounds, as detector output does; the
// origin is additionally clamped into the image so the result never extends
// past it.
func PaddedCrop(face Rect, bounds ImageBounds, padding float64) Rect {
	pad := 0
	if padding > 0 && face.Width > 0 && face.Height > 0 {
		pad = int(math.Floor(float64(face.Width) * padding))
	}

	x := min(max(0, face.X-pad), bounds.Width)
	y := min(max(0, face.Y-pad), bounds.Height)

	return Rect{
		X:      x,
		Y:      y,
		Width:  max(0, min(bounds.Width-x, face.Width+2*pad)),
		Height: max(0, min(bounds.Height-y, face.Height+2*pad)),
	}
}
