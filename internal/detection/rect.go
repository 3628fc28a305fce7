package detection

import (
	"fmt"
	"image"
)

// Rect is an axis-aligned rectangle in pixel coordinates, used both for
// detected faces and for crop regions.
type Rect struct {
	X      int `json:"x"`      // Left edge (inclusive)
	Y      int `json:"y"`      // Top edge (inclusive)
	Width  int `json:"width"`  // Horizontal extent in pixels
	Height int `json:"height"` // Vertical extent in pixels
}

// RectFromImage converts a standard library rectangle into a Rect.
func RectFromImage(r image.Rectangle) Rect {
	r = r.Canon()
	return Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Area returns Width × Height.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Image returns the rectangle as an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Within reports whether the rectangle lies entirely inside bounds.
func (r Rect) Within(b ImageBounds) bool {
	return r.X >= 0 && r.Y >= 0 && r.X+r.Width <= b.Width && r.Y+r.Height <= b.Height
}

func (r Rect) String() string {
	return fmt.Sprintf("x=%d, y=%d, width=%d, height=%d", r.X, r.Y, r.Width, r.Height)
}

// ImageBounds holds the dimensions of a source image.
type ImageBounds struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// BoundsOf returns the dimensions of img.
func BoundsOf(img image.Image) ImageBounds {
	b := img.Bounds()
	return ImageBounds{Width: b.Dx(), Height: b.Dy()}
}

// clampToBounds intersects r with the image, returning an empty Rect when
// they do not overlap.
func clampToBounds(r Rect, b ImageBounds) Rect {
	clipped := r.Image().Intersect(image.Rect(0, 0, b.Width, b.Height))
	if clipped.Empty() {
		return Rect{}
	}
	return RectFromImage(clipped)
}
