// Package detection finds candidate face rectangles in an image and turns the
// best of them into a crop region.
//
// Detection itself is delegated to a cascade classifier backend. Two backends
// implement the Detector interface:
//
//   - haar: OpenCV's Haar cascade (via gocv). Requires a cgo build linked
//     against OpenCV and a cascade XML such as haarcascade_frontalface_alt.xml.
//   - pigo: a pure-Go pixel intensity comparison cascade. Requires a pigo
//     binary cascade file such as "facefinder".
//
// Both backends convert the input to grayscale and equalize its histogram
// before running the classifier, and both return rectangles clamped to the
// image.
//
// # Selection and Padding
//
// SelectLargest picks the candidate with the largest area (first wins on a
// tie). PaddedCrop grows the selected face by a fraction of its width on
// every side and clamps the result to the image bounds:
//
//	padding = floor(face.Width * fraction)
//	x       = max(0, face.X - padding)
//	y       = max(0, face.Y - padding)
//	width   = min(bounds.Width - x, face.Width + 2*padding)
//	height  = min(bounds.Height - y, face.Height + 2*padding)
//
// # Coordinate System
//
// Rectangles use the standard image convention: origin (0, 0) at the
// top-left corner, X increasing rightward and Y increasing downward. A Rect
// covers [X, X+Width) × [Y, Y+Height).
package detection
