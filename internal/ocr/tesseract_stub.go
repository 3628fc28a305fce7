//go:build !cgo

package ocr

import "image"

const backendName = "none"

// ExtractText always fails with ErrUnavailable in non-cgo builds.
func ExtractText(imagePath string, opts Options) (*OCRResult, error) {
	return nil, ErrUnavailable
}

// ExtractTextFromImage always fails with ErrUnavailable in non-cgo builds.
func ExtractTextFromImage(img image.Image, opts Options) (*OCRResult, error) {
	return nil, ErrUnavailable
}

// Info reports that OCR is unavailable.
func Info(opts Options) OCRInfo {
	return OCRInfo{
		Available: false,
		Error:     ErrUnavailable.Error(),
		Backend:   backendName,
	}
}
