package ocr

import "errors"

// DefaultLanguage is used when Options.Language is empty.
const DefaultLanguage = "eng"

// ErrUnavailable is returned when the binary was built without Tesseract.
var ErrUnavailable = errors.New("ocr not available in this build")

// Options configures a Tesseract run.
type Options struct {
	Language       string // Tesseract language code, e.g. "eng" or "deu"
	TessdataPrefix string // Directory holding *.traineddata; empty uses the system default
}

func (o Options) language() string {
	if o.Language == "" {
		return DefaultLanguage
	}
	return o.Language
}

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// TextRegion is a recognized word with its location and confidence.
type TextRegion struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"` // 0.0 to 1.0
	Bounds     Bounds  `json:"bounds"`
}

// OCRResult contains the text extracted from an image.
type OCRResult struct {
	// FullText is all recognized text with original spacing and newlines.
	FullText string `json:"full_text"`

	// Regions holds individual words. May be empty even when FullText is not.
	Regions []TextRegion `json:"regions"`

	Language string `json:"language"`
}

// OCRInfo describes the OCR subsystem.
type OCRInfo struct {
	Available    bool   `json:"available"`
	Version      string `json:"version,omitempty"`
	Error        string `json:"error,omitempty"`
	Backend      string `json:"backend"`
	TessdataPath string `json:"tessdata_path,omitempty"`
}
