package facecrop

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ironsheep/facecrop/internal/detection"
	"github.com/ironsheep/facecrop/internal/imaging"
	"github.com/ironsheep/facecrop/internal/ocr"
)

// Status is the outcome of a run.
type Status string

const (
	StatusCropped  Status = "cropped"
	StatusDetected Status = "detected" // Detection only, nothing written
	StatusNoFace   Status = "no_face"
	StatusFailed   Status = "failed"
)

// Result describes one run. Fields after Candidates are only set once the
// run got that far.
type Result struct {
	Status     Status                   `json:"status"`
	Input      string                   `json:"input"`
	Output     string                   `json:"output,omitempty"`
	Backend    detection.Backend        `json:"backend"`
	Image      detection.ImageBounds    `json:"image"`
	Candidates []detection.Rect         `json:"candidates"`
	Face       *detection.Rect          `json:"face,omitempty"`
	Crop       *detection.Rect          `json:"crop,omitempty"`
	Padding    float64                  `json:"padding"`
	Colors     []imaging.ColorFrequency `json:"colors,omitempty"`
	Text       *ocr.OCRResult           `json:"text,omitempty"`
	OCRError   string                   `json:"ocr_error,omitempty"`
	Duration   time.Duration            `json:"-"`
	DurationMS int64                    `json:"duration_ms"`
	Err        error                    `json:"-"`
	Error      string                   `json:"error,omitempty"`
}

// OK reports whether the run produced a face.
func (r *Result) OK() bool {
	return r.Status == StatusCropped || r.Status == StatusDetected
}

// WriteReport writes the result as indented JSON.
func (r *Result) WriteReport(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (r *Result) finish(start time.Time, err error) {
	r.Duration = time.Since(start)
	r.DurationMS = r.Duration.Milliseconds()
	r.Err = err
	if err != nil {
		r.Error = err.Error()
	}
}
