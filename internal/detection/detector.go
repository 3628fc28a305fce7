package detection

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrClassifierLoad is returned when a cascade model cannot be read or parsed.
	ErrClassifierLoad = errors.New("could not load face cascade classifier")

	// ErrBackendUnavailable is returned for a backend this binary was built without.
	ErrBackendUnavailable = errors.New("detection backend not available in this build")
)

// Backend identifies a detector implementation.
type Backend string

const (
	BackendHaar Backend = "haar"
	BackendPigo Backend = "pigo"
)

// ParseBackend validates a backend name.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case BackendHaar, BackendPigo:
		return Backend(s), nil
	default:
		return "", fmt.Errorf("unknown detection backend %q (want %q or %q)", s, BackendHaar, BackendPigo)
	}
}

// Detector finds face candidates in an image.
type Detector interface {
	// Detect returns candidate faces in detector order. An image without
	// faces yields an empty slice and a nil error.
	Detect(img image.Image, p Params) ([]Rect, error)

	// Name returns the backend name.
	Name() Backend

	// Close releases the classifier. It is safe to call more than once.
	Close() error
}

// New loads the classifier for backend from modelPath. This is the single
// place a native classifier is initialized; callers own the returned
// Detector and must Close it.
func New(backend Backend, modelPath string) (Detector, error) {
	switch backend {
	case BackendHaar:
		d, err := NewHaar(modelPath)
		if err != nil {
			return nil, err
		}
		return d, nil
	case BackendPigo:
		d, err := NewPigo(modelPath)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown detection backend %q", backend)
	}
}

// DefaultModelPath returns the conventional model file name for backend.
func DefaultModelPath(backend Backend) string {
	if backend == BackendPigo {
		return "facefinder"
	}
	return "haarcascade_frontalface_alt.xml"
}
