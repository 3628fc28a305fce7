package facecrop

import (
	"errors"

	"github.com/ironsheep/facecrop/internal/detection"
)

var (
	// ErrImageLoad is returned when the input cannot be read or decoded.
	ErrImageLoad = errors.New("could not load image")

	// ErrClassifierLoad is returned when the cascade model cannot be loaded.
	ErrClassifierLoad = detection.ErrClassifierLoad

	// ErrNoFace is returned when the detector finds no candidate.
	ErrNoFace = errors.New("no faces detected")

	// ErrImageSave is returned when the crop cannot be written.
	ErrImageSave = errors.New("could not save image")

	// ErrDetection is returned for detector failures and recovered panics.
	ErrDetection = errors.New("face detection failed")

	// ErrClosed is returned by a Cropper after Close.
	ErrClosed = errors.New("cropper is closed")
)

// NoFaceHint is logged alongside ErrNoFace.
const NoFaceHint = "try a smaller scale factor, fewer min neighbors or a smaller min size"
