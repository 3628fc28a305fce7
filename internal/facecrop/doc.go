// Package facecrop runs the load, detect, select, pad, crop and save
// pipeline for a single image.
//
// A Cropper owns one loaded detection.Detector. Every run returns a Result
// whose Status tells the caller what happened; failures also return an error
// that wraps one of the package sentinels, so callers can branch with
// errors.Is:
//
//	res, err := c.Process(ctx, "id.jpg", "face.jpg")
//	switch {
//	case errors.Is(err, facecrop.ErrNoFace):
//		// adjust the profile and retry
//	case err != nil:
//		// load, save or detection failure
//	}
//
// Coordinates in a Result are relative to the top-left corner of the
// decoded, auto-oriented input.
package facecrop
