// Package ocr extracts document text with Tesseract.
//
// It wraps gosseract/v2 and needs cgo plus a system Tesseract install with
// the language data for each requested language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// Language data is looked up in Tesseract's default location unless
// Options.TessdataPrefix (or TESSDATA_PREFIX) points elsewhere.
//
// Binaries built without cgo still compile; every call returns
// ErrUnavailable and Info reports Available=false.
//
// If word bounding box extraction fails (for example on a Tesseract version
// mismatch), ExtractText still returns the text with an empty Regions slice.
package ocr
