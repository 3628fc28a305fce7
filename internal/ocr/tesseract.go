//go:build cgo

package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

const backendName = "gosseract"

func newClient(opts Options) (*gosseract.Client, error) {
	client := gosseract.NewClient()

	if opts.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(opts.TessdataPrefix); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}

	if err := client.SetLanguage(opts.language()); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}

	return client, nil
}

// ExtractText performs OCR on an image file.
func ExtractText(imagePath string, opts Options) (*OCRResult, error) {
	client, err := newClient(opts)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if err := client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	return recognize(client, opts)
}

// ExtractTextFromImage performs OCR on a decoded image. The image is encoded
// as PNG in memory, so its orientation is preserved as loaded.
func ExtractTextFromImage(img image.Image, opts Options) (*OCRResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	client, err := newClient(opts)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	result, err := recognize(client, opts)
	if err != nil {
		return nil, err
	}

	// Tesseract reports boxes relative to the encoded image.
	off := img.Bounds().Min
	for i := range result.Regions {
		result.Regions[i].Bounds.X1 += off.X
		result.Regions[i].Bounds.Y1 += off.Y
		result.Regions[i].Bounds.X2 += off.X
		result.Regions[i].Bounds.Y2 += off.Y
	}
	return result, nil
}

func recognize(client *gosseract.Client, opts Options) (*OCRResult, error) {
	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	result := &OCRResult{
		FullText: text,
		Regions:  []TextRegion{},
		Language: opts.language(),
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return result, nil
	}

	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		result.Regions = append(result.Regions, TextRegion{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds: Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		})
	}

	return result, nil
}

// Info reports the linked Tesseract version.
func Info(opts Options) OCRInfo {
	version := gosseract.Version()
	if version == "" {
		return OCRInfo{
			Available: false,
			Error:     "tesseract library did not report a version",
			Backend:   backendName,
		}
	}

	return OCRInfo{
		Available:    true,
		Version:      version,
		Backend:      backendName,
		TessdataPath: opts.TessdataPrefix,
	}
}
