package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/histogram"
)

// Grayscale converts img to 8-bit luminance using bild's weighted grayscale.
// The result always starts at (0,0).
func Grayscale(img image.Image) *image.Gray {
	return toGray(effect.Grayscale(img))
}

// Equalize converts img to grayscale and equalizes its histogram, spreading
// the intensities over the full 0..255 range. It follows OpenCV's
// equalizeHist: each level v maps to
//
//	round((cdf(v) - cdfMin) * 255 / (pixels - cdfMin))
//
// where cdfMin is the first non-zero value of the cumulative histogram.
// Uniform images are only converted. The result always starts at (0,0).
func Equalize(img image.Image) *image.Gray {
	gray := effect.Grayscale(img)

	lut, ok := equalizeLUT(histogram.NewRGBAHistogram(gray).R)
	if !ok {
		return toGray(gray)
	}

	equalized := adjust.Apply(gray, func(c color.RGBA) color.RGBA {
		v := lut[c.R]
		return color.RGBA{R: v, G: v, B: v, A: c.A}
	})
	return toGray(equalized)
}

// equalizeLUT builds the level mapping for a 256-bin histogram. ok is false
// when the histogram is empty or has a single populated level.
func equalizeLUT(h histogram.Histogram) (lut [256]uint8, ok bool) {
	cdf := h.Cumulative().Bins
	if len(cdf) != 256 {
		return lut, false
	}

	total := cdf[255]
	cdfMin := 0
	for _, v := range cdf {
		if v > 0 {
			cdfMin = v
			break
		}
	}
	if total == 0 || total == cdfMin {
		return lut, false
	}

	scale := 255.0 / float64(total-cdfMin)
	for i, v := range cdf {
		level := math.Round(float64(v-cdfMin) * scale)
		lut[i] = uint8(math.Max(0, math.Min(255, level)))
	}
	return lut, true
}

// toGray copies the red channel of a grayscale RGBA image into an
// image.Gray with a tight stride.
func toGray(src *image.RGBA) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		srcRow := src.Pix[y*src.Stride:]
		dstRow := dst.Pix[y*dst.Stride:]
		for x := 0; x < b.Dx(); x++ {
			dstRow[x] = srcRow[x*4]
		}
	}
	return dst
}
