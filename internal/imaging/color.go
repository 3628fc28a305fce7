package imaging

import (
	"fmt"
	"image"
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorFrequency represents a color and its occurrence frequency in an image.
type ColorFrequency struct {
	Hex        string   `json:"hex"`        // "#rrggbb" (quantized)
	Percentage float64  `json:"percentage"` // Share of pixels, 0-100
	RGB        RGBColor `json:"rgb"`
	HSL        HSLColor `json:"hsl"`
}

// DominantColors returns up to count of the most frequent colors in img,
// most common first.
//
// # Color Quantization
//
// To group similar colors each 8-bit component is rounded down to a
// multiple of 16 before counting, so #F0F0F0 and #FAFAFA fall in one bucket.
// Ties are ordered by hex value so the result is deterministic.
func DominantColors(img image.Image, count int) ([]ColorFrequency, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}

	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return []ColorFrequency{}, nil
	}

	counts := make(map[RGBColor]int)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			key := RGBColor{
				R: uint8(r>>8) / 16 * 16,
				G: uint8(g>>8) / 16 * 16,
				B: uint8(b>>8) / 16 * 16,
			}
			counts[key]++
		}
	}

	colors := make([]ColorFrequency, 0, len(counts))
	for rgb, n := range counts {
		colors = append(colors, newColorFrequency(rgb, float64(n)/float64(total)*100))
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if len(colors) > count {
		colors = colors[:count]
	}
	return colors, nil
}

func newColorFrequency(rgb RGBColor, pct float64) ColorFrequency {
	c := colorful.Color{
		R: float64(rgb.R) / 255,
		G: float64(rgb.G) / 255,
		B: float64(rgb.B) / 255,
	}
	h, s, l := c.Hsl()

	return ColorFrequency{
		Hex:        c.Hex(),
		Percentage: math.Round(pct*100) / 100,
		RGB:        rgb,
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
}
