//go:build cgo

package detection

import (
	"go/build"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

// haarCascadePath finds gocv's bundled frontal face cascade, or a system
// OpenCV copy, and skips when none is installed.
func haarCascadePath(t *testing.T) string {
	t.Helper()

	const name = "haarcascade_frontalface_default.xml"

	var candidates []string
	if p := os.Getenv("FACECROP_TEST_HAAR_CASCADE"); p != "" {
		candidates = append(candidates, p)
	}
	modCache := os.Getenv("GOMODCACHE")
	if modCache == "" {
		modCache = filepath.Join(build.Default.GOPATH, "pkg", "mod")
	}
	candidates = append(candidates,
		filepath.Join(modCache, "gocv.io", "x", "gocv@v0.42.0", "data", name),
		filepath.Join("/usr/share/opencv4/haarcascades", name),
		filepath.Join("/usr/local/share/opencv4/haarcascades", name),
		filepath.Join("/opt/homebrew/share/opencv4/haarcascades", name),
	)

	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p
		}
	}
	t.Skipf("%s not found; set FACECROP_TEST_HAAR_CASCADE", name)
	return ""
}

func uniformImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestHaarDetector(t *testing.T) {
	path := haarCascadePath(t)

	d, err := New(BackendHaar, path)
	if err != nil {
		t.Fatalf("New(haar) error = %v", err)
	}
	defer d.Close()

	if d.Name() != BackendHaar {
		t.Errorf("Name() = %q, want haar", d.Name())
	}

	tests := []struct {
		name   string
		params Params
	}{
		{"defaults", DefaultParams()},
		{"fractional bounds", Params{
			ScaleFactor:  1.05,
			MinNeighbors: 5,
			MinSize:      Size{Fraction: 0.2},
			MaxSize:      Size{Fraction: 0.8},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			faces, err := d.Detect(uniformImage(160, 120, color.Gray{Y: 128}), tt.params)
			if err != nil {
				t.Fatalf("Detect() error = %v", err)
			}
			if faces == nil {
				t.Fatal("Detect() returned nil slice")
			}
			if len(faces) != 0 {
				t.Errorf("Detect() on a flat image found %d faces: %v", len(faces), faces)
			}
		})
	}
}

func TestHaarDetector_Close(t *testing.T) {
	d, err := NewHaar(haarCascadePath(t))
	if err != nil {
		t.Fatalf("NewHaar() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := d.Close(); err != nil {
			t.Fatalf("Close() #%d error = %v", i, err)
		}
	}

	if _, err := d.Detect(uniformImage(32, 32, color.White), DefaultParams()); err == nil {
		t.Error("Detect() after Close should fail")
	}
}
