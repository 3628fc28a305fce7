package detection

import (
	"math/rand"
	"testing"
)

func TestSelectLargest(t *testing.T) {
	tests := []struct {
		name  string
		faces []Rect
		want  Rect
	}{
		{
			"single",
			[]Rect{{X: 5, Y: 5, Width: 10, Height: 10}},
			Rect{X: 5, Y: 5, Width: 10, Height: 10},
		},
		{
			"second is larger",
			[]Rect{{X: 0, Y: 0, Width: 50, Height: 50}, {X: 10, Y: 10, Width: 80, Height: 80}},
			Rect{X: 10, Y: 10, Width: 80, Height: 80},
		},
		{
			"first is larger",
			[]Rect{{X: 0, Y: 0, Width: 90, Height: 90}, {X: 10, Y: 10, Width: 80, Height: 80}},
			Rect{X: 0, Y: 0, Width: 90, Height: 90},
		},
		{
			"tie keeps first",
			[]Rect{{X: 1, Y: 1, Width: 20, Height: 10}, {X: 2, Y: 2, Width: 10, Height: 20}},
			Rect{X: 1, Y: 1, Width: 20, Height: 10},
		},
		{
			"area not width",
			[]Rect{{X: 0, Y: 0, Width: 100, Height: 2}, {X: 0, Y: 0, Width: 20, Height: 20}},
			Rect{X: 0, Y: 0, Width: 20, Height: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectLargest(tt.faces)
			if !ok {
				t.Fatal("SelectLargest reported no detection")
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectLargest_Empty(t *testing.T) {
	if _, ok := SelectLargest(nil); ok {
		t.Error("SelectLargest(nil) should report no detection")
	}
	if _, ok := SelectLargest([]Rect{}); ok {
		t.Error("SelectLargest(empty) should report no detection")
	}
}

func TestSelectLargest_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		faces := make([]Rect, 1+rng.Intn(8))
		for j := range faces {
			faces[j] = Rect{X: rng.Intn(100), Y: rng.Intn(100), Width: 1 + rng.Intn(50), Height: 1 + rng.Intn(50)}
		}

		got, ok := SelectLargest(faces)
		if !ok {
			t.Fatal("SelectLargest reported no detection")
		}
		for _, f := range faces {
			if f.Area() > got.Area() {
				t.Fatalf("%v has area %d > selected %v", f, f.Area(), got)
			}
		}
	}
}

func TestSelectFirst(t *testing.T) {
	faces := []Rect{{X: 0, Y: 0, Width: 10, Height: 10}, {X: 5, Y: 5, Width: 50, Height: 50}}

	got, ok := SelectFirst(faces)
	if !ok || got != faces[0] {
		t.Errorf("SelectFirst: got %v (%v), want %v", got, ok, faces[0])
	}
	if _, ok := SelectFirst(nil); ok {
		t.Error("SelectFirst(nil) should report no detection")
	}
}

func TestSelect(t *testing.T) {
	faces := []Rect{{X: 0, Y: 0, Width: 10, Height: 10}, {X: 5, Y: 5, Width: 50, Height: 50}}

	tests := []struct {
		strategy Strategy
		want     Rect
	}{
		{SelectionLargest, faces[1]},
		{SelectionFirst, faces[0]},
		{"", faces[1]},
	}

	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			got, ok := Select(tt.strategy, faces)
			if !ok || got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range []string{"largest", "first"} {
		if _, err := ParseStrategy(s); err != nil {
			t.Errorf("ParseStrategy(%q): %v", s, err)
		}
	}
	for _, s := range []string{"", "biggest", "LARGEST"} {
		if _, err := ParseStrategy(s); err == nil {
			t.Errorf("ParseStrategy(%q) should fail", s)
		}
	}
}

func TestPaddedCrop(t *testing.T) {
	tests := []struct {
		name    string
		face    Rect
		bounds  ImageBounds
		padding float64
		want    Rect
	}{
		{
			"clamped at origin",
			Rect{X: 10, Y: 10, Width: 100, Height: 100},
			ImageBounds{Width: 400, Height: 400},
			0.2,
			Rect{X: 0, Y: 0, Width: 140, Height: 140},
		},
		{
			"fully inside",
			Rect{X: 100, Y: 100, Width: 100, Height: 100},
			ImageBounds{Width: 400, Height: 400},
			0.2,
			Rect{X: 80, Y: 80, Width: 140, Height: 140},
		},
		{
			"clamped at far edge",
			Rect{X: 300, Y: 320, Width: 100, Height: 80},
			ImageBounds{Width: 400, Height: 400},
			0.2,
			Rect{X: 280, Y: 300, Width: 120, Height: 100},
		},
		{
			"padding floors",
			Rect{X: 50, Y: 50, Width: 33, Height: 40},
			ImageBounds{Width: 200, Height: 200},
			0.1,
			Rect{X: 47, Y: 47, Width: 39, Height: 46},
		},
		{
			"padding from width only",
			Rect{X: 50, Y: 50, Width: 10, Height: 100},
			ImageBounds{Width: 300, Height: 300},
			0.5,
			Rect{X: 45, Y: 45, Width: 20, Height: 110},
		},
		{
			"zero padding unchanged",
			Rect{X: 12, Y: 34, Width: 56, Height: 78},
			ImageBounds{Width: 400, Height: 400},
			0,
			Rect{X: 12, Y: 34, Width: 56, Height: 78},
		},
		{
			"negative padding is zero",
			Rect{X: 12, Y: 34, Width: 56, Height: 78},
			ImageBounds{Width: 400, Height: 400},
			-0.5,
			Rect{X: 12, Y: 34, Width: 56, Height: 78},
		},
		{
			"zero width not padded",
			Rect{X: 12, Y: 34, Width: 0, Height: 78},
			ImageBounds{Width: 400, Height: 400},
			0.2,
			Rect{X: 12, Y: 34, Width: 0, Height: 78},
		},
		{
			"zero height not padded",
			Rect{X: 12, Y: 34, Width: 50, Height: 0},
			ImageBounds{Width: 400, Height: 400},
			0.2,
			Rect{X: 12, Y: 34, Width: 50, Height: 0},
		},
		{
			"face equals image",
			Rect{X: 0, Y: 0, Width: 64, Height: 48},
			ImageBounds{Width: 64, Height: 48},
			0.2,
			Rect{X: 0, Y: 0, Width: 64, Height: 48},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PaddedCrop(tt.face, tt.bounds, tt.padding)
			if got != tt.want {
				t.Errorf("PaddedCrop(%v, %v, %v) = %v, want %v", tt.face, tt.bounds, tt.padding, got, tt.want)
			}
		})
	}
}

func TestPaddedCrop_StaysWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	paddings := []float64{0, 0.1, 0.2, 0.5, 1, 3}

	for i := 0; i < 1000; i++ {
		b := ImageBounds{Width: 1 + rng.Intn(500), Height: 1 + rng.Intn(500)}
		x, y := rng.Intn(b.Width), rng.Intn(b.Height)
		face := Rect{X: x, Y: y, Width: 1 + rng.Intn(b.Width-x), Height: 1 + rng.Intn(b.Height-y)}
		padding := paddings[rng.Intn(len(paddings))]

		got := PaddedCrop(face, b, padding)
		if !got.Within(b) {
			t.Fatalf("PaddedCrop(%v, %v, %v) = %v escapes bounds", face, b, padding, got)
		}
		if got.Empty() {
			t.Fatalf("PaddedCrop(%v, %v, %v) = %v is empty", face, b, padding, got)
		}
		if !face.Image().In(got.Image()) {
			t.Fatalf("PaddedCrop(%v, %v, %v) = %v does not contain the face", face, b, padding, got)
		}
		if padding == 0 && got != face {
			t.Fatalf("PaddedCrop(%v, %v, 0) = %v, want face unchanged", face, b, got)
		}
	}
}

func TestPaddedCrop_OriginOutside(t *testing.T) {
	b := ImageBounds{Width: 100, Height: 100}
	got := PaddedCrop(Rect{X: 150, Y: 150, Width: 10, Height: 10}, b, 0.2)
	if !got.Within(b) {
		t.Errorf("got %v, want a rectangle within %v", got, b)
	}
}
