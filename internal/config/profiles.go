package config

import (
	"fmt"
	"sort"

	"github.com/ironsheep/facecrop/internal/detection"
)

// Profile is a named set of detection and cropping parameters.
type Profile struct {
	Name        string
	Description string
	Params      detection.Params
	Padding     float64
	Selection   detection.Strategy
}

const (
	// ProfileClassic reproduces the original general-purpose settings:
	// OpenCV defaults, a 30x30 minimum face, no padding, first face wins.
	ProfileClassic = "classic"

	// ProfileIDDocument is tuned for ID photos: a more thorough scale step,
	// stricter neighbor count, a face between 20% and 80% of the image,
	// 20% padding and the largest face wins.
	ProfileIDDocument = "id-document"

	// DefaultProfile is used when no profile is requested.
	DefaultProfile = ProfileIDDocument
)

var profiles = map[string]Profile{
	ProfileClassic: {
		Name:        ProfileClassic,
		Description: "general photos: scale 1.1, 3 neighbors, min 30x30px, no padding, first face",
		Params: func() detection.Params {
			p := detection.DefaultParams()
			p.ScaleFactor = 1.1
			p.MinNeighbors = 3
			p.MinSize = detection.Size{Width: 30, Height: 30}
			return p
		}(),
		Padding:   0,
		Selection: detection.SelectionFirst,
	},
	ProfileIDDocument: {
		Name:        ProfileIDDocument,
		Description: "ID documents: scale 1.05, 5 neighbors, face 20%-80% of image, 20% padding, largest face",
		Params: func() detection.Params {
			p := detection.DefaultParams()
			p.ScaleFactor = 1.05
			p.MinNeighbors = 5
			p.MinSize = detection.Size{Fraction: 0.2}
			p.MaxSize = detection.Size{Fraction: 0.8}
			return p
		}(),
		Padding:   0.2,
		Selection: detection.SelectionLargest,
	},
}

// LookupProfile returns the named profile.
func LookupProfile(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q (available: %v)", name, ProfileNames())
	}
	return p, nil
}

// Profiles returns every built-in profile ordered by name.
func Profiles() []Profile {
	out := make([]Profile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ProfileNames returns the names of the built-in profiles, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for _, p := range Profiles() {
		names = append(names, p.Name)
	}
	return names
}
