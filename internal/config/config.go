// Package config assembles the facecrop configuration from a built-in
// profile, environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/ironsheep/facecrop/internal/detection"
)

// Environment variables read by Load.
const (
	EnvProfile        = "FACECROP_PROFILE"
	EnvBackend        = "FACECROP_BACKEND"
	EnvCascade        = "FACECROP_CASCADE"
	EnvLogLevel       = "FACECROP_LOG_LEVEL"
	EnvLogFormat      = "FACECROP_LOG_FORMAT"
	EnvTessdataPrefix = "TESSDATA_PREFIX"
)

// Config holds everything a facecrop run needs.
type Config struct {
	Profile   string
	Backend   detection.Backend
	ModelPath string
	Params    detection.Params
	Padding   float64
	Selection detection.Strategy

	Quality    int    // JPEG quality 1-100
	ReportPath string // Optional JSON report destination
	Colors     int    // Dominant colors to report for the crop; 0 without -report or -colors

	OCR            bool
	OCRLanguage    string
	TessdataPrefix string

	Debug     bool
	LogLevel  string
	LogFormat string
}

// Default returns the configuration of the default profile with the haar
// backend.
func Default() *Config {
	cfg, _ := fromProfile(DefaultProfile)
	return cfg
}

func fromProfile(name string) (*Config, error) {
	p, err := LookupProfile(name)
	if err != nil {
		return nil, err
	}
	return &Config{
		Profile:     p.Name,
		Backend:     detection.BackendHaar,
		Params:      p.Params,
		Padding:     p.Padding,
		Selection:   p.Selection,
		Quality:     95,
		Colors:      5,
		OCRLanguage: "eng",
		LogLevel:    "info",
		LogFormat:   "text",
	}, nil
}

// Flags binds command-line flags to a FlagSet. Only flags the user actually
// set override the profile and environment.
type Flags struct {
	fs *flag.FlagSet

	profile   string
	backend   string
	cascade   string
	scale     float64
	neighbors int
	minSize   int
	maxSize   int
	padding   float64
	selection string
	quality   int
	report    string
	colors    int
	ocr       bool
	ocrLang   string
	debug     bool
	logLevel  string
	logFormat string
}

// NewFlags registers the facecrop flags on fs.
func NewFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.profile, "profile", DefaultProfile, "detection profile: "+strings.Join(ProfileNames(), ", "))
	fs.StringVar(&f.backend, "backend", string(detection.BackendHaar), "detection backend: haar or pigo")
	fs.StringVar(&f.cascade, "cascade", "", "cascade model path (default depends on backend)")
	fs.Float64Var(&f.scale, "scale", 0, "detection scale factor, > 1")
	fs.IntVar(&f.neighbors, "neighbors", 0, "minimum neighbors for a detection")
	fs.IntVar(&f.minSize, "min-size", 0, "minimum face size in pixels")
	fs.IntVar(&f.maxSize, "max-size", 0, "maximum face size in pixels")
	fs.Float64Var(&f.padding, "padding", 0, "padding as a fraction of face width")
	fs.StringVar(&f.selection, "select", "", "face selection: largest or first")
	fs.IntVar(&f.quality, "quality", 95, "JPEG output quality, 1-100")
	fs.StringVar(&f.report, "report", "", "write a JSON report to this path")
	fs.IntVar(&f.colors, "colors", 5, "dominant colors to include in the report")
	fs.BoolVar(&f.ocr, "ocr", false, "extract document text into the report")
	fs.StringVar(&f.ocrLang, "ocr-lang", "eng", "tesseract language for -ocr")
	fs.BoolVar(&f.debug, "debug", false, "log every detected face candidate")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "text", "log format: text or json")
	return f
}

func (f *Flags) setFlags() map[string]bool {
	set := make(map[string]bool)
	if f == nil || f.fs == nil {
		return set
	}
	f.fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return set
}

// Load builds a Config. getenv is usually os.Getenv; flags may be nil.
func Load(getenv func(string) string, flags *Flags) (*Config, error) {
	set := flags.setFlags()

	profile := DefaultProfile
	if v := getenv(EnvProfile); v != "" {
		profile = v
	}
	if set["profile"] {
		profile = flags.profile
	}

	cfg, err := fromProfile(profile)
	if err != nil {
		return nil, err
	}

	cfg.applyEnv(getenv)
	if err := cfg.applyFlags(flags, set); err != nil {
		return nil, err
	}

	if cfg.ModelPath == "" {
		cfg.ModelPath = detection.DefaultModelPath(cfg.Backend)
	}
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}
	// Colors are only read from the report, so skip the pixel walk unless
	// someone asked for them.
	if cfg.ReportPath == "" && !set["colors"] {
		cfg.Colors = 0
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvBackend); v != "" {
		c.Backend = detection.Backend(v)
	}
	if v := getenv(EnvCascade); v != "" {
		c.ModelPath = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
	if v := getenv(EnvTessdataPrefix); v != "" {
		c.TessdataPrefix = v
	}
}

func (c *Config) applyFlags(f *Flags, set map[string]bool) error {
	if len(set) == 0 {
		return nil
	}

	if set["backend"] {
		c.Backend = detection.Backend(f.backend)
	}
	if set["cascade"] {
		c.ModelPath = f.cascade
	}
	if set["scale"] {
		c.Params.ScaleFactor = f.scale
	}
	if set["neighbors"] {
		c.Params.MinNeighbors = f.neighbors
	}
	if set["min-size"] {
		if f.minSize < 0 {
			return fmt.Errorf("-min-size must not be negative")
		}
		c.Params.MinSize = detection.Size{Width: f.minSize, Height: f.minSize}
	}
	if set["max-size"] {
		if f.maxSize < 0 {
			return fmt.Errorf("-max-size must not be negative")
		}
		c.Params.MaxSize = detection.Size{Width: f.maxSize, Height: f.maxSize}
	}
	if set["padding"] {
		c.Padding = f.padding
	}
	if set["select"] {
		c.Selection = detection.Strategy(f.selection)
	}
	if set["quality"] {
		c.Quality = f.quality
	}
	if set["report"] {
		c.ReportPath = f.report
	}
	if set["colors"] {
		c.Colors = f.colors
	}
	if set["ocr"] {
		c.OCR = f.ocr
	}
	if set["ocr-lang"] {
		c.OCRLanguage = f.ocrLang
	}
	if set["debug"] {
		c.Debug = f.debug
	}
	if set["log-level"] {
		c.LogLevel = f.logLevel
	}
	if set["log-format"] {
		c.LogFormat = f.logFormat
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if _, err := detection.ParseBackend(string(c.Backend)); err != nil {
		errs = append(errs, err)
	}
	if _, err := detection.ParseStrategy(string(c.Selection)); err != nil {
		errs = append(errs, err)
	}
	if c.ModelPath == "" {
		errs = append(errs, errors.New("cascade model path is empty"))
	}
	if c.Params.ScaleFactor <= 1 {
		errs = append(errs, fmt.Errorf("scale factor must be > 1, got %v", c.Params.ScaleFactor))
	}
	if c.Params.MinNeighbors < 0 {
		errs = append(errs, fmt.Errorf("min neighbors must not be negative, got %d", c.Params.MinNeighbors))
	}
	if c.Padding < 0 {
		errs = append(errs, fmt.Errorf("padding must not be negative, got %v", c.Padding))
	}
	if c.Quality < 1 || c.Quality > 100 {
		errs = append(errs, fmt.Errorf("quality must be between 1 and 100, got %d", c.Quality))
	}
	if c.Colors < 0 {
		errs = append(errs, fmt.Errorf("colors must not be negative, got %d", c.Colors))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log level must be debug, info, warn or error, got %q", c.LogLevel))
	}
	if f := strings.ToLower(c.LogFormat); f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("log format must be text or json, got %q", c.LogFormat))
	}

	return errors.Join(errs...)
}
