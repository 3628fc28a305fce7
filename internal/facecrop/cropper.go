package facecrop

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/ironsheep/facecrop/internal/detection"
	"github.com/ironsheep/facecrop/internal/imaging"
	"github.com/ironsheep/facecrop/internal/log"
	"github.com/ironsheep/facecrop/internal/ocr"
)

// Loader decodes images by path. *imaging.ImageCache satisfies it.
type Loader interface {
	Load(path string) (image.Image, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string) (image.Image, error)

// Load calls f(path).
func (f LoaderFunc) Load(path string) (image.Image, error) {
	return f(path)
}

// Options configures a Cropper.
type Options struct {
	Params    detection.Params
	Padding   float64
	Selection detection.Strategy
	Quality   int // JPEG quality; 0 uses imaging.DefaultJPEGQuality

	// Debug logs every face candidate.
	Debug bool

	// Colors is the number of dominant crop colors to report. 0 disables.
	Colors int

	// OCR extracts the input's text into Result.Text.
	OCR        bool
	OCROptions ocr.Options

	// Loader defaults to decoding from disk without caching.
	Loader Loader

	// Logger defaults to log.L().
	Logger *slog.Logger
}

// Cropper crops the dominant face out of images.
type Cropper struct {
	det    detection.Detector
	opts   Options
	loader Loader
	log    *slog.Logger

	mu     sync.Mutex
	closed bool
}

// New returns a Cropper that takes ownership of det.
func New(det detection.Detector, opts Options) *Cropper {
	if opts.Selection == "" {
		opts.Selection = detection.SelectionLargest
	}
	if opts.Params.ScaleFactor == 0 {
		opts.Params = detection.DefaultParams()
	}

	loader := opts.Loader
	if loader == nil {
		loader = LoaderFunc(imaging.Open)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.L()
	}

	return &Cropper{
		det:    det,
		opts:   opts,
		loader: loader,
		log:    logger.With("backend", string(det.Name())),
	}
}

// ProcessOption adjusts a single Process call.
type ProcessOption func(*Options)

// WithPadding overrides the padding fraction for one call.
func WithPadding(padding float64) ProcessOption {
	return func(o *Options) { o.Padding = padding }
}

// Process detects the dominant face in the image at in, crops it with
// padding and saves it to out. The returned Result is never nil.
func (c *Cropper) Process(ctx context.Context, in, out string, popts ...ProcessOption) (res *Result, err error) {
	opts := c.opts
	for _, o := range popts {
		o(&opts)
	}

	res = &Result{
		Status:  StatusFailed,
		Input:   in,
		Output:  out,
		Backend: c.det.Name(),
		Padding: opts.Padding,
	}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("unexpected panic during face cropping", "input", in, "panic", r)
			res.Status = StatusFailed
			err = fmt.Errorf("%w: %v", ErrDetection, r)
		}
		res.finish(start, err)
	}()

	img, face, err := c.detect(ctx, res, in, opts)
	if err != nil {
		return res, err
	}

	crop := detection.PaddedCrop(face, res.Image, opts.Padding)
	res.Crop = &crop
	c.log.Info("crop region", "crop", crop.String(), "padding", opts.Padding)

	if err := ctx.Err(); err != nil {
		return res, err
	}

	region := crop.Image().Add(img.Bounds().Min)
	cropped, err := imaging.CropRect(img, region)
	if err != nil {
		c.log.Error("crop failed", "region", region, "error", err)
		return res, fmt.Errorf("%w: %v", ErrDetection, err)
	}

	if err := imaging.Save(cropped, out, opts.Quality); err != nil {
		c.log.Error("could not save image", "output", out, "error", err)
		return res, fmt.Errorf("%w: %s: %w", ErrImageSave, out, err)
	}
	c.log.Info("face saved", "output", out)
	res.Status = StatusCropped

	if opts.Colors > 0 {
		colors, err := imaging.DominantColors(cropped, opts.Colors)
		if err != nil {
			c.log.Warn("dominant colors failed", "error", err)
		} else {
			res.Colors = colors
		}
	}

	if opts.OCR {
		res.Text, res.OCRError = c.extractText(ctx, img, in, opts.OCROptions)
	}

	return res, nil
}

// extractText runs OCR on img. Failures, including cancellation, are
// reported as a message and never fail a crop that was already saved.
func (c *Cropper) extractText(ctx context.Context, img image.Image, in string, opts ocr.Options) (*ocr.OCRResult, string) {
	if err := ctx.Err(); err != nil {
		c.log.Warn("text extraction skipped", "input", in, "error", err)
		return nil, fmt.Sprintf("skipped: %v", err)
	}

	text, err := ocr.ExtractTextFromImage(img, opts)
	if err != nil {
		c.log.Warn("text extraction failed", "input", in, "error", err)
		return nil, err.Error()
	}
	return text, ""
}

// Detect runs detection and selection without writing anything. On success
// Result.Crop holds the crop Process would produce.
func (c *Cropper) Detect(ctx context.Context, in string, popts ...ProcessOption) (res *Result, err error) {
	opts := c.opts
	for _, o := range popts {
		o(&opts)
	}

	res = &Result{
		Status:  StatusFailed,
		Input:   in,
		Backend: c.det.Name(),
		Padding: opts.Padding,
	}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("unexpected panic during face detection", "input", in, "panic", r)
			res.Status = StatusFailed
			err = fmt.Errorf("%w: %v", ErrDetection, r)
		}
		res.finish(start, err)
	}()

	_, face, err := c.detect(ctx, res, in, opts)
	if err != nil {
		return res, err
	}

	crop := detection.PaddedCrop(face, res.Image, opts.Padding)
	res.Crop = &crop
	res.Status = StatusDetected
	return res, nil
}

// detect loads in, runs the detector and selects a face, recording progress
// in res.
func (c *Cropper) detect(ctx context.Context, res *Result, in string, opts Options) (image.Image, detection.Rect, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil, detection.Rect{}, ErrClosed
	}

	if err := ctx.Err(); err != nil {
		return nil, detection.Rect{}, err
	}

	img, err := c.loader.Load(in)
	if err != nil {
		c.log.Error("could not load image", "input", in, "error", err)
		return nil, detection.Rect{}, fmt.Errorf("%w: %s: %w", ErrImageLoad, in, err)
	}

	res.Image = detection.BoundsOf(img)
	c.log.Info("image loaded", "input", in, "width", res.Image.Width, "height", res.Image.Height)

	if err := ctx.Err(); err != nil {
		return nil, detection.Rect{}, err
	}

	faces, err := c.det.Detect(img, opts.Params)
	if err != nil {
		c.log.Error("face detection failed", "input", in, "error", err)
		return nil, detection.Rect{}, fmt.Errorf("%w: %w", ErrDetection, err)
	}
	res.Candidates = faces

	if opts.Debug {
		c.log.Debug("face candidates", "count", len(faces))
		for i, f := range faces {
			c.log.Debug("face candidate", "index", i, "rect", f.String(), "area", f.Area())
		}
	}

	face, ok := detection.Select(opts.Selection, faces)
	if !ok {
		res.Status = StatusNoFace
		c.log.Warn("no faces detected in the image", "input", in, "hint", NoFaceHint)
		return nil, detection.Rect{}, fmt.Errorf("%w in %s", ErrNoFace, in)
	}
	res.Face = &face
	c.log.Info("face selected", "strategy", string(opts.Selection), "face", face.String())

	return img, face, nil
}

// Close releases the detector. Later calls are no-ops.
func (c *Cropper) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.det.Close()
}
