package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/facecrop/internal/config"
	"github.com/ironsheep/facecrop/internal/detection"
	"github.com/ironsheep/facecrop/internal/facecrop"
	"github.com/ironsheep/facecrop/internal/imaging"
	"github.com/ironsheep/facecrop/internal/log"
	"github.com/ironsheep/facecrop/internal/ocr"
	"github.com/ironsheep/facecrop/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// newDetector builds the face detector; tests swap it for a fake.
var newDetector = detection.New

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) int {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Fprintf(stdout, "facecrop %s\n", Version)
			fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
			return exitOK
		case "--help", "-h", "help":
			printHelp(stdout)
			return exitOK
		case "serve":
			return serve(ctx, args[1:], stdin, stdout, stderr, getenv)
		}
	}

	cfg, paths, code := loadConfig("facecrop", args, stderr, getenv)
	if cfg == nil {
		return code
	}

	if len(paths) != 2 {
		printUsage(stdout)
		return exitUsage
	}
	in, out := paths[0], paths[1]

	if !imaging.Exists(in) {
		fmt.Fprintf(stdout, "Error: Input file does not exist: %s\n", in)
		return exitFail
	}

	initLogging(cfg, stderr)
	log.Debug("facecrop starting", "version", Version, "profile", cfg.Profile, "backend", string(cfg.Backend))

	det, err := newDetector(cfg.Backend, cfg.ModelPath)
	if err != nil {
		log.Error("could not create detector", "backend", string(cfg.Backend), "model", cfg.ModelPath, "error", err)
		if errors.Is(err, detection.ErrClassifierLoad) {
			fmt.Fprintln(stdout, "Error: Could not load face cascade classifier")
		} else {
			fmt.Fprintf(stdout, "Error: %v\n", err)
		}
		fmt.Fprintln(stdout, "Face detection and cropping failed!")
		return exitFail
	}

	cropper := facecrop.New(det, cropperOptions(cfg, nil))
	defer cropper.Close()

	res, err := cropper.Process(ctx, in, out)
	report(stdout, res, err)

	if cfg.ReportPath != "" {
		if werr := res.WriteReport(cfg.ReportPath); werr != nil {
			log.Error("could not write report", "path", cfg.ReportPath, "error", werr)
		}
	}

	if err != nil {
		fmt.Fprintln(stdout, "Face detection and cropping failed!")
		return exitFail
	}
	fmt.Fprintln(stdout, "Face detection and cropping completed successfully!")
	return exitOK
}

// serve runs the MCP server on stdin/stdout. Logs go to stderr only.
func serve(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) int {
	cfg, rest, code := loadConfig("facecrop serve", args, stderr, getenv)
	if cfg == nil {
		return code
	}
	if len(rest) != 0 {
		fmt.Fprintf(stderr, "Error: serve takes no arguments, got %v\n", rest)
		return exitUsage
	}

	initLogging(cfg, stderr)

	det, err := newDetector(cfg.Backend, cfg.ModelPath)
	if err != nil {
		log.Error("could not create detector", "backend", string(cfg.Backend), "model", cfg.ModelPath, "error", err)
		return exitFail
	}

	cache := imaging.NewImageCache()
	cropper := facecrop.New(det, cropperOptions(cfg, cache))
	defer cropper.Close()

	srv := server.New(cropper, server.Options{
		Cache:   cache,
		OCR:     ocr.Options{Language: cfg.OCRLanguage, TessdataPrefix: cfg.TessdataPrefix},
		Version: Version,
	})
	if err := srv.Run(ctx, stdin, stdout); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server error", "error", err)
		return exitFail
	}
	return exitOK
}

// loadConfig parses flags and builds the configuration. Flags may appear
// before or after the positional arguments, which are returned in order;
// everything after "--" is positional. A nil Config means the caller should
// return code.
func loadConfig(name string, args []string, stderr io.Writer, getenv func(string) string) (*config.Config, []string, int) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := config.NewFlags(fs)

	var positional, tail []string
	for i, a := range args {
		if a == "--" {
			args, tail = args[:i], args[i+1:]
			break
		}
	}

	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, nil, exitOK
			}
			return nil, nil, exitUsage
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
	positional = append(positional, tail...)

	cfg, err := config.Load(getenv, flags)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return nil, nil, exitUsage
	}
	return cfg, positional, exitOK
}

func initLogging(cfg *config.Config, stderr io.Writer) {
	log.Init(log.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: stderr,
	})
}

func cropperOptions(cfg *config.Config, loader facecrop.Loader) facecrop.Options {
	opts := facecrop.Options{
		Params:    cfg.Params,
		Padding:   cfg.Padding,
		Selection: cfg.Selection,
		Quality:   cfg.Quality,
		Debug:     cfg.Debug,
		Colors:    cfg.Colors,
		OCR:       cfg.OCR,
		OCROptions: ocr.Options{
			Language:       cfg.OCRLanguage,
			TessdataPrefix: cfg.TessdataPrefix,
		},
	}
	if loader != nil {
		opts.Loader = loader
	}
	return opts
}

// report prints the user-facing progress lines for a run.
func report(w io.Writer, res *facecrop.Result, err error) {
	if res.Image.Width > 0 {
		fmt.Fprintf(w, "Image dimensions: %d x %d\n", res.Image.Width, res.Image.Height)
	}
	if res.Face != nil {
		fmt.Fprintf(w, "Face detected at: %s\n", res.Face)
	}

	switch {
	case err == nil:
		fmt.Fprintf(w, "Face successfully saved to: %s\n", res.Output)
	case errors.Is(err, facecrop.ErrImageLoad):
		fmt.Fprintf(w, "Error: Could not load image from %s\n", res.Input)
	case errors.Is(err, facecrop.ErrNoFace):
		fmt.Fprintln(w, "No faces detected in the image")
		fmt.Fprintln(w, "Try adjusting detection parameters or check if image contains a clear frontal face")
	case errors.Is(err, facecrop.ErrImageSave):
		fmt.Fprintln(w, "Error: Failed to save cropped face")
	default:
		fmt.Fprintf(w, "Error during face detection: %v\n", err)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: facecrop [flags] <input_image_path> <output_image_path> [flags]")
	fmt.Fprintln(w, "Example: facecrop input.jpg face_output.jpg")
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "facecrop - crop the dominant face out of a photo or ID document")
	fmt.Fprintln(w)
	printUsage(w)
	fmt.Fprintln(w, "       facecrop serve [flags]    Run as an MCP server on stdin/stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fs := flag.NewFlagSet("facecrop", flag.ContinueOnError)
	fs.SetOutput(w)
	config.NewFlags(fs)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintf(w, "  %s=%s|%s\n", config.EnvProfile, config.ProfileClassic, config.ProfileIDDocument)
	fmt.Fprintf(w, "  %s=haar|pigo\n", config.EnvBackend)
	fmt.Fprintf(w, "  %s=<model path>\n", config.EnvCascade)
	fmt.Fprintf(w, "  %s=debug|info|warn|error\n", config.EnvLogLevel)
	fmt.Fprintf(w, "  %s=text|json\n", config.EnvLogFormat)
	fmt.Fprintf(w, "  %s=<tessdata dir>\n", config.EnvTessdataPrefix)
}
