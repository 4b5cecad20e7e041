package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneName string
	width     int
	samples   int
	depth     int
	workers   int
	seed      int64
	format    string
	out       string
	help      bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, *flag.FlagSet, error) {
	var opts options
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.sceneName, "scene", "default", "Scene to render")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", -1, "Maximum bounces per path (-1 = scene default)")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	fs.Int64Var(&opts.seed, "seed", renderer.DefaultSeed, "Random seed for sampling and scene layout")
	fs.StringVar(&opts.format, "format", "ppm", "Output format: 'ppm' or 'png'")
	fs.StringVar(&opts.out, "out", "", "Output file (default stdout)")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, fs, err
	}

	opts.format = strings.ToLower(opts.format)
	if opts.format != "ppm" && opts.format != "png" {
		return opts, fs, fmt.Errorf("unknown format %q: expected 'ppm' or 'png'", opts.format)
	}
	return opts, fs, nil
}

func printHelp(fs *flag.FlagSet, registry *scene.Registry, w io.Writer) {
	fmt.Fprintln(w, "Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options] > image.ppm")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range registry.Scenes() {
		fmt.Fprintf(w, "  %-10s - %s\n", info.Name, info.Description)
	}
}

// createScene looks up the scene and applies command line overrides to its camera
func createScene(registry *scene.Registry, opts options) (*scene.Scene, error) {
	s, err := registry.Lookup(opts.sceneName, opts.seed)
	if err != nil {
		return nil, err
	}

	// MaxDepth 0 is meaningful, so it cannot go through the zero-means-keep merge
	s.CameraConfig = renderer.MergeCameraConfig(s.CameraConfig, renderer.CameraConfig{
		ImageWidth:      opts.width,
		SamplesPerPixel: opts.samples,
	})
	if opts.depth >= 0 {
		s.CameraConfig.MaxDepth = opts.depth
	}
	return s, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, fs, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	registry := scene.NewRegistry()
	if opts.help {
		printHelp(fs, registry, stderr)
		return nil
	}

	logger := renderer.NewWriterLogger(stderr)
	selectedScene, err := createScene(registry, opts)
	if err != nil {
		return err
	}
	logger.Printf("Using %s scene...\n", selectedScene.Name)

	raytracer, err := selectedScene.NewRaytracer(logger)
	if err != nil {
		return fmt.Errorf("scene %s: %w", selectedScene.Name, err)
	}
	raytracer.SetNumWorkers(opts.workers)
	raytracer.SetSeed(opts.seed)

	img, stats, err := raytracer.Render()
	if err != nil {
		return err
	}
	logger.Printf("Samples per pixel: %.1f, %d pixels, %d workers, average luminance %.3f\n",
		stats.AverageSamples(), stats.TotalPixels, stats.Workers, renderer.CalculateAverageLuminance(img))

	out := stdout
	if opts.out != "" {
		file, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	switch opts.format {
	case "png":
		err = png.Encode(out, img.ToRGBA())
	default:
		err = img.WritePPM(out)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", opts.format, err)
	}

	if opts.out != "" {
		logger.Printf("Render saved as %s\n", opts.out)
	}
	return nil
}
