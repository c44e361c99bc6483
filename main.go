package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/df07/go-volumetric-raytracer/pkg/core"
	"github.com/df07/go-volumetric-raytracer/pkg/geometry"
	"github.com/df07/go-volumetric-raytracer/pkg/loaders"
	"github.com/df07/go-volumetric-raytracer/pkg/renderer"
	"github.com/df07/go-volumetric-raytracer/pkg/scene"
	"github.com/df07/go-volumetric-raytracer/pkg/volume"
)

// options holds the parsed command line
type options struct {
	Scene            string
	GridFile         string
	ExportGrid       string
	Width            int
	Height           int
	Samples          int
	Passes           int
	Workers          int
	Sampling         string
	Branched         bool
	StepSize         float64
	MaxSteps         int
	MaxVolumeBounces int
	MaxDepth         int
	Scale            float64
	Out              string
	LogLevel         string
	Help             bool
}

func parseFlags(args []string, output io.Writer) (options, *flag.FlagSet, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.Scene, "scene", "fog", "Scene name: "+strings.Join(scene.Names(), ", "))
	fs.StringVar(&opts.GridFile, "grid", "", "Render a density grid file instead of a built-in scene")
	fs.StringVar(&opts.ExportGrid, "export-grid", "", "Write the built-in torus density grid to this file and exit")
	fs.IntVar(&opts.Width, "width", 0, "Image width (0 = scene default)")
	fs.IntVar(&opts.Height, "height", 0, "Image height (0 = keep scene aspect ratio)")
	fs.IntVar(&opts.Samples, "samples", 64, "Maximum samples per pixel")
	fs.IntVar(&opts.Passes, "passes", 1, "Number of progressive passes")
	fs.IntVar(&opts.Workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	fs.StringVar(&opts.Sampling, "sampling", "", "Homogeneous distance sampling: distance or equiangular (empty = scene default)")
	fs.BoolVar(&opts.Branched, "branched", false, "Always sample a scatter event in homogeneous media")
	fs.Float64Var(&opts.StepSize, "step", 0, "Ray-marching step size (0 = scene default)")
	fs.IntVar(&opts.MaxSteps, "max-steps", 0, "Ray-marching step budget per segment (0 = scene default)")
	fs.IntVar(&opts.MaxVolumeBounces, "max-volume-bounces", -1, "Volume bounces before scattering turns into absorption (-1 = scene default)")
	fs.IntVar(&opts.MaxDepth, "max-depth", 0, "Maximum scattering bounces per path (0 = scene default)")
	fs.Float64Var(&opts.Scale, "scale", 1, "Resample the output image by this factor")
	fs.StringVar(&opts.Out, "out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	fs.StringVar(&opts.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fs.BoolVar(&opts.Help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, fs, err
	}
	if opts.Scale <= 0 {
		return opts, fs, fmt.Errorf("scale must be positive, got %g", opts.Scale)
	}
	return opts, fs, nil
}

func main() {
	opts, fs, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if opts.Help {
		printHelp(fs)
		return
	}

	if err := setupLogging(opts.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		slog.Error("render failed", "error", err)
		os.Exit(1)
	}
}

func printHelp(fs *flag.FlagSet) {
	fmt.Println("Volumetric Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	response, err := scene.ListAllScenes("scenes")
	if err == nil {
		for _, group := range response.Groups {
			for _, info := range group.Scenes {
				fmt.Printf("  %-20s %s\n", info.ID, info.Description)
			}
		}
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

// setupLogging installs a text handler on stderr for the whole process
func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	core.SetLogger(logger)
	return nil
}

func run(opts options) error {
	if opts.ExportGrid != "" {
		return exportGrid(opts.ExportGrid)
	}

	selectedScene, err := createScene(opts)
	if err != nil {
		return err
	}
	if err := applyOptions(selectedScene, opts); err != nil {
		return err
	}

	config := renderer.DefaultProgressiveConfig()
	config.MaxSamplesPerPixel = opts.Samples
	config.MaxPasses = opts.Passes
	config.NumWorkers = opts.Workers
	if config.InitialSamples > config.MaxSamplesPerPixel {
		config.InitialSamples = config.MaxSamplesPerPixel
	}

	pr, err := renderer.NewProgressiveRaytracer(selectedScene, config)
	if err != nil {
		return err
	}

	startTime := time.Now()
	img, stats, err := renderAll(pr)
	if err != nil {
		return err
	}

	slog.Info("render completed",
		"duration", time.Since(startTime),
		"averageSamples", stats.AverageSamples,
		"minSamples", stats.MinSamples,
		"maxSamples", stats.MaxSamplesUsed,
		"luminance", renderer.CalculateAverageLuminance(img))

	filename := opts.Out
	if filename == "" {
		outputDir := filepath.Join("output", outputName(selectedScene.Name))
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	}

	if err := savePNG(filename, scaleImage(img, opts.Scale)); err != nil {
		return err
	}

	slog.Info("render saved", "file", filename)
	return nil
}

// createScene builds the scene selected on the command line
func createScene(opts options) (*scene.Scene, error) {
	var override geometry.CameraConfig
	if opts.Width > 0 {
		override.Width = opts.Width
		if opts.Height > 0 {
			override.AspectRatio = float64(opts.Width) / float64(opts.Height)
		}
	}

	if opts.GridFile != "" {
		return scene.NewGridSceneFromFile(opts.GridFile, override)
	}
	return scene.New(opts.Scene, override)
}

// applyOptions overrides the scene's recommended settings with explicit flags
func applyOptions(s *scene.Scene, opts options) error {
	if opts.Sampling != "" {
		method, err := volume.ParseSamplingMethod(opts.Sampling)
		if err != nil {
			return err
		}
		s.VolumeConfig.HomogeneousSampling = method
	}
	if opts.StepSize > 0 {
		s.VolumeConfig.StepSize = opts.StepSize
	}
	if opts.MaxSteps > 0 {
		s.VolumeConfig.MaxSteps = opts.MaxSteps
	}
	if opts.MaxVolumeBounces >= 0 {
		s.VolumeConfig.MaxVolumeBounce = opts.MaxVolumeBounces
	}
	if opts.MaxDepth > 0 {
		s.SamplingConfig.MaxDepth = opts.MaxDepth
	}
	if opts.Branched {
		s.SamplingConfig.Branched = true
	}
	s.SamplingConfig.SamplesPerPixel = opts.Samples
	return nil
}

// renderAll runs every pass and returns the final image
func renderAll(pr *renderer.ProgressiveRaytracer) (*image.RGBA, renderer.RenderStats, error) {
	passChan, _, errChan := pr.RenderProgressive(context.Background(), renderer.RenderOptions{})

	var last renderer.PassResult
	for result := range passChan {
		last = result
	}
	if err, ok := <-errChan; ok && err != nil {
		return nil, renderer.RenderStats{}, err
	}
	if last.Image == nil {
		return nil, renderer.RenderStats{}, errors.New("render produced no passes")
	}
	return last.Image, last.Stats, nil
}

// scaleImage resamples img by factor; a factor of 1 returns img unchanged
func scaleImage(img *image.RGBA, factor float64) image.Image {
	if factor == 1 {
		return img
	}

	bounds := img.Bounds()
	width := max(1, int(float64(bounds.Dx())*factor+0.5))
	height := max(1, int(float64(bounds.Dy())*factor+0.5))

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}

func savePNG(filename string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

func exportGrid(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create grid file: %w", err)
	}
	defer file.Close()

	if err := loaders.WriteDensityGrid(file, scene.TorusGrid(64)); err != nil {
		return err
	}
	slog.Info("density grid written", "file", filename)
	return nil
}

// outputName turns a scene name into a directory name
func outputName(name string) string {
	return strings.NewReplacer(":", "_", "/", "_", "\\", "_").Replace(name)
}
