package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/JoMedeiros/ray-tracing/internal/config"
	"github.com/JoMedeiros/ray-tracing/pkg/integrator"
	"github.com/JoMedeiros/ray-tracing/pkg/loaders"
	"github.com/JoMedeiros/ray-tracing/pkg/renderer"
	"github.com/JoMedeiros/ray-tracing/pkg/scene"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

// options holds the parsed command line
type options struct {
	scene   string
	out     string
	format  string
	workers int
}

func parseFlags(args []string, stdout io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("ray-tracing", flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.StringVar(&opts.scene, "scene", "default", "Scene file (.json) or 'default' for the built-in scene")
	fs.StringVar(&opts.out, "out", "", "Output image path; defaults to the scene's img_file under RT_OUTPUT_DIR")
	fs.StringVar(&opts.format, "format", "", "Output format: png, jpg, bmp or tga (overrides the scene)")
	fs.IntVar(&opts.workers, "workers", -1, "Number of render workers (0 = CPU count, -1 = RT_WORKERS)")
	help := fs.Bool("help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if *help {
		fmt.Fprintln(stdout, "Ray Tracer")
		fmt.Fprintln(stdout, "Usage: ray-tracing [options]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Environment: RT_WORKERS, RT_TILE_SIZE, RT_OUTPUT_DIR, RT_LOG_LEVEL")
		return opts, flag.ErrHelp
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	setup, err := createScene(opts.scene)
	if err != nil {
		return err
	}
	format, err := outputFormat(opts, setup.Settings.Output.Format)
	if err != nil {
		return err
	}
	setup.Settings.Output.Format = format

	workers := cfg.Workers
	if opts.workers >= 0 {
		workers = opts.workers
	}

	logger.Info("scene loaded", "scene", opts.scene,
		"primitives", len(setup.Scene.Primitives()), "lights", len(setup.Scene.Lights()),
		"integrator", setup.Settings.Integrator.Type)

	r := renderer.NewRenderer(setup.Scene, setup.Integrator, renderer.Config{
		TileSize:   cfg.TileSize,
		NumWorkers: workers,
		Logger:     logger,
	})
	buffer, stats, err := r.Render(ctx, func(tc renderer.TileCompletion) {
		logger.Debug("tile done", "tile", tc.Tile.ID, "progress", fmt.Sprintf("%.0f%%", 100*tc.Progress()))
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	path, err := loaders.SaveImage(outputPath(opts.out, cfg.OutputDir, setup.Settings.Output), setup.Settings.Output.Format, buffer)
	if err != nil {
		return fmt.Errorf("save image: %w", err)
	}

	logger.Info("render saved", "path", path, "elapsed", stats.Elapsed,
		"pixels", stats.TotalPixels, "samples", stats.TotalSamples)
	return nil
}

// createScene loads a scene document, or builds the default scene
func createScene(sceneArg string) (*loaders.Setup, error) {
	switch {
	case sceneArg == "":
		return nil, errors.New("no scene given")
	case sceneArg == "default":
		sc, err := scene.NewDefaultScene()
		if err != nil {
			return nil, err
		}
		integratorConfig := integrator.Config{Type: integrator.TypeBlinnPhong}
		integratorInst, err := integrator.New(integratorConfig)
		if err != nil {
			return nil, err
		}
		return &loaders.Setup{
			Scene:      sc,
			Integrator: integratorInst,
			Settings: loaders.RenderSettings{
				Integrator: integratorConfig,
				Output:     loaders.OutputFile{Name: "default", Format: loaders.FormatPNG},
			},
		}, nil
	case strings.EqualFold(filepath.Ext(sceneArg), ".json"):
		return loaders.Load(sceneArg)
	default:
		return nil, fmt.Errorf("unknown scene %q: expected a .json file or 'default'", sceneArg)
	}
}

// outputPath picks the image path: the -out flag when given, otherwise the
// scene's output name relative to the output directory
func outputPath(flagValue, outputDir string, output loaders.OutputFile) string {
	if flagValue != "" {
		return flagValue
	}
	if filepath.IsAbs(output.Name) {
		return output.Name
	}
	return filepath.Join(outputDir, output.Name)
}

// outputFormat resolves the image format: -format wins, then the extension of
// -out, then the scene's own choice
func outputFormat(opts options, sceneFormat string) (string, error) {
	if opts.format != "" {
		return loaders.ParseFormat(opts.format)
	}
	if ext := filepath.Ext(opts.out); ext != "" {
		if format, err := loaders.ParseFormat(ext); err == nil {
			return format, nil
		}
	}
	return sceneFormat, nil
}
