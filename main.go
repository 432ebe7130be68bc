package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/echoflaresat/raytrace/config"
	"github.com/echoflaresat/raytrace/presets"
	"github.com/echoflaresat/raytrace/render"
	"github.com/echoflaresat/raytrace/scenefile"
)

type cliConfig struct {
	configPath, scene, preset *string
	pos, forward              *string
	yaw, pitch, fov           *float64
	width, height             *int
	seed                      *uint64
	maxDepth, workers, scale  *int
	out, saveScene            *string
	verbose, list, showHelp   *bool
}

func defineFlags() cliConfig {
	return cliConfig{
		configPath: flag.String("config", "", "JSON config file (flags override it)"),
		scene:      flag.String("scene", "", "Scene file (.json or .csv)"),
		preset:     flag.String("preset", "", "Built-in scene name (see -list)"),

		pos:     flag.String("pos", "", "Camera position as x,y,z (default -3,0,1)"),
		forward: flag.String("forward", "", "Camera view direction as x,y,z (default 1,0,0)"),
		yaw:     flag.Float64("yaw", 0.0, "Camera yaw in radians, positive turns left"),
		pitch:   flag.Float64("pitch", 0.0, "Camera pitch in radians, positive looks up"),
		fov:     flag.Float64("fov", 0.0, "Camera field of view in degrees (default 90)"),

		width:    flag.Int("width", 0, "Output width in pixels (default 600)"),
		height:   flag.Int("height", 0, "Output height in pixels (default: width)"),
		seed:     flag.Uint64("seed", 0, "Seed for diffuse sampling"),
		maxDepth: flag.Int("depth", -1, "Maximum bounce depth (default: the scene's)"),
		workers:  flag.Int("workers", 0, "Render goroutines (default: all CPUs)"),
		scale:    flag.Int("scale", 0, "Integer upscale factor for the written image"),

		out:       flag.String("out", "", "Output image (.png .jpg .webp .bmp .tif .tga)"),
		saveScene: flag.String("save-scene", "", "Also write the scene description to this .json or .csv file"),

		verbose:  flag.Bool("v", false, "Log render progress"),
		list:     flag.Bool("list", false, "List built-in scenes and exit"),
		showHelp: flag.Bool("h", false, "Show this help message"),
	}
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `Raytrace - recursive ray tracer

Usage:
  %[1]s [options]

`, os.Args[0])

	printGroup("Scene", []string{"config", "scene", "preset", "depth", "save-scene"})
	printGroup("Camera Options", []string{"pos", "forward", "yaw", "pitch", "fov"})
	printGroup("Rendering Options", []string{"width", "height", "seed", "workers", "scale"})
	printGroup("Output", []string{"out"})
	printGroup("Misc", []string{"v", "list", "h"})
}

func printGroup(title string, keys []string) {
	fmt.Fprintf(os.Stderr, "%s:\n", title)
	for _, name := range keys {
		if f := flag.Lookup(name); f != nil {
			fmt.Fprintf(os.Stderr, "  -%-11s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
		}
	}
	fmt.Fprintln(os.Stderr)
}

func main() {

	cli := defineFlags()
	flag.Usage = printHelp
	flag.Parse()

	if *cli.showHelp {
		printHelp()
		return
	}
	if *cli.list {
		for _, name := range presets.Names() {
			fmt.Println(name)
		}
		return
	}
	setupLogging(*cli.verbose)

	cfg, err := loadConfig(cli)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	img, err := renderImage(ctx, cfg, *cli.saveScene)
	if err != nil {
		log.Fatal(err)
	}

	if err := render.WriteImage(cfg.Output, img); err != nil {
		log.Fatalf("Failed to write image: %v", err)
	}
	slog.Info("rendered", "out", cfg.Output, "width", cfg.Width, "height", cfg.Height, "elapsed", time.Since(start))
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func loadConfig(cli cliConfig) (config.Config, error) {
	cfg := config.Default()
	if *cli.configPath != "" {
		var err error
		if cfg, err = config.Load(*cli.configPath); err != nil {
			return config.Config{}, err
		}
	}
	err := cfg.Resolve(config.Flags{
		Scene:    *cli.scene,
		Preset:   *cli.preset,
		Position: *cli.pos,
		Forward:  *cli.forward,
		Yaw:      *cli.yaw,
		Pitch:    *cli.pitch,
		FOV:      *cli.fov,
		Width:    *cli.width,
		Height:   *cli.height,
		Seed:     *cli.seed,
		MaxDepth: *cli.maxDepth,
		Workers:  *cli.workers,
		Scale:    *cli.scale,
		Output:   *cli.out,
	})
	return cfg, err
}

// renderImage builds the configured scene and renders it from the
// configured camera.
func renderImage(ctx context.Context, cfg config.Config, saveScene string) (image.Image, error) {
	desc, err := cfg.Description()
	if err != nil {
		return nil, err
	}
	if saveScene != "" {
		if err := scenefile.Save(saveScene, desc); err != nil {
			return nil, err
		}
	}

	sc, err := scenefile.Build(desc)
	if err != nil {
		return nil, err
	}
	slog.Debug("scene ready", "objects", len(sc.Objects()), "max_depth", sc.MaxDepth())

	buf, err := cfg.Camera().CreateBufferContext(ctx, sc, cfg.Workers)
	if err != nil {
		return nil, err
	}

	img := buf.Image()
	if cfg.Scale > 1 {
		return render.Upscale(img, cfg.Scale), nil
	}
	return img, nil
}
