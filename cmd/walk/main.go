// Command walk moves a camera through a scene by a script of key presses,
// renders a frame per step and merges the frames into one contact sheet.
//
// With positional arguments it skips rendering and merges existing frame
// files instead.
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
	"path/filepath"
	"strings"

	"github.com/echoflaresat/raytrace/config"
	"github.com/echoflaresat/raytrace/render"
	"github.com/echoflaresat/raytrace/scene"
	"github.com/echoflaresat/raytrace/scenefile"
	"github.com/echoflaresat/raytrace/vectors"
)

const (
	moveStep = 0.1
	turnStep = 0.05
)

// applyKey moves or turns the camera like the interactive viewer's key
// bindings: W/S along x, A/D along y, Z/X along z, < > yaw and ^ v pitch.
func applyKey(cam *render.Camera, key rune) error {
	switch key {
	case 'W', 'w':
		cam.MoveBy(vectors.New(moveStep, 0, 0))
	case 'S', 's':
		cam.MoveBy(vectors.New(-moveStep, 0, 0))
	case 'A', 'a':
		cam.MoveBy(vectors.New(0, -moveStep, 0))
	case 'D', 'd':
		cam.MoveBy(vectors.New(0, moveStep, 0))
	case 'Z', 'z':
		cam.MoveBy(vectors.New(0, 0, -moveStep))
	case 'X', 'x':
		cam.MoveBy(vectors.New(0, 0, moveStep))
	case '<':
		cam.Rotate(turnStep, 0)
	case '>':
		cam.Rotate(-turnStep, 0)
	case '^':
		cam.Rotate(0, turnStep)
	case 'v', 'V':
		cam.Rotate(0, -turnStep)
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

// cameraPath returns the starting camera followed by the camera after each
// key.
func cameraPath(start render.Camera, keys string) ([]render.Camera, error) {
	path := []render.Camera{start}
	cam := start
	for _, k := range keys {
		if k == ' ' {
			continue
		}
		if err := applyKey(&cam, k); err != nil {
			return nil, err
		}
		path = append(path, cam)
	}
	return path, nil
}

func renderFrames(ctx context.Context, sc *scene.Scene, cams []render.Camera, workers, scale int, frameDir string) ([]image.Image, error) {
	frames := make([]image.Image, 0, len(cams))
	for i, cam := range cams {
		buf, err := cam.CreateBufferContext(ctx, sc, workers)
		if err != nil {
			return nil, err
		}
		var img image.Image = buf.Image()
		if scale > 1 {
			img = render.Upscale(img, scale)
		}
		if frameDir != "" {
			path := filepath.Join(frameDir, fmt.Sprintf("frame_%03d.png", i))
			if err := render.WriteImage(path, img); err != nil {
				return nil, err
			}
		}
		slog.Info("frame", "index", i, "of", len(cams), "position", cam.Position)
		frames = append(frames, img)
	}
	return frames, nil
}

func loadFrames(paths []string) ([]image.Image, error) {
	frames := make([]image.Image, 0, len(paths))
	for _, path := range paths {
		fmt.Printf("Processing %s\n", path)
		img, err := render.LoadImage(path)
		if err != nil {
			return nil, fmt.Errorf("could not load %q: %w", path, err)
		}
		frames = append(frames, img)
	}
	return frames, nil
}

func main() {
	var (
		configPath = flag.String("config", "", "JSON config file (flags override it)")
		scenePath  = flag.String("scene", "", "Scene file (.json or .csv)")
		preset     = flag.String("preset", "", "Built-in scene name")
		keys       = flag.String("keys", "", `Key script, e.g. "WWAD<>^v"`)
		width      = flag.Int("width", 160, "Frame width in pixels")
		height     = flag.Int("height", 0, "Frame height in pixels (default: width)")
		depth      = flag.Int("depth", -1, "Maximum bounce depth (default: the scene's)")
		scale      = flag.Int("scale", 1, "Integer upscale factor per frame")
		cols       = flag.Int("cols", 4, "Frames per contact sheet row")
		frameDir   = flag.String("frames", "", "Directory to also write every frame to")
		out        = flag.String("out", "walk.png", "Contact sheet output image")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [frame files to merge...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	var frames []image.Image
	var err error
	if flag.NArg() > 0 {
		frames, err = loadFrames(flag.Args())
	} else {
		frames, err = walk(*configPath, config.Flags{
			Scene:    *scenePath,
			Preset:   *preset,
			Width:    *width,
			Height:   *height,
			MaxDepth: *depth,
			Scale:    *scale,
		}, *keys, *frameDir)
	}
	if err != nil {
		log.Fatal(err)
	}

	sheet, err := render.ContactSheet(frames, *cols)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("-> creating %s\n", *out)
	if err := render.WriteImage(*out, sheet); err != nil {
		log.Fatalf("Could not write %s: %v", *out, err)
	}
}

func walk(configPath string, flags config.Flags, keys, frameDir string) ([]image.Image, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}
	if err := cfg.Resolve(flags); err != nil {
		return nil, err
	}

	cams, err := cameraPath(cfg.Camera(), strings.TrimSpace(keys))
	if err != nil {
		return nil, err
	}

	desc, err := cfg.Description()
	if err != nil {
		return nil, err
	}
	sc, err := scenefile.Build(desc)
	if err != nil {
		return nil, err
	}

	if frameDir != "" {
		if err := os.MkdirAll(frameDir, 0o755); err != nil {
			return nil, err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return renderFrames(ctx, sc, cams, cfg.Workers, cfg.Scale, frameDir)
}
