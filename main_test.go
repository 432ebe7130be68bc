package main

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/echoflaresat/raytrace/config"
	"github.com/echoflaresat/raytrace/presets"
	"github.com/echoflaresat/raytrace/render"
	"github.com/echoflaresat/raytrace/scenefile"
)

func TestViews(t *testing.T) {
	outDir := t.TempDir()

	for _, name := range presets.Names() {
		t.Run(name, func(t *testing.T) {
			runStableImageTest(
				t,
				filepath.Join(outDir, name+".png"),
				func(workers int) (image.Image, error) {
					cfg := config.Default()
					if err := cfg.Resolve(config.Flags{
						Preset:   name,
						Width:    48,
						Height:   32,
						Seed:     3,
						MaxDepth: 3,
						Workers:  workers,
					}); err != nil {
						return nil, err
					}
					return renderImage(context.Background(), cfg, "")
				},
			)
		})
	}
}

// runStableImageTest renders with one worker and with many, requires both
// images to be identical and writes the result to path.
func runStableImageTest(t *testing.T, path string, renderFunc func(workers int) (image.Image, error)) {
	t.Helper()

	serial, err := renderFunc(1)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	parallel, err := renderFunc(8)
	if err != nil {
		t.Fatalf("parallel render failed: %v", err)
	}

	if !imagesEqual(serial, parallel) {
		t.Fatalf("parallel render differs from the serial one")
	}
	if err := render.WriteImage(path, parallel); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
}

func TestRenderImage_ScaleAndSaveScene(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	if err := cfg.Resolve(config.Flags{Preset: "orbs", Width: 10, Height: 6, Scale: 3, MaxDepth: -1}); err != nil {
		t.Fatal(err)
	}

	scenePath := filepath.Join(dir, "orbs.json")
	img, err := renderImage(context.Background(), cfg, scenePath)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 30 || img.Bounds().Dy() != 18 {
		t.Errorf("size = %v, want 30x18", img.Bounds().Size())
	}

	desc, err := scenefile.Load(scenePath)
	if err != nil {
		t.Fatalf("saved scene does not load: %v", err)
	}
	if len(desc.Objects) != len(presets.Orbs().Objects) {
		t.Errorf("saved scene has %d objects", len(desc.Objects))
	}
}

func TestRenderImage_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := config.Default()
	if err := cfg.Resolve(config.Flags{Width: 8, MaxDepth: -1}); err != nil {
		t.Fatal(err)
	}
	if _, err := renderImage(ctx, cfg, ""); err == nil {
		t.Error("expected an error from a cancelled render")
	}
}

func imagesEqual(a, b image.Image) bool {
	var bufA, bufB bytes.Buffer
	_ = png.Encode(&bufA, a)
	_ = png.Encode(&bufB, b)
	return bytes.Equal(bufA.Bytes(), bufB.Bytes())
}
