package config

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/echoflaresat/raytrace/vectors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolve_Defaults(t *testing.T) {
	cfg := Default()
	if err := cfg.Resolve(Flags{MaxDepth: -1}); err != nil {
		t.Fatal(err)
	}
	if cfg.Preset != DefaultPreset || cfg.Scene != "" {
		t.Errorf("scene source = %q/%q", cfg.Scene, cfg.Preset)
	}
	if cfg.Position != DefaultPosition || *cfg.Forward != DefaultForward {
		t.Errorf("camera = %v looking %v", cfg.Position, *cfg.Forward)
	}
	if cfg.Width != DefaultSize || cfg.Height != DefaultSize || cfg.FOV != DefaultFOV {
		t.Errorf("view = %dx%d fov %v", cfg.Width, cfg.Height, cfg.FOV)
	}
	if cfg.MaxDepth != nil {
		t.Errorf("max depth = %d, want scene default", *cfg.MaxDepth)
	}
	if cfg.Workers != runtime.GOMAXPROCS(0) || cfg.Scale != 1 || cfg.Output != DefaultOutput {
		t.Errorf("render settings = %+v", cfg)
	}
}

func TestLoad_FileThenFlags(t *testing.T) {
	path := writeConfig(t, `{
		"scene": "room.json",
		"camera_forward": [0, 1, 0],
		"width": 320,
		"height": 200,
		"max_depth": 2,
		"output": "room.webp"
	}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Position != DefaultPosition {
		t.Errorf("position = %v, want default kept", cfg.Position)
	}

	err = cfg.Resolve(Flags{Width: 640, Position: "1, 2, 3", MaxDepth: -1, Output: "room.tga"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scene != "room.json" || cfg.Preset != "" {
		t.Errorf("scene source = %q/%q", cfg.Scene, cfg.Preset)
	}
	if cfg.Width != 640 || cfg.Height != 200 {
		t.Errorf("size = %dx%d, want 640x200", cfg.Width, cfg.Height)
	}
	if cfg.Position != [3]float64{1, 2, 3} || *cfg.Forward != [3]float64{0, 1, 0} {
		t.Errorf("camera = %v looking %v", cfg.Position, *cfg.Forward)
	}
	if cfg.MaxDepth == nil || *cfg.MaxDepth != 2 {
		t.Errorf("max depth = %v, want 2 from the file", cfg.MaxDepth)
	}
	if cfg.Output != "room.tga" {
		t.Errorf("output = %q", cfg.Output)
	}
}

func TestResolve_PresetFlagReplacesFileScene(t *testing.T) {
	cfg := Config{Scene: "room.json"}
	if err := cfg.Resolve(Flags{Preset: "orbs", MaxDepth: 0}); err != nil {
		t.Fatal(err)
	}
	if cfg.Preset != "orbs" || cfg.Scene != "" {
		t.Errorf("scene source = %q/%q", cfg.Scene, cfg.Preset)
	}
	if cfg.MaxDepth == nil || *cfg.MaxDepth != 0 {
		t.Errorf("max depth = %v, want 0 from flags", cfg.MaxDepth)
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		flags Flags
		want  string
	}{
		{"both sources", Config{Scene: "a.json", Preset: "orbs"}, Flags{MaxDepth: -1}, "mutually exclusive"},
		{"bad position", Config{}, Flags{Position: "1,2", MaxDepth: -1}, "-pos"},
		{"bad forward", Config{}, Flags{Forward: "1,x,2", MaxDepth: -1}, "-forward"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Resolve(tt.flags)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil || !strings.HasPrefix(err.Error(), "config: read") {
		t.Errorf("missing file: err = %v", err)
	}
	path := writeConfig(t, `{"width": "wide"}`)
	if _, err := Load(path); err == nil || !strings.HasPrefix(err.Error(), "config: parse") {
		t.Errorf("bad json: err = %v", err)
	}
}

func TestParseVec(t *testing.T) {
	v, err := ParseVec(" -3, 0.5 ,1e2")
	if err != nil {
		t.Fatal(err)
	}
	if v != [3]float64{-3, 0.5, 100} {
		t.Errorf("v = %v", v)
	}
}

func TestDescription(t *testing.T) {
	cfg := Default()
	if err := cfg.Resolve(Flags{Preset: "eclipse", MaxDepth: 3}); err != nil {
		t.Fatal(err)
	}
	desc, err := cfg.Description()
	if err != nil {
		t.Fatal(err)
	}
	if len(desc.Objects) != 2 || desc.MaxDepth == nil || *desc.MaxDepth != 3 {
		t.Errorf("description = %+v", desc)
	}

	csvPath := filepath.Join(t.TempDir(), "scene.csv")
	if err := os.WriteFile(csvPath, []byte("l,-11,0,0,1\ns,3,0,0,1,1,1,1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	fromFile := Default()
	if err := fromFile.Resolve(Flags{Scene: csvPath, MaxDepth: -1}); err != nil {
		t.Fatal(err)
	}
	desc, err = fromFile.Description()
	if err != nil {
		t.Fatal(err)
	}
	if len(desc.Objects) != 2 || desc.MaxDepth != nil {
		t.Errorf("description = %+v", desc)
	}

	unknown := Config{Preset: "teapot"}
	if _, err := unknown.Description(); err == nil {
		t.Error("expected an error for an unknown preset")
	}
}

func TestCamera(t *testing.T) {
	cfg := Default()
	if err := cfg.Resolve(Flags{Width: 40, Height: 30, Yaw: math.Pi / 2, Seed: 7, MaxDepth: -1}); err != nil {
		t.Fatal(err)
	}
	cam := cfg.Camera()
	if cam.Width != 40 || cam.Height != 30 || cam.Seed != 7 {
		t.Errorf("camera = %+v", cam)
	}
	if math.Abs(cam.Forward.Y-1) > 1e-9 {
		t.Errorf("forward = %v, want +Y after a quarter turn", cam.Forward)
	}
	if cam.Position != vectors.FromArray(DefaultPosition) {
		t.Errorf("position = %v", cam.Position)
	}
}
