package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/echoflaresat/raytrace/presets"
	"github.com/echoflaresat/raytrace/render"
	"github.com/echoflaresat/raytrace/scenefile"
	"github.com/echoflaresat/raytrace/vectors"
)

// Config holds the scene source, camera and output settings.
type Config struct {
	// Scene source: a .json/.csv file, or the name of a built-in preset.
	Scene  string `json:"scene"`
	Preset string `json:"preset"`

	// Camera
	Position [3]float64  `json:"camera_position"`
	Forward  *[3]float64 `json:"camera_forward"`
	Yaw      float64     `json:"yaw"`
	Pitch    float64     `json:"pitch"`
	FOV      float64     `json:"fov"`
	Width    int         `json:"width"`
	Height   int         `json:"height"`
	Seed     uint64      `json:"seed"`

	// Render settings
	MaxDepth *int   `json:"max_depth"`
	Workers  int    `json:"workers"`
	Scale    int    `json:"scale"`
	Output   string `json:"output"`
}

// Defaults used by Resolve.
var (
	DefaultPosition = [3]float64{-3, 0, 1}
	DefaultForward  = [3]float64{1, 0, 0}
)

const (
	DefaultPreset = "single"
	DefaultSize   = 600
	DefaultFOV    = 90.0
	DefaultOutput = "render.png"
)

// Default returns a config with no file settings, ready for Resolve.
func Default() Config {
	return Config{Position: DefaultPosition}
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings. Zero
// values leave the file setting alone.
type Flags struct {
	Scene    string
	Preset   string
	Position string // "x,y,z"
	Forward  string // "x,y,z"
	Yaw      float64
	Pitch    float64
	FOV      float64
	Width    int
	Height   int
	Seed     uint64
	MaxDepth int // negative leaves the scene's own depth
	Workers  int
	Scale    int
	Output   string
}

// Resolve applies flags over the file settings and fills remaining gaps with
// defaults.
func (c *Config) Resolve(flags Flags) error {
	// CLI flags override config file
	if flags.Scene != "" {
		c.Scene = flags.Scene
		c.Preset = ""
	}
	if flags.Preset != "" {
		c.Preset = flags.Preset
		c.Scene = ""
	}
	if flags.Position != "" {
		v, err := ParseVec(flags.Position)
		if err != nil {
			return fmt.Errorf("config: -pos: %w", err)
		}
		c.Position = v
	}
	if flags.Forward != "" {
		v, err := ParseVec(flags.Forward)
		if err != nil {
			return fmt.Errorf("config: -forward: %w", err)
		}
		c.Forward = &v
	}
	if flags.Yaw != 0 {
		c.Yaw = flags.Yaw
	}
	if flags.Pitch != 0 {
		c.Pitch = flags.Pitch
	}
	if flags.FOV > 0 {
		c.FOV = flags.FOV
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
	if flags.MaxDepth >= 0 {
		depth := flags.MaxDepth
		c.MaxDepth = &depth
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}

	if c.Scene != "" && c.Preset != "" {
		return errors.New("config: scene and preset are mutually exclusive")
	}
	if c.MaxDepth != nil && *c.MaxDepth < 0 {
		return fmt.Errorf("config: max_depth %d is negative", *c.MaxDepth)
	}

	// Defaults
	if c.Scene == "" && c.Preset == "" {
		c.Preset = DefaultPreset
	}
	if c.Forward == nil {
		fwd := DefaultForward
		c.Forward = &fwd
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		c.FOV = DefaultFOV
	}
	if c.Width <= 0 {
		c.Width = DefaultSize
	}
	if c.Height <= 0 {
		c.Height = c.Width
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	return nil
}

// ParseVec parses "x,y,z".
func ParseVec(s string) ([3]float64, error) {
	var v [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return v, fmt.Errorf("vector %q: want x,y,z", s)
	}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return v, fmt.Errorf("vector %q: %w", s, err)
		}
		v[i] = f
	}
	return v, nil
}

// Description loads the configured scene file or preset and applies the
// depth override.
func (c Config) Description() (scenefile.Description, error) {
	var desc scenefile.Description
	var err error
	if c.Scene != "" {
		desc, err = scenefile.Load(c.Scene)
	} else {
		desc, err = presets.Get(c.Preset)
	}
	if err != nil {
		return scenefile.Description{}, err
	}
	if c.MaxDepth != nil {
		desc.MaxDepth = scenefile.Int(*c.MaxDepth)
	}
	return desc, nil
}

// Camera returns the configured camera, rotated by the initial yaw and pitch.
func (c Config) Camera() render.Camera {
	forward := vectors.FromArray(DefaultForward)
	if c.Forward != nil {
		forward = vectors.FromArray(*c.Forward)
	}
	cam := render.NewCamera(vectors.FromArray(c.Position), forward, c.Width, c.Height, c.FOV)
	cam.Rotate(c.Yaw, c.Pitch)
	cam.Seed = c.Seed
	return cam
}
