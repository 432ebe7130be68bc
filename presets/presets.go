// Package presets provides the built-in demo scenes.
package presets

import (
	"fmt"
	"math"
	"slices"

	"github.com/echoflaresat/raytrace/scenefile"
)

var presets = map[string]func() scenefile.Description{
	"eclipse":  Eclipse,
	"orbs":     Orbs,
	"curve":    Curve,
	"mirrors":  Mirrors,
	"single":   Single,
	"showcase": Showcase,
}

// Names lists the available presets in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns the named preset.
func Get(name string) (scenefile.Description, error) {
	f, ok := presets[name]
	if !ok {
		return scenefile.Description{}, fmt.Errorf("unknown preset %q (have %v)", name, Names())
	}
	return f(), nil
}

func white() *scenefile.SurfaceDesc { return scenefile.Specular(1, 1, 1) }

// Eclipse puts a point light directly behind a white sphere.
func Eclipse() scenefile.Description {
	return scenefile.Description{Objects: []scenefile.Object{
		scenefile.Sphere([3]float64{3, 0, 0}, 1, white()),
		scenefile.Light([3]float64{9, 0, 0}, 1),
	}}
}

// Orbs is two white spheres and a small red one lit from below.
func Orbs() scenefile.Description {
	return scenefile.Description{Objects: []scenefile.Object{
		scenefile.Sphere([3]float64{3, 8, 8}, 1, white()),
		scenefile.Sphere([3]float64{3, 5, 5}, 1, white()),
		scenefile.Sphere([3]float64{0, 3.6, 3.9}, 0.5, scenefile.Specular(1, 0, 0)),
		scenefile.Light([3]float64{12, -8, -8}, 1),
	}}
}

// Curve strings 100 small spheres along z = 2 sin y + 0.1 y².
func Curve() scenefile.Description {
	const (
		balls  = 100
		extent = 10.0
	)
	objs := make([]scenefile.Object, 0, balls+2)
	for i := 0; i < balls; i++ {
		y := -extent + float64(i)*extent*2/balls
		z := 2*math.Sin(y) + 0.1*y*y
		objs = append(objs, scenefile.Sphere([3]float64{3, y, z}, 0.1, white()))
	}
	objs = append(objs,
		scenefile.Light([3]float64{-12, -12, 20}, 1),
		scenefile.Light([3]float64{-12, 12, 20}, 1),
	)
	return scenefile.Description{Objects: objs}
}

// Mirrors places the camera between two facing mirrors with a sphere in the
// gap.
func Mirrors() scenefile.Description {
	mirror := scenefile.Specular(0.9, 0.9, 1)
	return scenefile.Description{Objects: []scenefile.Object{
		scenefile.Quad([3]float64{6, -4, -3}, [3]float64{6, 4, -3}, [3]float64{6, -4, 5}, mirror),
		scenefile.Quad([3]float64{-6, -4, -3}, [3]float64{-6, 4, -3}, [3]float64{-6, -4, 5}, mirror),
		scenefile.Sphere([3]float64{2, 0, 1}, 0.8, scenefile.Specular(0.2, 0.6, 0.3)),
		scenefile.Light([3]float64{0, 3, 4}, 0.5),
	}}
}

// Single is one dark grey mirror sphere in front of the default camera.
func Single() scenefile.Description {
	return scenefile.Description{Objects: []scenefile.Object{
		scenefile.Sphere([3]float64{3, 0, 0}, 1, scenefile.Specular(0.1, 0.1, 0.1)),
	}}
}

// Showcase mixes every primitive and both surface types over a diffuse floor.
func Showcase() scenefile.Description {
	floor := scenefile.Diffuse(0.5, 0.5, 0.5, scenefile.DefaultDiffuseSamples)
	return scenefile.Description{
		MaxDepth: scenefile.Int(4),
		Objects: []scenefile.Object{
			scenefile.Quad([3]float64{-2, -6, -1}, [3]float64{14, -6, -1}, [3]float64{-2, 6, -1}, floor),
			scenefile.Sphere([3]float64{4, -1.5, 0.2}, 1.2, scenefile.Specular(0.9, 0.9, 0.9)),
			scenefile.Sphere([3]float64{5, 1.8, 0}, 1, scenefile.Diffuse(0.8, 0.2, 0.2, 4)),
			scenefile.Triangle([3]float64{8, -3, -1}, [3]float64{8, 3, -1}, [3]float64{8, 0, 4}, scenefile.Specular(0.2, 0.3, 0.9)),
			scenefile.Light([3]float64{2, 0, 6}, 1.5),
			scenefile.Light([3]float64{-12, 12, 20}, 1),
		},
	}
}
