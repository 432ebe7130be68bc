package presets

import (
	"testing"

	"github.com/echoflaresat/raytrace/scenefile"
	"github.com/echoflaresat/raytrace/vectors"
)

func TestAllPresetsBuild(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			desc, err := Get(name)
			if err != nil {
				t.Fatal(err)
			}
			sc, err := scenefile.Build(desc)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if len(sc.Objects()) != len(desc.Objects)+1 {
				t.Errorf("scene has %d objects, want %d plus the world light", len(sc.Objects()), len(desc.Objects))
			}
		})
	}
}

func TestGet_Unknown(t *testing.T) {
	if _, err := Get("teapot"); err == nil {
		t.Error("expected an error for an unknown preset")
	}
}

func TestCurve(t *testing.T) {
	desc := Curve()
	spheres := 0
	for _, o := range desc.Objects {
		if o.Kind == scenefile.KindSphere {
			spheres++
		}
	}
	if spheres != 100 {
		t.Errorf("curve has %d spheres, want 100", spheres)
	}
	if first := *desc.Objects[0].Origin; first[1] != -10 {
		t.Errorf("first sphere at y=%v, want -10", first[1])
	}
}

func TestEclipse_LightHidden(t *testing.T) {
	sc, err := scenefile.Build(Eclipse())
	if err != nil {
		t.Fatal(err)
	}
	// Looking straight at the light, the sphere is in the way.
	res := sc.Render(vectors.NewRay(vectors.Vec3{}, vectors.New(1, 0, 0)), 0, nil)
	if res.Distance > 2+1e-9 {
		t.Errorf("distance = %v, want the sphere at 2", res.Distance)
	}
}

func TestSingle_EndToEnd(t *testing.T) {
	sc, err := scenefile.Build(Single())
	if err != nil {
		t.Fatal(err)
	}
	res := sc.Render(vectors.NewRay(vectors.Vec3{}, vectors.New(1, 0, 0)), 0, nil)
	if !res.Hit || res.Distance < 2-1e-9 || res.Distance > 2+1e-9 {
		t.Errorf("hit=%v distance=%v, want 2", res.Hit, res.Distance)
	}
	if want := 0.5*0.01 + 0.5*0.1; res.Colour.R < want-1e-9 || res.Colour.R > want+1e-9 {
		t.Errorf("red = %v, want %v", res.Colour.R, want)
	}
}
