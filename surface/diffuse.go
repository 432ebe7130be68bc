package surface

import (
	"math/rand/v2"

	"github.com/echoflaresat/raytrace/colors"
	"github.com/echoflaresat/raytrace/vectors"
)

// Diffuse approximates Lambertian scattering by sampling rays jittered around
// the mirror direction.
type Diffuse struct {
	Colour  colors.Color4
	Samples int
}

// NewDiffuse returns a diffuse surface; samples below 1 are raised to 1.
func NewDiffuse(colour colors.Color4, samples int) *Diffuse {
	if samples < 1 {
		samples = 1
	}
	return &Diffuse{Colour: colour, Samples: samples}
}

func (d *Diffuse) GetValue(colors.Color4) colors.Color4 {
	return d.Colour
}

// RequestRays jitters each axis of the reflected direction independently by
// (k-0.5)*|reflected|, k drawn from the cosine kernel, and rescales the
// result back to the reflected length.
func (d *Diffuse) RequestRays(normal, incoming vectors.Ray, rng *rand.Rand) []vectors.Ray {
	reflected := Reflect(normal, incoming)
	length := reflected.Direction.Norm()

	rays := make([]vectors.Ray, 0, d.Samples)
	for i := 0; i < d.Samples; i++ {
		jitter := vectors.New(
			cosineKernel(rng)-0.5,
			cosineKernel(rng)-0.5,
			cosineKernel(rng)-0.5,
		).Scale(length)
		dir := reflected.Direction.Add(jitter).Normalize().Scale(length)
		rays = append(rays, vectors.NewRay(reflected.Origin, dir))
	}
	return rays
}

func (d *Diffuse) IntersectionsToColour(results []colors.Color4) colors.Color4 {
	if len(results) == 0 {
		return d.Colour
	}
	return colors.Average(results).Mix(d.Colour, 0.5)
}
