package objects

import (
	"math"

	"github.com/echoflaresat/raytrace/colors"
	"github.com/echoflaresat/raytrace/surface"
	"github.com/echoflaresat/raytrace/vectors"
)

// Sphere is a solid ball shaded by its surface.
type Sphere struct {
	Origin  vectors.Vec3
	Radius  float64
	Surface surface.Surface
}

// NewSphere returns a sphere; a nil surface becomes surface.Neutral().
func NewSphere(origin vectors.Vec3, radius float64, s surface.Surface) *Sphere {
	if s == nil {
		s = surface.Neutral()
	}
	return &Sphere{Origin: origin, Radius: radius, Surface: s}
}

// TestIntersection finds the entry point from the ray's closest approach to
// the centre.
func (s *Sphere) TestIntersection(ray vectors.Ray, incoming colors.Color4) Result {
	miss := Result{Intersection: Miss(colors.Black())}
	if ray.Degenerate() {
		return miss
	}

	L := s.Origin.Sub(ray.Origin)
	tca := L.Dot(ray.Direction)
	// Centre behind the ray origin.
	if tca <= 0 {
		return miss
	}

	closest := ray.At(tca)
	d := vectors.Distance(closest, s.Origin)
	// Must precede the square root: r² - d² is negative past the radius.
	if !(d < s.Radius) {
		return miss
	}

	halfChord := math.Sqrt(s.Radius*s.Radius - d*d)
	entry := ray.At(tca - halfChord)

	normal := entry.Sub(s.Origin).Scale(1.0 / s.Radius)
	outgoing := vectors.NewRay(entry.Add(normal.Scale(Epsilon)), normal)

	return Result{
		Intersection: NewHit(
			s.Surface.GetValue(incoming),
			vectors.Distance(entry, ray.Origin),
			&outgoing,
		),
		Surface: s.Surface,
	}
}
