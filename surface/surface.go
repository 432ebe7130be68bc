// Package surface holds the shading models attached to geometric primitives.
// A surface decides which rays to follow after a hit and how to fold the
// colours those rays return back into one shaded colour. Surfaces are
// immutable once built and may be shared by any number of primitives.
package surface

import (
	"math"
	"math/rand/v2"

	"github.com/echoflaresat/raytrace/colors"
	"github.com/echoflaresat/raytrace/vectors"
)

// Surface is the shading contract used by the scene traversal.
type Surface interface {
	// GetValue returns the colour reported for a direct hit, given the colour
	// carried by the incoming path.
	GetValue(incoming colors.Color4) colors.Color4

	// RequestRays returns the rays to trace after a hit. normal is the
	// outgoing ray of the hit (origin on the surface, direction along the face
	// normal), incoming the ray that produced the hit.
	RequestRays(normal, incoming vectors.Ray, rng *rand.Rand) []vectors.Ray

	// IntersectionsToColour folds the colours returned by the requested rays,
	// in request order, into the shaded colour of the hit.
	IntersectionsToColour(results []colors.Color4) colors.Color4
}

// Reflect mirrors incoming about normal as incoming + normal*2, starting at
// the normal ray's origin. The direction keeps its raw magnitude.
func Reflect(normal, incoming vectors.Ray) vectors.Ray {
	dir := incoming.Direction.Add(normal.Direction.Scale(2))
	return vectors.NewRayPreserve(normal.Origin, dir)
}

// cosineKernel draws (1+cos(pi*u))/2 for u uniform in [0,1).
func cosineKernel(rng *rand.Rand) float64 {
	var u float64
	if rng != nil {
		u = rng.Float64()
	} else {
		u = rand.Float64()
	}
	return (1 + math.Cos(math.Pi*u)) / 2
}
