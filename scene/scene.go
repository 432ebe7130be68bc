// Package scene resolves a ray against a set of primitives, following
// surface bounces recursively up to the scene's depth limit.
package scene

import (
	"math/rand/v2"
	"slices"

	"github.com/echoflaresat/raytrace/colors"
	"github.com/echoflaresat/raytrace/objects"
	"github.com/echoflaresat/raytrace/vectors"
)

// DefaultMaxDepth is the bounce limit used when a scene description sets none.
const DefaultMaxDepth = 8

// Scene is an immutable collection of primitives. It is safe for concurrent
// Render calls as long as each caller passes its own generator.
type Scene struct {
	objects  []objects.Intersectable
	maxDepth int
}

// New returns a scene over objs. A negative maxDepth is treated as zero,
// meaning hits are never followed.
func New(maxDepth int, objs ...objects.Intersectable) *Scene {
	return &Scene{
		objects:  slices.Clone(objs),
		maxDepth: max(maxDepth, 0),
	}
}

func (s *Scene) MaxDepth() int { return s.maxDepth }

// Objects returns a copy of the scene's primitives in insertion order.
func (s *Scene) Objects() []objects.Intersectable {
	return slices.Clone(s.objects)
}

// Render returns the nearest result for ray at the given bounce depth. The
// camera calls it with depth 0. rng drives stochastic surfaces; nil falls back
// to the package-level generator.
func (s *Scene) Render(ray vectors.Ray, depth int, rng *rand.Rand) objects.Result {
	return s.render(ray, depth, colors.Black(), rng)
}

func (s *Scene) render(ray vectors.Ray, depth int, incoming colors.Color4, rng *rand.Rand) objects.Result {
	results := make([]objects.Result, len(s.objects))
	for i, obj := range s.objects {
		results[i] = obj.TestIntersection(ray, incoming)
	}
	best := objects.Nearest(results)

	if !best.Bounces() || depth >= s.maxDepth {
		return best
	}

	rays := best.Surface.RequestRays(*best.Outgoing, ray, rng)
	colours := make([]colors.Color4, len(rays))
	for i, r := range rays {
		colours[i] = s.render(r, depth+1, best.Colour, rng).Colour
	}
	best.Colour = best.Surface.IntersectionsToColour(colours)
	return best
}
