// Package objects holds the primitives a scene is built from and the hit
// records they report.
package objects

import (
	"cmp"
	"math"
	"slices"

	"github.com/echoflaresat/raytrace/colors"
	"github.com/echoflaresat/raytrace/surface"
	"github.com/echoflaresat/raytrace/vectors"
)

// Epsilon is how far an outgoing ray starts off its surface, so that the
// bounce does not immediately hit the surface it left.
const Epsilon = 1e-3

// Intersection is the outcome of testing one ray against one primitive.
type Intersection struct {
	Colour   colors.Color4
	Distance float64 // only meaningful when Hit
	Hit      bool
	Outgoing *vectors.Ray // next bounce; nil for terminal hits
}

// Miss returns a non-hit carrying a colour.
func Miss(colour colors.Color4) Intersection {
	return Intersection{Colour: colour}
}

// NewHit returns a hit at distance. Negative or NaN distances are reported as
// a miss so that they can never win the nearest-hit selection.
func NewHit(colour colors.Color4, distance float64, outgoing *vectors.Ray) Intersection {
	if math.IsNaN(distance) || distance < 0 {
		return Miss(colour)
	}
	return Intersection{Colour: colour, Distance: distance, Hit: true, Outgoing: outgoing}
}

// Compare orders hits by ascending distance, any hit before a miss, and
// treats two misses as equal.
func (a Intersection) Compare(b Intersection) int {
	switch {
	case a.Hit && b.Hit:
		return cmp.Compare(a.Distance, b.Distance)
	case a.Hit:
		return -1
	case b.Hit:
		return 1
	default:
		return 0
	}
}

// Result pairs an intersection with the surface that produced it. Surface is
// nil for primitives that never bounce.
type Result struct {
	Intersection
	Surface surface.Surface
}

// Compare orders results by their intersections.
func (r Result) Compare(o Result) int {
	return r.Intersection.Compare(o.Intersection)
}

// Bounces reports whether the result continues the light path.
func (r Result) Bounces() bool {
	return r.Outgoing != nil && r.Surface != nil
}

// Nearest returns the smallest result; ties keep the earliest. An empty
// slice yields a black miss.
func Nearest(results []Result) Result {
	if len(results) == 0 {
		return Result{Intersection: Miss(colors.Black())}
	}
	return slices.MinFunc(results, Result.Compare)
}

// Intersectable is anything a ray can be tested against.
type Intersectable interface {
	TestIntersection(ray vectors.Ray, incoming colors.Color4) Result
}
