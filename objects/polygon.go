package objects

import (
	"github.com/echoflaresat/raytrace/colors"
	"github.com/echoflaresat/raytrace/surface"
	"github.com/echoflaresat/raytrace/vectors"
)

// Triangle is the region of its plane strictly inside a, b, c.
type Triangle struct {
	plane *Plane
}

func NewTriangle(a, b, c vectors.Vec3, s surface.Surface) *Triangle {
	return &Triangle{plane: NewPlane(a, b, c, s)}
}

// Plane returns the supporting plane.
func (t *Triangle) Plane() *Plane { return t.plane }

func (t *Triangle) TestIntersection(ray vectors.Ray, incoming colors.Color4) Result {
	return clipToRegion(t.plane, ray, incoming, InsideTriangle)
}

// Quad is the parallelogram a, b, a+(c-a), b+(c-a) on its plane.
type Quad struct {
	plane *Plane
}

func NewQuad(a, b, c vectors.Vec3, s surface.Surface) *Quad {
	return &Quad{plane: NewPlane(a, b, c, s)}
}

// Plane returns the supporting plane.
func (q *Quad) Plane() *Plane { return q.plane }

func (q *Quad) TestIntersection(ray vectors.Ray, incoming colors.Color4) Result {
	return clipToRegion(q.plane, ray, incoming, InsideQuad)
}

// InsideTriangle reports whether plane coordinates (i, j) lie strictly inside
// the triangle; points on an edge are outside.
func InsideTriangle(i, j float64) bool {
	return open01(i) && open01(j) && open01(i+j)
}

// InsideQuad reports whether plane coordinates (i, j) lie strictly inside the
// parallelogram.
func InsideQuad(i, j float64) bool {
	return open01(i) && open01(j)
}

func open01(h float64) bool {
	return h > 0 && h < 1
}

// clipToRegion keeps a plane hit only if its point falls inside the region.
func clipToRegion(p *Plane, ray vectors.Ray, incoming colors.Color4, inside func(i, j float64) bool) Result {
	res := p.TestIntersection(ray, incoming)
	if !res.Hit {
		return res
	}
	i, j, _, ok := p.InPlaneCoords(ray.At(res.Distance))
	if !ok || !inside(i, j) {
		return Result{Intersection: Miss(colors.Black())}
	}
	return res
}
