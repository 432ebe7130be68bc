package objects

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/echoflaresat/raytrace/colors"
	"github.com/echoflaresat/raytrace/surface"
	"github.com/echoflaresat/raytrace/vectors"
)

// parallelTolerance bounds |direction·normal| below which a ray is treated as
// parallel to a plane.
const parallelTolerance = 1e-12

// Plane is the infinite plane through three points A, B, C. Its in-plane
// basis is X = B-A and Y = C-A, so A+X and A+Y are B and C.
type Plane struct {
	Origin  vectors.Vec3
	XBasis  vectors.Vec3
	YBasis  vectors.Vec3
	Normal  vectors.Vec3
	Surface surface.Surface

	// inverse maps p-Origin onto (i, j, k) along (XBasis, YBasis, Normal).
	inverse    [3][3]float64
	invertible bool
}

// NewPlane builds the plane through a, b, c with normal (b-a)×(c-a). Collinear
// points give a plane that nothing intersects. A nil surface becomes
// surface.Neutral().
func NewPlane(a, b, c vectors.Vec3, s surface.Surface) *Plane {
	if s == nil {
		s = surface.Neutral()
	}
	x := b.Sub(a)
	y := c.Sub(a)
	p := &Plane{
		Origin:  a,
		XBasis:  x,
		YBasis:  y,
		Normal:  x.Cross(y).Normalize(),
		Surface: s,
	}
	p.inverse, p.invertible = invertBasis(p.XBasis, p.YBasis, p.Normal)
	return p
}

// invertBasis inverts the matrix whose columns are x, y and z.
func invertBasis(x, y, z vectors.Vec3) ([3][3]float64, bool) {
	var out [3][3]float64
	m := mat.NewDense(3, 3, []float64{
		x.X, y.X, z.X,
		x.Y, y.Y, z.Y,
		x.Z, y.Z, z.Z,
	})
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return out, false
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			v := inv.At(r, c)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return out, false
			}
			out[r][c] = v
		}
	}
	return out, true
}

// InPlaneCoords solves point-Origin = i*XBasis + j*YBasis + k*Normal. For a
// point on the plane k is zero and (i, j) are its plane-local coordinates.
// ok is false when the basis is singular.
func (p *Plane) InPlaneCoords(point vectors.Vec3) (i, j, k float64, ok bool) {
	if !p.invertible {
		return 0, 0, 0, false
	}
	d := point.Sub(p.Origin)
	m := p.inverse
	i = m[0][0]*d.X + m[0][1]*d.Y + m[0][2]*d.Z
	j = m[1][0]*d.X + m[1][1]*d.Y + m[1][2]*d.Z
	k = m[2][0]*d.X + m[2][1]*d.Y + m[2][2]*d.Z
	return i, j, k, true
}

func (p *Plane) TestIntersection(ray vectors.Ray, incoming colors.Color4) Result {
	miss := Result{Intersection: Miss(colors.Black())}
	if ray.Degenerate() || p.Normal.IsZero() {
		return miss
	}

	denominator := ray.Direction.Dot(p.Normal)
	if math.Abs(denominator) < parallelTolerance {
		return miss
	}

	t := p.Origin.Sub(ray.Origin).Dot(p.Normal) / denominator
	if !(t >= 0) {
		return miss
	}

	// The bounce leaves from the side the ray came from.
	face := p.Normal
	if denominator > 0 {
		face = face.Neg()
	}
	hit := ray.At(t)
	outgoing := vectors.NewRay(hit.Add(face.Scale(Epsilon)), face)

	return Result{
		Intersection: NewHit(p.Surface.GetValue(incoming), t, &outgoing),
		Surface:      p.Surface,
	}
}
