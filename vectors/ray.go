package vectors

// Ray is a half-line Origin + t*Direction, t >= 0.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay returns a ray whose direction is rescaled to unit length, so that the
// ray parameter of a point is its Euclidean distance from the origin.
// A zero direction stays zero; see Degenerate.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// NewRayPreserve returns a ray that keeps the direction's magnitude. It is used
// while a direction is still being composed and must not be normalized yet.
func NewRayPreserve(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns origin + direction*t.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Degenerate reports whether the ray has no usable direction.
func (r Ray) Degenerate() bool {
	return r.Direction.IsZero() || !r.Direction.IsFinite()
}
