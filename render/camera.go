package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/echoflaresat/raytrace/vectors"
)

// DefaultFOV gives a view plane spanning [-1, 1] at unit distance.
const DefaultFOV = 90.0

// Camera models a pinhole camera looking along Forward, with Right and Up
// spanning the view plane.
type Camera struct {
	Position vectors.Vec3
	Forward  vectors.Vec3
	Right    vectors.Vec3
	Up       vectors.Vec3
	FOVDeg   float64
	Width    int
	Height   int
	// Seed feeds the per-pixel generators of stochastic surfaces.
	Seed uint64
}

var worldUp = vectors.Vec3{X: 0, Y: 0, Z: 1}

// NewCamera constructs a camera at position looking along forward, with the
// image's up direction derived from world +Z.
func NewCamera(position, forward vectors.Vec3, width, height int, fovDeg float64) Camera {
	fwd := forward.Normalize()
	if fwd.IsZero() {
		fwd = vectors.Vec3{X: 1}
	}
	right := fwd.Cross(worldUp)
	if right.Norm() < 1e-6 {
		right = vectors.Vec3{X: 1, Y: 0, Z: 0} // fallback when looking straight up or down
	}
	right = right.Normalize()
	up := right.Cross(fwd).Normalize()

	return Camera{
		Position: position,
		Forward:  fwd,
		Right:    right,
		Up:       up,
		FOVDeg:   fovDeg,
		Width:    width,
		Height:   height,
	}
}

// MoveBy translates the camera in world coordinates.
func (c *Camera) MoveBy(delta vectors.Vec3) {
	c.Position = c.Position.Add(delta)
}

// Rotate turns the camera by yaw radians about world +Z, then pitches it by
// pitch radians about its own Right axis. Positive yaw turns left, positive
// pitch looks up.
func (c *Camera) Rotate(yaw, pitch float64) {
	if yaw != 0 {
		q := mgl64.QuatRotate(yaw, toMgl(worldUp))
		c.Forward = rotateVec(q, c.Forward)
		c.Right = rotateVec(q, c.Right)
		c.Up = rotateVec(q, c.Up)
	}
	if pitch != 0 {
		q := mgl64.QuatRotate(pitch, toMgl(c.Right))
		c.Forward = rotateVec(q, c.Forward)
		c.Up = rotateVec(q, c.Up)
	}
}

func toMgl(v vectors.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func rotateVec(q mgl64.Quat, v vectors.Vec3) vectors.Vec3 {
	r := q.Rotate(toMgl(v))
	return vectors.Vec3{X: r[0], Y: r[1], Z: r[2]}.Normalize()
}

// ComputeRay returns the normalized viewing ray through the centre of pixel
// (x, y). Row 0 is the top of the image.
func (c Camera) ComputeRay(x, y int) vectors.Ray {
	w := float64(c.Width)
	h := float64(c.Height)
	tanHalf := math.Tan(c.FOVDeg * math.Pi / 360.0)

	// Pixel centres in [-1, +1]; the vertical extent keeps pixels square.
	xNDC := 2.0*(float64(x)+0.5)/w - 1.0
	yNDC := (1.0 - 2.0*(float64(y)+0.5)/h) * h / w

	offset := vectors.NewRayPreserve(vectors.Vec3{},
		c.Right.Scale(xNDC*tanHalf).Add(c.Up.Scale(yNDC*tanHalf)))

	return vectors.NewRay(c.Position, c.Forward.Add(offset.Direction))
}
