package objects

import (
	"math"

	"github.com/echoflaresat/raytrace/colors"
	"github.com/echoflaresat/raytrace/vectors"
)

// PointLight is a glowing point seen by any ray passing within Intensity of
// it. It ends the light path.
type PointLight struct {
	Origin    vectors.Vec3
	Intensity float64
}

// PointLightBrightness is the flat colour a point light reports.
var PointLightBrightness = colors.Gray(1.0)

func NewPointLight(origin vectors.Vec3, intensity float64) *PointLight {
	return &PointLight{Origin: origin, Intensity: intensity}
}

func (l *PointLight) TestIntersection(ray vectors.Ray, _ colors.Color4) Result {
	miss := Result{Intersection: Miss(colors.Black())}
	if ray.Degenerate() {
		return miss
	}

	tca := l.Origin.Sub(ray.Origin).Dot(ray.Direction)
	if tca < 0 {
		return miss
	}
	if vectors.Distance(ray.At(tca), l.Origin) >= l.Intensity {
		return miss
	}
	return Result{Intersection: NewHit(PointLightBrightness, tca, nil)}
}

// WorldLight is the ambient background: it is hit by every ray, at a distance
// no real object can exceed.
type WorldLight struct {
	Colour colors.Color4
}

// AmbientLevel is the default WorldLight grey.
const AmbientLevel = 0.01

// WorldDistance is the distance reported for WorldLight hits.
const WorldDistance = math.MaxFloat64

func NewWorldLight() *WorldLight {
	return &WorldLight{Colour: colors.Gray(AmbientLevel)}
}

func (w *WorldLight) TestIntersection(vectors.Ray, colors.Color4) Result {
	return Result{Intersection: NewHit(w.Colour, WorldDistance, nil)}
}
