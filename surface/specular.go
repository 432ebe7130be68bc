package surface

import (
	"math/rand/v2"

	"github.com/echoflaresat/raytrace/colors"
	"github.com/echoflaresat/raytrace/vectors"
)

// Specular is a mirror: it follows the single reflected ray and blends what
// that ray sees equally with its own colour.
type Specular struct {
	Colour colors.Color4
}

func NewSpecular(colour colors.Color4) *Specular {
	return &Specular{Colour: colour}
}

// Neutral is the surface used when a scene item names none.
func Neutral() *Specular {
	return NewSpecular(colors.Gray(1.0))
}

func (s *Specular) GetValue(colors.Color4) colors.Color4 {
	return s.Colour
}

func (s *Specular) RequestRays(normal, incoming vectors.Ray, _ *rand.Rand) []vectors.Ray {
	r := Reflect(normal, incoming)
	return []vectors.Ray{vectors.NewRay(r.Origin, r.Direction)}
}

func (s *Specular) IntersectionsToColour(results []colors.Color4) colors.Color4 {
	if len(results) == 0 {
		return s.Colour
	}
	return colors.Average(results).Mix(s.Colour, 0.5)
}
