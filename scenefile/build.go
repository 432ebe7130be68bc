package scenefile

import (
	"fmt"
	"math"

	lru "github.com/hashicorp/golang-lru"

	"github.com/echoflaresat/raytrace/colors"
	"github.com/echoflaresat/raytrace/objects"
	"github.com/echoflaresat/raytrace/scene"
	"github.com/echoflaresat/raytrace/surface"
	"github.com/echoflaresat/raytrace/vectors"
)

// surfaceCacheSize bounds the number of distinct surfaces kept for sharing.
const surfaceCacheSize = 1024

// neutralSurface is what objects without a surface get.
var neutralSurface = SurfaceDesc{Type: SurfaceSpecular, Colour: [3]float64{1, 1, 1}}

// Builder turns descriptions into scenes. Objects with equal surface
// descriptions, within one scene or across scenes built by the same Builder,
// share a single surface value. A Builder is safe for concurrent use.
type Builder struct {
	surfaces *lru.Cache // SurfaceDesc -> surface.Surface
}

func NewBuilder() *Builder {
	cache, _ := lru.New(surfaceCacheSize)
	return &Builder{surfaces: cache}
}

// Build constructs a scene with a fresh Builder.
func Build(desc Description) (*scene.Scene, error) {
	return NewBuilder().Build(desc)
}

// Build validates desc and constructs its scene. The world light, unless
// disabled, is appended after the described objects.
func (b *Builder) Build(desc Description) (*scene.Scene, error) {
	maxDepth := scene.DefaultMaxDepth
	if desc.MaxDepth != nil {
		if *desc.MaxDepth < 0 {
			return nil, fmt.Errorf("scenefile: max_depth %d: %w", *desc.MaxDepth, ErrBadValue)
		}
		maxDepth = *desc.MaxDepth
	}

	objs := make([]objects.Intersectable, 0, len(desc.Objects)+1)
	for i, o := range desc.Objects {
		obj, err := b.object(o)
		if err != nil {
			return nil, fmt.Errorf("scenefile: object %d (%s): %w", i, o.Kind, err)
		}
		objs = append(objs, obj)
	}

	if wl := desc.WorldLight; wl == nil || !wl.Disabled {
		light := objects.NewWorldLight()
		if wl != nil && wl.Colour != nil {
			light.Colour = colors.FromArray(*wl.Colour)
		}
		objs = append(objs, light)
	}

	return scene.New(maxDepth, objs...), nil
}

func (b *Builder) object(o Object) (objects.Intersectable, error) {
	switch o.Kind {
	case KindSphere:
		if o.Origin == nil {
			return nil, fmt.Errorf("origin: %w", ErrMissingField)
		}
		if o.Radius == nil {
			return nil, fmt.Errorf("radius: %w", ErrMissingField)
		}
		if !(*o.Radius > 0) || math.IsInf(*o.Radius, 0) {
			return nil, fmt.Errorf("radius %v: %w", *o.Radius, ErrBadValue)
		}
		s, err := b.Surface(o.Surface)
		if err != nil {
			return nil, err
		}
		return objects.NewSphere(vectors.FromArray(*o.Origin), *o.Radius, s), nil

	case KindTriangle, KindQuad, KindPlane:
		if len(o.Points) != 3 {
			return nil, fmt.Errorf("points: want 3, got %d: %w", len(o.Points), ErrMissingField)
		}
		s, err := b.Surface(o.Surface)
		if err != nil {
			return nil, err
		}
		a := vectors.FromArray(o.Points[0])
		pb := vectors.FromArray(o.Points[1])
		c := vectors.FromArray(o.Points[2])
		switch o.Kind {
		case KindTriangle:
			return objects.NewTriangle(a, pb, c, s), nil
		case KindQuad:
			return objects.NewQuad(a, pb, c, s), nil
		default:
			return objects.NewPlane(a, pb, c, s), nil
		}

	case KindLight:
		if o.Origin == nil {
			return nil, fmt.Errorf("origin: %w", ErrMissingField)
		}
		if o.Intensity == nil {
			return nil, fmt.Errorf("intensity: %w", ErrMissingField)
		}
		if !(*o.Intensity > 0) {
			return nil, fmt.Errorf("intensity %v: %w", *o.Intensity, ErrBadValue)
		}
		return objects.NewPointLight(vectors.FromArray(*o.Origin), *o.Intensity), nil
	}
	return nil, fmt.Errorf("%q: %w", o.Kind, ErrUnknownKind)
}

// Surface returns the shared surface for d. A nil d is the neutral specular
// grey.
func (b *Builder) Surface(d *SurfaceDesc) (surface.Surface, error) {
	key := neutralSurface
	if d != nil {
		key = *d
	}
	switch key.Type {
	case SurfaceSpecular:
		key.Samples = 0
	case SurfaceDiffuse:
		if key.Samples == 0 {
			key.Samples = DefaultDiffuseSamples
		}
		if key.Samples < 1 {
			return nil, fmt.Errorf("surface samples %d: %w", key.Samples, ErrBadValue)
		}
	default:
		return nil, fmt.Errorf("%q: %w", key.Type, ErrUnknownSurface)
	}

	if s, ok := b.surfaces.Get(key); ok {
		return s.(surface.Surface), nil
	}

	var s surface.Surface
	colour := colors.FromArray(key.Colour)
	if key.Type == SurfaceDiffuse {
		s = surface.NewDiffuse(colour, key.Samples)
	} else {
		s = surface.NewSpecular(colour)
	}
	// Another goroutine may have stored an equal surface meanwhile; keep the
	// first one.
	if prev, found, _ := b.surfaces.PeekOrAdd(key, s); found {
		return prev.(surface.Surface), nil
	}
	return s, nil
}
