// Package scenefile reads and writes scene descriptions and turns them into
// renderable scenes.
//
// Two formats are understood. JSON files carry a full Description. CSV files
// use the row layout of the Blender exporter, one primitive per row:
//
//	l,x,y,z,intensity
//	t,ax,ay,az,bx,by,bz,cx,cy,cz,r,g,b
//	q,ax,ay,az,bx,by,bz,cx,cy,cz,r,g,b
//	s,x,y,z,radius,r,g,b
//
// Blank lines and lines starting with '#' are ignored.
package scenefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnknownKind    = errors.New("unknown object kind")
	ErrUnknownSurface = errors.New("unknown surface type")
	ErrMissingField   = errors.New("missing field")
	ErrBadValue       = errors.New("invalid value")
	ErrBadRow         = errors.New("malformed row")
	ErrUnknownFormat  = errors.New("unknown scene file format")
)

// Object kinds.
const (
	KindSphere   = "sphere"
	KindTriangle = "triangle"
	KindQuad     = "quad"
	KindPlane    = "plane"
	KindLight    = "light"
)

// Surface types.
const (
	SurfaceSpecular = "specular"
	SurfaceDiffuse  = "diffuse"
)

// DefaultDiffuseSamples is used for diffuse surfaces that give no sample count.
const DefaultDiffuseSamples = 3

// Description is the serialisable form of a scene.
type Description struct {
	// MaxDepth defaults to scene.DefaultMaxDepth when absent.
	MaxDepth   *int            `json:"max_depth,omitempty"`
	WorldLight *WorldLightDesc `json:"world_light,omitempty"`
	Objects    []Object        `json:"objects"`
}

// WorldLightDesc overrides the ambient background. Without one, a world light
// of the default ambient grey is added.
type WorldLightDesc struct {
	Disabled bool        `json:"disabled,omitempty"`
	Colour   *[3]float64 `json:"colour,omitempty"`
}

// Object describes one primitive. Which fields are required depends on Kind:
// spheres need Origin and Radius, lights Origin and Intensity, triangles,
// quads and planes exactly three Points.
type Object struct {
	Kind      string       `json:"kind"`
	Origin    *[3]float64  `json:"origin,omitempty"`
	Radius    *float64     `json:"radius,omitempty"`
	Points    [][3]float64 `json:"points,omitempty"`
	Intensity *float64     `json:"intensity,omitempty"`
	Surface   *SurfaceDesc `json:"surface,omitempty"`
}

// SurfaceDesc describes a shading model. It is comparable, and equal
// descriptions produce the same shared surface.
type SurfaceDesc struct {
	Type    string     `json:"type"`
	Colour  [3]float64 `json:"colour"`
	Samples int        `json:"samples,omitempty"`
}

// ParseJSON decodes a JSON description. Unknown fields are rejected.
func ParseJSON(data []byte) (Description, error) {
	var desc Description
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&desc); err != nil {
		return Description{}, fmt.Errorf("scenefile: parse json: %w", err)
	}
	return desc, nil
}

// Marshal encodes desc as indented JSON accepted by ParseJSON.
func Marshal(desc Description) ([]byte, error) {
	data, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("scenefile: encode json: %w", err)
	}
	return data, nil
}

// Helpers for building descriptions in code.

func Vec(x, y, z float64) *[3]float64 {
	return &[3]float64{x, y, z}
}

func Float(v float64) *float64 {
	return &v
}

func Int(v int) *int {
	return &v
}

func Specular(r, g, b float64) *SurfaceDesc {
	return &SurfaceDesc{Type: SurfaceSpecular, Colour: [3]float64{r, g, b}}
}

func Diffuse(r, g, b float64, samples int) *SurfaceDesc {
	return &SurfaceDesc{Type: SurfaceDiffuse, Colour: [3]float64{r, g, b}, Samples: samples}
}

func Sphere(origin [3]float64, radius float64, s *SurfaceDesc) Object {
	return Object{Kind: KindSphere, Origin: &origin, Radius: &radius, Surface: s}
}

func Triangle(a, b, c [3]float64, s *SurfaceDesc) Object {
	return Object{Kind: KindTriangle, Points: [][3]float64{a, b, c}, Surface: s}
}

func Quad(a, b, c [3]float64, s *SurfaceDesc) Object {
	return Object{Kind: KindQuad, Points: [][3]float64{a, b, c}, Surface: s}
}

func Plane(a, b, c [3]float64, s *SurfaceDesc) Object {
	return Object{Kind: KindPlane, Points: [][3]float64{a, b, c}, Surface: s}
}

func Light(origin [3]float64, intensity float64) Object {
	return Object{Kind: KindLight, Origin: &origin, Intensity: &intensity}
}
