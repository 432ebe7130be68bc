package colors

import (
	"image/color"
)

// Color4 is a linear RGBA color with float64 components in [0,1].
type Color4 struct {
	R, G, B, A float64
}

func New(r, g, b, a float64) Color4 {
	return Color4{R: r, G: g, B: b, A: a}
}

// RGB returns an opaque color.
func RGB(r, g, b float64) Color4 {
	return Color4{R: r, G: g, B: b, A: 1}
}

// FromArray returns an opaque color from an [r, g, b] triple.
func FromArray(c [3]float64) Color4 {
	return RGB(c[0], c[1], c[2])
}

// Gray returns an opaque grey of the given level.
func Gray(v float64) Color4 {
	return Color4{R: v, G: v, B: v, A: 1}
}

func (c Color4) RGBA() (r, g, b, a uint32) {
	rf := clamp01(c.R)
	gf := clamp01(c.G)
	bf := clamp01(c.B)
	af := clamp01(c.A)

	// Convert to pre-multiplied 16-bit values
	return uint32(rf * af * 65535),
		uint32(gf * af * 65535),
		uint32(bf * af * 65535),
		uint32(af * 65535)
}

func White() Color4 {
	return Color4{R: 1, G: 1, B: 1, A: 1}
}

func Black() Color4 {
	return Color4{R: 0, G: 0, B: 0, A: 1}
}

// Array returns the colour channels as an [r, g, b] triple.
func (c Color4) Array() [3]float64 {
	return [3]float64{c.R, c.G, c.B}
}

// Add returns c + o (component-wise).
func (c Color4) Add(o Color4) Color4 {
	return Color4{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

// Scale returns c * s (scalar).
func (c Color4) Scale(s float64) Color4 {
	return Color4{c.R * s, c.G * s, c.B * s, c.A * s}
}

// Mix returns lerp(c, o, t) = c*(1-t) + o*t.
func (c Color4) Mix(o Color4, t float64) Color4 {
	return Color4{
		R: c.R*(1-t) + o.R*t,
		G: c.G*(1-t) + o.G*t,
		B: c.B*(1-t) + o.B*t,
		A: c.A*(1-t) + o.A*t,
	}
}

// Average returns the component-wise mean of cs, or transparent black for none.
func Average(cs []Color4) Color4 {
	if len(cs) == 0 {
		return Color4{}
	}
	var sum Color4
	for _, c := range cs {
		sum = sum.Add(c)
	}
	return sum.Scale(1.0 / float64(len(cs)))
}

// ToNRGBA returns the colour as 8-bit channels, truncating toward zero.
func (c Color4) ToNRGBA() color.NRGBA {
	return color.NRGBA{
		to8bit(c.R),
		to8bit(c.G),
		to8bit(c.B),
		to8bit(c.A),
	}
}

// --- helpers ---

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func to8bit(x float64) uint8 {
	return uint8(255.0 * clamp01(x))
}
