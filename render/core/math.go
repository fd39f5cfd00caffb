package core

// Color is an RGBA color with components in [0, 1]. The layout matches the
// vec4<f32> color attributes and uniforms in the shaders, so Color values can
// be copied into GPU buffers directly.
type Color struct {
	R, G, B, A float32
}

func NewColor(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

func NewSolidColor(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

var (
	ColorWhite       = NewSolidColor(1, 1, 1)
	ColorBlack       = NewSolidColor(0, 0, 0)
	ColorGray        = NewSolidColor(0.5, 0.5, 0.5)
	ColorDarkGray    = NewSolidColor(0.33, 0.33, 0.33)
	ColorLightGray   = NewSolidColor(0.76, 0.76, 0.76)
	ColorRed         = NewSolidColor(1, 0, 0)
	ColorOrange      = NewSolidColor(1, 0.79, 0)
	ColorGreen       = NewSolidColor(0, 1, 0)
	ColorTransparent = NewColor(0, 0, 0, 0)
)

// WithAlpha returns the color with its alpha channel replaced.
func (c Color) WithAlpha(a float32) Color {
	return Color{R: c.R, G: c.G, B: c.B, A: a}
}

// Inverted returns (1,1,1,1) - c. This is the same rule the tilemap fragment
// stage applies when color inversion is enabled for a frame.
func (c Color) Inverted() Color {
	return Color{R: 1 - c.R, G: 1 - c.G, B: 1 - c.B, A: 1 - c.A}
}

// Mul multiplies two colors component-wise.
func (c Color) Mul(o Color) Color {
	return Color{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B, A: c.A * o.A}
}

// WorldType selects between the two mirrored worlds the game runs in. The
// dark world renders the tile layer with inverted colors.
type WorldType int

const (
	WorldLight WorldType = iota
	WorldDark
)

func (w WorldType) Inverse() WorldType {
	if w == WorldLight {
		return WorldDark
	}
	return WorldLight
}

// InvertColors reports whether the tile layer is color-inverted in this world.
func (w WorldType) InvertColors() bool {
	return w == WorldDark
}

// ClearColor is the background color the tilemap pass clears to.
func (w WorldType) ClearColor() Color {
	if w == WorldDark {
		return ColorWhite
	}
	return ColorBlack
}

// ForegroundColor is the color of solid geometry drawn over the background.
func (w WorldType) ForegroundColor() Color {
	if w == WorldDark {
		return ColorWhite
	}
	return ColorBlack
}

// DoorColor is the base tint of door segments in this world. Doors fade out
// through their alpha channel as keys are collected.
func (w WorldType) DoorColor() Color {
	if w == WorldDark {
		return ColorLightGray
	}
	return ColorDarkGray
}
