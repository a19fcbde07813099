package core

import (
	"bus-viewer/math"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// RGB builds an opaque color.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

func Gray(v float32) Color {
	return RGB(v, v, v)
}

func (c Color) Vec3() math.Vec3 {
	return math.Vec3{X: c.R, Y: c.G, Z: c.B}
}

func (c Color) Scale(s float32) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A}
}

func ColorFromVec3(v math.Vec3) Color {
	return Color{R: v.X, G: v.Y, B: v.Z, A: 1}
}

type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
}

// Rect is a pixel region with its origin at the bottom-left corner, matching
// glViewport.
type Rect struct {
	X, Y, Width, Height int
}

func (r Rect) Aspect() float32 {
	if r.Height <= 0 {
		return 1
	}
	return float32(r.Width) / float32(r.Height)
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
