package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the length below which a vector is treated as degenerate.
const Epsilon float32 = 1e-6

func Radians(deg float32) float32 {
	return mgl32.DegToRad(deg)
}

func Degrees(rad float32) float32 {
	return mgl32.RadToDeg(rad)
}

func Clamp(v, lo, hi float32) float32 {
	return mgl32.Clamp(v, lo, hi)
}

// WrapDegrees maps an angle into [0, 360).
func WrapDegrees(deg float32) float32 {
	deg = math32.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func Sin(rad float32) float32 { return math32.Sin(rad) }

func Cos(rad float32) float32 { return math32.Cos(rad) }

func Abs(v float32) float32 { return math32.Abs(v) }

func Pow(x, y float32) float32 { return math32.Pow(x, y) }

func Max(a, b float32) float32 { return math32.Max(a, b) }

func IsFinite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}
