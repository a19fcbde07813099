package scene

import (
	"github.com/chewxy/math32"

	reMath "bus-viewer/math"
)

// CameraMode selects how the interactive camera is driven each frame.
type CameraMode int

const (
	ModeFree CameraMode = iota
	ModeOrbit
	ModeBirdEye
)

func (m CameraMode) String() string {
	switch m {
	case ModeFree:
		return "free"
	case ModeOrbit:
		return "orbit"
	case ModeBirdEye:
		return "bird-eye"
	default:
		return "unknown"
	}
}

const (
	// PitchLimit keeps the front vector away from the world up axis.
	PitchLimit float32 = 89

	rollEpsilon float32 = 1e-4
)

// worldUp is the reference axis the Free camera basis is built against.
var worldUp = reMath.Vec3Up

// CameraSettings holds the rates and offsets of the camera modes. Rates are
// per second; angles are in degrees.
type CameraSettings struct {
	MoveSpeed     float32
	RotateSpeed   float32
	OrbitRate     float32
	OrbitRadius   float32
	OrbitHeight   float32
	BirdEyeHeight float32
}

func DefaultCameraSettings() CameraSettings {
	return CameraSettings{
		MoveSpeed:     8,
		RotateSpeed:   60,
		OrbitRate:     35,
		OrbitRadius:   18,
		OrbitHeight:   7,
		BirdEyeHeight: 22,
	}
}

// Viewpoint is an eye position looking at a target with an explicit up.
type Viewpoint struct {
	Eye    reMath.Vec3
	Target reMath.Vec3
	Up     reMath.Vec3
}

func (v Viewpoint) ViewMatrix() reMath.Mat4 {
	return reMath.Mat4LookAt(v.Eye, v.Target, v.Up)
}

// Camera is the interactive camera. Front, Right and Up form an orthonormal
// basis after every update; a degenerate update leaves the previous basis in
// place.
type Camera struct {
	Position reMath.Vec3
	Yaw      float32
	Pitch    float32
	Roll     float32

	Front reMath.Vec3
	Right reMath.Vec3
	Up    reMath.Vec3

	// OrbitAngle only advances while the camera is in orbit mode.
	OrbitAngle float32

	Settings CameraSettings

	mode CameraMode
}

func NewCamera(settings CameraSettings) *Camera {
	c := &Camera{
		Position: reMath.NewVec3(0, 7, 18),
		Yaw:      -90,
		Pitch:    -10,
		Front:    reMath.Vec3Back,
		Right:    reMath.Vec3Right,
		Up:       reMath.Vec3Up,
		Settings: settings,
	}
	c.UpdateOrientation()
	return c
}

func (c *Camera) Mode() CameraMode {
	return c.mode
}

// UpdateOrientation rebuilds the basis from yaw, pitch and roll. It reports
// false and keeps the previous basis when the result would be degenerate.
func (c *Camera) UpdateOrientation() bool {
	yaw := reMath.Radians(c.Yaw)
	pitch := reMath.Radians(c.Pitch)

	front, ok := reMath.Vec3{
		X: math32.Cos(yaw) * math32.Cos(pitch),
		Y: math32.Sin(pitch),
		Z: math32.Sin(yaw) * math32.Cos(pitch),
	}.TryNormalize()
	if !ok {
		return false
	}
	return c.setBasis(front)
}

// setBasis derives right and up for front against the world up, falling back
// to the previous up when front is parallel to it, then applies roll.
func (c *Camera) setBasis(front reMath.Vec3) bool {
	right, ok := front.Cross(worldUp).TryNormalize()
	if !ok {
		right, ok = front.Cross(c.Up).TryNormalize()
		if !ok {
			return false
		}
	}
	up, ok := right.Cross(front).TryNormalize()
	if !ok {
		return false
	}

	if math32.Abs(c.Roll) > rollEpsilon {
		rolled, ok := up.RotateAround(front, reMath.Radians(c.Roll)).TryNormalize()
		if !ok {
			return false
		}
		up = rolled
		if right, ok = front.Cross(up).TryNormalize(); !ok {
			return false
		}
	}

	c.Front, c.Right, c.Up = front, right, up
	return true
}

// ApplyFreeFlyInput moves and rotates the camera in free mode. move is
// (right, up, front) and rotate is (yaw, pitch, roll), each axis in [-1, 1].
// It does nothing and returns false outside free mode.
func (c *Camera) ApplyFreeFlyInput(move, rotate reMath.Vec3, dt float32) bool {
	if c.mode != ModeFree {
		return false
	}

	step := c.Settings.MoveSpeed * dt
	c.Position = c.Position.
		Add(c.Right.Mul(move.X * step)).
		Add(c.Up.Mul(move.Y * step)).
		Add(c.Front.Mul(move.Z * step))

	turn := c.Settings.RotateSpeed * dt
	c.Yaw += rotate.X * turn
	c.Pitch = reMath.Clamp(c.Pitch+rotate.Y*turn, -PitchLimit, PitchLimit)
	c.Roll += rotate.Z * turn

	return c.UpdateOrientation()
}

// SetMode switches to mode. Returning to free mode resyncs yaw and pitch from
// the current front so the view does not jump.
func (c *Camera) SetMode(mode CameraMode) {
	if mode == c.mode {
		return
	}
	c.mode = mode
	if mode == ModeFree {
		c.syncAngles()
	}
}

// ToggleMode enters mode, or returns to free mode when mode is already active.
// Orbit and bird-eye are mutually exclusive.
func (c *Camera) ToggleMode(mode CameraMode) {
	if c.mode == mode {
		c.SetMode(ModeFree)
		return
	}
	c.SetMode(mode)
}

func (c *Camera) syncAngles() {
	c.Pitch = reMath.Clamp(reMath.Degrees(math32.Asin(reMath.Clamp(c.Front.Y, -1, 1))), -PitchLimit, PitchLimit)
	if math32.Abs(c.Front.X) > reMath.Epsilon || math32.Abs(c.Front.Z) > reMath.Epsilon {
		c.Yaw = reMath.Degrees(math32.Atan2(c.Front.Z, c.Front.X))
	}
	c.UpdateOrientation()
}

// Tick advances the automatic modes. target is the point the camera tracks.
func (c *Camera) Tick(dt float32, target reMath.Vec3) {
	switch c.mode {
	case ModeOrbit:
		c.OrbitAngle = reMath.WrapDegrees(c.OrbitAngle + c.Settings.OrbitRate*dt)
		a := reMath.Radians(c.OrbitAngle)
		c.Position = target.Add(reMath.Vec3{
			X: c.Settings.OrbitRadius * math32.Cos(a),
			Y: c.Settings.OrbitHeight,
			Z: c.Settings.OrbitRadius * math32.Sin(a),
		})
		c.lookAt(target)
	case ModeBirdEye:
		// The small z offset keeps the view direction off the world up axis.
		c.Position = target.Add(reMath.Vec3{Y: c.Settings.BirdEyeHeight, Z: 0.01})
		c.lookAt(target)
	}
}

func (c *Camera) lookAt(target reMath.Vec3) bool {
	front, ok := target.Sub(c.Position).TryNormalize()
	if !ok {
		return false
	}
	return c.setBasis(front)
}

func (c *Camera) Viewpoint() Viewpoint {
	return Viewpoint{
		Eye:    c.Position,
		Target: c.Position.Add(c.Front),
		Up:     c.Up,
	}
}

func (c *Camera) ViewMatrix() reMath.Mat4 {
	return c.Viewpoint().ViewMatrix()
}
