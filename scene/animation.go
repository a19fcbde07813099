package scene

import (
	"github.com/chewxy/math32"

	"bus-viewer/math"
)

// BusPose places the bus in the world. Yaw is in degrees; at yaw 0 the bus
// faces +Z. WheelRoll accumulates the tire rotation from distance driven.
type BusPose struct {
	Position  math.Vec3
	Yaw       float32
	WheelRoll float32
}

// DriveSettings holds the driving rates: units per second and degrees per
// second.
type DriveSettings struct {
	Speed    float32
	TurnRate float32
}

func DefaultDriveSettings() DriveSettings {
	return DriveSettings{Speed: 6, TurnRate: 90}
}

// Heading is the unit forward direction for the current yaw.
func (p BusPose) Heading() math.Vec3 {
	yaw := math.Radians(p.Yaw)
	return math.Vec3{X: math32.Sin(yaw), Z: math32.Cos(yaw)}
}

// Drive moves the bus along its heading by throttle and then turns it by
// steer. Both inputs are in [-1, 1]; positive steer turns left.
func (p BusPose) Drive(throttle, steer, dt float32, s DriveSettings) BusPose {
	distance := throttle * s.Speed * dt
	p.Position = p.Position.Add(p.Heading().Mul(distance))
	p.Yaw += steer * s.TurnRate * dt
	p.WheelRoll = math.WrapDegrees(p.WheelRoll + math.Degrees(distance/WheelRadius))
	return p
}

// MasterTransform rotates by yaw about +Y, then translates to the position.
// Every part of the bus is composed under it.
func MasterTransform(p BusPose) math.Mat4 {
	return math.Compose(math.Mat4Identity(),
		math.Mat4Translation(p.Position),
		math.Mat4RotationY(math.Radians(p.Yaw)),
	)
}

const (
	DoorOpenAngle float32 = 75
	DoorRate      float32 = 120
	FanRate       float32 = 360
)

// DoorAnimator moves the door toward fully open or fully closed at a fixed
// rate and never leaves [0, OpenAngle].
type DoorAnimator struct {
	Angle     float32
	Open      bool
	Rate      float32
	OpenAngle float32
}

func NewDoorAnimator(rate float32) *DoorAnimator {
	return &DoorAnimator{Rate: rate, OpenAngle: DoorOpenAngle}
}

func (d *DoorAnimator) Toggle() {
	d.Open = !d.Open
}

func (d *DoorAnimator) Update(dt float32) {
	if d.Open {
		d.Angle = math32.Min(d.Angle+d.Rate*dt, d.OpenAngle)
	} else {
		d.Angle = math32.Max(d.Angle-d.Rate*dt, 0)
	}
}

// FanAnimator spins at a fixed rate while on, holding its angle in [0, 360).
type FanAnimator struct {
	Angle float32
	On    bool
	Rate  float32
}

func NewFanAnimator(rate float32) *FanAnimator {
	return &FanAnimator{Rate: rate}
}

func (f *FanAnimator) Toggle() {
	f.On = !f.On
}

func (f *FanAnimator) Update(dt float32) {
	if !f.On {
		return
	}
	f.Angle += f.Rate * dt
	for f.Angle >= 360 {
		f.Angle -= 360
	}
}
