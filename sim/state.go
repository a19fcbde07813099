// Package sim owns every piece of mutable viewer state and advances it one
// frame at a time.
package sim

import (
	"github.com/rs/zerolog"

	"bus-viewer/input"
	"bus-viewer/lighting"
	"bus-viewer/math"
	"bus-viewer/scene"
)

// MaxStep caps a single update so a stalled frame cannot jump the animation.
const MaxStep float32 = 0.05

// targetLift raises the tracked point from the bus origin to mid-body.
var targetLift = math.NewVec3(0, 0.8, 0)

type Settings struct {
	Drive     scene.DriveSettings
	Camera    scene.CameraSettings
	DoorRate  float32
	FanRate   float32
	Lighting  lighting.Settings
	Viewports int
	ShowHUD   bool
}

func DefaultSettings() Settings {
	return Settings{
		Drive:     scene.DefaultDriveSettings(),
		Camera:    scene.DefaultCameraSettings(),
		DoorRate:  scene.DoorRate,
		FanRate:   scene.FanRate,
		Lighting:  lighting.DefaultSettings(),
		Viewports: 1,
		ShowHUD:   true,
	}
}

// State is the whole viewer: the camera, the bus and its animations, and the
// light rig. Step mutates it; rendering only reads it.
type State struct {
	Camera *scene.Camera
	Bus    *scene.Bus
	Pose   scene.BusPose
	Door   *scene.DoorAnimator
	Fan    *scene.FanAnimator
	Lights *lighting.Model

	Viewports int
	ShowHUD   bool
	Quit      bool

	Elapsed float64
	Frames  uint64

	settings Settings
	log      zerolog.Logger
}

func New(settings Settings, log zerolog.Logger) *State {
	s := &State{
		Camera:    scene.NewCamera(settings.Camera),
		Bus:       scene.NewBus(),
		Door:      scene.NewDoorAnimator(settings.DoorRate),
		Fan:       scene.NewFanAnimator(settings.FanRate),
		Lights:    lighting.NewModel(settings.Lighting, lighting.VehicleLights(scene.HeadlightAnchors, scene.TaillightAnchors)),
		Viewports: settings.Viewports,
		ShowHUD:   settings.ShowHUD,
		settings:  settings,
		log:       log,
	}
	s.Lights.Update(s.Master(), s.Camera.Position, s.Camera.Front)
	return s
}

// Master is the bus master transform for the current pose.
func (s *State) Master() math.Mat4 {
	return scene.MasterTransform(s.Pose)
}

// Target is the point the orbit and bird-eye cameras track.
func (s *State) Target() math.Vec3 {
	return s.Pose.Position.Add(targetLift)
}

// DrawList is the bus in draw order for the current state.
func (s *State) DrawList() []scene.DrawItem {
	return s.Bus.DrawList(s.Pose, s.Door.Angle, s.Fan.Angle)
}

// Step advances the viewer by dt seconds under the controls in f: toggles
// first, then driving and free flight, then animation, the camera modes and
// finally the lights, which depend on both the bus and the camera.
func (s *State) Step(dt float32, f input.Frame) {
	if dt < 0 {
		dt = 0
	}
	if dt > MaxStep {
		dt = MaxStep
	}

	if f.Held(input.Quit) {
		s.Quit = true
	}

	s.applyToggles(f)

	s.Pose = s.Pose.Drive(
		f.Axis(input.DriveForward, input.DriveBackward),
		f.Axis(input.DriveLeft, input.DriveRight),
		dt, s.settings.Drive,
	)

	move := math.Vec3{
		X: f.Axis(input.MoveRight, input.MoveLeft),
		Y: f.Axis(input.MoveUp, input.MoveDown),
		Z: f.Axis(input.MoveForward, input.MoveBackward),
	}
	rotate := math.Vec3{
		X: f.Axis(input.YawRight, input.YawLeft),
		Y: f.Axis(input.PitchUp, input.PitchDown),
		Z: f.Axis(input.RollRight, input.RollLeft),
	}
	if move != math.Vec3Zero || rotate != math.Vec3Zero {
		if !s.Camera.ApplyFreeFlyInput(move, rotate, dt) && s.Camera.Mode() == scene.ModeFree {
			s.log.Debug().Float32("yaw", s.Camera.Yaw).Float32("pitch", s.Camera.Pitch).Msg("degenerate camera basis kept")
		}
	}

	s.Door.Update(dt)
	s.Fan.Update(dt)

	s.Camera.Tick(dt, s.Target())
	s.Lights.Update(s.Master(), s.Camera.Position, s.Camera.Front)

	s.Elapsed += float64(dt)
	s.Frames++
}

var lightFlags = []struct {
	control input.Control
	flag    lighting.Flag
}{
	{input.ToggleDirectional, lighting.FlagDirectional},
	{input.TogglePoint, lighting.FlagPoint},
	{input.ToggleSpot, lighting.FlagSpot},
	{input.ToggleAmbient, lighting.FlagAmbient},
	{input.ToggleDiffuse, lighting.FlagDiffuse},
	{input.ToggleSpecular, lighting.FlagSpecular},
}

func (s *State) applyToggles(f input.Frame) {
	if f.Pressed(input.ToggleOrbit) {
		s.Camera.ToggleMode(scene.ModeOrbit)
		s.logToggle(input.ToggleOrbit, s.Camera.Mode() == scene.ModeOrbit)
	}
	if f.Pressed(input.ToggleBirdEye) {
		s.Camera.ToggleMode(scene.ModeBirdEye)
		s.logToggle(input.ToggleBirdEye, s.Camera.Mode() == scene.ModeBirdEye)
	}
	if f.Pressed(input.ToggleFan) {
		s.Fan.Toggle()
		s.logToggle(input.ToggleFan, s.Fan.On)
	}
	if f.Pressed(input.ToggleDoor) {
		s.Door.Toggle()
		s.logToggle(input.ToggleDoor, s.Door.Open)
	}
	for _, lf := range lightFlags {
		if f.Pressed(lf.control) {
			s.logToggle(lf.control, s.Lights.Toggle(lf.flag))
		}
	}
	if f.Pressed(input.ToggleViewports) {
		if s.Viewports == 4 {
			s.Viewports = 1
		} else {
			s.Viewports = 4
		}
		s.log.Info().Int("viewports", s.Viewports).Msg("viewport layout changed")
	}
	if f.Pressed(input.ToggleHUD) {
		s.ShowHUD = !s.ShowHUD
		s.logToggle(input.ToggleHUD, s.ShowHUD)
	}
}

func (s *State) logToggle(c input.Control, enabled bool) {
	s.log.Info().Stringer("control", c).Bool("enabled", enabled).Msg("toggle")
}
