package sim

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bus-viewer/input"
	"bus-viewer/lighting"
	"bus-viewer/math"
	"bus-viewer/scene"
)

const eps = 1e-3

func newState(t *testing.T) (*State, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return New(DefaultSettings(), zerolog.New(&buf)), &buf
}

func idle() input.Frame { return input.Frame{} }

func TestDriveScenario(t *testing.T) {
	s, _ := newState(t)
	hold := idle().Hold(input.DriveForward)

	for i := 0; i < 100; i++ {
		s.Step(0.01, hold)
	}

	assert.InDelta(t, 0, s.Pose.Position.X, eps)
	assert.InDelta(t, 6, s.Pose.Position.Z, eps)
	assert.InDelta(t, 1, s.Elapsed, eps)
	assert.Equal(t, uint64(100), s.Frames)
}

func TestStepClampsLongFrames(t *testing.T) {
	s, _ := newState(t)
	s.Step(2, idle().Hold(input.DriveForward))
	assert.InDelta(t, 6*MaxStep, s.Pose.Position.Z, eps)

	s.Step(-1, idle().Hold(input.DriveForward))
	assert.InDelta(t, 6*MaxStep, s.Pose.Position.Z, eps)
}

func TestFanToggleAndSpin(t *testing.T) {
	s, _ := newState(t)

	s.Step(0.05, idle().Press(input.ToggleFan))
	for i := 0; i < 9; i++ {
		s.Step(0.05, idle().Hold(input.ToggleFan))
	}

	assert.True(t, s.Fan.On, "holding the key must not toggle again")
	assert.InDelta(t, 180, s.Fan.Angle, eps)
}

func TestDoorOpensAndCloses(t *testing.T) {
	s, _ := newState(t)

	s.Step(0.05, idle().Press(input.ToggleDoor))
	for i := 0; i < 40; i++ {
		s.Step(0.05, idle())
	}
	assert.Equal(t, scene.DoorOpenAngle, s.Door.Angle)

	s.Step(0.05, idle().Press(input.ToggleDoor))
	for i := 0; i < 40; i++ {
		s.Step(0.05, idle())
	}
	assert.Equal(t, float32(0), s.Door.Angle)
}

func TestCameraModeToggles(t *testing.T) {
	s, _ := newState(t)

	s.Step(0.016, idle().Press(input.ToggleOrbit))
	assert.Equal(t, scene.ModeOrbit, s.Camera.Mode())

	s.Step(0.016, idle().Press(input.ToggleBirdEye))
	assert.Equal(t, scene.ModeBirdEye, s.Camera.Mode())

	s.Step(0.016, idle().Press(input.ToggleBirdEye))
	assert.Equal(t, scene.ModeFree, s.Camera.Mode())
}

func TestFreeFlyOnlyInFreeMode(t *testing.T) {
	s, _ := newState(t)
	start := s.Camera.Position

	s.Step(0.05, idle().Hold(input.MoveForward))
	assert.Greater(t, s.Camera.Position.Distance(start), float32(0.3))

	s.Step(0.016, idle().Press(input.ToggleOrbit))
	yaw := s.Camera.Yaw
	s.Step(0.05, idle().Hold(input.YawRight, input.PitchUp))
	assert.Equal(t, yaw, s.Camera.Yaw)
}

func TestOrbitTracksBus(t *testing.T) {
	s, _ := newState(t)
	s.Step(0.016, idle().Press(input.ToggleOrbit))
	for i := 0; i < 20; i++ {
		s.Step(0.05, idle().Hold(input.DriveForward))
	}

	target := s.Target()
	toTarget := target.Sub(s.Camera.Position).Normalize()
	assert.InDelta(t, 1, s.Camera.Front.Dot(toTarget), eps)
	assert.InDelta(t, target.Y+7, s.Camera.Position.Y, eps)
}

func TestLightToggleIsolation(t *testing.T) {
	s, log := newState(t)

	s.Step(0.016, idle().Press(input.ToggleSpot, input.ToggleSpecular))

	tg := s.Lights.Toggles
	assert.False(t, tg.Spot)
	assert.False(t, tg.Specular)
	assert.True(t, tg.Directional)
	assert.True(t, tg.Point)
	assert.True(t, tg.Ambient)
	assert.True(t, tg.Diffuse)

	assert.Contains(t, log.String(), `"control":"toggle-spot"`)
	assert.Contains(t, log.String(), `"enabled":false`)
}

func TestViewportAndHUDToggles(t *testing.T) {
	s, _ := newState(t)
	require.Equal(t, 1, s.Viewports)
	require.True(t, s.ShowHUD)

	s.Step(0.016, idle().Press(input.ToggleViewports, input.ToggleHUD))
	assert.Equal(t, 4, s.Viewports)
	assert.False(t, s.ShowHUD)

	s.Step(0.016, idle().Hold(input.ToggleViewports))
	assert.Equal(t, 4, s.Viewports)

	s.Step(0.016, idle().Press(input.ToggleViewports))
	assert.Equal(t, 1, s.Viewports)
}

func TestQuit(t *testing.T) {
	s, _ := newState(t)
	s.Step(0.016, idle())
	assert.False(t, s.Quit)
	s.Step(0.016, idle().Hold(input.Quit))
	assert.True(t, s.Quit)
}

func TestLightsFollowBusAndCamera(t *testing.T) {
	s, _ := newState(t)
	for i := 0; i < 10; i++ {
		s.Step(0.05, idle().Hold(input.DriveForward, input.DriveLeft))
	}

	master := s.Master()
	want := master.MulPoint(scene.HeadlightAnchors[0])
	got := s.Lights.Points[0].Position
	assert.InDelta(t, want.X, got.X, eps)
	assert.InDelta(t, want.Z, got.Z, eps)

	assert.Equal(t, s.Camera.Position, s.Lights.Spot.Position)
	assert.InDelta(t, 1, s.Camera.Front.Dot(s.Lights.Spot.Direction), eps)
}

func TestDrawListUsesState(t *testing.T) {
	s, _ := newState(t)
	s.Door.Angle = 40
	s.Pose.Position = math.NewVec3(3, 0, 0)

	assert.Equal(t, s.Bus.DrawList(s.Pose, 40, s.Fan.Angle), s.DrawList())
	assert.Equal(t, lighting.AllOn(), s.Lights.Toggles)
}
