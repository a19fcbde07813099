// Package input turns raw key state into per-frame control state. Toggle
// controls are edge-triggered here so the rest of the program only sees
// whether a control was pressed this frame.
package input

// Control is a logical action bound to one key.
type Control int

const (
	DriveForward Control = iota
	DriveBackward
	DriveLeft
	DriveRight

	MoveForward
	MoveBackward
	MoveLeft
	MoveRight
	MoveUp
	MoveDown

	YawLeft
	YawRight
	PitchUp
	PitchDown
	RollLeft
	RollRight

	ToggleOrbit
	ToggleBirdEye
	ToggleFan
	ToggleDoor
	ToggleDirectional
	TogglePoint
	ToggleSpot
	ToggleAmbient
	ToggleDiffuse
	ToggleSpecular
	ToggleViewports
	ToggleHUD

	Quit

	NumControls
)

var controlNames = [NumControls]string{
	"drive-forward", "drive-backward", "drive-left", "drive-right",
	"move-forward", "move-backward", "move-left", "move-right", "move-up", "move-down",
	"yaw-left", "yaw-right", "pitch-up", "pitch-down", "roll-left", "roll-right",
	"toggle-orbit", "toggle-bird-eye", "toggle-fan", "toggle-door",
	"toggle-directional", "toggle-point", "toggle-spot",
	"toggle-ambient", "toggle-diffuse", "toggle-specular",
	"toggle-viewports", "toggle-hud",
	"quit",
}

func (c Control) String() string {
	if c < 0 || c >= NumControls {
		return "unknown"
	}
	return controlNames[c]
}

// KeySource reports whether a key is currently held down.
type KeySource interface {
	IsKeyDown(key int) bool
}

// Bindings maps each control to a key code. A negative code leaves the
// control unbound.
type Bindings [NumControls]int

// Unbound returns bindings with every control unbound.
func Unbound() Bindings {
	var b Bindings
	for i := range b {
		b[i] = -1
	}
	return b
}

// Frame is the control state sampled once per frame.
type Frame struct {
	held    [NumControls]bool
	pressed [NumControls]bool
}

// Held reports whether c is down this frame.
func (f Frame) Held(c Control) bool {
	return c >= 0 && c < NumControls && f.held[c]
}

// Pressed reports whether c went down this frame.
func (f Frame) Pressed(c Control) bool {
	return c >= 0 && c < NumControls && f.pressed[c]
}

// Axis folds two opposing held controls into -1, 0 or 1.
func (f Frame) Axis(pos, neg Control) float32 {
	var v float32
	if f.Held(pos) {
		v++
	}
	if f.Held(neg) {
		v--
	}
	return v
}

// Hold marks controls as held without a press edge.
func (f Frame) Hold(cs ...Control) Frame {
	for _, c := range cs {
		f.held[c] = true
	}
	return f
}

// Press marks controls as held and pressed this frame.
func (f Frame) Press(cs ...Control) Frame {
	for _, c := range cs {
		f.held[c] = true
		f.pressed[c] = true
	}
	return f
}

// Tracker polls a KeySource and remembers the previous frame so a held key
// registers a single press.
type Tracker struct {
	source   KeySource
	bindings Bindings
	prev     [NumControls]bool
}

func NewTracker(source KeySource, bindings Bindings) *Tracker {
	return &Tracker{source: source, bindings: bindings}
}

// Poll samples every bound control. Call it once per frame.
func (t *Tracker) Poll() Frame {
	var f Frame
	for c := Control(0); c < NumControls; c++ {
		key := t.bindings[c]
		down := key >= 0 && t.source.IsKeyDown(key)
		f.held[c] = down
		f.pressed[c] = down && !t.prev[c]
		t.prev[c] = down
	}
	return f
}
