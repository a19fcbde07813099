package main

import (
	"bus-viewer/input"
	"bus-viewer/window"
)

// defaultBindings maps every control to its GLFW key.
func defaultBindings() input.Bindings {
	b := input.Unbound()

	b[input.DriveForward] = window.KeyUp
	b[input.DriveBackward] = window.KeyDown
	b[input.DriveLeft] = window.KeyLeft
	b[input.DriveRight] = window.KeyRight

	b[input.MoveForward] = window.KeyW
	b[input.MoveBackward] = window.KeyS
	b[input.MoveLeft] = window.KeyA
	b[input.MoveRight] = window.KeyD
	b[input.MoveUp] = window.KeyE
	b[input.MoveDown] = window.KeyR

	b[input.YawRight] = window.KeyY
	b[input.YawLeft] = window.KeyU
	b[input.PitchUp] = window.KeyX
	b[input.PitchDown] = window.KeyC
	b[input.RollRight] = window.KeyZ
	b[input.RollLeft] = window.KeyV

	b[input.ToggleOrbit] = window.KeyF
	b[input.ToggleBirdEye] = window.KeyB
	b[input.ToggleFan] = window.KeyG
	b[input.ToggleDoor] = window.KeyO
	b[input.ToggleDirectional] = window.Key1
	b[input.TogglePoint] = window.Key2
	b[input.ToggleSpot] = window.Key3
	b[input.ToggleAmbient] = window.Key4
	b[input.ToggleDiffuse] = window.Key5
	b[input.ToggleSpecular] = window.Key6
	b[input.ToggleViewports] = window.KeyM
	b[input.ToggleHUD] = window.KeyH

	b[input.Quit] = window.KeyEscape
	return b
}

var controlsHelp = []string{
	"",
	"BUS CONTROLS:",
	"  Up / Down       - Drive forward / backward",
	"  Left / Right    - Turn left / right",
	"  O               - Open / close the door",
	"  G               - Start / stop the ceiling fan",
	"",
	"CAMERA CONTROLS:",
	"  W / S           - Move forward / backward",
	"  A / D           - Move left / right",
	"  E / R           - Move up / down",
	"  Y / U           - Yaw right / left",
	"  X / C           - Pitch up / down",
	"  Z / V           - Roll right / left",
	"  F               - Toggle orbit around the bus",
	"  B               - Toggle bird's-eye view",
	"",
	"LIGHTING:",
	"  1 / 2 / 3       - Toggle directional / point / spot light",
	"  4 / 5 / 6       - Toggle ambient / diffuse / specular",
	"",
	"VIEW:",
	"  M               - Toggle single / four viewports",
	"  H               - Toggle the status overlay",
	"  Esc             - Quit",
	"",
}
