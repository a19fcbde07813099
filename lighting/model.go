// Package lighting holds the light rig of the viewer and a CPU reference of
// the Phong model the fragment shader evaluates.
package lighting

import (
	"github.com/chewxy/math32"

	"bus-viewer/core"
	"bus-viewer/math"
)

const NumPointLights = 4

// Settings are the global Phong coefficients. SpotCutoff is the cone
// half-angle in degrees.
type Settings struct {
	AmbientStrength  float32
	SpecularStrength float32
	Shininess        float32
	K1               float32
	K2               float32
	SpotCutoff       float32
	EmissiveScale    float32
}

func DefaultSettings() Settings {
	return Settings{
		AmbientStrength:  0.15,
		SpecularStrength: 0.5,
		Shininess:        32,
		K1:               0.09,
		K2:               0.032,
		SpotCutoff:       14,
		EmissiveScale:    1,
	}
}

type DirectionalLight struct {
	Direction math.Vec3
	Color     core.Color
}

// PointLight sits at Position. When Attached, Position is recomputed from
// Local and the vehicle's master transform on every Update.
type PointLight struct {
	Local    math.Vec3
	Position math.Vec3
	Color    core.Color
	Attached bool
}

// SpotLight follows the interactive camera.
type SpotLight struct {
	Position  math.Vec3
	Direction math.Vec3
	Color     core.Color
}

type Model struct {
	Settings    Settings
	Toggles     Toggles
	Directional DirectionalLight
	Points      [NumPointLights]PointLight
	Spot        SpotLight

	cosCutoff float32
}

// NewModel builds the rig with all lights and components on.
func NewModel(settings Settings, points [NumPointLights]PointLight) *Model {
	m := &Model{
		Settings: settings,
		Toggles:  AllOn(),
		Directional: DirectionalLight{
			Direction: math.NewVec3(-0.2, -1, -0.3).Normalize(),
			Color:     core.RGB(0.75, 0.75, 0.7),
		},
		Points: points,
		Spot: SpotLight{
			Direction: math.Vec3Back,
			Color:     core.RGB(1, 1, 1),
		},
	}
	for i := range m.Points {
		if !m.Points[i].Attached {
			m.Points[i].Position = m.Points[i].Local
		}
	}
	m.cosCutoff = math32.Cos(math.Radians(settings.SpotCutoff))
	return m
}

// VehicleLights returns two white headlights and two red taillights attached
// at the given bus-local anchors.
func VehicleLights(head, tail [2]math.Vec3) [NumPointLights]PointLight {
	headColor := core.RGB(1.0, 0.95, 0.8)
	tailColor := core.RGB(1.0, 0.15, 0.1)
	return [NumPointLights]PointLight{
		{Local: head[0], Color: headColor, Attached: true},
		{Local: head[1], Color: headColor, Attached: true},
		{Local: tail[0], Color: tailColor, Attached: true},
		{Local: tail[1], Color: tailColor, Attached: true},
	}
}

// Update moves the attached point lights with master and puts the spot on
// the camera. Call it once per frame before any viewport is drawn.
func (m *Model) Update(master math.Mat4, eye, front math.Vec3) {
	for i := range m.Points {
		if m.Points[i].Attached {
			m.Points[i].Position = master.MulPoint(m.Points[i].Local)
		}
	}
	m.Spot.Position = eye
	if dir, ok := front.TryNormalize(); ok {
		m.Spot.Direction = dir
	}
}

func (m *Model) Toggle(f Flag) bool {
	return m.Toggles.Toggle(f)
}

// CosCutoff is the cosine of the spot cone half-angle.
func (m *Model) CosCutoff() float32 {
	return m.cosCutoff
}

// Attenuation is 1 / (1 + k1 d + k2 d^2).
func (m *Model) Attenuation(d float32) float32 {
	return 1 / (1 + m.Settings.K1*d + m.Settings.K2*d*d)
}

// Surface is everything Shade needs about a fragment.
type Surface struct {
	Position         math.Vec3
	Normal           math.Vec3
	Albedo           math.Vec3
	Specular         float32
	Shininess        float32
	Emissive         math.Vec3
	EmissiveStrength float32
}

// Shade evaluates the lighting at s seen from viewPos. The sum of enabled
// light terms modulates the albedo; emission is added regardless of toggles.
func (m *Model) Shade(s Surface, viewPos math.Vec3) math.Vec3 {
	n := s.Normal.Normalize()
	v := viewPos.Sub(s.Position).Normalize()
	shininess := s.Shininess
	if shininess <= 0 {
		shininess = m.Settings.Shininess
	}
	specStrength := m.Settings.SpecularStrength * s.Specular

	light := math.Vec3Zero
	if m.Toggles.Directional {
		l := m.Directional.Direction.Negate().Normalize()
		light = light.Add(m.phong(n, v, l, m.Directional.Color.Vec3(), specStrength, shininess))
	}
	if m.Toggles.Point {
		for _, p := range m.Points {
			toLight := p.Position.Sub(s.Position)
			l := toLight.Normalize()
			term := m.phong(n, v, l, p.Color.Vec3(), specStrength, shininess)
			light = light.Add(term.Mul(m.Attenuation(toLight.Length())))
		}
	}
	if m.Toggles.Spot {
		toLight := m.Spot.Position.Sub(s.Position)
		l := toLight.Normalize()
		if l.Dot(m.Spot.Direction.Negate().Normalize()) > m.cosCutoff {
			term := m.phong(n, v, l, m.Spot.Color.Vec3(), specStrength, shininess)
			light = light.Add(term.Mul(m.Attenuation(toLight.Length())))
		}
	}

	emission := s.Emissive.Mul(s.EmissiveStrength * m.Settings.EmissiveScale)
	return light.MulVec(s.Albedo).Add(emission)
}

// phong returns the enabled ambient, diffuse and specular terms of one light
// with direction l (surface to light).
func (m *Model) phong(n, v, l, color math.Vec3, specStrength, shininess float32) math.Vec3 {
	var k float32
	if m.Toggles.Ambient {
		k += m.Settings.AmbientStrength
	}
	if m.Toggles.Diffuse {
		k += math32.Max(n.Dot(l), 0)
	}
	if m.Toggles.Specular {
		r := l.Negate().Reflect(n)
		k += math32.Pow(math32.Max(v.Dot(r), 0), shininess) * specStrength
	}
	return color.Mul(k)
}
