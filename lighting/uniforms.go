package lighting

// Uniforms is the lighting state flattened for upload to the shader.
type Uniforms struct {
	DirDirection [3]float32
	DirColor     [3]float32

	PointPositions [NumPointLights][3]float32
	PointColors    [NumPointLights][3]float32

	SpotPosition  [3]float32
	SpotDirection [3]float32
	SpotColor     [3]float32
	SpotCosCutoff float32

	AmbientStrength  float32
	SpecularStrength float32
	Shininess        float32
	K1               float32
	K2               float32
	EmissiveScale    float32

	// Enabled is indexed by Flag; 1 means on.
	Enabled [6]int32
}

func (m *Model) Uniforms() Uniforms {
	u := Uniforms{
		DirDirection:     m.Directional.Direction.Array(),
		DirColor:         m.Directional.Color.Vec3().Array(),
		SpotPosition:     m.Spot.Position.Array(),
		SpotDirection:    m.Spot.Direction.Array(),
		SpotColor:        m.Spot.Color.Vec3().Array(),
		SpotCosCutoff:    m.cosCutoff,
		AmbientStrength:  m.Settings.AmbientStrength,
		SpecularStrength: m.Settings.SpecularStrength,
		Shininess:        m.Settings.Shininess,
		K1:               m.Settings.K1,
		K2:               m.Settings.K2,
		EmissiveScale:    m.Settings.EmissiveScale,
	}
	for i, p := range m.Points {
		u.PointPositions[i] = p.Position.Array()
		u.PointColors[i] = p.Color.Vec3().Array()
	}
	for f := FlagDirectional; f <= FlagSpecular; f++ {
		if m.Toggles.Get(f) {
			u.Enabled[f] = 1
		}
	}
	return u
}
