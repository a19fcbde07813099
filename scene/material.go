package scene

import "bus-viewer/core"

// Material describes how a part reacts to light. Specular scales the global
// specular strength; a zero Shininess uses the lighting model's default.
// Emissive light is added after lighting and ignores every toggle.
type Material struct {
	Name             string
	Albedo           core.Color
	Specular         float32
	Shininess        float32
	Emissive         core.Color
	EmissiveStrength float32
}

// NewMaterial creates a Phong material with the given albedo color.
func NewMaterial(name string, albedo core.Color) *Material {
	return &Material{
		Name:     name,
		Albedo:   albedo,
		Specular: 1,
	}
}

// NewEmissiveMaterial creates a material that glows with its own albedo.
func NewEmissiveMaterial(name string, albedo core.Color, strength float32) *Material {
	m := NewMaterial(name, albedo)
	m.Emissive = albedo
	m.EmissiveStrength = strength
	return m
}

func (m *Material) IsEmissive() bool {
	return m.EmissiveStrength > 0
}
