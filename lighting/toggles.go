package lighting

// Flag names one switch of the lighting model.
type Flag int

const (
	FlagDirectional Flag = iota
	FlagPoint
	FlagSpot
	FlagAmbient
	FlagDiffuse
	FlagSpecular
)

var flagNames = [...]string{"directional", "point", "spot", "ambient", "diffuse", "specular"}

func (f Flag) String() string {
	if f < 0 || int(f) >= len(flagNames) {
		return "unknown"
	}
	return flagNames[f]
}

// Toggles enables light types and reflection components independently. A
// fragment receives a term only when both its light type and its component
// are on.
type Toggles struct {
	Directional bool
	Point       bool
	Spot        bool
	Ambient     bool
	Diffuse     bool
	Specular    bool
}

func AllOn() Toggles {
	return Toggles{Directional: true, Point: true, Spot: true, Ambient: true, Diffuse: true, Specular: true}
}

func (t *Toggles) ptr(f Flag) *bool {
	switch f {
	case FlagDirectional:
		return &t.Directional
	case FlagPoint:
		return &t.Point
	case FlagSpot:
		return &t.Spot
	case FlagAmbient:
		return &t.Ambient
	case FlagDiffuse:
		return &t.Diffuse
	case FlagSpecular:
		return &t.Specular
	}
	return nil
}

// Toggle flips f and returns its new state.
func (t *Toggles) Toggle(f Flag) bool {
	p := t.ptr(f)
	if p == nil {
		return false
	}
	*p = !*p
	return *p
}

func (t Toggles) Get(f Flag) bool {
	p := t.ptr(f)
	return p != nil && *p
}
