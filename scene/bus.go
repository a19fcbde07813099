package scene

import (
	"fmt"

	"bus-viewer/core"
	"bus-viewer/math"
)

// Group is the draw bucket of a part. The bus is always emitted in Group
// order.
type Group int

const (
	GroupBody Group = iota
	GroupRoof
	GroupGlass
	GroupTrim
	GroupLights
	GroupDoor
	GroupWheels
	GroupFan
	GroupEnvironment
)

var groupNames = [...]string{"body", "roof", "glass", "trim", "lights", "door", "wheels", "fan", "environment"}

func (g Group) String() string {
	if g < 0 || int(g) >= len(groupNames) {
		return "unknown"
	}
	return groupNames[g]
}

const (
	// WheelSlices is the number of boxes approximating each tire.
	WheelSlices  = 10
	WheelRadius  = 0.45
	WheelWidth   = 0.22
	hubScale     = 1.2
	sliceScale   = 0.25
	sliceStepDeg = 360.0 / WheelSlices
)

// Hinge and travel of the passenger door, in bus-local space.
var (
	DoorHinge = math.Vec3{X: 1.24, Y: 0.65, Z: 2.05}
	// Rotating about -Y swings the free edge outward on the +X side.
	DoorAxis = math.Vec3Down
)

var (
	HeadlightAnchors = [2]math.Vec3{{X: -0.9, Y: 0.40, Z: 3.35}, {X: 0.9, Y: 0.40, Z: 3.35}}
	TaillightAnchors = [2]math.Vec3{{X: -0.95, Y: 0.50, Z: -3.15}, {X: 0.95, Y: 0.50, Z: -3.15}}
)

// Palette used by the bus parts.
var (
	MatBody      = NewMaterial("body", core.RGB(1.0, 0.45, 0.05))
	MatRoof      = NewMaterial("roof", core.RGB(0.95, 0.95, 0.95))
	MatGlass     = &Material{Name: "glass", Albedo: core.RGB(0.10, 0.20, 0.30), Specular: 1.5, Shininess: 96}
	MatTrim      = NewMaterial("trim", core.Gray(0.15))
	MatHeadlight = NewEmissiveMaterial("headlight", core.RGB(1.0, 0.95, 0.6), 0.8)
	MatTaillight = NewEmissiveMaterial("taillight", core.RGB(0.9, 0.1, 0.1), 0.6)
	MatDashboard = NewEmissiveMaterial("dashboard", core.RGB(0.3, 0.8, 1.0), 0.5)
	MatDoor      = NewMaterial("door", core.RGB(0.25, 0.25, 0.70))
	MatHub       = NewMaterial("hub", core.Gray(0.05))
	MatTire      = &Material{Name: "tire", Albedo: core.Gray(0.08), Specular: 0.2}
	MatFan       = NewMaterial("fan", core.Gray(0.92))
	MatGround    = &Material{Name: "ground", Albedo: core.RGB(0.36, 0.50, 0.34), Specular: 0.1}
)

// DrawItem is one cube draw: a model matrix and the material to shade it with.
type DrawItem struct {
	Name     string
	Group    Group
	Model    math.Mat4
	Material *Material
}

// Bus is the articulated vehicle model.
type Bus struct {
	Root *Node
}

func NewBus() *Bus {
	return &Bus{Root: buildBus()}
}

func box(name string, at, extents math.Vec3, mat *Material, group Group) *Node {
	return NewNode(name, Joint{Pivot: at}).WithShape(extents, mat, group)
}

func buildBus() *Node {
	root := NewNode("bus", Joint{})

	// The cabin is hollow: a lower hull, thin side rails under the windows
	// and a rear wall, closed by a roof slab above the window line.
	root.AddChild(
		box("body", math.NewVec3(0, 0.35, 0), math.NewVec3(2.4, 0.7, 6.0), MatBody, GroupBody),
		box("rail_left", math.NewVec3(-1.175, 0.79, 0), math.NewVec3(0.05, 0.18, 6.0), MatBody, GroupBody),
		box("rail_right", math.NewVec3(1.175, 0.79, 0), math.NewVec3(0.05, 0.18, 6.0), MatBody, GroupBody),
		box("rear_wall", math.NewVec3(0, 1.1, -2.975), math.NewVec3(2.4, 0.8, 0.05), MatBody, GroupBody),
		box("roof", math.NewVec3(0, 1.47, 0), math.NewVec3(2.35, 0.1, 6.0), MatRoof, GroupRoof),
		box("windshield", math.NewVec3(0, 1.0, 3.05), math.NewVec3(2.1, 1.0, 0.08), MatGlass, GroupGlass),
	)
	for i := 0; i < 5; i++ {
		z := 2.0 - float32(i)
		size := math.NewVec3(0.05, 0.55, 0.75)
		root.AddChild(
			box(fmt.Sprintf("window_left_%d", i), math.NewVec3(-1.22, 1.15, z), size, MatGlass, GroupGlass),
			box(fmt.Sprintf("window_right_%d", i), math.NewVec3(1.22, 1.15, z), size, MatGlass, GroupGlass),
		)
	}

	root.AddChild(
		box("windshield_trim", math.NewVec3(0, 1.55, 3.05), math.NewVec3(2.1, 0.15, 0.10), MatTrim, GroupTrim),
		box("bumper", math.NewVec3(0, 0.35, 3.15), math.NewVec3(2.45, 0.25, 0.20), MatTrim, GroupTrim),
	)

	headSize := math.NewVec3(0.25, 0.15, 0.08)
	tailSize := math.NewVec3(0.18, 0.18, 0.08)
	root.AddChild(
		box("headlight_left", math.NewVec3(-0.9, 0.40, 3.26), headSize, MatHeadlight, GroupLights),
		box("headlight_right", math.NewVec3(0.9, 0.40, 3.26), headSize, MatHeadlight, GroupLights),
		box("taillight_left", math.NewVec3(-0.95, 0.50, -3.05), tailSize, MatTaillight, GroupLights),
		box("taillight_right", math.NewVec3(0.95, 0.50, -3.05), tailSize, MatTaillight, GroupLights),
		box("dashboard", math.NewVec3(0, 1.0, 2.85), math.NewVec3(1.8, 0.12, 0.2), MatDashboard, GroupLights),
	)

	// The door box hangs off its hinge so that it closes flush with the side.
	door := NewNode("door", Joint{
		Pivot:   DoorHinge,
		Axis:    DoorAxis,
		Channel: ChannelDoor,
		Offset:  math.NewVec3(0, 0, -0.35),
	}).WithShape(math.NewVec3(0.10, 1.0, 0.70), MatDoor, GroupDoor)
	root.AddChild(door)

	for _, w := range []struct {
		name string
		at   math.Vec3
	}{
		{"wheel_front_left", math.NewVec3(-1.15, 0.20, 2.20)},
		{"wheel_front_right", math.NewVec3(1.15, 0.20, 2.20)},
		{"wheel_rear_left", math.NewVec3(-1.15, 0.20, -2.20)},
		{"wheel_rear_right", math.NewVec3(1.15, 0.20, -2.20)},
	} {
		root.AddChild(newWheel(w.name, w.at))
	}

	bladeSize := math.NewVec3(1.0, 0.05, 0.12)
	fan := NewNode("fan", Joint{Pivot: math.NewVec3(0, 1.55, 0), Axis: math.Vec3Up, Channel: ChannelFan}).
		WithShape(bladeSize, MatFan, GroupFan)
	fan.AddChild(NewNode("fan_cross", Joint{Axis: math.Vec3Up, Angle: 90}).WithShape(bladeSize, MatFan, GroupFan))
	root.AddChild(fan)

	return root
}

// newWheel builds a hub box plus a ring of WheelSlices boxes, each rotated
// about the axle and pushed out to the rim.
func newWheel(name string, at math.Vec3) *Node {
	wheel := NewNode(name, Joint{Pivot: at, Axis: math.Vec3Right, Channel: ChannelWheel}).
		WithShape(math.NewVec3(WheelWidth, WheelRadius*hubScale, WheelRadius*hubScale), MatHub, GroupWheels)

	sliceSize := math.NewVec3(WheelWidth, WheelRadius*sliceScale, WheelRadius*sliceScale)
	for i := 0; i < WheelSlices; i++ {
		wheel.AddChild(NewNode(fmt.Sprintf("%s_slice_%d", name, i), Joint{
			Axis:   math.Vec3Right,
			Angle:  float32(i) * sliceStepDeg,
			Offset: math.NewVec3(0, WheelRadius, 0),
		}).WithShape(sliceSize, MatTire, GroupWheels))
	}
	return wheel
}

// DrawList returns the bus parts in draw order for the given pose and
// animation angles. It reads nothing but its arguments.
func (b *Bus) DrawList(pose BusPose, doorAngle, fanAngle float32) []DrawItem {
	master := MasterTransform(pose)
	angles := Angles{Door: doorAngle, Fan: fanAngle, Wheel: pose.WheelRoll}

	items := make([]DrawItem, 0, 80)
	b.Root.Walk(master, angles, func(n *Node, world math.Mat4) {
		if n.Shape == nil {
			return
		}
		items = append(items, DrawItem{
			Name:     n.Name,
			Group:    n.Shape.Group,
			Model:    n.Shape.ShapeMatrix(world),
			Material: n.Shape.Material,
		})
	})
	return items
}

// Ground is the slab the bus drives on, drawn before the bus each pass.
func Ground() DrawItem {
	return DrawItem{
		Name:     "ground",
		Group:    GroupEnvironment,
		Model:    math.Compose(math.Mat4Identity(), math.Mat4Translation(math.NewVec3(0, -0.3, 0)), math.Mat4Scale(math.NewVec3(400, 0.1, 400))),
		Material: MatGround,
	}
}
