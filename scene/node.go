package scene

import (
	"bus-viewer/math"
)

// Channel names the animated angle a joint follows.
type Channel int

const (
	ChannelNone Channel = iota
	ChannelDoor
	ChannelFan
	ChannelWheel
)

// Angles holds the current value, in degrees, of every animation channel.
type Angles struct {
	Door  float32
	Fan   float32
	Wheel float32
}

func (a Angles) Get(ch Channel) float32 {
	switch ch {
	case ChannelDoor:
		return a.Door
	case ChannelFan:
		return a.Fan
	case ChannelWheel:
		return a.Wheel
	default:
		return 0
	}
}

// Joint is a node's local transform: move to Pivot, rotate about Axis by
// Angle plus the channel value, then move by Offset. A zero Axis means no
// rotation.
type Joint struct {
	Pivot   math.Vec3
	Axis    math.Vec3
	Angle   float32
	Channel Channel
	Offset  math.Vec3
}

// Steps returns the joint as a parent-to-child list for math.Compose.
func (j Joint) Steps(angles Angles) []math.Mat4 {
	steps := make([]math.Mat4, 0, 3)
	if j.Pivot != math.Vec3Zero {
		steps = append(steps, math.Mat4Translation(j.Pivot))
	}
	if j.Axis != math.Vec3Zero {
		deg := j.Angle + angles.Get(j.Channel)
		steps = append(steps, math.Mat4RotationAxis(j.Axis, math.Radians(deg)))
	}
	if j.Offset != math.Vec3Zero {
		steps = append(steps, math.Mat4Translation(j.Offset))
	}
	return steps
}

// PartTransform places one part directly under master: move to the joint
// pivot, rotate by angle plus the joint's fixed angle about its axis, move by
// the offset, then scale the unit cube to extents. A zero axis gives a rigid
// part.
func PartTransform(master math.Mat4, j Joint, angle float32, extents math.Vec3) math.Mat4 {
	j.Angle += angle
	j.Channel = ChannelNone
	return math.Compose(master, append(j.Steps(Angles{}), math.Mat4Scale(extents))...)
}

// Shape is the box drawn at a node: the unit cube scaled by Extents.
type Shape struct {
	Extents  math.Vec3
	Material *Material
	Group    Group
}

// Node is one link of the articulated model. Nodes hold no world-space state;
// world transforms are recomputed by Walk from the master transform.
type Node struct {
	Name     string
	Joint    Joint
	Shape    *Shape
	Children []*Node
}

func NewNode(name string, joint Joint) *Node {
	return &Node{Name: name, Joint: joint}
}

// AddChild appends child and returns n for chaining.
func (n *Node) AddChild(child ...*Node) *Node {
	n.Children = append(n.Children, child...)
	return n
}

func (n *Node) WithShape(extents math.Vec3, material *Material, group Group) *Node {
	n.Shape = &Shape{Extents: extents, Material: material, Group: group}
	return n
}

// World returns the node frame under parent for the given channel values.
func (n *Node) World(parent math.Mat4, angles Angles) math.Mat4 {
	return math.Compose(parent, n.Joint.Steps(angles)...)
}

// Walk visits n and its descendants depth-first in insertion order, passing
// each node's world frame. The shape's model matrix is ShapeMatrix(world).
func (n *Node) Walk(parent math.Mat4, angles Angles, fn func(node *Node, world math.Mat4)) {
	world := n.World(parent, angles)
	fn(n, world)
	for _, child := range n.Children {
		child.Walk(world, angles, fn)
	}
}

// ShapeMatrix scales the unit cube into the shape's box within world.
func (s *Shape) ShapeMatrix(world math.Mat4) math.Mat4 {
	return math.Compose(world, math.Mat4Scale(s.Extents))
}

func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Traverse visits n and its descendants depth-first.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, child := range n.Children {
		child.Traverse(fn)
	}
}
