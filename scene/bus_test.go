package scene

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reMath "bus-viewer/math"
)

func partCenter(items []DrawItem, name string) (reMath.Vec3, bool) {
	for _, it := range items {
		if it.Name == name {
			return it.Model.MulPoint(reMath.Vec3Zero), true
		}
	}
	return reMath.Vec3{}, false
}

func TestDrawListGroupOrder(t *testing.T) {
	items := NewBus().DrawList(BusPose{}, 0, 0)
	require.NotEmpty(t, items)

	groups := make([]int, len(items))
	for i, it := range items {
		groups[i] = int(it.Group)
	}
	assert.True(t, sort.IntsAreSorted(groups), "groups out of order: %v", groups)

	seen := map[Group]int{}
	for _, it := range items {
		seen[it.Group]++
	}
	for g := GroupBody; g <= GroupFan; g++ {
		assert.Positive(t, seen[g], "missing group %s", g)
	}
	assert.Zero(t, seen[GroupEnvironment])
}

func TestDrawListWheelSlices(t *testing.T) {
	items := NewBus().DrawList(BusPose{}, 0, 0)

	tires := 0
	for _, it := range items {
		if it.Material == MatTire {
			tires++
		}
	}
	assert.Equal(t, 4*WheelSlices, tires)
}

func TestDrawListIsPure(t *testing.T) {
	bus := NewBus()
	pose := BusPose{Position: reMath.NewVec3(1, 0, 2), Yaw: 33, WheelRoll: 10}

	first := bus.DrawList(pose, 40, 120)
	bus.DrawList(BusPose{Yaw: 200}, 75, 300)
	second := bus.DrawList(pose, 40, 120)

	assert.Equal(t, first, second)
}

func TestDrawListFollowsMaster(t *testing.T) {
	bus := NewBus()
	at := bus.DrawList(BusPose{}, 0, 0)
	moved := bus.DrawList(BusPose{Position: reMath.NewVec3(10, 0, 0), Yaw: 90}, 0, 0)

	// the body center (0, 0.35, 0) only translates
	c, ok := partCenter(moved, "body")
	require.True(t, ok)
	assert.InDelta(t, 10, c.X, eps)
	assert.InDelta(t, 0.35, c.Y, eps)

	// the bumper at local z=3.15 swings onto +X at yaw 90
	c0, _ := partCenter(at, "bumper")
	c1, _ := partCenter(moved, "bumper")
	assert.InDelta(t, 3.15, c0.Z, eps)
	assert.InDelta(t, 13.15, c1.X, eps)
	assert.InDelta(t, 0, c1.Z, eps)
}

func TestDoorRotatesAboutHinge(t *testing.T) {
	bus := NewBus()
	for _, angle := range []float32{0, 30, 75} {
		items := bus.DrawList(BusPose{}, angle, 0)
		c, ok := partCenter(items, "door")
		require.True(t, ok)

		// the door center stays at half its width from the hinge
		assert.InDelta(t, 0.35, c.Distance(DoorHinge), eps)
	}

	closed, _ := partCenter(bus.DrawList(BusPose{}, 0, 0), "door")
	open, _ := partCenter(bus.DrawList(BusPose{}, 75, 0), "door")
	assert.InDelta(t, 1.7, closed.Z, eps)
	assert.Greater(t, open.X, closed.X, "door should swing outward")
}

func TestPartTransformMatchesDrawList(t *testing.T) {
	bus := NewBus()
	pose := BusPose{Position: reMath.NewVec3(2, 0, -3), Yaw: 40}
	door := bus.Root.Find("door")
	require.NotNil(t, door)

	want := PartTransform(MasterTransform(pose), door.Joint, 60, door.Shape.Extents)
	for _, it := range bus.DrawList(pose, 60, 0) {
		if it.Name == "door" {
			assert.True(t, want.ApproxEqual(it.Model, eps))
			return
		}
	}
	t.Fatal("door not in draw list")
}

func TestEmissivePartsAreExposed(t *testing.T) {
	items := append(NewBus().DrawList(BusPose{}, 0, 0), Ground())
	encloses := func(outer, inner AABB) bool {
		return outer.Min.X <= inner.Min.X && outer.Min.Y <= inner.Min.Y && outer.Min.Z <= inner.Min.Z &&
			outer.Max.X >= inner.Max.X && outer.Max.Y >= inner.Max.Y && outer.Max.Z >= inner.Max.Z
	}

	glowing := 0
	for i, it := range items {
		if !it.Material.IsEmissive() {
			continue
		}
		glowing++
		inner := BoxBounds(it.Model)
		for j, other := range items {
			if i != j {
				assert.False(t, encloses(BoxBounds(other.Model), inner), "%s is hidden inside %s", it.Name, other.Name)
			}
		}
	}
	assert.Equal(t, 5, glowing, "headlights, taillights and dashboard")
}

func TestFanBladesStayCrossed(t *testing.T) {
	items := NewBus().DrawList(BusPose{}, 0, 37)

	var blades []reMath.Mat4
	for _, it := range items {
		if it.Group == GroupFan {
			blades = append(blades, it.Model)
		}
	}
	require.Len(t, blades, 2)

	a := blades[0].MulDir(reMath.Vec3Right).Normalize()
	b := blades[1].MulDir(reMath.Vec3Right).Normalize()
	assert.InDelta(t, 0, a.Dot(b), eps)
}

func TestWheelSlicesRingTheAxle(t *testing.T) {
	items := NewBus().DrawList(BusPose{}, 0, 0)
	axle := reMath.NewVec3(-1.15, 0.20, 2.20)

	n := 0
	for _, it := range items {
		if it.Material != MatTire || len(it.Name) < len("wheel_front_left") || it.Name[:16] != "wheel_front_left" {
			continue
		}
		c := it.Model.MulPoint(reMath.Vec3Zero)
		assert.InDelta(t, WheelRadius, c.Distance(axle), eps)
		assert.InDelta(t, axle.X, c.X, eps)
		n++
	}
	assert.Equal(t, WheelSlices, n)
}

func TestNodeFind(t *testing.T) {
	root := NewBus().Root
	require.NotNil(t, root.Find("door"))
	require.NotNil(t, root.Find("fan_cross"))
	assert.Nil(t, root.Find("missing"))

	count := 0
	root.Traverse(func(*Node) { count++ })
	assert.Greater(t, count, 60)
}

func TestGroundDrawnBelowBus(t *testing.T) {
	g := Ground()
	assert.Equal(t, GroupEnvironment, g.Group)
	assert.Less(t, g.Model.MulPoint(reMath.Vec3Zero).Y, float32(0))
}
