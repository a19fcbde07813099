package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bus-viewer/math"
)

func testFrustum() Frustum {
	view := math.Mat4LookAt(math.NewVec3(0, 0, 5), math.Vec3Zero, math.Vec3Up)
	proj := math.Mat4Perspective(math.Radians(45), 1, 0.1, 100)
	return FrustumFromVP(view.Mul(proj))
}

func boxAt(p math.Vec3) AABB {
	return BoxBounds(math.Mat4Translation(p))
}

func TestFrustumContainsTarget(t *testing.T) {
	f := testFrustum()
	assert.True(t, boxAt(math.Vec3Zero).IntersectsFrustum(&f))
	assert.True(t, boxAt(math.NewVec3(0, 0, -50)).IntersectsFrustum(&f))
}

func TestFrustumRejectsOutside(t *testing.T) {
	f := testFrustum()
	assert.False(t, boxAt(math.NewVec3(0, 0, 10)).IntersectsFrustum(&f), "behind the eye")
	assert.False(t, boxAt(math.NewVec3(50, 0, 0)).IntersectsFrustum(&f), "off to the side")
	assert.False(t, boxAt(math.NewVec3(0, 0, -200)).IntersectsFrustum(&f), "past the far plane")
}

func TestFrustumPlanesAreNormalized(t *testing.T) {
	f := testFrustum()
	for i, p := range f.Planes {
		assert.InDelta(t, 1, p.Normal.Length(), 1e-4, "plane %d", i)
	}
	// The target sits 5 units past the eye, so the near plane is ~4.9 away.
	assert.InDelta(t, 4.9, f.Planes[4].DistanceTo(math.Vec3Zero), 1e-3)
}

func TestBoxBoundsFollowsModel(t *testing.T) {
	model := math.Compose(math.Mat4Identity(),
		math.Mat4Translation(math.NewVec3(1, 2, 3)),
		math.Mat4Scale(math.NewVec3(2, 4, 6)),
	)
	b := BoxBounds(model)
	assert.InDelta(t, 0, b.Min.X, 1e-5)
	assert.InDelta(t, 2, b.Max.X, 1e-5)
	assert.InDelta(t, 0, b.Min.Y, 1e-5)
	assert.InDelta(t, 4, b.Max.Y, 1e-5)
	assert.InDelta(t, 0, b.Min.Z, 1e-5)
	assert.InDelta(t, 6, b.Max.Z, 1e-5)
}

func TestBoxBoundsOfRotatedBox(t *testing.T) {
	b := BoxBounds(math.Mat4RotationY(math.Radians(45)))
	half := float32(0.7071068)
	assert.InDelta(t, -half, b.Min.X, 1e-4)
	assert.InDelta(t, half, b.Max.Z, 1e-4)
	assert.InDelta(t, 0.5, b.Max.Y, 1e-5)
}
