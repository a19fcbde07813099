package math

import (
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-4

func assertVec3(t *testing.T, expected, actual Vec3) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, tol, "X of %v", actual)
	assert.InDelta(t, expected.Y, actual.Y, tol, "Y of %v", actual)
	assert.InDelta(t, expected.Z, actual.Z, tol, "Z of %v", actual)
}

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	assert.Equal(t, NewVec3(5, 7, 9), v1.Add(v2))
	assert.Equal(t, NewVec3(3, 3, 3), v2.Sub(v1))
	assert.Equal(t, NewVec3(2, 4, 6), v1.Mul(2))
	assert.Equal(t, NewVec3(4, 10, 18), v1.MulVec(v2))
	assert.Equal(t, float32(32), v1.Dot(v2))

	// Right x Up = Front in a right-handed system
	assert.Equal(t, Vec3Front, Vec3Right.Cross(Vec3Up))
}

func TestVec3Normalize(t *testing.T) {
	n := NewVec3(3, 0, 4).Normalize()
	assertVec3(t, NewVec3(0.6, 0, 0.8), n)
	assert.InDelta(t, 1, n.Length(), tol)
}

func TestVec3TryNormalizeDegenerate(t *testing.T) {
	v, ok := Vec3Zero.TryNormalize()
	assert.False(t, ok)
	assert.Equal(t, Vec3Zero, v)

	_, ok = NewVec3(1e-9, 0, 0).TryNormalize()
	assert.False(t, ok)

	_, ok = NewVec3(0, 2, 0).TryNormalize()
	assert.True(t, ok)
}

func TestVec3Reflect(t *testing.T) {
	in := NewVec3(1, -1, 0)
	assertVec3(t, NewVec3(1, 1, 0), in.Reflect(Vec3Up))
}

func TestVec3RotateAround(t *testing.T) {
	// Rotating +X by 90 degrees about +Y lands on -Z
	assertVec3(t, Vec3Back, Vec3Right.RotateAround(Vec3Up, Radians(90)))

	// Rotating about the vector itself is a no-op
	v := NewVec3(0, 0, 2)
	assertVec3(t, v, v.RotateAround(Vec3Front, Radians(37)))
}

func TestScalarHelpers(t *testing.T) {
	assert.True(t, mgl32.FloatEqualThreshold(Radians(180), 3.14159265, tol))
	assert.InDelta(t, 90, Degrees(Radians(90)), tol)
	assert.Equal(t, float32(89), Clamp(120, -89, 89))
	assert.Equal(t, float32(-89), Clamp(-120, -89, 89))
	assert.InDelta(t, 10, WrapDegrees(370), tol)
	assert.InDelta(t, 350, WrapDegrees(-10), tol)
	assert.InDelta(t, 0, WrapDegrees(360), tol)
}

func TestMat4Identity(t *testing.T) {
	m := Mat4Identity()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			expected := float32(0)
			if i == j {
				expected = 1
			}
			assert.Equal(t, expected, m[i][j], "[%d][%d]", i, j)
		}
	}
	assert.Equal(t, m, m.Mul(Mat4Identity()))
}

func TestMat4Translation(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)

	assert.Equal(t, translation, m.Translation())
	assert.Equal(t, translation, m.MulPoint(Vec3Zero))
	assert.Equal(t, Vec3Up, m.MulDir(Vec3Up))
}

func TestMat4RotationYMatchesHeading(t *testing.T) {
	for _, yaw := range []float32{0, 30, 90, 180, 270} {
		r := Radians(yaw)
		got := Mat4RotationY(r).MulDir(Vec3Front)
		assertVec3(t, NewVec3(Sin(r), 0, Cos(r)), got)
	}
}

func TestMat4RotationAxisMatchesQuaternion(t *testing.T) {
	axis := NewVec3(1, 1, 0).Normalize()
	angle := Radians(50)
	v := NewVec3(0.3, -2, 1)

	assertVec3(t, v.RotateAround(axis, angle), Mat4RotationAxis(axis, angle).MulDir(v))
	assert.True(t, Mat4RotationAxis(axis, angle).ApproxEqual(QuaternionFromAxisAngle(axis, angle).ToMat4(), tol))
}

func TestComposeOrder(t *testing.T) {
	parent := Mat4Translation(NewVec3(10, 0, 0))
	pivot := Mat4Translation(NewVec3(0, 1, 0))
	rot := Mat4RotationY(Radians(90))
	scale := Mat4Scale(NewVec3(2, 2, 2))

	world := Compose(parent, pivot, rot, scale)

	// local +Z: scaled to 2, rotated to +X, lifted by the pivot, shifted by the parent
	assertVec3(t, NewVec3(12, 1, 0), world.MulPoint(Vec3Front))
	assert.Equal(t, parent, Compose(parent))
}

func TestMat4Perspective(t *testing.T) {
	m := Mat4Perspective(Radians(45), 16.0/9.0, 0.1, 100)

	near := NewVec3(0, 0, -0.1).ToVec4(1).MulMat(m).ToVec3DivW()
	far := NewVec3(0, 0, -100).ToVec4(1).MulMat(m).ToVec3DivW()
	assert.InDelta(t, -1, near.Z, tol)
	assert.InDelta(t, 1, far.Z, 1e-3)
}

func TestMat4LookAt(t *testing.T) {
	eye := NewVec3(0, 0, 5)
	m := Mat4LookAt(eye, Vec3Zero, Vec3Up)

	assertVec3(t, Vec3Zero, m.MulPoint(eye))
	// the target sits straight ahead on -Z in view space
	assertVec3(t, NewVec3(0, 0, -5), m.MulPoint(Vec3Zero))
}

func TestMat4Transpose(t *testing.T) {
	m := Mat4Translation(NewVec3(1, 2, 3))
	tr := m.Transpose()
	require.Equal(t, float32(1), tr[0][3])
	assert.Equal(t, m, tr.Transpose())
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4RotationY(0.3)
	m2 := Mat4Translation(NewVec3(1, 2, 3))

	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}

func TestMat4PtrIsRowMajorStorage(t *testing.T) {
	m := Mat4Translation(NewVec3(1, 2, 3))
	p := m.Ptr()
	flat := unsafe.Slice(p, 16)
	assert.Equal(t, float32(1), flat[0])
	assert.Equal(t, []float32{1, 2, 3, 1}, flat[12:16])
}
