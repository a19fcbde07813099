package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCube(t *testing.T) {
	cube := CreateCube(1)
	require.Len(t, cube.Vertices, 24)
	require.Len(t, cube.Indices, 36)

	for _, v := range cube.Vertices {
		assert.InDelta(t, 0.5, v.Position.Dot(v.Normal), eps, "vertex lies on its face")
		assert.True(t, v.UV.X >= 0 && v.UV.X <= 1 && v.UV.Y >= 0 && v.UV.Y <= 1)
	}
	for _, i := range cube.Indices {
		assert.Less(t, int(i), len(cube.Vertices))
	}
}
