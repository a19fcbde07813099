package scene

import (
	"bus-viewer/core"
	"bus-viewer/math"
)

// Mesh holds CPU-side vertex/index data.
// GPU upload is managed by the renderer backend.
type Mesh struct {
	Name     string
	Vertices []core.Vertex
	Indices  []uint32

	// GPUData is set by the renderer backend (e.g. *opengl.GPUMesh).
	GPUData interface{}
}

func CreateMeshFromData(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
}

// cubeFaces lists each face as its outward normal and the two in-plane axes
// spanning it, ordered so that u x v = normal.
var cubeFaces = [6]struct{ n, u, v math.Vec3 }{
	{math.Vec3Front, math.Vec3Right, math.Vec3Up},
	{math.Vec3Back, math.Vec3{X: -1}, math.Vec3Up},
	{math.Vec3Up, math.Vec3Right, math.Vec3Back},
	{math.Vec3Down, math.Vec3Right, math.Vec3Front},
	{math.Vec3Right, math.Vec3Back, math.Vec3Up},
	{math.Vec3{X: -1}, math.Vec3Front, math.Vec3Up},
}

// CreateCube builds an axis-aligned cube centered on the origin with 24
// vertices so every face carries its own flat normal. Every part of the bus
// is this cube under a different model matrix.
func CreateCube(size float32) *Mesh {
	s := size / 2
	corners := [4]math.Vec2{math.NewVec2(-1, -1), math.NewVec2(1, -1), math.NewVec2(1, 1), math.NewVec2(-1, 1)}

	vertices := make([]core.Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range cubeFaces {
		base := uint32(len(vertices))
		for _, c := range corners {
			pos := f.n.Add(f.u.Mul(c.X)).Add(f.v.Mul(c.Y)).Mul(s)
			vertices = append(vertices, core.Vertex{
				Position: pos,
				Normal:   f.n,
				UV:       math.NewVec2((c.X+1)/2, (c.Y+1)/2),
			})
		}
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}

	return CreateMeshFromData("Cube", vertices, indices)
}

// CreateScreenQuad builds a quad covering normalized device coordinates, used
// to composite the HUD texture.
func CreateScreenQuad() *Mesh {
	vertices := []core.Vertex{
		{Position: math.Vec3{X: -1, Y: -1}, Normal: math.Vec3Front, UV: math.Vec2{X: 0, Y: 1}},
		{Position: math.Vec3{X: 1, Y: -1}, Normal: math.Vec3Front, UV: math.Vec2{X: 1, Y: 1}},
		{Position: math.Vec3{X: 1, Y: 1}, Normal: math.Vec3Front, UV: math.Vec2{X: 1, Y: 0}},
		{Position: math.Vec3{X: -1, Y: 1}, Normal: math.Vec3Front, UV: math.Vec2{X: 0, Y: 0}},
	}
	return CreateMeshFromData("ScreenQuad", vertices, []uint32{0, 1, 2, 2, 3, 0})
}
