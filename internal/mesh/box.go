package mesh

import "github.com/go-gl/mathgl/mgl32"

// boxFaces lists each cube face as an origin corner and two edge axes
// whose cross product is the outward normal.
var boxFaces = [6][3]mgl32.Vec3{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, // +X
	{{0, 0, 0}, {0, 0, 1}, {0, 1, 0}}, // -X
	{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}}, // +Y
	{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}}, // -Y
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}}, // +Z
	{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}}, // -Z
}

// BuildBox builds the unit cube [0,1]^3 with four vertices per face so
// each face carries its own normal and a full [0,1] texture.
func BuildBox() *Mesh {
	vtx := make([]Vertex, 0, 24)
	idx := make([]uint32, 0, 36)
	for _, f := range boxFaces {
		o, u, v := f[0], f[1], f[2]
		n := u.Cross(v)
		b := uint32(len(vtx))
		vtx = append(vtx,
			Vertex{Position: o, Normal: n, UV: mgl32.Vec2{0, 1}},
			Vertex{Position: o.Add(u), Normal: n, UV: mgl32.Vec2{1, 1}},
			Vertex{Position: o.Add(u).Add(v), Normal: n, UV: mgl32.Vec2{1, 0}},
			Vertex{Position: o.Add(v), Normal: n, UV: mgl32.Vec2{0, 0}},
		)
		idx = append(idx, b, b+2, b+1, b, b+3, b+2)
	}
	return newMesh(vtx, idx, TriangleList)
}
