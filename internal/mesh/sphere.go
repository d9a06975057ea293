package mesh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SphereVertexCount is the number of vertices BuildSphere produces.
func SphereVertexCount(tessellation int) int {
	return (tessellation-1)*2*tessellation + 2
}

// SphereTriangleCount is the number of triangles BuildSphere produces:
// two fans of 2t triangles and two triangles per quad between the t-2
// adjacent ring pairs.
func SphereTriangleCount(tessellation int) int {
	h := 2 * tessellation
	return 2*h + 2*(tessellation-2)*h
}

// BuildSphere builds a UV sphere of the given radius centred on the origin.
// tessellation sets the number of latitude bands; each ring has
// 2*tessellation vertices.
func BuildSphere(radius float32, tessellation int) (*Mesh, error) {
	if !(radius > 0) || !validFloat(radius) {
		return nil, fmt.Errorf("%w: sphere radius %v", ErrInvalidInput, radius)
	}
	if tessellation < 2 {
		return nil, fmt.Errorf("%w: sphere tessellation %d < 2", ErrInvalidInput, tessellation)
	}

	vSegs := tessellation
	hSegs := tessellation * 2
	top := (vSegs-1)*hSegs + 1

	vtx := make([]Vertex, SphereVertexCount(tessellation))
	down := mgl32.Vec3{0, -1, 0}
	vtx[0] = Vertex{Position: down.Mul(radius), Normal: down}

	for i := 0; i < vSegs-1; i++ {
		lat := float64(i+1)*math.Pi/float64(vSegs) - math.Pi/2
		dy := float32(math.Sin(lat))
		ringRad := math.Cos(lat)
		for j := 0; j < hSegs; j++ {
			lon := float64(j) * 2 * math.Pi / float64(hSegs)
			dx := float32(math.Cos(lon) * ringRad)
			dz := float32(math.Sin(lon) * ringRad)
			n := mgl32.Vec3{dx, dy, dz}
			// U runs against longitude; textures are authored for it.
			u := float32((2*math.Pi - lon) / (2 * math.Pi))
			v := float32(0.5 - 0.5*lat/(math.Pi/2))
			vtx[hSegs*i+j+1] = Vertex{Position: n.Mul(radius), Normal: n, UV: mgl32.Vec2{u, v}}
		}
	}

	up := mgl32.Vec3{0, 1, 0}
	vtx[top] = Vertex{Position: up.Mul(radius), Normal: up}

	idx := make([]uint32, 0, 3*SphereTriangleCount(tessellation))

	for i := 0; i < hSegs; i++ {
		idx = append(idx, 0, uint32(1+(i+1)%hSegs), uint32(1+i))
	}

	for i := 0; i < vSegs-2; i++ {
		for j := 0; j < hSegs; j++ {
			ni := i + 1
			nj := (j + 1) % hSegs
			idx = append(idx,
				uint32(1+i*hSegs+j), uint32(1+i*hSegs+nj), uint32(1+ni*hSegs+j),
				uint32(1+i*hSegs+nj), uint32(1+ni*hSegs+nj), uint32(1+ni*hSegs+j))
		}
	}

	base := (vSegs - 1) * hSegs
	for i := 0; i < hSegs; i++ {
		idx = append(idx, uint32(top), uint32(base-(i+1)%hSegs), uint32(base-i))
	}

	return newMesh(vtx, idx, TriangleList), nil
}
