package mesh

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultResolution samples the circle every 10 degrees.
const DefaultResolution = 36

// BuildCylinderSide builds the open side of a unit cylinder: radius 1
// around the Z axis, from z=0 to z=1. Size is applied at draw time with a
// scale transform so one mesh serves every cylinder.
//
// The strip alternates bottom and top columns and closes by repeating
// column 0, giving 2*(resolution+1) indices and 2*resolution triangles.
func BuildCylinderSide(resolution int) (*Mesh, error) {
	if resolution < 3 {
		return nil, fmt.Errorf("%w: cylinder resolution %d < 3", ErrInvalidInput, resolution)
	}

	vtx := make([]Vertex, 2*resolution)
	for i := 0; i < resolution; i++ {
		x, y := ringPoint(i, resolution)
		n := mgl32.Vec3{x, y, 0}
		u := float32(i) / float32(resolution-1)
		vtx[i] = Vertex{Position: mgl32.Vec3{x, y, 0}, Normal: n, UV: mgl32.Vec2{u, 1}}
		vtx[i+resolution] = Vertex{Position: mgl32.Vec3{x, y, 1}, Normal: n, UV: mgl32.Vec2{u, 0}}
	}

	idx := make([]uint32, 2*(resolution+1))
	for i := 0; i < resolution; i++ {
		idx[2*i] = uint32(i)
		idx[2*i+1] = uint32(i + resolution)
	}
	idx[2*resolution] = 0
	idx[2*resolution+1] = uint32(resolution)

	return newMesh(vtx, idx, TriangleStrip), nil
}

// Facing selects which way a disk looks along Z.
type Facing int8

const (
	FacingNegZ Facing = -1
	FacingPosZ Facing = 1
)

// BuildDisk builds a unit disk in the plane z, centre vertex first, as a
// triangle fan list. It caps the ends of a BuildCylinderSide mesh.
func BuildDisk(resolution int, z float32, facing Facing) (*Mesh, error) {
	if resolution < 3 {
		return nil, fmt.Errorf("%w: disk resolution %d < 3", ErrInvalidInput, resolution)
	}
	if facing != FacingNegZ && facing != FacingPosZ {
		return nil, fmt.Errorf("%w: disk facing %d", ErrInvalidInput, facing)
	}
	if !validFloat(z) {
		return nil, fmt.Errorf("%w: disk plane %v", ErrInvalidInput, z)
	}

	n := mgl32.Vec3{0, 0, float32(facing)}
	vtx := make([]Vertex, resolution+1)
	vtx[0] = Vertex{Position: mgl32.Vec3{0, 0, z}, Normal: n, UV: mgl32.Vec2{0.5, 0.5}}
	for i := 0; i < resolution; i++ {
		x, y := ringPoint(i, resolution)
		vtx[i+1] = Vertex{
			Position: mgl32.Vec3{x, y, z},
			Normal:   n,
			UV:       mgl32.Vec2{0.5 + 0.5*x, 0.5 - 0.5*y},
		}
	}

	idx := make([]uint32, 0, 3*resolution)
	for i := 0; i < resolution; i++ {
		cur := uint32(1 + i)
		next := uint32(1 + (i+1)%resolution)
		if facing == FacingPosZ {
			idx = append(idx, 0, next, cur)
		} else {
			idx = append(idx, 0, cur, next)
		}
	}

	return newMesh(vtx, idx, TriangleList), nil
}

// ringPoint returns the i-th of n points on the unit circle in the XY plane.
func ringPoint(i, n int) (x, y float32) {
	a := float32(i) * 2 * math32.Pi / float32(n)
	return math32.Cos(a), math32.Sin(a)
}
