package mesh

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidInput is wrapped by every builder error caused by bad parameters.
var ErrInvalidInput = errors.New("mesh: invalid input")

// Topology tells the device how to walk the index buffer.
type Topology uint8

const (
	TriangleList Topology = iota
	TriangleStrip
)

func (t Topology) String() string {
	switch t {
	case TriangleList:
		return "triangle-list"
	case TriangleStrip:
		return "triangle-strip"
	default:
		return "unknown"
	}
}

// Vertex is a position, a unit normal and a texture coordinate.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// Mesh is an indexed vertex buffer. It has no mutators: once a builder
// returns it, its contents never change.
type Mesh struct {
	vertices []Vertex
	indices  []uint32
	topology Topology
}

func newMesh(vertices []Vertex, indices []uint32, topology Topology) *Mesh {
	return &Mesh{vertices: vertices, indices: indices, topology: topology}
}

func (m *Mesh) Topology() Topology { return m.topology }
func (m *Mesh) VertexCount() int { return len(m.vertices) }
func (m *Mesh) IndexCount() int { return len(m.indices) }
func (m *Mesh) Vertex(i int) Vertex { return m.vertices[i] }
func (m *Mesh) Index(i int) uint32 { return m.indices[i] }

// Vertices returns a copy of the vertex buffer.
func (m *Mesh) Vertices() []Vertex {
	out := make([]Vertex, len(m.vertices))
	copy(out, m.vertices)
	return out
}

// Indices returns a copy of the index buffer.
func (m *Mesh) Indices() []uint32 {
	out := make([]uint32, len(m.indices))
	copy(out, m.indices)
	return out
}

// Interleaved appends position, normal and uv of every vertex to dst,
// 8 floats per vertex, in the layout the GL device uploads.
func (m *Mesh) Interleaved(dst []float32) []float32 {
	for _, v := range m.vertices {
		dst = append(dst,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.UV[0], v.UV[1])
	}
	return dst
}

// TriangleCount is the number of triangles the index buffer describes.
func (m *Mesh) TriangleCount() int {
	switch m.topology {
	case TriangleStrip:
		if len(m.indices) < 3 {
			return 0
		}
		return len(m.indices) - 2
	default:
		return len(m.indices) / 3
	}
}

// Triangles walks the index buffer into triangles. Odd triangles of a
// strip have their first two vertices swapped so every triangle keeps
// the winding of the first.
func (m *Mesh) Triangles() [][3]uint32 {
	n := m.TriangleCount()
	tris := make([][3]uint32, n)
	idx := m.indices
	for i := 0; i < n; i++ {
		if m.topology == TriangleStrip {
			if i%2 == 0 {
				tris[i] = [3]uint32{idx[i], idx[i+1], idx[i+2]}
			} else {
				tris[i] = [3]uint32{idx[i+1], idx[i], idx[i+2]}
			}
			continue
		}
		tris[i] = [3]uint32{idx[3*i], idx[3*i+1], idx[3*i+2]}
	}
	return tris
}

// FaceNormal returns the outward (unnormalised) normal of triangle a,b,c.
// Front faces are clockwise when seen from outside.
func FaceNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	return c.Sub(a).Cross(b.Sub(a))
}

func validFloat(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
