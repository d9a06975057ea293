package mesh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Sample is one point of a revolution profile: distance from the Y axis
// and height along it.
type Sample struct {
	Radius float32
	Height float32
}

// Profile is a curve in the radius/height half plane, ordered from the
// bottom of the surface to the top. A zero radius on the first or last
// sample closes that end with a pole.
type Profile []Sample

// SphereProfile samples a half circle the way BuildSphere places its rings.
func SphereProfile(radius float32, tessellation int) Profile {
	p := make(Profile, 0, tessellation+1)
	p = append(p, Sample{0, -radius})
	for i := 1; i < tessellation; i++ {
		lat := float64(i)*math.Pi/float64(tessellation) - math.Pi/2
		p = append(p, Sample{radius * float32(math.Cos(lat)), radius * float32(math.Sin(lat))})
	}
	return append(p, Sample{0, radius})
}

// CylinderProfile is a straight wall from y=0 to y=height, optionally
// closed at both ends.
func CylinderProfile(radius, height float32, capped bool) Profile {
	if capped {
		return Profile{{0, 0}, {radius, 0}, {radius, height}, {0, height}}
	}
	return Profile{{radius, 0}, {radius, height}}
}

// poles reports which ends of the profile collapse to the axis.
func (p Profile) poles() (bottom, top bool) {
	return p[0].Radius == 0, p[len(p)-1].Radius == 0
}

// Rings is the number of vertex rings the profile produces.
func (p Profile) Rings() int {
	bottom, top := p.poles()
	n := len(p)
	if bottom {
		n--
	}
	if top {
		n--
	}
	return n
}

func (p Profile) validate() error {
	if len(p) < 2 {
		return fmt.Errorf("%w: profile needs at least 2 samples, got %d", ErrInvalidInput, len(p))
	}
	for i, s := range p {
		if !validFloat(s.Radius) || !validFloat(s.Height) {
			return fmt.Errorf("%w: profile sample %d is not finite", ErrInvalidInput, i)
		}
		if s.Radius < 0 {
			return fmt.Errorf("%w: profile sample %d has negative radius", ErrInvalidInput, i)
		}
		if s.Radius == 0 && i != 0 && i != len(p)-1 {
			return fmt.Errorf("%w: profile sample %d has zero radius away from the ends", ErrInvalidInput, i)
		}
		if i > 0 && s == p[i-1] {
			return fmt.Errorf("%w: profile samples %d and %d coincide", ErrInvalidInput, i-1, i)
		}
		if i > 1 && s == p[i-2] {
			return fmt.Errorf("%w: profile folds back on itself at sample %d", ErrInvalidInput, i-1)
		}
	}
	if p.Rings() < 1 {
		return fmt.Errorf("%w: profile has no ring", ErrInvalidInput)
	}
	if p.area() < 0 {
		return fmt.Errorf("%w: profile runs from top to bottom", ErrInvalidInput)
	}
	return nil
}

// area is the signed area enclosed by the profile and the axis, positive
// when the profile runs from bottom to top.
func (p Profile) area() float64 {
	first, last := p[0], p[len(p)-1]
	pts := append(append(Profile{}, p...), Sample{0, last.Height}, Sample{0, first.Height})
	var a float64
	for i := range pts {
		u, v := pts[i], pts[(i+1)%len(pts)]
		a += float64(u.Radius)*float64(v.Height) - float64(v.Radius)*float64(u.Height)
	}
	return a / 2
}

// RevolutionVertexCount is rings*resolution plus one vertex per pole.
func RevolutionVertexCount(p Profile, resolution int) int {
	bottom, top := p.poles()
	n := p.Rings() * resolution
	if bottom {
		n++
	}
	if top {
		n++
	}
	return n
}

// RevolutionTriangleCount is one fan per pole plus two triangles per quad
// between adjacent rings.
func RevolutionTriangleCount(p Profile, resolution int) int {
	bottom, top := p.poles()
	n := 2 * resolution * (p.Rings() - 1)
	if bottom {
		n += resolution
	}
	if top {
		n += resolution
	}
	return n
}

// BuildRevolution sweeps the profile a full turn around the Y axis in
// resolution steps. Normals follow the profile tangent, U follows
// longitude like BuildSphere and V runs from 1 at the bottom to 0 at the
// top by arc length.
func BuildRevolution(profile Profile, resolution int) (*Mesh, error) {
	if err := profile.validate(); err != nil {
		return nil, err
	}
	if resolution < 3 {
		return nil, fmt.Errorf("%w: revolution resolution %d < 3", ErrInvalidInput, resolution)
	}

	arc := make([]float32, len(profile))
	for i := 1; i < len(profile); i++ {
		d := mgl32.Vec2{
			profile[i].Radius - profile[i-1].Radius,
			profile[i].Height - profile[i-1].Height,
		}
		arc[i] = arc[i-1] + d.Len()
	}
	total := arc[len(arc)-1]

	bottom, top := profile.poles()
	vtx := make([]Vertex, 0, RevolutionVertexCount(profile, resolution))

	if bottom {
		vtx = append(vtx, Vertex{
			Position: mgl32.Vec3{0, profile[0].Height, 0},
			Normal:   mgl32.Vec3{0, -1, 0},
			UV:       mgl32.Vec2{0, 1},
		})
	}

	for k, s := range profile {
		if s.Radius == 0 {
			continue
		}
		nr, nh := profileNormal(profile, k)
		v := 1 - arc[k]/total
		for j := 0; j < resolution; j++ {
			lon := float64(j) * 2 * math.Pi / float64(resolution)
			c, sn := float32(math.Cos(lon)), float32(math.Sin(lon))
			u := float32((2*math.Pi - lon) / (2 * math.Pi))
			vtx = append(vtx, Vertex{
				Position: mgl32.Vec3{s.Radius * c, s.Height, s.Radius * sn},
				Normal:   mgl32.Vec3{nr * c, nh, nr * sn},
				UV:       mgl32.Vec2{u, v},
			})
		}
	}

	if top {
		vtx = append(vtx, Vertex{
			Position: mgl32.Vec3{0, profile[len(profile)-1].Height, 0},
			Normal:   mgl32.Vec3{0, 1, 0},
			UV:       mgl32.Vec2{0, 0},
		})
	}

	rings := profile.Rings()
	first := uint32(0)
	if bottom {
		first = 1
	}
	r := uint32(resolution)
	idx := make([]uint32, 0, 3*RevolutionTriangleCount(profile, resolution))

	if bottom {
		for j := uint32(0); j < r; j++ {
			idx = append(idx, 0, first+(j+1)%r, first+j)
		}
	}

	for k := uint32(0); k+1 < uint32(rings); k++ {
		cur := first + k*r
		up := cur + r
		for j := uint32(0); j < r; j++ {
			nj := (j + 1) % r
			idx = append(idx,
				cur+j, cur+nj, up+j,
				cur+nj, up+nj, up+j)
		}
	}

	if top {
		apex := uint32(len(vtx) - 1)
		last := first + uint32(rings-1)*r
		for j := uint32(0); j < r; j++ {
			idx = append(idx, apex, last+j, last+(j+1)%r)
		}
	}

	return newMesh(vtx, idx, TriangleList), nil
}

// profileNormal is the outward unit normal of sample k in the
// radius/height plane, from the central difference of its neighbours.
func profileNormal(p Profile, k int) (nr, nh float32) {
	prev, next := k, k
	if k > 0 {
		prev = k - 1
	}
	if k < len(p)-1 {
		next = k + 1
	}
	t := mgl32.Vec2{p[next].Radius - p[prev].Radius, p[next].Height - p[prev].Height}
	n := mgl32.Vec2{t[1], -t[0]}.Normalize()
	return n[0], n[1]
}
