package draw

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"robosim/internal/mesh"
)

// Primitives are the unit meshes shared by every box and cylinder. Each
// drawable scales them into place at draw time.
type Primitives struct {
	Box          *mesh.Mesh
	CylinderSide *mesh.Mesh
	CapBottom    *mesh.Mesh
	CapTop       *mesh.Mesh
}

// NewPrimitives builds the shared unit meshes with the given circle resolution.
func NewPrimitives(resolution int) (*Primitives, error) {
	side, err := mesh.BuildCylinderSide(resolution)
	if err != nil {
		return nil, err
	}
	bottom, err := mesh.BuildDisk(resolution, 0, mesh.FacingNegZ)
	if err != nil {
		return nil, err
	}
	top, err := mesh.BuildDisk(resolution, 1, mesh.FacingPosZ)
	if err != nil {
		return nil, err
	}
	return &Primitives{
		Box:          mesh.BuildBox(),
		CylinderSide: side,
		CapBottom:    bottom,
		CapTop:       top,
	}, nil
}

// Sphere is a textured globe spinning in place.
type Sphere struct {
	Mesh     *mesh.Mesh
	Texture  Texture
	Position mgl32.Vec3
	Radius   float32
}

func NewSphere(tex Texture, position mgl32.Vec3, radius float32, tessellation int) (*Sphere, error) {
	m, err := mesh.BuildSphere(radius, tessellation)
	if err != nil {
		return nil, err
	}
	return &Sphere{Mesh: m, Texture: tex, Position: position, Radius: radius}, nil
}

func (s *Sphere) Draw(dev Device, fx Effect, angleY float32) error {
	world := fx.World().Mul4(mgl32.Translate3D(s.Position.Elem())).Mul4(mgl32.HomogRotate3DY(angleY))
	return drawWith(dev, fx, world, s.Texture, s.Mesh)
}

// Box is an axis aligned box with its minimum corner at Position.
type Box struct {
	Mesh     *mesh.Mesh
	Texture  Texture
	Width    float32 // along X
	Height   float32 // along Y
	Length   float32 // along Z
	Position mgl32.Vec3
}

// checkSizes rejects any size that is not positive and finite.
func checkSizes(kind string, sizes ...float32) error {
	for _, v := range sizes {
		if !(v > 0) || math32.IsInf(v, 1) {
			return fmt.Errorf("%w: %s sizes %v", mesh.ErrInvalidInput, kind, sizes)
		}
	}
	return nil
}

func NewBox(p *Primitives, tex Texture, width, height, length float32, position mgl32.Vec3) (*Box, error) {
	if err := checkSizes("box", width, height, length); err != nil {
		return nil, err
	}
	return &Box{Mesh: p.Box, Texture: tex, Width: width, Height: height, Length: length, Position: position}, nil
}

// World is the box transform under parent, rotated by angleY.
func (b *Box) World(parent mgl32.Mat4, angleY float32) mgl32.Mat4 {
	return parent.
		Mul4(mgl32.HomogRotate3DY(angleY)).
		Mul4(mgl32.Translate3D(b.Position.Elem())).
		Mul4(mgl32.Scale3D(b.Width, b.Height, b.Length))
}

func (b *Box) Draw(dev Device, fx Effect, angleY float32) error {
	return drawWith(dev, fx, b.World(fx.World(), angleY), b.Texture, b.Mesh)
}

// HollowCylinder is an open tube lying along X, starting at
// InitialPosition and extending Height in +X.
type HollowCylinder struct {
	Side            *mesh.Mesh
	Texture         Texture
	Radius          float32
	Height          float32
	InitialPosition mgl32.Vec3
}

func NewHollowCylinder(p *Primitives, tex Texture, radius, height float32, position mgl32.Vec3) (*HollowCylinder, error) {
	if err := checkSizes("cylinder", radius, height); err != nil {
		return nil, err
	}
	return &HollowCylinder{Side: p.CylinderSide, Texture: tex, Radius: radius, Height: height, InitialPosition: position}, nil
}

// World maps the unit Z aligned cylinder into place: scale, turn its axis
// onto X, translate, then rotate with the parent.
func (c *HollowCylinder) World(parent mgl32.Mat4, angleY float32) mgl32.Mat4 {
	return parent.
		Mul4(mgl32.HomogRotate3DY(angleY)).
		Mul4(mgl32.Translate3D(c.InitialPosition.Elem())).
		Mul4(mgl32.HomogRotate3DY(math.Pi / 2)).
		Mul4(mgl32.Scale3D(c.Radius, c.Radius, c.Height))
}

func (c *HollowCylinder) Draw(dev Device, fx Effect, angleY float32) error {
	return drawWith(dev, fx, c.World(fx.World(), angleY), c.Texture, c.Side)
}

// Cylinder is a HollowCylinder closed at both ends. The side uses
// Texture and the caps SideTexture.
type Cylinder struct {
	HollowCylinder
	CapBottom   *mesh.Mesh
	CapTop      *mesh.Mesh
	SideTexture Texture
}

func NewCylinder(p *Primitives, circumference, side Texture, radius, height float32, position mgl32.Vec3) (*Cylinder, error) {
	hollow, err := NewHollowCylinder(p, circumference, radius, height, position)
	if err != nil {
		return nil, err
	}
	return &Cylinder{
		HollowCylinder: *hollow,
		CapBottom:      p.CapBottom,
		CapTop:         p.CapTop,
		SideTexture:    side,
	}, nil
}

func (c *Cylinder) Draw(dev Device, fx Effect, angleY float32) error {
	world := c.World(fx.World(), angleY)
	if err := drawWith(dev, fx, world, c.Texture, c.Side); err != nil {
		return err
	}
	return drawWith(dev, fx, world, c.SideTexture, c.CapBottom, c.CapTop)
}
