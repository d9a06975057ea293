// Package draw defines how scene objects reach a graphics device: a
// Drawable submits meshes through a Device using shared Effect state that
// it must leave as it found it.
package draw

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"robosim/internal/mesh"
)

// Texture is any decoded image. A nil Texture means untextured.
type Texture = image.Image

// Effect is shading state shared by every drawable in a frame.
type Effect interface {
	World() mgl32.Mat4
	SetWorld(m mgl32.Mat4)
	Texture() Texture
	SetTexture(t Texture)

	// Passes is the number of times a mesh is submitted per draw.
	Passes() int
	// Apply binds the current state for the given pass on the device.
	Apply(pass int) error
}

// Device accepts indexed geometry. It draws with whatever state the
// effect applied last.
type Device interface {
	DrawIndexed(m *mesh.Mesh) error
}

// Drawable is anything that can draw itself, rotated by angleY around
// the parent's vertical axis.
type Drawable interface {
	Draw(dev Device, fx Effect, angleY float32) error
}

// Push sets the effect's world transform and, when tex is not nil, its
// texture. The returned func restores both to their previous values.
//
//	defer draw.Push(fx, world, tex)()
func Push(fx Effect, world mgl32.Mat4, tex Texture) (restore func()) {
	oldWorld := fx.World()
	oldTex := fx.Texture()
	fx.SetWorld(world)
	if tex != nil {
		fx.SetTexture(tex)
	}
	return func() {
		fx.SetTexture(oldTex)
		fx.SetWorld(oldWorld)
	}
}

// drawWith draws meshes with world and tex pushed onto fx.
func drawWith(dev Device, fx Effect, world mgl32.Mat4, tex Texture, meshes ...*mesh.Mesh) error {
	defer Push(fx, world, tex)()
	for _, m := range meshes {
		if err := drawMesh(dev, fx, m); err != nil {
			return err
		}
	}
	return nil
}

// drawMesh applies every pass of fx and submits m once per pass.
func drawMesh(dev Device, fx Effect, m *mesh.Mesh) error {
	for pass := 0; pass < fx.Passes(); pass++ {
		if err := fx.Apply(pass); err != nil {
			return err
		}
		if err := dev.DrawIndexed(m); err != nil {
			return err
		}
	}
	return nil
}
