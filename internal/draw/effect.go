package draw

import "github.com/go-gl/mathgl/mgl32"

// BasicEffect keeps world, view and projection transforms and a texture.
// It has a single pass and binds nothing on Apply; devices embed it and
// override Apply to push the state to their pipeline.
type BasicEffect struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4

	world   mgl32.Mat4
	texture Texture
}

func NewBasicEffect() *BasicEffect {
	return &BasicEffect{
		View:       mgl32.Ident4(),
		Projection: mgl32.Ident4(),
		world:      mgl32.Ident4(),
	}
}

func (e *BasicEffect) World() mgl32.Mat4 { return e.world }
func (e *BasicEffect) SetWorld(m mgl32.Mat4) { e.world = m }
func (e *BasicEffect) Texture() Texture { return e.texture }
func (e *BasicEffect) SetTexture(t Texture) { e.texture = t }
func (e *BasicEffect) Passes() int { return 1 }
func (e *BasicEffect) Apply(int) error { return nil }

// MVP is projection * view * world.
func (e *BasicEffect) MVP() mgl32.Mat4 {
	return e.Projection.Mul4(e.View).Mul4(e.world)
}
