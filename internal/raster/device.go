// Package raster is a headless device that draws meshes as wireframes into
// an image. It renders snapshots without a GPU.
package raster

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/go-gl/mathgl/mgl32"

	"robosim/internal/draw"
	"robosim/internal/mesh"
)

var (
	DefaultLineColor  = color.RGBA{255, 255, 0, 255}
	DefaultBackground = color.RGBA{25, 25, 25, 255}
)

// Device rasterizes triangle edges. Lines take the texture colour at the
// triangle's centre, or LineColor when no texture is bound.
type Device struct {
	LineColor color.RGBA
	// CullBack skips triangles facing away from the viewer.
	CullBack bool

	img *image.RGBA
	mvp mgl32.Mat4
	tex draw.Texture
}

func NewDevice(width, height int) *Device {
	d := &Device{
		LineColor: DefaultLineColor,
		CullBack:  true,
		img:       image.NewRGBA(image.Rect(0, 0, width, height)),
		mvp:       mgl32.Ident4(),
	}
	d.Clear(DefaultBackground)
	return d
}

func (d *Device) Image() *image.RGBA { return d.img }

func (d *Device) Clear(c color.RGBA) { Fill(d.img, c) }

// WritePNG encodes the current frame.
func (d *Device) WritePNG(w io.Writer) error {
	return png.Encode(w, d.img)
}

func (d *Device) bind(mvp mgl32.Mat4, tex draw.Texture) {
	d.mvp = mvp
	d.tex = tex
}

func (d *Device) DrawIndexed(m *mesh.Mesh) error {
	size := d.img.Rect.Size()
	for _, tri := range m.Triangles() {
		var pts [3]Point
		var uv mgl32.Vec2
		visible := true
		for k, i := range tri {
			v := m.Vertex(int(i))
			pt, ok := Project(v.Position, d.mvp, size.X, size.Y)
			if !ok {
				visible = false
				break
			}
			pts[k] = pt
			uv = uv.Add(v.UV)
		}
		if !visible {
			continue
		}
		if d.CullBack && !FrontFacing(pts[0], pts[1], pts[2]) {
			continue
		}
		col := d.color(uv.Mul(1.0 / 3))
		for k := 0; k < 3; k++ {
			a, b := pts[k], pts[(k+1)%3]
			DrawLine(d.img, a.X, a.Y, b.X, b.Y, col)
		}
	}
	return nil
}

func (d *Device) color(uv mgl32.Vec2) color.RGBA {
	if d.tex == nil {
		return d.LineColor
	}
	return Sample(d.tex, uv)
}

// Sample returns the texel nearest uv, with uv clamped to [0,1].
func Sample(tex image.Image, uv mgl32.Vec2) color.RGBA {
	b := tex.Bounds()
	if b.Empty() {
		return color.RGBA{}
	}
	u := mgl32.Clamp(uv[0], 0, 1)
	v := mgl32.Clamp(uv[1], 0, 1)
	x := b.Min.X + int(u*float32(b.Dx()-1)+0.5)
	y := b.Min.Y + int(v*float32(b.Dy()-1)+0.5)
	return color.RGBAModel.Convert(tex.At(x, y)).(color.RGBA)
}

// Effect binds its transforms and texture to a Device on Apply.
type Effect struct {
	*draw.BasicEffect
	dev *Device
}

func NewEffect(dev *Device) *Effect {
	return &Effect{BasicEffect: draw.NewBasicEffect(), dev: dev}
}

func (e *Effect) Apply(int) error {
	e.dev.bind(e.MVP(), e.Texture())
	return nil
}
