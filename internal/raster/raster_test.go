package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robosim/internal/draw"
	"robosim/internal/mesh"
)

var red = color.RGBA{255, 0, 0, 255}

func countColor(img *image.RGBA, c color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestDrawLine(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))

	DrawLine(img, 0, 0, 9, 0, red)
	assert.Equal(t, 10, countColor(img, red))

	DrawLine(img, 0, 2, 0, 2, red)
	assert.Equal(t, red, img.RGBAAt(0, 2))
	assert.Equal(t, 11, countColor(img, red))

	// clipped: only the in-bounds half lands
	DrawLine(img, -5, 5, 4, 5, red)
	assert.Equal(t, 16, countColor(img, red))

	diag := image.NewRGBA(image.Rect(0, 0, 10, 10))
	DrawLine(diag, 0, 0, 9, 9, red)
	for i := 0; i < 10; i++ {
		assert.Equal(t, red, diag.RGBAAt(i, i))
	}
}

func TestFill(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	Fill(img, red)
	assert.Equal(t, 6, countColor(img, red))
}

func TestProject(t *testing.T) {
	pt, ok := Project(mgl32.Vec3{0, 0, 0}, mgl32.Ident4(), 100, 50)
	require.True(t, ok)
	assert.Equal(t, 50, pt.X)
	assert.Equal(t, 25, pt.Y)

	pt, ok = Project(mgl32.Vec3{-1, 1, 0}, mgl32.Ident4(), 100, 50)
	require.True(t, ok)
	assert.Equal(t, 0, pt.X)
	assert.Equal(t, 0, pt.Y)

	persp := mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100)
	_, ok = Project(mgl32.Vec3{0, 0, 5}, persp, 100, 100)
	assert.False(t, ok, "behind the eye")

	_, ok = Project(mgl32.Vec3{100, 0, 0}, mgl32.Ident4(), 100, 100)
	assert.False(t, ok, "far off screen")
}

func TestFrontFacing(t *testing.T) {
	a := Point{NDC: mgl32.Vec3{0, 0, 0}}
	b := Point{NDC: mgl32.Vec3{0, 1, 0}}
	c := Point{NDC: mgl32.Vec3{1, 0, 0}}
	assert.True(t, FrontFacing(a, b, c))
	assert.False(t, FrontFacing(a, c, b))
}

func TestSample(t *testing.T) {
	tex := image.NewRGBA(image.Rect(0, 0, 2, 1))
	tex.SetRGBA(0, 0, red)
	tex.SetRGBA(1, 0, color.RGBA{0, 0, 255, 255})
	assert.Equal(t, red, Sample(tex, mgl32.Vec2{0, 0}))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, Sample(tex, mgl32.Vec2{1, 1}))
	assert.Equal(t, red, Sample(tex, mgl32.Vec2{-3, 0}))
	assert.Equal(t, color.RGBA{}, Sample(image.NewRGBA(image.Rectangle{}), mgl32.Vec2{}))
}

func TestDeviceCulling(t *testing.T) {
	front, err := mesh.BuildDisk(16, 0, mesh.FacingPosZ)
	require.NoError(t, err)
	back, err := mesh.BuildDisk(16, 0, mesh.FacingNegZ)
	require.NoError(t, err)

	dev := NewDevice(64, 64)
	fx := NewEffect(dev)
	fx.SetWorld(mgl32.Scale3D(0.5, 0.5, 0.5))
	require.NoError(t, fx.Apply(0))

	require.NoError(t, dev.DrawIndexed(back))
	assert.Zero(t, countColor(dev.Image(), DefaultLineColor))

	require.NoError(t, dev.DrawIndexed(front))
	assert.NotZero(t, countColor(dev.Image(), DefaultLineColor))

	dev.Clear(DefaultBackground)
	dev.CullBack = false
	require.NoError(t, dev.DrawIndexed(back))
	assert.NotZero(t, countColor(dev.Image(), DefaultLineColor))
}

func TestDeviceTextureColor(t *testing.T) {
	tex := image.NewUniform(red)
	box, err := draw.NewBox(mustPrimitives(t), tex, 1, 1, 1, mgl32.Vec3{-0.5, -0.5, -0.5})
	require.NoError(t, err)

	dev := NewDevice(64, 64)
	fx := NewEffect(dev)
	fx.View = mgl32.LookAtV(mgl32.Vec3{2, 2, 2}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	fx.Projection = mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100)

	require.NoError(t, box.Draw(dev, fx, 0.3))
	assert.NotZero(t, countColor(dev.Image(), red))
	assert.Zero(t, countColor(dev.Image(), DefaultLineColor))
	assert.Equal(t, mgl32.Ident4(), fx.World())
	assert.Nil(t, fx.Texture())
}

func TestWritePNG(t *testing.T) {
	dev := NewDevice(8, 4)
	var buf bytes.Buffer
	require.NoError(t, dev.WritePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
}

func mustPrimitives(t *testing.T) *draw.Primitives {
	t.Helper()
	p, err := draw.NewPrimitives(12)
	require.NoError(t, err)
	return p
}
