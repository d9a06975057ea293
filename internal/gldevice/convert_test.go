package gldevice

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"

	"robosim/internal/mesh"
)

// rowImage holds its pixels in a slice, which makes the type itself
// unusable as a map key.
type rowImage struct {
	px []color.RGBA
}

func (r rowImage) ColorModel() color.Model { return color.RGBAModel }
func (r rowImage) Bounds() image.Rectangle { return image.Rect(0, 0, len(r.px), 1) }
func (r rowImage) At(x, y int) color.Color { return r.px[x] }

func TestGLMode(t *testing.T) {
	assert.Equal(t, uint32(gl.TRIANGLES), glMode(mesh.TriangleList))
	assert.Equal(t, uint32(gl.TRIANGLE_STRIP), glMode(mesh.TriangleStrip))
}

func TestToRGBA(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	src := image.NewRGBA(image.Rect(2, 3, 5, 5))
	src.SetRGBA(2, 3, red)
	src.SetRGBA(4, 4, red)

	got := toRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 3, 2), got.Rect)
	assert.Equal(t, red, got.RGBAAt(0, 0))
	assert.Equal(t, red, got.RGBAAt(2, 1))
	assert.Equal(t, color.RGBA{}, got.RGBAAt(1, 0))

	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	gray.SetGray(0, 0, color.Gray{Y: 128})
	assert.Equal(t, color.RGBA{128, 128, 128, 255}, toRGBA(gray).RGBAAt(0, 0))

	row := toRGBA(rowImage{px: []color.RGBA{red, {0, 0, 255, 255}}})
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, row.RGBAAt(1, 0))
}

func TestCacheable(t *testing.T) {
	assert.True(t, cacheable(image.NewRGBA(image.Rect(0, 0, 1, 1))))
	assert.False(t, cacheable(rowImage{px: make([]color.RGBA, 1)}))
	assert.False(t, cacheable(nil))
}
