package gldevice

import (
	"image"
	imagedraw "image/draw"
	"reflect"

	"github.com/go-gl/gl/v4.1-core/gl"

	"robosim/internal/draw"
	"robosim/internal/mesh"
)

// glMode maps a mesh topology to the primitive mode passed to DrawElements.
func glMode(t mesh.Topology) uint32 {
	if t == mesh.TriangleStrip {
		return gl.TRIANGLE_STRIP
	}
	return gl.TRIANGLES
}

// toRGBA copies img into a zero based RGBA image ready for TexImage2D.
func toRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	imagedraw.Draw(rgba, rgba.Bounds(), img, bounds.Min, imagedraw.Src)
	return rgba
}

// cacheable reports whether t can key the texture cache.
func cacheable(t draw.Texture) bool {
	return t != nil && reflect.TypeOf(t).Comparable()
}
