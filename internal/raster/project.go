package raster

import "github.com/go-gl/mathgl/mgl32"

// maxNDC bounds how far off screen a vertex may project before its
// triangle is dropped rather than stepped pixel by pixel.
const maxNDC = 8

// Point is a projected vertex: pixel coordinates plus normalised device
// coordinates, y up.
type Point struct {
	X, Y int
	NDC  mgl32.Vec3
}

// Project transforms p by mvp into screen space for a width x height
// image. ok is false when p lies behind the eye or far outside the view.
func Project(p mgl32.Vec3, mvp mgl32.Mat4, width, height int) (pt Point, ok bool) {
	clip := mvp.Mul4x1(p.Vec4(1))
	if clip[3] <= 0 {
		return Point{}, false
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	if ndc[0] < -maxNDC || ndc[0] > maxNDC || ndc[1] < -maxNDC || ndc[1] > maxNDC {
		return Point{}, false
	}
	x := (ndc[0]*0.5 + 0.5) * float32(width)
	y := (0.5 - ndc[1]*0.5) * float32(height)
	return Point{X: int(x), Y: int(y), NDC: ndc}, true
}

// FrontFacing reports whether a projected triangle is clockwise on screen,
// the winding every mesh uses for faces pointing at the viewer.
func FrontFacing(a, b, c Point) bool {
	ab := b.NDC.Sub(a.NDC)
	ac := c.NDC.Sub(a.NDC)
	return ab[0]*ac[1]-ab[1]*ac[0] < 0
}
