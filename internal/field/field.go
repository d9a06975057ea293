// Package field holds the competition field dimensions used by the
// minimap overlay. Lengths are in feet unless the name says otherwise.
package field

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"robosim/internal/raster"
)

const (
	CameraRatio = 640.0 / 480.0

	Width        = 24 + 8.0/12
	Height       = 54.0
	RatioZX      = Height / Width
	PictureRatio = 961.0 / 351.0

	HighGoalHeight            = 3 + 1.0/12
	highGoalBottomAboveCarpet = 6 + 10.75/12
	HeightAboveCarpet         = highGoalBottomAboveCarpet + HighGoalHeight
	RatioYX                   = Width / HeightAboveCarpet
	LowGoalWidth              = 2 + 5.0/12

	FootInMeters   = 0.3048
	HeightInMeters = Height * FootInMeters
	WidthInMeters  = Width * FootInMeters

	DynamicHeightAboveCarpet = 5 + 8.0/12
	DynamicWidth             = 1 + 11.5/12
	DynamicHeight            = 4.0 / 12
	StaticHeightAboveCarpet  = 3 + 1.5/12
	StaticWidth              = 4.0 / 12
	StaticHeight             = 2 + 8.0/12
	StaticBlackStripesWidth  = 2.0 / 12

	// PixelsPerFoot is the minimap scale.
	PixelsPerFoot  = 10.0
	PixelsPerMeter = PixelsPerFoot / FootInMeters
)

func FeetToMeters(ft float32) float32 { return ft * FootInMeters }

func MetersToFeet(m float32) float32 { return m / FootInMeters }

// MetersToPixels converts a field length to minimap pixels.
func MetersToPixels(m float32) float32 { return m * PixelsPerMeter }

// Minimap maps field positions onto a top down image of the field. The
// field's width runs along the image X axis and its length along Y, with
// the field centre at the image centre.
type Minimap struct {
	Bounds image.Rectangle
}

// NewMinimap sizes a minimap for the whole field at PixelsPerFoot.
func NewMinimap() Minimap {
	w := int(math.Round(Width * PixelsPerFoot))
	h := int(math.Round(Height * PixelsPerFoot))
	return Minimap{Bounds: image.Rect(0, 0, w, h)}
}

// Point converts a field position in metres, X across and Z along the
// field as in the 3D scene, to a pixel. ok is false off the field.
func (m Minimap) Point(pos mgl32.Vec3) (p image.Point, ok bool) {
	c := m.Bounds.Min.Add(m.Bounds.Size().Div(2))
	x := c.X + int(MetersToPixels(pos[0]))
	y := c.Y - int(MetersToPixels(pos[2]))
	p = image.Pt(x, y)
	return p, p.In(m.Bounds)
}

// Minimap colours.
var (
	Carpet = color.RGBA{40, 90, 40, 255}
	Lines  = color.RGBA{235, 235, 235, 255}
	Marker = color.RGBA{230, 40, 40, 255}
)

// MarkerSize is the half width of the cross drawn for each position.
const MarkerSize = 3

// Render draws the field outline and its centre line, then a cross at
// every position that lands on the field.
func (m Minimap) Render(positions []mgl32.Vec3) *image.RGBA {
	img := image.NewRGBA(m.Bounds)
	raster.Fill(img, Carpet)

	r := m.Bounds
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1
	raster.DrawLine(img, x0, y0, x1, y0, Lines)
	raster.DrawLine(img, x1, y0, x1, y1, Lines)
	raster.DrawLine(img, x1, y1, x0, y1, Lines)
	raster.DrawLine(img, x0, y1, x0, y0, Lines)
	cy := r.Min.Y + r.Dy()/2
	raster.DrawLine(img, x0, cy, x1, cy, Lines)

	for _, pos := range positions {
		p, ok := m.Point(pos)
		if !ok {
			continue
		}
		raster.DrawLine(img, p.X-MarkerSize, p.Y-MarkerSize, p.X+MarkerSize, p.Y+MarkerSize, Marker)
		raster.DrawLine(img, p.X-MarkerSize, p.Y+MarkerSize, p.X+MarkerSize, p.Y-MarkerSize, Marker)
	}
	return img
}
