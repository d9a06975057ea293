package draw

import "github.com/go-gl/mathgl/mgl32"

// WheeledBox is a robot body on four wheels. Length runs along Z, width
// along X; the wheels sit on the ground plane below CenterPosition.
type WheeledBox struct {
	CenterPosition mgl32.Vec3

	box    *Box
	wheels [4]*Cylinder
}

// WheelLayout holds the placement of a WheeledBox's parts relative to its
// centre.
type WheelLayout struct {
	WheelWidth float32
	BoxHeight  float32
	// BoxCorner is the minimum corner of the body.
	BoxCorner mgl32.Vec3
	// Wheel origins in front left, front right, rear left, rear right
	// order. Each wheel extends WheelWidth in +X from its origin, so the
	// inner faces lie at width/2 and -width/2.
	Wheels [4]mgl32.Vec3
}

// Layout computes the part offsets of a wheeled box.
func Layout(length, width, wheelRadius float32) WheelLayout {
	wheelWidth := width / 10
	boxHeight := wheelRadius

	plusX := width / 2
	minusX := -width/2 - wheelWidth
	front := length/2 - 1.2*wheelRadius
	rear := -front

	return WheelLayout{
		WheelWidth: wheelWidth,
		BoxHeight:  boxHeight,
		BoxCorner:  mgl32.Vec3{-width / 2, wheelRadius - boxHeight/2, -length / 2},
		Wheels: [4]mgl32.Vec3{
			{plusX, wheelRadius, front},
			{minusX, wheelRadius, front},
			{plusX, wheelRadius, rear},
			{minusX, wheelRadius, rear},
		},
	}
}

// NewWheeledBox builds the body and wheels from the shared primitives.
func NewWheeledBox(p *Primitives, boxTex, wheelSideTex, wheelTex Texture, length, width, wheelRadius float32, center mgl32.Vec3) (*WheeledBox, error) {
	if err := checkSizes("wheeled box", length, width, wheelRadius); err != nil {
		return nil, err
	}
	l := Layout(length, width, wheelRadius)
	body, err := NewBox(p, boxTex, width, l.BoxHeight, length, center.Add(l.BoxCorner))
	if err != nil {
		return nil, err
	}
	w := &WheeledBox{CenterPosition: center, box: body}
	for i, off := range l.Wheels {
		w.wheels[i], err = NewCylinder(p, wheelTex, wheelSideTex, wheelRadius, l.WheelWidth, center.Add(off))
		if err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Parts returns the body followed by the four wheels.
func (w *WheeledBox) Parts() []Drawable {
	return []Drawable{w.box, w.wheels[0], w.wheels[1], w.wheels[2], w.wheels[3]}
}

func (w *WheeledBox) Draw(dev Device, fx Effect, angleY float32) error {
	for _, part := range w.Parts() {
		if err := part.Draw(dev, fx, angleY); err != nil {
			return err
		}
	}
	return nil
}
