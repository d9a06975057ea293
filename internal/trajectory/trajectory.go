// Package trajectory computes the flight of a ball shot from the origin
// over flat ground, with and without air drag. Units are metres and
// seconds; Y points up.
package trajectory

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultDT      = 0.005
	DefaultGravity = 9.81

	// maxSteps stops integration of shots that would take too long to land.
	maxSteps = 1_000_000
)

var ErrInvalidShot = errors.New("trajectory: invalid shot")

// Shot is a launch speed and an elevation angle in degrees.
type Shot struct {
	Speed float64
	Angle float64
}

// Params control the integration.
type Params struct {
	DT      float64
	Gravity float64
	// Drag is k in a = -g*y - k*|v|*v.
	Drag float64
}

func DefaultParams() Params {
	return Params{DT: DefaultDT, Gravity: DefaultGravity}
}

func (s Shot) validate(p Params) error {
	switch {
	case !(s.Speed > 0) || math.IsInf(s.Speed, 0):
		return fmt.Errorf("%w: speed %v", ErrInvalidShot, s.Speed)
	case !(s.Angle > 0 && s.Angle < 90):
		return fmt.Errorf("%w: angle %v not in (0, 90)", ErrInvalidShot, s.Angle)
	case !(p.DT > 0):
		return fmt.Errorf("%w: dt %v", ErrInvalidShot, p.DT)
	case !(p.Gravity > 0):
		return fmt.Errorf("%w: gravity %v", ErrInvalidShot, p.Gravity)
	case !(p.Drag >= 0):
		return fmt.Errorf("%w: drag %v", ErrInvalidShot, p.Drag)
	}
	return nil
}

// Velocity is the initial velocity vector.
func (s Shot) Velocity() mgl64.Vec2 {
	a := mgl64.DegToRad(s.Angle)
	return mgl64.Vec2{s.Speed * math.Cos(a), s.Speed * math.Sin(a)}
}

// Trajectory is the ball position sampled every DT seconds from launch.
// The last point lies on the ground.
type Trajectory struct {
	Points []mgl64.Vec2
	DT     float64
}

// Apex is the highest sampled point.
func (t Trajectory) Apex() mgl64.Vec2 {
	var apex mgl64.Vec2
	for _, p := range t.Points {
		if p[1] > apex[1] {
			apex = p
		}
	}
	return apex
}

// Range is the horizontal distance to the landing point.
func (t Trajectory) Range() float64 {
	if len(t.Points) == 0 {
		return 0
	}
	return t.Points[len(t.Points)-1][0]
}

// Duration is the time of flight covered by the samples.
func (t Trajectory) Duration() float64 {
	if len(t.Points) < 2 {
		return 0
	}
	return float64(len(t.Points)-1) * t.DT
}

// PositionAt returns the sample for elapsed seconds since launch. Once the
// ball has landed it stays at the last point and landed is true.
func (t Trajectory) PositionAt(elapsed float64) (p mgl64.Vec2, landed bool) {
	if len(t.Points) == 0 {
		return mgl64.Vec2{}, true
	}
	i := int(elapsed / t.DT)
	if i < 0 {
		i = 0
	}
	if i >= len(t.Points)-1 {
		return t.Points[len(t.Points)-1], true
	}
	return t.Points[i], false
}

// Analytic samples the closed form drag free parabola.
func Analytic(s Shot, p Params) (Trajectory, error) {
	if err := s.validate(p); err != nil {
		return Trajectory{}, err
	}
	v := s.Velocity()
	flight := 2 * v[1] / p.Gravity
	n := int(flight / p.DT)
	if n > maxSteps {
		return Trajectory{}, fmt.Errorf("%w: flight of %.0fs is too long", ErrInvalidShot, flight)
	}

	pts := make([]mgl64.Vec2, 0, n+2)
	for i := 0; i <= n; i++ {
		tm := float64(i) * p.DT
		pts = append(pts, mgl64.Vec2{v[0] * tm, v[1]*tm - 0.5*p.Gravity*tm*tm})
	}
	if last := pts[len(pts)-1]; last[1] > 0 {
		pts = append(pts, mgl64.Vec2{v[0] * flight, 0})
	}
	return Trajectory{Points: pts, DT: p.DT}, nil
}

// Integrate steps the motion with explicit Euler, applying quadratic drag
// when p.Drag is positive. The landing point is interpolated onto the
// ground.
func Integrate(s Shot, p Params) (Trajectory, error) {
	if err := s.validate(p); err != nil {
		return Trajectory{}, err
	}
	pos := mgl64.Vec2{}
	vel := s.Velocity()
	pts := []mgl64.Vec2{pos}

	for step := 0; ; step++ {
		if step == maxSteps {
			return Trajectory{}, fmt.Errorf("%w: did not land in %d steps", ErrInvalidShot, maxSteps)
		}
		acc := mgl64.Vec2{0, -p.Gravity}.Sub(vel.Mul(p.Drag * vel.Len()))
		next := pos.Add(vel.Mul(p.DT))
		vel = vel.Add(acc.Mul(p.DT))
		if next[1] <= 0 {
			f := pos[1] / (pos[1] - next[1])
			pts = append(pts, mgl64.Vec2{pos[0] + f*(next[0]-pos[0]), 0})
			break
		}
		pos = next
		pts = append(pts, pos)
	}
	return Trajectory{Points: pts, DT: p.DT}, nil
}

// ApexParabola is the drag free looking parabola that leaves the origin and
// peaks at apex, sampled with the horizontal step of shot s. It
// approximates a measured drag trajectory by its highest point.
func ApexParabola(apex mgl64.Vec2, s Shot, p Params) (Trajectory, error) {
	if err := s.validate(p); err != nil {
		return Trajectory{}, err
	}
	if !(apex[0] > 0 && apex[1] > 0) {
		return Trajectory{}, fmt.Errorf("%w: apex %v", ErrInvalidShot, apex)
	}
	dx := s.Velocity()[0] * p.DT
	end := 2 * apex[0]
	n := int(end / dx)
	if n > maxSteps {
		return Trajectory{}, fmt.Errorf("%w: parabola needs %d samples", ErrInvalidShot, n)
	}

	k := apex[1] / (apex[0] * apex[0])
	pts := make([]mgl64.Vec2, 0, n+2)
	for i := 0; i <= n; i++ {
		x := float64(i) * dx
		d := x - apex[0]
		pts = append(pts, mgl64.Vec2{x, math.Max(0, apex[1]-k*d*d)})
	}
	if last := pts[len(pts)-1]; last[1] > 0 {
		pts = append(pts, mgl64.Vec2{end, 0})
	}
	return Trajectory{Points: pts, DT: p.DT}, nil
}

// Comparison holds one shot flown by every model.
type Comparison struct {
	Analytic Trajectory
	Euler    Trajectory
	Drag     Trajectory
	// Fit is the apex parabola of Drag.
	Fit Trajectory
}

// Compare flies s without drag in closed form and with Euler steps, and
// with p.Drag, then fits the apex parabola to the drag flight.
func Compare(s Shot, p Params) (Comparison, error) {
	var c Comparison
	still := p
	still.Drag = 0

	var g errgroup.Group
	g.Go(func() (err error) {
		c.Analytic, err = Analytic(s, still)
		return err
	})
	g.Go(func() (err error) {
		c.Euler, err = Integrate(s, still)
		return err
	})
	g.Go(func() (err error) {
		c.Drag, err = Integrate(s, p)
		return err
	})
	if err := g.Wait(); err != nil {
		return Comparison{}, err
	}

	fit, err := ApexParabola(c.Drag.Apex(), s, p)
	if err != nil {
		return Comparison{}, err
	}
	c.Fit = fit
	return c, nil
}
