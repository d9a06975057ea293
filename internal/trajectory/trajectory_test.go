package trajectory

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shot = Shot{Speed: 10, Angle: 45}

func TestAnalytic(t *testing.T) {
	p := DefaultParams()
	tr, err := Analytic(shot, p)
	require.NoError(t, err)

	wantRange := shot.Speed * shot.Speed * math.Sin(2*mgl64.DegToRad(shot.Angle)) / p.Gravity
	sin := math.Sin(mgl64.DegToRad(shot.Angle))
	wantApex := shot.Speed * shot.Speed * sin * sin / (2 * p.Gravity)

	assert.InDelta(t, wantRange, tr.Range(), 1e-9)
	assert.InDelta(t, wantApex, tr.Apex()[1], 1e-3)
	assert.InDelta(t, wantRange/2, tr.Apex()[0], 0.05)
	assert.Equal(t, mgl64.Vec2{}, tr.Points[0])
	assert.InDelta(t, 0, tr.Points[len(tr.Points)-1][1], 1e-9)
	for i, pt := range tr.Points {
		assert.GreaterOrEqual(t, pt[1], -1e-9, "point %d below ground", i)
	}
	assert.InDelta(t, 2*shot.Speed*sin/p.Gravity, tr.Duration(), p.DT)
}

func TestIntegrateWithoutDrag(t *testing.T) {
	p := DefaultParams()
	exact, err := Analytic(shot, p)
	require.NoError(t, err)
	euler, err := Integrate(shot, p)
	require.NoError(t, err)

	assert.InDelta(t, exact.Range(), euler.Range(), 0.01*exact.Range())
	assert.InDelta(t, exact.Apex()[1], euler.Apex()[1], 0.01*exact.Apex()[1])
	assert.Equal(t, float64(0), euler.Points[len(euler.Points)-1][1])
}

func TestIntegrateWithDrag(t *testing.T) {
	p := DefaultParams()
	free, err := Integrate(shot, p)
	require.NoError(t, err)

	p.Drag = 0.05
	dragged, err := Integrate(shot, p)
	require.NoError(t, err)

	assert.Less(t, dragged.Range(), free.Range())
	assert.Less(t, dragged.Apex()[1], free.Apex()[1])
	// drag pulls the apex towards the launch point relative to the range
	assert.Greater(t, dragged.Apex()[0]/dragged.Range(), 0.5)

	p.Drag = 0.2
	heavier, err := Integrate(shot, p)
	require.NoError(t, err)
	assert.Less(t, heavier.Range(), dragged.Range())
}

func TestApexParabola(t *testing.T) {
	p := DefaultParams()
	p.Drag = 0.05
	dragged, err := Integrate(shot, p)
	require.NoError(t, err)
	apex := dragged.Apex()

	par, err := ApexParabola(apex, shot, p)
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec2{}, par.Points[0])
	assert.InDelta(t, apex[1], par.Apex()[1], 1e-3)
	assert.InDelta(t, 2*apex[0], par.Range(), 1e-9)
	assert.Equal(t, float64(0), par.Points[len(par.Points)-1][1])

	_, err = ApexParabola(mgl64.Vec2{0, 1}, shot, p)
	assert.ErrorIs(t, err, ErrInvalidShot)
}

func TestPositionAt(t *testing.T) {
	tr, err := Analytic(shot, DefaultParams())
	require.NoError(t, err)

	p, landed := tr.PositionAt(0)
	assert.False(t, landed)
	assert.Equal(t, tr.Points[0], p)

	p, landed = tr.PositionAt(10 * tr.DT)
	assert.False(t, landed)
	assert.Equal(t, tr.Points[10], p)

	p, landed = tr.PositionAt(-1)
	assert.False(t, landed)
	assert.Equal(t, tr.Points[0], p)

	p, landed = tr.PositionAt(1e6)
	assert.True(t, landed)
	assert.Equal(t, tr.Points[len(tr.Points)-1], p)

	_, landed = Trajectory{}.PositionAt(1)
	assert.True(t, landed)
	assert.Zero(t, Trajectory{}.Range())
	assert.Zero(t, Trajectory{}.Duration())
}

func TestInvalidShot(t *testing.T) {
	tests := []struct {
		name string
		shot Shot
		p    Params
	}{
		{"zero speed", Shot{0, 45}, DefaultParams()},
		{"flat", Shot{10, 0}, DefaultParams()},
		{"vertical", Shot{10, 90}, DefaultParams()},
		{"zero dt", shot, Params{Gravity: 9.81}},
		{"no gravity", shot, Params{DT: 0.01}},
		{"negative drag", shot, Params{DT: 0.01, Gravity: 9.81, Drag: -1}},
		{"nan speed", Shot{math.NaN(), 45}, DefaultParams()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Analytic(tt.shot, tt.p)
			assert.ErrorIs(t, err, ErrInvalidShot)
			_, err = Integrate(tt.shot, tt.p)
			assert.ErrorIs(t, err, ErrInvalidShot)
			_, err = ApexParabola(mgl64.Vec2{1, 1}, tt.shot, tt.p)
			assert.ErrorIs(t, err, ErrInvalidShot)
		})
	}
}

func TestCompare(t *testing.T) {
	p := DefaultParams()
	p.Drag = 0.05
	c, err := Compare(shot, p)
	require.NoError(t, err)

	still := DefaultParams()
	analytic, err := Analytic(shot, still)
	require.NoError(t, err)
	assert.Equal(t, analytic, c.Analytic)

	drag, err := Integrate(shot, p)
	require.NoError(t, err)
	assert.Equal(t, drag, c.Drag)

	assert.Less(t, c.Drag.Range(), c.Euler.Range())
	assert.InDelta(t, c.Drag.Apex()[1], c.Fit.Apex()[1], 1e-2)

	_, err = Compare(Shot{Speed: 10, Angle: 0}, p)
	assert.ErrorIs(t, err, ErrInvalidShot)
}
