package scene

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"robosim/internal/config"
	"robosim/internal/draw"
	"robosim/internal/mesh"
	"robosim/internal/raster"
)

type recorder struct {
	fx       draw.Effect
	err      error
	textures []draw.Texture
	worlds   []mgl32.Mat4
}

func (r *recorder) DrawIndexed(*mesh.Mesh) error {
	if r.err != nil {
		return r.err
	}
	r.textures = append(r.textures, r.fx.Texture())
	r.worlds = append(r.worlds, r.fx.World())
	return nil
}

func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestLoadTexture(t *testing.T) {
	dir := t.TempDir()
	core, logs := observer.New(zap.WarnLevel)
	log := zap.New(core)

	tex := LoadTexture(writePNG(t, dir, "earth.png"), log)
	require.NotNil(t, tex)
	assert.Equal(t, image.Rect(0, 0, 4, 2), tex.Bounds())

	assert.Nil(t, LoadTexture("", log))
	assert.Equal(t, 0, logs.Len())

	assert.Nil(t, LoadTexture(filepath.Join(dir, "missing.png"), log))

	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
	assert.Nil(t, LoadTexture(bad, log))

	assert.Equal(t, 2, logs.FilterMessage("texture unavailable").Len())
}

func TestNew(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s, err := New(config.Default(), zap.New(core))
	require.NoError(t, err)

	require.Len(t, s.Objects, 3)
	assert.Equal(t, "sphere", s.Objects[0].Name)
	assert.True(t, s.Objects[1].Turns)
	assert.False(t, s.Objects[2].Turns)
	assert.Equal(t, 4, logs.FilterMessage("mesh built").Len())
}

func TestNewRejectsBadGeometry(t *testing.T) {
	cfg := config.Default()
	cfg.Sphere.Tessellation = 1
	_, err := New(cfg, nil)
	assert.ErrorIs(t, err, mesh.ErrInvalidInput)

	cfg = config.Default()
	cfg.Resolution = 2
	_, err = New(cfg, nil)
	assert.ErrorIs(t, err, mesh.ErrInvalidInput)

	cfg = config.Default()
	cfg.Robot.WheelRadius = -0.5
	_, err = New(cfg, nil)
	assert.ErrorIs(t, err, mesh.ErrInvalidInput)

	cfg = config.Default()
	cfg.Goal.Length = 0
	_, err = New(cfg, nil)
	assert.ErrorIs(t, err, mesh.ErrInvalidInput)
}

func TestPositions(t *testing.T) {
	cfg := config.Default()
	cfg.Robot.Position = mgl32.Vec3{1, 0, 2}
	s, err := New(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, []mgl32.Vec3{cfg.Sphere.Position, {1, 0, 2}, cfg.Goal.Position}, s.Positions())
}

func TestDraw(t *testing.T) {
	cfg := config.Default()
	cfg.Sphere.Texture = writePNG(t, t.TempDir(), "earth.png")
	s, err := New(cfg, nil)
	require.NoError(t, err)

	fx := draw.NewBasicEffect()
	dev := &recorder{fx: fx}
	require.NoError(t, s.Draw(dev, fx, 0.7))

	// sphere, robot body and four three-part wheels, goal
	require.Len(t, dev.textures, 15)
	assert.NotNil(t, dev.textures[0])
	assert.Nil(t, dev.textures[14])
	assert.Nil(t, fx.Texture())
	assert.Equal(t, mgl32.Ident4(), fx.World())

	goal := s.Objects[2].Drawable.(*draw.HollowCylinder)
	assert.Equal(t, goal.World(mgl32.Ident4(), 0), dev.worlds[14])
}

func TestDrawError(t *testing.T) {
	s, err := New(config.Default(), nil)
	require.NoError(t, err)

	fail := errors.New("lost device")
	fx := draw.NewBasicEffect()
	err = s.Draw(&recorder{fx: fx, err: fail}, fx, 1)
	assert.ErrorIs(t, err, fail)
	assert.Contains(t, err.Error(), "sphere")
	assert.Equal(t, mgl32.Ident4(), fx.World())
}

func TestDrawRaster(t *testing.T) {
	s, err := New(config.Default(), nil)
	require.NoError(t, err)

	dev := raster.NewDevice(96, 72)
	fx := raster.NewEffect(dev)
	fx.View = mgl32.LookAtV(mgl32.Vec3{3, 3, 3}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	fx.Projection = mgl32.Perspective(mgl32.DegToRad(45), 96.0/72, 0.1, 100)

	require.NoError(t, s.Draw(dev, fx, 0.3))

	lit := 0
	img := dev.Image()
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
			if img.RGBAAt(x, y) != raster.DefaultBackground {
				lit++
			}
		}
	}
	assert.Positive(t, lit)
	assert.Equal(t, mgl32.Ident4(), fx.World())
}
