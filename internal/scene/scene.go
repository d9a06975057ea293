// Package scene assembles the drawables described by a config.
package scene

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"robosim/internal/config"
	"robosim/internal/draw"
	"robosim/internal/mesh"
)

// Object is a named drawable placed at Position on the field. Only objects
// that turn follow the frame angle.
type Object struct {
	Name     string
	Drawable draw.Drawable
	Position mgl32.Vec3
	Turns    bool
}

type Scene struct {
	Objects    []Object
	Primitives *draw.Primitives
}

// New builds the globe, the robot and the goal. Texture files that cannot
// be read are logged and drawn untextured.
func New(cfg *config.Config, log *zap.Logger) (*Scene, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p, err := draw.NewPrimitives(cfg.Resolution)
	if err != nil {
		return nil, fmt.Errorf("scene: primitives: %w", err)
	}
	sphere, err := draw.NewSphere(LoadTexture(cfg.Sphere.Texture, log), cfg.Sphere.Position, cfg.Sphere.Radius, cfg.Sphere.Tessellation)
	if err != nil {
		return nil, fmt.Errorf("scene: sphere: %w", err)
	}
	robot, err := draw.NewWheeledBox(p,
		LoadTexture(cfg.Robot.BoxTexture, log),
		LoadTexture(cfg.Robot.WheelSideTexture, log),
		LoadTexture(cfg.Robot.WheelTexture, log),
		cfg.Robot.Length, cfg.Robot.Width, cfg.Robot.WheelRadius, cfg.Robot.Position)
	if err != nil {
		return nil, fmt.Errorf("scene: robot: %w", err)
	}
	goal, err := draw.NewHollowCylinder(p, LoadTexture(cfg.Goal.Texture, log), cfg.Goal.Radius, cfg.Goal.Length, cfg.Goal.Position)
	if err != nil {
		return nil, fmt.Errorf("scene: goal: %w", err)
	}

	logMesh(log, "sphere", sphere.Mesh)
	logMesh(log, "box", p.Box)
	logMesh(log, "cylinder side", p.CylinderSide)
	logMesh(log, "cap", p.CapTop)

	return &Scene{
		Primitives: p,
		Objects: []Object{
			{Name: "sphere", Drawable: sphere, Position: cfg.Sphere.Position, Turns: true},
			{Name: "robot", Drawable: robot, Position: cfg.Robot.Position, Turns: true},
			{Name: "goal", Drawable: goal, Position: cfg.Goal.Position},
		},
	}, nil
}

func logMesh(log *zap.Logger, name string, m *mesh.Mesh) {
	log.Debug("mesh built",
		zap.String("name", name),
		zap.Stringer("topology", m.Topology()),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()))
}

// Positions lists where each object stands, in object order.
func (s *Scene) Positions() []mgl32.Vec3 {
	ps := make([]mgl32.Vec3, len(s.Objects))
	for i, o := range s.Objects {
		ps[i] = o.Position
	}
	return ps
}

// Draw draws every object in order and stops at the first failure.
func (s *Scene) Draw(dev draw.Device, fx draw.Effect, angleY float32) error {
	for _, o := range s.Objects {
		var angle float32
		if o.Turns {
			angle = angleY
		}
		if err := o.Drawable.Draw(dev, fx, angle); err != nil {
			return fmt.Errorf("scene: draw %s: %w", o.Name, err)
		}
	}
	return nil
}

// LoadTexture decodes a PNG or JPEG file. An empty path, or a file that
// cannot be decoded, gives a nil texture.
func LoadTexture(path string, log *zap.Logger) draw.Texture {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		log.Warn("texture unavailable", zap.String("path", path), zap.Error(err))
		return nil
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		log.Warn("texture unavailable", zap.String("path", path), zap.Error(err))
		return nil
	}
	log.Debug("texture loaded",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return img
}
