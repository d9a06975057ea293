// Package config loads the simulator settings from YAML or TOML.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"robosim/internal/field"
	"robosim/internal/mesh"
	"robosim/internal/trajectory"
)

type Config struct {
	LogLevel string `yaml:"log_level" toml:"log_level"`
	Window   Window `yaml:"window" toml:"window"`
	// Resolution is the number of steps around every cylinder.
	Resolution int `yaml:"resolution" toml:"resolution"`
	// SpinRate is the scene rotation speed in radians per second.
	SpinRate   float32    `yaml:"spin_rate" toml:"spin_rate"`
	Sphere     Sphere     `yaml:"sphere" toml:"sphere"`
	Robot      Robot      `yaml:"robot" toml:"robot"`
	Goal       Goal       `yaml:"goal" toml:"goal"`
	Trajectory Trajectory `yaml:"trajectory" toml:"trajectory"`
}

type Window struct {
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	Title  string `yaml:"title" toml:"title"`
}

type Sphere struct {
	Radius       float32    `yaml:"radius" toml:"radius"`
	Tessellation int        `yaml:"tessellation" toml:"tessellation"`
	Position     mgl32.Vec3 `yaml:"position" toml:"position"`
	Texture      string     `yaml:"texture" toml:"texture"`
}

type Robot struct {
	Length           float32    `yaml:"length" toml:"length"`
	Width            float32    `yaml:"width" toml:"width"`
	WheelRadius      float32    `yaml:"wheel_radius" toml:"wheel_radius"`
	Position         mgl32.Vec3 `yaml:"position" toml:"position"`
	BoxTexture       string     `yaml:"box_texture" toml:"box_texture"`
	WheelSideTexture string     `yaml:"wheel_side_texture" toml:"wheel_side_texture"`
	WheelTexture     string     `yaml:"wheel_texture" toml:"wheel_texture"`
}

// Goal is a hollow cylinder lying across the field.
type Goal struct {
	Radius   float32    `yaml:"radius" toml:"radius"`
	Length   float32    `yaml:"length" toml:"length"`
	Position mgl32.Vec3 `yaml:"position" toml:"position"`
	Texture  string     `yaml:"texture" toml:"texture"`
}

type Trajectory struct {
	Speed   float64 `yaml:"speed" toml:"speed"`
	Angle   float64 `yaml:"angle" toml:"angle"`
	DT      float64 `yaml:"dt" toml:"dt"`
	Gravity float64 `yaml:"gravity" toml:"gravity"`
	Drag    float64 `yaml:"drag" toml:"drag"`
}

// Shot and Params split the trajectory settings for the trajectory package.
func (t Trajectory) Shot() trajectory.Shot {
	return trajectory.Shot{Speed: t.Speed, Angle: t.Angle}
}

func (t Trajectory) Params() trajectory.Params {
	return trajectory.Params{DT: t.DT, Gravity: t.Gravity, Drag: t.Drag}
}

// Default is a robot beside a globe with a goal tube sized after the
// field's dynamic goal.
func Default() *Config {
	p := trajectory.DefaultParams()
	return &Config{
		LogLevel:   "info",
		Window:     Window{Width: 800, Height: 600, Title: "robosim"},
		Resolution: mesh.DefaultResolution,
		SpinRate:   0.5,
		Sphere: Sphere{
			Radius:       0.3,
			Tessellation: 16,
			Position:     mgl32.Vec3{1.2, 0.3, 0},
		},
		Robot: Robot{
			Length:      0.9,
			Width:       0.7,
			WheelRadius: 0.1,
		},
		Goal: Goal{
			Radius:   field.FeetToMeters(field.DynamicHeight / 2),
			Length:   field.FeetToMeters(field.DynamicWidth),
			Position: mgl32.Vec3{-field.FeetToMeters(field.DynamicWidth / 2), field.FeetToMeters(field.DynamicHeightAboveCarpet) / 2, -1.5},
		},
		Trajectory: Trajectory{
			Speed:   10,
			Angle:   45,
			DT:      p.DT,
			Gravity: p.Gravity,
			Drag:    0.05,
		},
	}
}

// Load decodes YAML over the defaults, so a file only lists what it changes.
func Load(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("config: %w", err)
	}
	return validated(c)
}

// LoadTOML is Load for TOML documents.
func LoadTOML(r io.Reader) (*Config, error) {
	c := Default()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return validated(c)
}

func validated(c *Config) (*Config, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile picks the decoder from the file extension: .toml for TOML,
// anything else for YAML.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return LoadTOML(f)
	}
	return Load(f)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf("config: "+format, args...))
		}
	}
	_, lerr := zapcore.ParseLevel(c.LogLevel)
	check(lerr == nil, "log level %q", c.LogLevel)
	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Resolution >= 3, "resolution %d < 3", c.Resolution)
	check(c.Sphere.Radius > 0, "sphere radius %v", c.Sphere.Radius)
	check(c.Sphere.Tessellation >= 2, "sphere tessellation %d < 2", c.Sphere.Tessellation)
	check(c.Robot.Length > 0 && c.Robot.Width > 0, "robot size %vx%v", c.Robot.Length, c.Robot.Width)
	check(c.Robot.WheelRadius > 0, "robot wheel radius %v", c.Robot.WheelRadius)
	check(c.Goal.Radius > 0 && c.Goal.Length > 0, "goal size %v by %v", c.Goal.Radius, c.Goal.Length)
	check(c.Trajectory.Speed > 0, "trajectory speed %v", c.Trajectory.Speed)
	check(c.Trajectory.Angle > 0 && c.Trajectory.Angle < 90, "trajectory angle %v", c.Trajectory.Angle)
	check(c.Trajectory.DT > 0, "trajectory dt %v", c.Trajectory.DT)
	check(c.Trajectory.Gravity > 0, "trajectory gravity %v", c.Trajectory.Gravity)
	check(c.Trajectory.Drag >= 0, "trajectory drag %v", c.Trajectory.Drag)
	return err
}
