package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"robosim/internal/config"
	"robosim/internal/field"
	"robosim/internal/gldevice"
	"robosim/internal/logging"
	"robosim/internal/raster"
	"robosim/internal/scene"
	"robosim/internal/trajectory"
)

func main() {
	configPath := flag.String("config", "", "YAML or TOML config file")
	snapshot := flag.String("snapshot", "", "render one frame to this PNG file and exit")
	minimap := flag.String("minimap", "", "render the top down field map to this PNG file and exit")
	showTrajectory := flag.Bool("trajectory", false, "log the configured shot and exit")
	logLevel := flag.String("log-level", "", "override the config log level")
	flag.Parse()

	cfg, cfgErr := loadConfig(*configPath)
	level := *logLevel
	if level == "" && cfg != nil {
		level = cfg.LogLevel
	}
	log, err := logging.New(level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer log.Sync()
	if cfgErr != nil {
		log.Fatal("failed to load config", zap.Error(cfgErr))
	}

	if *showTrajectory {
		if err := logTrajectories(log, cfg.Trajectory); err != nil {
			log.Fatal("failed to compute trajectory", zap.Error(err))
		}
		return
	}

	s, err := scene.New(cfg, log)
	if err != nil {
		log.Fatal("failed to build scene", zap.Error(err))
	}

	if *snapshot != "" || *minimap != "" {
		if *snapshot != "" {
			if err := writeSnapshot(*snapshot, cfg.Window, s); err != nil {
				log.Fatal("failed to write snapshot", zap.Error(err))
			}
			log.Info("snapshot written", zap.String("path", *snapshot))
		}
		if *minimap != "" {
			if err := writeMinimap(*minimap, s); err != nil {
				log.Fatal("failed to write minimap", zap.Error(err))
			}
			log.Info("minimap written", zap.String("path", *minimap))
		}
		return
	}

	if err := view(cfg, s, log); err != nil {
		log.Fatal("viewer stopped", zap.Error(err))
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFile(path)
}

func camera(width, height int) (view, projection mgl32.Mat4) {
	projection = mgl32.Perspective(mgl32.DegToRad(45.0), float32(width)/float32(height), 0.1, 100.0)
	view = mgl32.LookAtV(mgl32.Vec3{3, 3, 3}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	return view, projection
}

func writeSnapshot(path string, w config.Window, s *scene.Scene) error {
	dev := raster.NewDevice(w.Width, w.Height)
	fx := raster.NewEffect(dev)
	fx.View, fx.Projection = camera(w.Width, w.Height)
	if err := s.Draw(dev, fx, 0); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dev.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeMinimap(path string, s *scene.Scene) error {
	img := field.NewMinimap().Render(s.Positions())
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func logTrajectories(log *zap.Logger, cfg config.Trajectory) error {
	c, err := trajectory.Compare(cfg.Shot(), cfg.Params())
	if err != nil {
		return err
	}
	for _, t := range []struct {
		model string
		path  trajectory.Trajectory
	}{
		{"analytic", c.Analytic},
		{"euler", c.Euler},
		{"drag", c.Drag},
		{"apex parabola", c.Fit},
	} {
		apex := t.path.Apex()
		log.Info("trajectory",
			zap.String("model", t.model),
			zap.Float64("range", t.path.Range()),
			zap.Float64("apex_x", apex[0]),
			zap.Float64("apex_y", apex[1]),
			zap.Float64("duration", t.path.Duration()),
			zap.Int("samples", len(t.path.Points)))
	}
	return nil
}

func view(cfg *config.Config, s *scene.Scene, log *zap.Logger) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	w := cfg.Window
	window, err := glfw.CreateWindow(w.Width, w.Height, w.Title, nil, nil)
	if err != nil {
		return err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return err
	}
	log.Info("opengl ready", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	dev, err := gldevice.New(log)
	if err != nil {
		return err
	}
	defer dev.Close()

	fx := gldevice.NewEffect(dev)
	fx.View, fx.Projection = camera(w.Width, w.Height)

	angle := 0.0
	lastFrameTime := glfw.GetTime()
	lastFpsTime := lastFrameTime
	frameCount := 0

	for !window.ShouldClose() {
		currentTime := glfw.GetTime()
		deltaTime := currentTime - lastFrameTime
		lastFrameTime = currentTime

		frameCount++
		if currentTime-lastFpsTime >= 1.0 {
			window.SetTitle(fmt.Sprintf("%s | FPS: %d", w.Title, frameCount))
			log.Info("frame rate", zap.Int("fps", frameCount))
			frameCount = 0
			lastFpsTime = currentTime
		}

		dev.Clear()
		angle += float64(cfg.SpinRate) * deltaTime
		if err := s.Draw(dev, fx, float32(angle)); err != nil {
			return err
		}

		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}
