// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/excavator/internal/logger"
)

// Config holds all viewer settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Render     RenderConfig     `yaml:"render"`
	Camera     CameraConfig     `yaml:"camera"`
	Shaders    ShaderConfig     `yaml:"shaders"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// Window backends.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Backend    string `yaml:"backend"` // "sdl" or "glfw"
}

// MaxTerrainSize keeps Size×Size vertex indices well inside uint32.
const MaxTerrainSize = 4096

// TerrainConfig holds height grid settings.
type TerrainConfig struct {
	Size    int     `yaml:"size"`    // Grid is Size×Size samples
	Spacing float32 `yaml:"spacing"` // World units between samples
}

// RenderConfig holds initial rasterization state.
type RenderConfig struct {
	Wireframe  bool       `yaml:"wireframe"`
	ClearColor [3]float32 `yaml:"clear_color"` // RGB, 0-1
}

// CameraConfig holds fly camera and lens settings. Angles are in degrees.
type CameraConfig struct {
	Position         [3]float32 `yaml:"position"`
	Yaw              float32    `yaml:"yaw"`
	Pitch            float32    `yaml:"pitch"`
	Speed            float32    `yaml:"speed"` // World units per frame while a key is held
	FOV              float32    `yaml:"fov"`
	Near             float32    `yaml:"near"`
	Far              float32    `yaml:"far"`
	PitchLimit       float32    `yaml:"pitch_limit"` // 0 = unbounded
	MouseLook        bool       `yaml:"mouse_look"`
	MouseSensitivity float32    `yaml:"mouse_sensitivity"` // Degrees per pixel
}

// ShaderConfig holds shader source paths. Empty paths select the built-in sources.
type ShaderConfig struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
	Strict   bool   `yaml:"strict"` // Abort startup on compile or link errors
}

// Screenshot formats.
const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // "png" or "bmp"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:   "Excavation Simulator",
			Width:   1280,
			Height:  720,
			VSync:   true,
			Backend: BackendSDL,
		},
		Terrain: TerrainConfig{
			Size:    32,
			Spacing: 0.1,
		},
		Render: RenderConfig{
			Wireframe:  true,
			ClearColor: [3]float32{0.53, 0.81, 0.92},
		},
		Camera: CameraConfig{
			Position:         [3]float32{0, 0, 3},
			Yaw:              90,
			Pitch:            0,
			Speed:            0.05,
			FOV:              45,
			Near:             0.1,
			Far:              100,
			MouseSensitivity: 0.1,
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Format: FormatPNG,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every setting the viewer cannot start with.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0,
		"window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.Backend == BackendSDL || c.Window.Backend == BackendGLFW,
		"unknown window backend %q", c.Window.Backend)
	check(c.Terrain.Size >= 2 && c.Terrain.Size <= MaxTerrainSize,
		"terrain size must be in [2, %d], got %d", MaxTerrainSize, c.Terrain.Size)
	check(c.Terrain.Spacing > 0, "terrain spacing must be positive, got %v", c.Terrain.Spacing)
	for _, ch := range c.Render.ClearColor {
		if ch < 0 || ch > 1 {
			errs = append(errs, fmt.Errorf("render clear_color channels must be in [0, 1], got %v", c.Render.ClearColor))
			break
		}
	}
	check(c.Camera.Speed >= 0, "camera speed must not be negative, got %v", c.Camera.Speed)
	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "camera fov must be in (0, 180), got %v", c.Camera.FOV)
	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near,
		"camera depth range must satisfy 0 < near < far, got %v..%v", c.Camera.Near, c.Camera.Far)
	check(c.Camera.PitchLimit >= 0, "camera pitch_limit must not be negative, got %v", c.Camera.PitchLimit)
	check(c.Screenshot.Format == FormatPNG || c.Screenshot.Format == FormatBMP,
		"unknown screenshot format %q", c.Screenshot.Format)
	check((c.Shaders.Vertex == "") == (c.Shaders.Fragment == ""),
		"shaders.vertex and shaders.fragment must be set together")
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
