package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/Faultbox/excavator/internal/engine/input"
	"github.com/Faultbox/excavator/internal/logger"
)

var glfwBindings = input.Bindings[glfw.Key]{
	glfw.KeyW:         input.ActionMoveForward,
	glfw.KeyUp:        input.ActionMoveForward,
	glfw.KeyS:         input.ActionMoveBackward,
	glfw.KeyDown:      input.ActionMoveBackward,
	glfw.KeyA:         input.ActionMoveLeft,
	glfw.KeyLeft:      input.ActionMoveLeft,
	glfw.KeyD:         input.ActionMoveRight,
	glfw.KeyRight:     input.ActionMoveRight,
	glfw.KeySpace:     input.ActionMoveUp,
	glfw.KeyE:         input.ActionMoveUp,
	glfw.KeyLeftShift: input.ActionMoveDown,
	glfw.KeyQ:         input.ActionMoveDown,
	glfw.KeyEscape:    input.ActionClose,
	glfw.KeyF1:        input.ActionToggleWireframe,
	glfw.KeyF2:        input.ActionToggleBounds,
	glfw.KeyF5:        input.ActionRebuildTerrain,
	glfw.KeyF12:       input.ActionScreenshot,
}

// glfwWindow wraps a GLFW window and its OpenGL context.
type glfwWindow struct {
	config Config
	win    *glfw.Window

	resized        bool
	lastX, lastY   float64
	cursorTracking bool
}

func newGLFWWindow(cfg Config) (*glfwWindow, error) {
	logger.Info("initializing GLFW")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw.Init failed: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, glMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, glMinor)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw.CreateWindow failed: %w", err)
	}
	win.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &glfwWindow{config: cfg, win: win}
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, _, _ int) {
		w.resized = true
	})
	if cfg.MouseLook {
		win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	}

	logger.Info("window created",
		zap.String("backend", "glfw"),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

func (w *glfwWindow) Poll() input.Snapshot {
	w.resized = false
	glfw.PollEvents()

	var s input.Snapshot
	s.CloseRequested = w.win.ShouldClose()

	if w.resized {
		s.Resized = true
		s.Width, s.Height = w.FramebufferSize()
	}

	if w.config.MouseLook {
		x, y := w.win.GetCursorPos()
		if w.cursorTracking {
			s.MouseDX = float32(x - w.lastX)
			s.MouseDY = float32(y - w.lastY)
		}
		w.lastX, w.lastY = x, y
		w.cursorTracking = true
	}

	glfwBindings.Apply(&s, func(k glfw.Key) bool {
		return w.win.GetKey(k) == glfw.Press
	})

	return s
}

func (w *glfwWindow) SwapBuffers() {
	w.win.SwapBuffers()
}

func (w *glfwWindow) FramebufferSize() (int, int) {
	return w.win.GetFramebufferSize()
}

func (w *glfwWindow) SetTitle(title string) {
	w.win.SetTitle(title)
}

func (w *glfwWindow) Close() {
	logger.Info("closing window")
	w.win.Destroy()
	glfw.Terminate()
}
