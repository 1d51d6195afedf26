package window

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/excavator/internal/engine/input"
	"github.com/Faultbox/excavator/internal/logger"
)

var sdlBindings = input.Bindings[sdl.Scancode]{
	sdl.SCANCODE_W:      input.ActionMoveForward,
	sdl.SCANCODE_UP:     input.ActionMoveForward,
	sdl.SCANCODE_S:      input.ActionMoveBackward,
	sdl.SCANCODE_DOWN:   input.ActionMoveBackward,
	sdl.SCANCODE_A:      input.ActionMoveLeft,
	sdl.SCANCODE_LEFT:   input.ActionMoveLeft,
	sdl.SCANCODE_D:      input.ActionMoveRight,
	sdl.SCANCODE_RIGHT:  input.ActionMoveRight,
	sdl.SCANCODE_SPACE:  input.ActionMoveUp,
	sdl.SCANCODE_E:      input.ActionMoveUp,
	sdl.SCANCODE_LSHIFT: input.ActionMoveDown,
	sdl.SCANCODE_Q:      input.ActionMoveDown,
	sdl.SCANCODE_ESCAPE: input.ActionClose,
	sdl.SCANCODE_F1:     input.ActionToggleWireframe,
	sdl.SCANCODE_F2:     input.ActionToggleBounds,
	sdl.SCANCODE_F5:     input.ActionRebuildTerrain,
	sdl.SCANCODE_F12:    input.ActionScreenshot,
}

// sdlWindow wraps an SDL2 window and OpenGL context.
type sdlWindow struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
}

func newSDLWindow(cfg Config) (*sdlWindow, error) {
	w := &sdlWindow{config: cfg}

	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Attributes must be set before the window exists
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, glMajor)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, glMinor)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		logger.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}

	if cfg.MouseLook {
		sdl.SetRelativeMouseMode(true)
	}

	logger.Info("window created",
		zap.String("backend", "sdl"),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

func (w *sdlWindow) Poll() input.Snapshot {
	var s input.Snapshot

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			s.CloseRequested = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				s.Resized = true
			}

		case *sdl.MouseMotionEvent:
			if w.config.MouseLook {
				s.MouseDX += float32(e.XRel)
				s.MouseDY += float32(e.YRel)
			}
		}
	}

	if s.Resized {
		s.Width, s.Height = w.FramebufferSize()
	}

	keys := sdl.GetKeyboardState()
	sdlBindings.Apply(&s, func(sc sdl.Scancode) bool {
		return int(sc) < len(keys) && keys[sc] != 0
	})

	return s
}

func (w *sdlWindow) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

func (w *sdlWindow) FramebufferSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

func (w *sdlWindow) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

func (w *sdlWindow) Close() {
	logger.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}
