// Package window creates the OS window and OpenGL context and samples input.
package window

import (
	"fmt"
	"runtime"

	"github.com/Faultbox/excavator/internal/engine/input"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// OpenGL context version requested from every backend.
const (
	glMajor = 4
	glMinor = 1
)

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	MouseLook  bool // Capture the cursor and report relative motion
}

// Window is an OS window owning a current OpenGL context.
type Window interface {
	// Poll drains pending window-system events and samples key state.
	Poll() input.Snapshot
	// SwapBuffers presents the frame; blocks for VSync when enabled.
	SwapBuffers()
	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (width, height int)
	SetTitle(title string)
	Close()
}

// New creates a window with the named backend ("sdl" or "glfw").
func New(backend string, cfg Config) (Window, error) {
	switch backend {
	case "sdl", "":
		w, err := newSDLWindow(cfg)
		if err != nil {
			return nil, err
		}
		return w, nil
	case "glfw":
		w, err := newGLFWWindow(cfg)
		if err != nil {
			return nil, err
		}
		return w, nil
	default:
		return nil, fmt.Errorf("unknown window backend %q", backend)
	}
}
