package viewer

import "fmt"

// InitError is a startup failure the viewer cannot recover from.
type InitError struct {
	Stage string // "terrain", "window", "opengl", "shader" or "screenshot"
	Err   error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init %s: %v", e.Stage, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
