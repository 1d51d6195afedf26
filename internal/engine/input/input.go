// Package input maps window-system key state to logical viewer actions.
package input

// Action is a logical viewer action, not a physical key.
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionClose
	ActionToggleWireframe
	ActionScreenshot
	ActionToggleBounds
	ActionRebuildTerrain
	ActionCount // Sentinel value for array sizing
)

var actionNames = [ActionCount]string{
	ActionMoveForward:     "move_forward",
	ActionMoveBackward:    "move_backward",
	ActionMoveLeft:        "move_left",
	ActionMoveRight:       "move_right",
	ActionMoveUp:          "move_up",
	ActionMoveDown:        "move_down",
	ActionClose:           "close",
	ActionToggleWireframe: "toggle_wireframe",
	ActionScreenshot:      "screenshot",
	ActionToggleBounds:    "toggle_bounds",
	ActionRebuildTerrain:  "rebuild_terrain",
}

func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

// Snapshot is the input state sampled once per frame.
type Snapshot struct {
	Down [ActionCount]bool

	// Relative mouse motion since the previous poll, in pixels.
	MouseDX, MouseDY float32

	// CloseRequested is set when the window system asked to close.
	CloseRequested bool

	// Resized is set when the framebuffer changed size this frame.
	Resized       bool
	Width, Height int
}

// Bindings maps backend key codes to actions. One key may drive one action;
// several keys may drive the same action.
type Bindings[K comparable] map[K]Action

// Apply marks every action whose key reports down.
func (b Bindings[K]) Apply(s *Snapshot, isDown func(K) bool) {
	for key, action := range b {
		if isDown(key) {
			s.Down[action] = true
		}
	}
}

// Tracker keeps the current and previous frame state for edge detection.
type Tracker struct {
	current  [ActionCount]bool
	previous [ActionCount]bool
}

// Update advances the tracker by one frame.
func (t *Tracker) Update(s Snapshot) {
	t.previous = t.current
	t.current = s.Down
}

// Down reports whether the action is held this frame.
func (t *Tracker) Down(a Action) bool {
	return t.current[a]
}

// Pressed reports whether the action went down this frame.
func (t *Tracker) Pressed(a Action) bool {
	return t.current[a] && !t.previous[a]
}
