// Package input defines the per-frame input snapshot the game reads and
// its SDL2 implementation.
package input

// Key is a keyboard key the game reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeftShift
	KeyP
	KeyEscape
	KeyF12
	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown:   "unknown",
	KeyW:         "W",
	KeyA:         "A",
	KeyS:         "S",
	KeyD:         "D",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeftShift: "LeftShift",
	KeyP:         "P",
	KeyEscape:    "Escape",
	KeyF12:       "F12",
}

// String returns the key name for logs.
func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// Button is a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	buttonCount
)

// State is a snapshot of input for the current frame. Pressed and
// Released report edges since the previous frame; KeyDown and MouseButton
// report the held state.
type State interface {
	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (width, height int)
	KeyDown(k Key) bool
	KeyPressed(k Key) bool
	KeyReleased(k Key) bool
	MouseButton(b Button) bool
	MouseClicked(b Button) bool
	// CursorPos returns the cursor in pixels, origin top-left.
	CursorPos() (x, y float32)
	// CursorDelta returns the cursor movement since the previous frame.
	CursorDelta() (dx, dy float32)
}

// Snapshot is a plain State. Implementations fill one per frame; tests
// build them directly.
type Snapshot struct {
	Width, Height int
	Down          [keyCount]bool
	Pressed       [keyCount]bool
	Released      [keyCount]bool
	Buttons       [buttonCount]bool
	Clicked       [buttonCount]bool
	X, Y          float32
	DX, DY        float32
}

// FramebufferSize returns the drawable size in pixels.
func (s *Snapshot) FramebufferSize() (int, int) { return s.Width, s.Height }

// KeyDown reports whether k is held.
func (s *Snapshot) KeyDown(k Key) bool { return validKey(k) && s.Down[k] }

// KeyPressed reports whether k went down this frame.
func (s *Snapshot) KeyPressed(k Key) bool { return validKey(k) && s.Pressed[k] }

// KeyReleased reports whether k went up this frame.
func (s *Snapshot) KeyReleased(k Key) bool { return validKey(k) && s.Released[k] }

// MouseButton reports whether b is held.
func (s *Snapshot) MouseButton(b Button) bool { return validButton(b) && s.Buttons[b] }

// MouseClicked reports whether b went down this frame.
func (s *Snapshot) MouseClicked(b Button) bool { return validButton(b) && s.Clicked[b] }

// CursorPos returns the cursor position in framebuffer pixels.
func (s *Snapshot) CursorPos() (float32, float32) {
	return s.X, s.Y
}

// CursorDelta returns the cursor movement since the previous frame.
func (s *Snapshot) CursorDelta() (float32, float32) {
	return s.DX, s.DY
}

// Press marks k as pressed this frame and held.
func (s *Snapshot) Press(k Key) {
	if validKey(k) {
		s.Down[k] = true
		s.Pressed[k] = true
	}
}

// Release marks k as released this frame.
func (s *Snapshot) Release(k Key) {
	if validKey(k) {
		s.Down[k] = false
		s.Released[k] = true
	}
}

// Click marks b as pressed this frame and held.
func (s *Snapshot) Click(b Button) {
	if validButton(b) {
		s.Buttons[b] = true
		s.Clicked[b] = true
	}
}

// SetKey records the held state of k, deriving the press or release edge
// from the previous state. For backends that poll instead of sending events.
func (s *Snapshot) SetKey(k Key, down bool) {
	if !validKey(k) || s.Down[k] == down {
		return
	}
	if down {
		s.Press(k)
	} else {
		s.Release(k)
	}
}

// SetButton records the held state of b, marking a click on the press edge.
func (s *Snapshot) SetButton(b Button, down bool) {
	if !validButton(b) {
		return
	}
	if down && !s.Buttons[b] {
		s.Clicked[b] = true
	}
	s.Buttons[b] = down
}

// MoveCursor sets the cursor position and adds the travel to the delta.
func (s *Snapshot) MoveCursor(x, y float32) {
	s.DX += x - s.X
	s.DY += y - s.Y
	s.X, s.Y = x, y
}

// EndFrame clears edges and the cursor delta, keeping held state.
func (s *Snapshot) EndFrame() {
	s.Pressed = [keyCount]bool{}
	s.Released = [keyCount]bool{}
	s.Clicked = [buttonCount]bool{}
	s.DX, s.DY = 0, 0
}

func validKey(k Key) bool       { return k > KeyUnknown && k < keyCount }
func validButton(b Button) bool { return b >= 0 && b < buttonCount }

var _ State = (*Snapshot)(nil)
