package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func keyEvent(typ uint32, code sdl.Scancode, repeat uint8) *sdl.KeyboardEvent {
	return &sdl.KeyboardEvent{Type: typ, Repeat: repeat, Keysym: sdl.Keysym{Scancode: code}}
}

func TestSDLKeys(t *testing.T) {
	s := NewSDL(800, 600, nil)

	s.handle(keyEvent(sdl.KEYDOWN, sdl.SCANCODE_W, 0))
	if !s.KeyDown(KeyW) || !s.KeyPressed(KeyW) {
		t.Fatal("W should be down and pressed")
	}

	s.EndFrame()
	s.handle(keyEvent(sdl.KEYDOWN, sdl.SCANCODE_W, 1))
	if !s.KeyDown(KeyW) {
		t.Error("W should stay down")
	}
	if s.KeyPressed(KeyW) {
		t.Error("key repeat should not count as a press")
	}

	s.handle(keyEvent(sdl.KEYUP, sdl.SCANCODE_W, 0))
	if s.KeyDown(KeyW) || !s.KeyReleased(KeyW) {
		t.Error("W should be released")
	}

	s.handle(keyEvent(sdl.KEYDOWN, sdl.SCANCODE_Q, 0))
	if s.KeyDown(KeyUnknown) {
		t.Error("unmapped keys must be ignored")
	}
}

func TestSDLMouse(t *testing.T) {
	s := NewSDL(800, 600, nil)

	s.handle(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 10, Y: 20, XRel: 3, YRel: -2})
	s.handle(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 15, Y: 18, XRel: 5, YRel: -2})
	if x, y := s.CursorPos(); x != 15 || y != 18 {
		t.Errorf("cursor = %v,%v", x, y)
	}
	if dx, dy := s.CursorDelta(); dx != 8 || dy != -4 {
		t.Errorf("delta = %v,%v, want accumulated 8,-4", dx, dy)
	}

	s.handle(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 40, Y: 50})
	if !s.MouseClicked(ButtonLeft) || !s.MouseButton(ButtonLeft) {
		t.Error("left button should be clicked")
	}
	s.EndFrame()
	if s.MouseClicked(ButtonLeft) || !s.MouseButton(ButtonLeft) {
		t.Error("click is an edge, hold persists")
	}
	if dx, dy := s.CursorDelta(); dx != 0 || dy != 0 {
		t.Error("delta should reset each frame")
	}
	s.handle(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT, X: 40, Y: 50})
	if s.MouseButton(ButtonLeft) {
		t.Error("left button should be up")
	}
}

func TestSDLResizeAndQuit(t *testing.T) {
	s := NewSDL(800, 600, nil)
	var got [][2]int
	s.OnResize(func(w, h int) { got = append(got, [2]int{w, h}) })

	s.handle(&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 1024, Data2: 768})
	// SIZE_CHANGED follows RESIZED with the same size.
	s.handle(&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 1024, Data2: 768})

	if len(got) != 1 || got[0] != [2]int{1024, 768} {
		t.Errorf("resize callbacks = %v", got)
	}
	if w, h := s.FramebufferSize(); w != 1024 || h != 768 {
		t.Errorf("size = %dx%d", w, h)
	}

	if s.Quit() {
		t.Fatal("quit before event")
	}
	s.handle(&sdl.QuitEvent{Type: sdl.QUIT})
	if !s.Quit() {
		t.Error("quit event not recorded")
	}
}

func TestSDLDrawableSize(t *testing.T) {
	s := NewSDL(800, 600, func() (int32, int32) { return 1600, 1200 })
	if w, h := s.FramebufferSize(); w != 1600 || h != 1200 {
		t.Errorf("size = %dx%d, want drawable size", w, h)
	}
}

func TestKeyString(t *testing.T) {
	if KeyLeftShift.String() != "LeftShift" || Key(99).String() != "unknown" {
		t.Error("unexpected key names")
	}
}
