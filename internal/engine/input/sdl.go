package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

var scancodes = map[sdl.Scancode]Key{
	sdl.SCANCODE_W:      KeyW,
	sdl.SCANCODE_A:      KeyA,
	sdl.SCANCODE_S:      KeyS,
	sdl.SCANCODE_D:      KeyD,
	sdl.SCANCODE_UP:     KeyUp,
	sdl.SCANCODE_DOWN:   KeyDown,
	sdl.SCANCODE_LSHIFT: KeyLeftShift,
	sdl.SCANCODE_P:      KeyP,
	sdl.SCANCODE_ESCAPE: KeyEscape,
	sdl.SCANCODE_F12:    KeyF12,
}

var mouseButtons = map[uint8]Button{
	sdl.BUTTON_LEFT:   ButtonLeft,
	sdl.BUTTON_RIGHT:  ButtonRight,
	sdl.BUTTON_MIDDLE: ButtonMiddle,
}

// SDL polls SDL2 events into a Snapshot.
type SDL struct {
	Snapshot
	quit     bool
	onResize func(width, height int)
	drawable func() (int32, int32)
}

// NewSDL creates an SDL input source. drawable reports the framebuffer
// size (Window.DrawableSize); it may be nil, in which case resize events
// are trusted as pixel sizes.
func NewSDL(width, height int, drawable func() (int32, int32)) *SDL {
	s := &SDL{drawable: drawable}
	s.Width, s.Height = width, height
	if drawable != nil {
		w, h := drawable()
		s.Width, s.Height = int(w), int(h)
	}
	return s
}

// OnResize registers fn to run whenever the framebuffer size changes.
func (s *SDL) OnResize(fn func(width, height int)) {
	s.onResize = fn
}

// Poll drains pending events. It returns true once a quit was requested.
func (s *SDL) Poll() bool {
	s.EndFrame()
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		s.handle(event)
	}
	return s.quit
}

// Quit reports whether the window was asked to close.
func (s *SDL) Quit() bool { return s.quit }

func (s *SDL) handle(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		s.quit = true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			w, h := int(e.Data1), int(e.Data2)
			if s.drawable != nil {
				dw, dh := s.drawable()
				w, h = int(dw), int(dh)
			}
			s.resize(w, h)
		}

	case *sdl.KeyboardEvent:
		k, ok := scancodes[e.Keysym.Scancode]
		if !ok {
			return
		}
		if e.Type == sdl.KEYDOWN {
			if e.Repeat == 0 {
				s.Press(k)
			}
		} else if e.Type == sdl.KEYUP {
			s.Release(k)
		}

	case *sdl.MouseMotionEvent:
		s.X, s.Y = float32(e.X), float32(e.Y)
		s.DX += float32(e.XRel)
		s.DY += float32(e.YRel)

	case *sdl.MouseButtonEvent:
		b, ok := mouseButtons[e.Button]
		if !ok {
			return
		}
		s.X, s.Y = float32(e.X), float32(e.Y)
		if e.Type == sdl.MOUSEBUTTONDOWN {
			s.Click(b)
		} else if e.Type == sdl.MOUSEBUTTONUP {
			s.Buttons[b] = false
		}
	}
}

func (s *SDL) resize(w, h int) {
	if w == s.Width && h == s.Height {
		return
	}
	s.Width, s.Height = w, h
	if s.onResize != nil {
		s.onResize(w, h)
	}
}

var _ State = (*SDL)(nil)
