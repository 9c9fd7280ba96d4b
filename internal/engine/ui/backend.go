// Package ui hosts the Dear ImGui window and turns its IO state into
// per-frame input for the game.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/blackjack/internal/engine/input"
	"github.com/Faultbox/blackjack/internal/logger"
)

// latinGlyphRanges covers Basic Latin and Latin-1 Supplement.
var latinGlyphRanges = []imgui.Wchar{
	0x0020, 0x00FF,
	0,
}

// fontPaths are tried in order when Config.Font is empty.
var fontPaths = []string{
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"C:\\Windows\\Fonts\\segoeui.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

var imguiKeys = map[input.Key]imgui.Key{
	input.KeyW:         imgui.KeyW,
	input.KeyA:         imgui.KeyA,
	input.KeyS:         imgui.KeyS,
	input.KeyD:         imgui.KeyD,
	input.KeyUp:        imgui.KeyUpArrow,
	input.KeyDown:      imgui.KeyDownArrow,
	input.KeyLeftShift: imgui.KeyLeftShift,
	input.KeyP:         imgui.KeyP,
	input.KeyEscape:    imgui.KeyEscape,
	input.KeyF12:       imgui.KeyF12,
}

var imguiButtons = map[input.Button]imgui.MouseButton{
	input.ButtonLeft:   imgui.MouseButtonLeft,
	input.ButtonRight:  imgui.MouseButtonRight,
	input.ButtonMiddle: imgui.MouseButtonMiddle,
}

// Config holds window settings for the ImGui backend.
type Config struct {
	Title  string
	Width  int
	Height int
	// Font is a TTF file loaded at FontSize. Empty tries common system fonts
	// and falls back to the ImGui default.
	Font     string
	FontSize float32
}

// Backend owns the SDL window created by cimgui-go and samples ImGui IO
// into an input.Snapshot once per frame. Cursor and framebuffer size are
// in framebuffer pixels.
type Backend struct {
	input.Snapshot

	backend  backend.Backend[sdlbackend.SDLWindowFlags]
	cfg      Config
	hasMouse bool
	log      *zap.Logger
}

// NewBackend creates the window and its GL context. OpenGL function
// pointers are loaded separately by the caller.
func NewBackend(cfg Config) (*Backend, error) {
	b := &Backend{cfg: cfg, log: logger.Named("ui")}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(b.loadFont)
	b.backend.SetBgColor(imgui.NewVec4(0.0, 0.0, 0.0, 1.0))
	b.backend.CreateWindow(cfg.Title, cfg.Width, cfg.Height)

	b.Width, b.Height = cfg.Width, cfg.Height
	return b, nil
}

func (b *Backend) loadFont() {
	path := b.cfg.Font
	if path == "" {
		for _, p := range fontPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}
	if path == "" {
		b.log.Debug("no font found, using ImGui default")
		return
	}

	size := b.cfg.FontSize
	if size <= 0 {
		size = 16
	}

	fontCfg := imgui.NewFontConfig()
	defer fontCfg.Destroy()

	if font := imgui.CurrentIO().Fonts().AddFontFromFileTTFV(path, size, fontCfg, &latinGlyphRanges[0]); font == nil {
		b.log.Warn("failed to load font", zap.String("path", path))
		return
	}
	b.log.Debug("font loaded", zap.String("path", path))
}

// Poll refreshes the snapshot from ImGui IO. Call it first in every frame.
func (b *Backend) Poll() {
	b.EndFrame()

	io := imgui.CurrentIO()
	size := io.DisplaySize()
	scale := io.DisplayFramebufferScale()
	b.Width = int(size.X * scale.X)
	b.Height = int(size.Y * scale.Y)

	for k, ik := range imguiKeys {
		b.SetKey(k, imgui.IsKeyDown(ik))
	}
	for btn, ib := range imguiButtons {
		b.SetButton(btn, imgui.IsMouseDown(ib))
	}

	// ImGui reports -FLT_MAX while the cursor is outside the window.
	pos := imgui.MousePos()
	if pos.X < -1e30 || pos.Y < -1e30 {
		b.hasMouse = false
		return
	}
	x, y := pos.X*scale.X, pos.Y*scale.Y
	if !b.hasMouse {
		b.X, b.Y = x, y
		b.hasMouse = true
	}
	b.MoveCursor(x, y)
}

// Run blocks running frame until the window closes.
func (b *Backend) Run(frame func()) {
	b.backend.Run(frame)
}

// Close asks the backend to end Run after the current frame.
func (b *Backend) Close() {
	b.backend.SetShouldClose(true)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

var _ input.State = (*Backend)(nil)
