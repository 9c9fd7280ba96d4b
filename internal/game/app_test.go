package game

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blackjack/internal/config"
	"github.com/Faultbox/blackjack/internal/engine/gpu"
	"github.com/Faultbox/blackjack/internal/engine/gpu/gputest"
	"github.com/Faultbox/blackjack/internal/engine/input"
	"github.com/Faultbox/blackjack/internal/engine/model"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type fakeOverlay struct {
	draws int
	wants bool
}

func (o *fakeOverlay) Draw()            { o.draws++ }
func (o *fakeOverlay) WantsInput() bool { return o.wants }

// boxLoader loads every model as a unit cube and records the ids it saw.
type boxLoader struct {
	loaded []string
	failOn string
}

func (l *boxLoader) load(dev gpu.Device, _ model.TextureSource, id, _ string) (*model.Model, error) {
	if id == l.failOn {
		return nil, errors.New("boom")
	}
	l.loaded = append(l.loaded, id)
	mesh, err := model.NewMesh(dev, model.MeshData{
		Positions:  []float32{-0.5, -0.5, -0.5, 0.5, 0.5, 0.5, 0.5, -0.5, 0.5},
		Normals:    make([]float32, 9),
		Tangents:   make([]float32, 9),
		Bitangents: make([]float32, 9),
		TexCoords:  make([]float32, 6),
		Indices:    []uint32{0, 1, 2},
		AABBMin:    mgl32.Vec3{-0.5, -0.5, -0.5},
		AABBMax:    mgl32.Vec3{0.5, 0.5, 0.5},
	})
	if err != nil {
		return nil, err
	}
	mat := model.NewMaterial()
	mat.AddMesh(mesh)
	return model.New(id, []*model.Material{mat}), nil
}

type harness struct {
	app    *App
	dev    *gputest.Device
	in     *input.Snapshot
	clock  *fakeClock
	loader *boxLoader
}

func newHarness(t *testing.T, mutate func(*config.Config)) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.Textures.Default = ""
	cfg.Screenshots.Dir = t.TempDir()
	if mutate != nil {
		mutate(cfg)
	}

	h := &harness{
		dev:    gputest.New(),
		in:     &input.Snapshot{Width: 800, Height: 600},
		clock:  &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		loader: &boxLoader{},
	}
	app, err := New(cfg, h.dev, h.in, WithClock(h.clock.Now), WithModelLoader(h.loader.load))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(app.Close)
	h.app = app
	return h
}

// frame advances the clock by d, runs one frame and clears input edges.
func (h *harness) frame(d time.Duration) {
	h.clock.advance(d)
	h.app.Frame()
	h.in.EndFrame()
}

func (h *harness) play(t *testing.T) {
	t.Helper()
	if err := h.app.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
}

func TestNewStartsInMainMenu(t *testing.T) {
	h := newHarness(t, func(c *config.Config) {
		c.Camera.Position = config.Vec3{1, 2, 3}
	})

	if got := h.app.State(); got != StateMainMenu {
		t.Errorf("state = %v, want %v", got, StateMainMenu)
	}
	if h.dev.ViewportSize != [2]int{800, 600} {
		t.Errorf("viewport = %v", h.dev.ViewportSize)
	}
	if got := h.app.Scene().Camera().Position(); got != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("camera position = %v", got)
	}
	if len(h.loader.loaded) != 0 {
		t.Errorf("models loaded before Play: %v", h.loader.loaded)
	}
}

func TestNewFallsBackToWhiteTexture(t *testing.T) {
	h := newHarness(t, func(c *config.Config) {
		c.Textures.Default = "does/not/exist.png"
	})
	if h.app.Scene().Textures().Default() == 0 {
		t.Error("expected a default texture")
	}
}

func TestPlayPopulatesOnce(t *testing.T) {
	h := newHarness(t, nil)

	h.play(t)
	if got := h.app.State(); got != StatePlaying {
		t.Fatalf("state = %v, want playing", got)
	}
	if got := len(h.loader.loaded); got != 3 {
		t.Fatalf("loaded %d models, want 3", got)
	}
	if got := h.app.Scene().EntityCount(); got != 3 {
		t.Errorf("entities = %d, want 3", got)
	}

	h.app.BackToMenu()
	h.play(t)
	if got := len(h.loader.loaded); got != 3 {
		t.Errorf("second Play reloaded models: %v", h.loader.loaded)
	}
}

func TestPlayFailureLeavesMenu(t *testing.T) {
	h := newHarness(t, nil)
	h.loader.failOn = "chair-model"

	if err := h.app.Play(); err == nil {
		t.Fatal("expected error")
	}
	if got := h.app.State(); got != StateMainMenu {
		t.Errorf("state = %v, want main menu", got)
	}
	if n := len(h.app.Scene().Models()); n != 0 {
		t.Errorf("scene kept %d models", n)
	}

	h.loader.failOn = ""
	h.play(t)
	if got := h.app.Scene().EntityCount(); got != 3 {
		t.Errorf("entities after retry = %d, want 3", got)
	}
}

func TestPopulateAppliesEntityAndLightConfig(t *testing.T) {
	h := newHarness(t, func(c *config.Config) {
		c.Scene.Entities[0].Scale = 2
		c.Scene.Entities[0].RotationAxis = config.Vec3{0, 1, 0}
		c.Scene.Entities[0].RotationAngle = 90
		c.Scene.Lights.Point = []config.PointConfig{{
			Position:    config.Vec3{0, 1, 0},
			Color:       config.Vec3{1, 0, 0},
			Intensity:   2,
			Attenuation: &config.AttenuationConfig{Constant: 1, Linear: 0.5},
		}}
		c.Scene.Lights.Spot = []config.SpotConfig{{
			PointConfig:   config.PointConfig{Intensity: 1},
			ConeDirection: config.Vec3{0, -1, 0},
			CutOff:        30,
		}}
	})
	h.play(t)

	e, ok := h.app.Scene().Entity("cube-entity")
	if !ok {
		t.Fatal("cube-entity missing")
	}
	if e.Scale() != (mgl32.Vec3{2, 2, 2}) {
		t.Errorf("scale = %v", e.Scale())
	}
	want := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	if !e.Rotation().ApproxEqual(want) {
		t.Errorf("rotation = %v, want %v", e.Rotation(), want)
	}

	table, _ := h.app.Scene().Entity("table-entity")
	if table.Scale() != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("unset scale = %v, want 1", table.Scale())
	}

	lights := h.app.Scene().Lights()
	points := lights.PointLights()
	if len(points) != 1 || points[0].Attenuation.Linear != 0.5 || points[0].Intensity != 2 {
		t.Errorf("point lights = %+v", points)
	}
	spots := lights.SpotLights()
	if len(spots) != 1 || spots[0].CutOffAngle() != 30 {
		t.Errorf("spot lights = %+v", spots)
	}
}

func TestPauseOnlyWhilePlaying(t *testing.T) {
	h := newHarness(t, nil)

	h.in.Press(input.KeyP)
	h.frame(16 * time.Millisecond)
	if got := h.app.State(); got != StateMainMenu {
		t.Fatalf("P in menu: state = %v", got)
	}

	h.play(t)
	h.in.Press(input.KeyP)
	h.frame(16 * time.Millisecond)
	if got := h.app.State(); got != StatePaused {
		t.Fatalf("state = %v, want paused", got)
	}

	// Still held but not pressed again.
	h.frame(16 * time.Millisecond)
	if got := h.app.State(); got != StatePaused {
		t.Fatalf("held P: state = %v, want paused", got)
	}
	h.app.Resume()
	if got := h.app.State(); got != StatePlaying {
		t.Errorf("state after Resume = %v", got)
	}
}

func TestEscapeQuitsOnRelease(t *testing.T) {
	h := newHarness(t, nil)

	h.in.Press(input.KeyEscape)
	h.frame(16 * time.Millisecond)
	if h.app.ShouldQuit() {
		t.Fatal("quit on press")
	}
	h.in.Release(input.KeyEscape)
	h.frame(16 * time.Millisecond)
	if !h.app.ShouldQuit() {
		t.Error("expected quit on release")
	}
}

func TestCameraMovement(t *testing.T) {
	tests := []struct {
		name string
		keys []input.Key
		want mgl32.Vec3
	}{
		{name: "forward", keys: []input.Key{input.KeyW}, want: mgl32.Vec3{0, 0, -0.02}},
		{name: "backward", keys: []input.Key{input.KeyS}, want: mgl32.Vec3{0, 0, 0.02}},
		{name: "forward wins over backward", keys: []input.Key{input.KeyW, input.KeyS}, want: mgl32.Vec3{0, 0, -0.02}},
		{name: "left", keys: []input.Key{input.KeyA}, want: mgl32.Vec3{-0.02, 0, 0}},
		{name: "right", keys: []input.Key{input.KeyD}, want: mgl32.Vec3{0.02, 0, 0}},
		{name: "up", keys: []input.Key{input.KeyUp}, want: mgl32.Vec3{0, 0.02, 0}},
		{name: "down", keys: []input.Key{input.KeyDown}, want: mgl32.Vec3{0, -0.02, 0}},
		{name: "diagonal", keys: []input.Key{input.KeyW, input.KeyD}, want: mgl32.Vec3{0.02, 0, -0.02}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)
			h.play(t)
			for _, k := range tt.keys {
				h.in.Press(k)
			}
			h.frame(20 * time.Millisecond)

			got := h.app.Scene().Camera().Position()
			if !got.ApproxEqualThreshold(tt.want, 1e-6) {
				t.Errorf("position = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCameraControlsGated(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, h *harness, o *fakeOverlay)
	}{
		{name: "menu", setup: func(t *testing.T, h *harness, o *fakeOverlay) {}},
		{name: "paused", setup: func(t *testing.T, h *harness, o *fakeOverlay) {
			h.play(t)
			h.app.Pause()
		}},
		{name: "overlay wants input", setup: func(t *testing.T, h *harness, o *fakeOverlay) {
			h.play(t)
			o.wants = true
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)
			o := &fakeOverlay{}
			h.app.SetOverlay(o)
			tt.setup(t, h, o)

			h.in.Press(input.KeyW)
			h.in.Press(input.KeyLeftShift)
			h.in.DX, h.in.DY = 10, 10
			h.in.X, h.in.Y = 400, 300
			h.in.Click(input.ButtonLeft)
			h.frame(20 * time.Millisecond)

			cam := h.app.Scene().Camera()
			if cam.Position() != (mgl32.Vec3{}) || cam.Rotation() != (mgl32.Vec2{}) {
				t.Errorf("camera moved: pos %v rot %v", cam.Position(), cam.Rotation())
			}
			if h.app.Scene().Selected() != nil {
				t.Error("picked while gated")
			}
			if o.draws != 1 {
				t.Errorf("overlay draws = %d, want 1", o.draws)
			}
		})
	}
}

func TestShiftRotatesCamera(t *testing.T) {
	h := newHarness(t, nil)
	h.play(t)

	h.in.DX, h.in.DY = 20, 10
	h.frame(16 * time.Millisecond)
	if got := h.app.Scene().Camera().Rotation(); got != (mgl32.Vec2{}) {
		t.Fatalf("rotated without shift: %v", got)
	}

	h.in.Press(input.KeyLeftShift)
	h.in.DX, h.in.DY = 20, 10
	h.frame(16 * time.Millisecond)

	want := mgl32.Vec2{mgl32.DegToRad(10 * 0.05), mgl32.DegToRad(20 * 0.05)}
	if got := h.app.Scene().Camera().Rotation(); !got.ApproxEqual(want) {
		t.Errorf("rotation = %v, want %v", got, want)
	}
}

func TestClickSelectsEntity(t *testing.T) {
	h := newHarness(t, nil)
	h.play(t)

	h.in.X, h.in.Y = 400, 300
	h.in.Click(input.ButtonLeft)
	h.frame(16 * time.Millisecond)

	sel := h.app.Scene().Selected()
	if sel == nil || sel.ID() != "cube-entity" {
		t.Fatalf("selected = %v, want cube-entity", sel)
	}
	flags := make([]any, 0, len(h.dev.Draws))
	for _, d := range h.dev.Draws {
		flags = append(flags, d.Uniforms["selected"])
	}
	if len(flags) != 3 || flags[0] != int32(1) || flags[1] != int32(0) || flags[2] != int32(0) {
		t.Errorf("selected flags per draw = %v, want [1 0 0]", flags)
	}

	h.in.X, h.in.Y = 5, 5
	h.frame(16 * time.Millisecond)
	if sel := h.app.Scene().Selected(); sel != nil {
		t.Errorf("selection kept after miss: %v", sel.ID())
	}
}

func TestFixedRateUpdates(t *testing.T) {
	h := newHarness(t, nil)
	h.play(t)

	h.frame(100 * time.Millisecond)
	if got, want := h.app.PlayTime(), 6*h.app.updateStep; got != want {
		t.Errorf("play time = %v, want %v", got, want)
	}

	h.app.Pause()
	h.frame(100 * time.Millisecond)
	if got, want := h.app.PlayTime(), 6*h.app.updateStep; got != want {
		t.Errorf("play time advanced while paused: %v, want %v", got, want)
	}

	h.app.Resume()
	before := h.app.PlayTime()
	h.frame(5 * time.Second)
	if got := h.app.PlayTime() - before; got != maxUpdatesPerFrame*h.app.updateStep {
		t.Errorf("catch-up = %v, want %d steps", got, maxUpdatesPerFrame)
	}
	if h.app.accum != 0 {
		t.Errorf("backlog kept: %v", h.app.accum)
	}
}

func TestFrameRendersScene(t *testing.T) {
	h := newHarness(t, nil)
	o := &fakeOverlay{}
	h.app.SetOverlay(o)

	h.frame(16 * time.Millisecond)
	if len(h.dev.Draws) != 0 {
		t.Errorf("draws before Play = %d", len(h.dev.Draws))
	}

	h.play(t)
	h.dev.ResetFrame()
	h.frame(16 * time.Millisecond)
	if got := len(h.dev.Draws); got != 3 {
		t.Errorf("draws = %d, want 3", got)
	}
	if h.dev.Clears != 2 || o.draws != 2 {
		t.Errorf("clears = %d, overlay draws = %d, want 2 each", h.dev.Clears, o.draws)
	}
}

func TestResizeFollowsFramebuffer(t *testing.T) {
	h := newHarness(t, nil)

	h.in.Width, h.in.Height = 1024, 768
	h.frame(16 * time.Millisecond)
	if h.dev.ViewportSize != [2]int{1024, 768} {
		t.Errorf("viewport = %v", h.dev.ViewportSize)
	}
	want := mgl32.Perspective(mgl32.DegToRad(60), 1024.0/768.0, 0.01, 1000)
	if got := h.app.Scene().Projection().Matrix(); !got.ApproxEqual(want) {
		t.Errorf("projection not updated")
	}

	h.in.Width, h.in.Height = 0, 0
	h.frame(16 * time.Millisecond)
	h.app.Resize(0, 0)
	if w, ht := h.app.Size(); w != 1024 || ht != 768 {
		t.Errorf("size = %dx%d after minimize", w, ht)
	}
}

func TestF12CapturesScreenshot(t *testing.T) {
	h := newHarness(t, nil)
	h.in.Width, h.in.Height = 8, 6
	h.frame(16 * time.Millisecond)

	h.in.Press(input.KeyF12)
	h.frame(16 * time.Millisecond)

	path := h.app.LastScreenshot()
	if path == "" {
		t.Fatal("no screenshot taken")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("screenshot file: %v", err)
	}

	h.frame(16 * time.Millisecond)
	if got := h.app.LastScreenshot(); got != path {
		t.Errorf("second screenshot without F12: %s", got)
	}
}

func TestCloseReleasesEverything(t *testing.T) {
	dev := gputest.New()
	cfg := config.Default()
	cfg.Textures.Default = ""
	loader := &boxLoader{}
	app, err := New(cfg, dev, &input.Snapshot{Width: 800, Height: 600}, WithModelLoader(loader.load))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := app.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}

	app.Close()
	if n := dev.Live(); n != 0 {
		t.Errorf("%d GPU objects still live", n)
	}
	app.Close()
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateMainMenu: "main_menu",
		StateCredits:  "credits",
		StatePaused:   "paused",
		StatePlaying:  "playing",
		State(42):     "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
