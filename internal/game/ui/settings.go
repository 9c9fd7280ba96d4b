package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/blackjack/internal/config"
	"github.com/Faultbox/blackjack/internal/engine/lighting"
	"github.com/Faultbox/blackjack/internal/game"
	"github.com/Faultbox/blackjack/internal/logger"
)

// Settings is the camera and lighting panel opened from the menus.
type Settings struct {
	Open   bool
	status string
}

// NewSettings returns a closed settings panel.
func NewSettings() *Settings { return &Settings{} }

// Toggle opens or closes the panel.
func (s *Settings) Toggle() { s.Open = !s.Open }

// Draw renders the panel. Camera values are edited in the app config so
// they take effect on the next frame and can be saved.
func (s *Settings) Draw(app *game.App, debug *DebugOverlay, size imgui.Vec2) {
	const width = 320
	imgui.SetNextWindowPos(imgui.NewVec2(size.X-width-10, 10))
	imgui.SetNextWindowSize(imgui.NewVec2(width, 0))

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoCollapse | imgui.WindowFlagsAlwaysAutoResize
	if imgui.BeginV("Settings", nil, flags) {
		cfg := app.Config()
		sc := app.Scene()

		if imgui.CollapsingHeaderTreeNodeFlagsV("Camera", imgui.TreeNodeFlagsDefaultOpen) {
			if imgui.SliderFloatV("FOV", &cfg.Camera.FOV, 30, 120, "%.0f", imgui.SliderFlagsNone) {
				sc.Projection().SetFOV(cfg.Camera.FOV)
			}
			imgui.SliderFloatV("Mouse sensitivity", &cfg.Camera.MouseSensitivity, 0.01, 0.5, "%.2f", imgui.SliderFlagsNone)
			imgui.SliderFloatV("Movement speed", &cfg.Camera.MovementSpeed, 0.0001, 0.01, "%.4f", imgui.SliderFlagsNone)
		}

		if imgui.CollapsingHeaderTreeNodeFlagsV("Lighting", imgui.TreeNodeFlagsDefaultOpen) {
			l := sc.Lights()
			imgui.SliderFloatV("Ambient", &l.Ambient.Intensity, 0, 1, "%.2f", imgui.SliderFlagsNone)
			imgui.ColorEdit3V("Ambient color", (*[3]float32)(&l.Ambient.Color), 0)

			az, el := lighting.SunAngles(l.Dir.Direction)
			changed := imgui.SliderFloatV("Sun azimuth", &az, -180, 180, "%.0f", imgui.SliderFlagsNone)
			changed = imgui.SliderFloatV("Sun elevation", &el, -90, 90, "%.0f", imgui.SliderFlagsNone) || changed
			if changed {
				l.Dir.Direction = lighting.SunDirection(az, el)
			}
			imgui.SliderFloatV("Sun intensity", &l.Dir.Intensity, 0, 2, "%.2f", imgui.SliderFlagsNone)
			imgui.ColorEdit3V("Sun color", (*[3]float32)(&l.Dir.Color), 0)

			imgui.TextDisabled(fmt.Sprintf("Point lights: %d/%d  Spot lights: %d/%d",
				len(l.PointLights()), lighting.MaxPointLights,
				len(l.SpotLights()), lighting.MaxSpotLights))
		}

		if imgui.CollapsingHeaderTreeNodeFlagsV("Display", 0) {
			imgui.Checkbox("Debug overlay", &debug.Enabled)
		}

		imgui.Separator()
		if imgui.Button("Save") {
			s.save(app)
		}
		imgui.SameLine()
		if imgui.Button("Close") {
			s.Open = false
		}
		if s.status != "" {
			imgui.TextDisabled(s.status)
		}
	}
	imgui.End()
}

func (s *Settings) save(app *game.App) {
	cfg := app.Config()
	syncLights(&cfg.Scene.Lights, app.Scene().Lights())
	if err := cfg.Save(); err != nil {
		logger.Error("failed to save settings", zap.Error(err))
		s.status = "Save failed: " + err.Error()
		return
	}
	s.status = "Saved to " + config.ConfigDir()
}

// syncLights copies the live ambient and directional light into cfg.
func syncLights(cfg *config.LightsConfig, l *lighting.Lights) {
	cfg.Ambient = config.AmbientConfig{
		Intensity: l.Ambient.Intensity,
		Color:     config.Vec3(l.Ambient.Color),
	}
	cfg.Directional = config.DirectionalConfig{
		Color:     config.Vec3(l.Dir.Color),
		Direction: config.Vec3(l.Dir.Direction),
		Intensity: l.Dir.Intensity,
	}
}
