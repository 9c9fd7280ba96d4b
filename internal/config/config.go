// Package config handles application configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Vec3 is a YAML-friendly [x, y, z] triple.
type Vec3 [3]float32

// Config holds all application settings.
type Config struct {
	Window      WindowConfig      `yaml:"window"`
	Camera      CameraConfig      `yaml:"camera"`
	Textures    TexturesConfig    `yaml:"textures"`
	Scene       SceneConfig       `yaml:"scene"`
	Screenshots ScreenshotsConfig `yaml:"screenshots"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// WindowConfig holds display settings. Zero width or height opens a
// maximized window.
type WindowConfig struct {
	Title        string `yaml:"title"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Fullscreen   bool   `yaml:"fullscreen"`
	VSync        bool   `yaml:"vsync"`
	AntiAliasing bool   `yaml:"antialiasing"`
	// UPS is the target number of logic updates per second.
	UPS int `yaml:"ups"`
}

// CameraConfig holds projection and camera control settings.
type CameraConfig struct {
	FOV  float32 `yaml:"fov"` // degrees
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
	// MovementSpeed is world units per millisecond.
	MovementSpeed float32 `yaml:"movement_speed"`
	// MouseSensitivity is degrees of rotation per pixel of cursor travel.
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
	Position         Vec3    `yaml:"position"`
	Pitch            float32 `yaml:"pitch"` // degrees
	Yaw              float32 `yaml:"yaw"`   // degrees
}

// TexturesConfig holds texture cache settings.
type TexturesConfig struct {
	// Default is used for untextured materials. Empty means plain white.
	Default string `yaml:"default"`
}

// SceneConfig describes what the Play action loads.
type SceneConfig struct {
	Models   []ModelConfig  `yaml:"models"`
	Entities []EntityConfig `yaml:"entities"`
	Lights   LightsConfig   `yaml:"lights"`
}

// ModelConfig names a model file.
type ModelConfig struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// EntityConfig places one instance of a model.
type EntityConfig struct {
	ID            string  `yaml:"id"`
	Model         string  `yaml:"model"`
	Position      Vec3    `yaml:"position"`
	RotationAxis  Vec3    `yaml:"rotation_axis"`
	RotationAngle float32 `yaml:"rotation_angle"` // degrees
	Scale         float32 `yaml:"scale"`          // 0 means 1
	Selectable    bool    `yaml:"selectable"`
}

// LightsConfig holds the scene lights.
type LightsConfig struct {
	Ambient     AmbientConfig     `yaml:"ambient"`
	Directional DirectionalConfig `yaml:"directional"`
	Point       []PointConfig     `yaml:"point"`
	Spot        []SpotConfig      `yaml:"spot"`
}

// AmbientConfig holds the ambient light.
type AmbientConfig struct {
	Intensity float32 `yaml:"intensity"`
	Color     Vec3    `yaml:"color"`
}

// DirectionalConfig holds the directional light.
type DirectionalConfig struct {
	Color     Vec3    `yaml:"color"`
	Direction Vec3    `yaml:"direction"`
	Intensity float32 `yaml:"intensity"`
}

// AttenuationConfig overrides point light falloff.
type AttenuationConfig struct {
	Constant float32 `yaml:"constant"`
	Linear   float32 `yaml:"linear"`
	Exponent float32 `yaml:"exponent"`
}

// PointConfig holds one point light.
type PointConfig struct {
	Position    Vec3               `yaml:"position"`
	Color       Vec3               `yaml:"color"`
	Intensity   float32            `yaml:"intensity"`
	Attenuation *AttenuationConfig `yaml:"attenuation,omitempty"`
}

// SpotConfig holds one spot light.
type SpotConfig struct {
	PointConfig   `yaml:",inline"`
	ConeDirection Vec3    `yaml:"cone_direction"`
	CutOff        float32 `yaml:"cutoff"` // half-angle in degrees
}

// ScreenshotsConfig holds screenshot output settings.
type ScreenshotsConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values. The default
// scene is a cube and a chair in front of the camera on a table.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:        "Blackjack",
			Width:        900,
			Height:       600,
			Fullscreen:   false,
			VSync:        true,
			AntiAliasing: true,
			UPS:          60,
		},
		Camera: CameraConfig{
			FOV:              60,
			Near:             0.01,
			Far:              1000,
			MovementSpeed:    0.001,
			MouseSensitivity: 0.05,
		},
		Textures: TexturesConfig{
			Default: "resources/models/default/stonewall.png",
		},
		Scene: SceneConfig{
			Models: []ModelConfig{
				{ID: "cube-model", Path: "resources/models/cube/cube.obj"},
				{ID: "chair-model", Path: "resources/models/wooden_chair/Wooden_Chair.obj"},
				{ID: "table-model", Path: "resources/models/table/blackjack_table.obj"},
			},
			Entities: []EntityConfig{
				{ID: "cube-entity", Model: "cube-model", Position: Vec3{0, 0, -2}, Selectable: true},
				{ID: "chair-entity", Model: "chair-model", Position: Vec3{0, 0, -2}, Selectable: true},
				{ID: "table-entity", Model: "table-model", Selectable: false},
			},
			Lights: LightsConfig{
				Ambient: AmbientConfig{Intensity: 1, Color: Vec3{1, 1, 1}},
				Directional: DirectionalConfig{
					Color:     Vec3{1, 1, 1},
					Direction: Vec3{0, 1, 0},
					Intensity: 1,
				},
			},
		},
		Screenshots: ScreenshotsConfig{
			Dir:    "screenshots",
			Prefix: "blackjack",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every problem found, each wrapping ErrInvalid.
func (c *Config) Validate() error {
	var err error
	fail := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Window.Width < 0 || c.Window.Height < 0 {
		fail("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.UPS <= 0 {
		fail("window.ups must be positive, got %d", c.Window.UPS)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		fail("camera.fov %v out of range (0, 180)", c.Camera.FOV)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		fail("camera near %v / far %v", c.Camera.Near, c.Camera.Far)
	}

	models := make(map[string]bool, len(c.Scene.Models))
	for i, m := range c.Scene.Models {
		switch {
		case m.ID == "":
			fail("scene.models[%d]: empty id", i)
		case models[m.ID]:
			fail("scene.models[%d]: duplicate id %q", i, m.ID)
		}
		if m.Path == "" {
			fail("scene.models[%d]: empty path", i)
		}
		models[m.ID] = true
	}

	entities := make(map[string]bool, len(c.Scene.Entities))
	for i, e := range c.Scene.Entities {
		switch {
		case e.ID == "":
			fail("scene.entities[%d]: empty id", i)
		case entities[e.ID]:
			fail("scene.entities[%d]: duplicate id %q", i, e.ID)
		}
		entities[e.ID] = true
		if !models[e.Model] {
			fail("scene.entities[%d]: unknown model %q", i, e.Model)
		}
		if e.Scale < 0 {
			fail("scene.entities[%d]: negative scale", i)
		}
	}

	// Mirrors lighting.MaxPointLights / MaxSpotLights.
	const maxLights = 5
	if n := len(c.Scene.Lights.Point); n > maxLights {
		fail("scene.lights.point: %d lights, max %d", n, maxLights)
	}
	if n := len(c.Scene.Lights.Spot); n > maxLights {
		fail("scene.lights.spot: %d lights, max %d", n, maxLights)
	}
	return err
}
