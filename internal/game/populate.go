package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blackjack/internal/config"
	"github.com/Faultbox/blackjack/internal/engine/gpu"
	"github.com/Faultbox/blackjack/internal/engine/importer"
	"github.com/Faultbox/blackjack/internal/engine/lighting"
	"github.com/Faultbox/blackjack/internal/engine/model"
	"github.com/Faultbox/blackjack/internal/engine/scene"
)

// ModelLoader reads the model file at path and uploads it as id.
type ModelLoader func(dev gpu.Device, textures model.TextureSource, id, path string) (*model.Model, error)

// LoadModel imports a model file from disk and uploads it.
func LoadModel(dev gpu.Device, textures model.TextureSource, id, path string) (*model.Model, error) {
	asset, err := importer.Import(path)
	if err != nil {
		return nil, err
	}
	return model.Load(dev, textures, id, asset)
}

// Populate loads every configured model, places the entities and installs
// the lights. On error the scene is left without models.
func Populate(s *scene.Scene, dev gpu.Device, load ModelLoader, cfg config.SceneConfig) error {
	if err := populate(s, dev, load, cfg); err != nil {
		s.Clear()
		return fmt.Errorf("populate scene: %w", err)
	}
	return nil
}

func populate(s *scene.Scene, dev gpu.Device, load ModelLoader, cfg config.SceneConfig) error {
	for _, mc := range cfg.Models {
		m, err := load(dev, s.Textures(), mc.ID, mc.Path)
		if err != nil {
			return fmt.Errorf("model %s: %w", mc.ID, err)
		}
		if err := s.AddModel(m); err != nil {
			m.Release()
			return err
		}
	}

	for _, ec := range cfg.Entities {
		e := model.NewEntity(ec.ID, ec.Model, ec.Selectable)
		e.SetPosition(ec.Position[0], ec.Position[1], ec.Position[2])
		if ec.RotationAngle != 0 {
			e.SetRotation(vec3(ec.RotationAxis), mgl32.DegToRad(ec.RotationAngle))
		}
		if ec.Scale != 0 {
			e.SetScale(ec.Scale)
		}
		if err := s.AddEntity(e); err != nil {
			return err
		}
	}

	return applyLights(s.Lights(), cfg.Lights)
}

// applyLights replaces the light set with the configured one.
func applyLights(l *lighting.Lights, cfg config.LightsConfig) error {
	l.Ambient = lighting.AmbientLight{
		Intensity: cfg.Ambient.Intensity,
		Color:     vec3(cfg.Ambient.Color),
	}
	l.Dir = lighting.DirLight{
		Color:     vec3(cfg.Directional.Color),
		Direction: vec3(cfg.Directional.Direction),
		Intensity: cfg.Directional.Intensity,
	}

	l.ClearDynamic()
	for _, pc := range cfg.Point {
		if err := l.AddPointLight(pointLight(pc)); err != nil {
			return err
		}
	}
	for _, sc := range cfg.Spot {
		sl := lighting.NewSpotLight(pointLight(sc.PointConfig), vec3(sc.ConeDirection), sc.CutOff)
		if err := l.AddSpotLight(sl); err != nil {
			return err
		}
	}
	return nil
}

func pointLight(pc config.PointConfig) lighting.PointLight {
	pl := lighting.NewPointLight(vec3(pc.Color), vec3(pc.Position), pc.Intensity)
	if a := pc.Attenuation; a != nil {
		pl.Attenuation = lighting.Attenuation{Constant: a.Constant, Linear: a.Linear, Exponent: a.Exponent}
	}
	return pl
}

func vec3(v config.Vec3) mgl32.Vec3 { return mgl32.Vec3{v[0], v[1], v[2]} }
