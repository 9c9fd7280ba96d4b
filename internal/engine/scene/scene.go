// Package scene holds the scene graph and the renderer that draws it.
package scene

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/blackjack/internal/engine/camera"
	"github.com/Faultbox/blackjack/internal/engine/lighting"
	"github.com/Faultbox/blackjack/internal/engine/model"
	"github.com/Faultbox/blackjack/internal/engine/texture"
	"github.com/Faultbox/blackjack/internal/logger"
)

var (
	// ErrUnknownModel is returned when an entity names an unregistered model.
	ErrUnknownModel = errors.New("scene: could not find model")
	// ErrDuplicateModel is returned when a model id is registered twice.
	ErrDuplicateModel = errors.New("scene: duplicate model id")
)

// Config contains scene configuration options.
type Config struct {
	Width  int
	Height int
	// FOV is the vertical field of view in degrees.
	FOV  float32
	Near float32
	Far  float32
}

// Scene owns models, the texture cache, camera, projection and lights.
// Models keep their registration order, which is also draw and pick order.
type Scene struct {
	models     map[string]*model.Model
	order      []*model.Model
	textures   *texture.Cache
	camera     *camera.Camera
	projection *camera.Projection
	lights     *lighting.Lights
	selected   *model.Entity
	log        *zap.Logger
}

// New creates an empty scene drawing with textures.
func New(cfg Config, textures *texture.Cache) *Scene {
	return &Scene{
		models:     make(map[string]*model.Model),
		textures:   textures,
		camera:     camera.New(),
		projection: camera.NewProjection(cfg.FOV, cfg.Near, cfg.Far, cfg.Width, cfg.Height),
		lights:     lighting.NewLights(),
		log:        logger.Named("scene"),
	}
}

// AddModel registers m under its id.
func (s *Scene) AddModel(m *model.Model) error {
	if _, ok := s.models[m.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateModel, m.ID())
	}
	s.models[m.ID()] = m
	s.order = append(s.order, m)
	s.log.Debug("model added", zap.String("model", m.ID()), zap.Int("materials", len(m.Materials())))
	return nil
}

// AddEntity attaches e to the model it names.
func (s *Scene) AddEntity(e *model.Entity) error {
	m, ok := s.models[e.ModelID()]
	if !ok {
		return fmt.Errorf("%w: %s (entity %s)", ErrUnknownModel, e.ModelID(), e.ID())
	}
	m.AddEntity(e)
	return nil
}

// RemoveEntity detaches the entity with id, clearing the selection if it
// pointed at it.
func (s *Scene) RemoveEntity(id string) bool {
	for _, m := range s.order {
		if m.RemoveEntity(id) {
			if s.selected != nil && s.selected.ID() == id {
				s.selected = nil
			}
			return true
		}
	}
	return false
}

// Model returns the model registered under id.
func (s *Scene) Model(id string) (*model.Model, bool) {
	m, ok := s.models[id]
	return m, ok
}

// Models returns models in registration order.
func (s *Scene) Models() []*model.Model { return s.order }

// Entity finds an entity by id.
func (s *Scene) Entity(id string) (*model.Entity, bool) {
	for _, m := range s.order {
		for _, e := range m.Entities() {
			if e.ID() == id {
				return e, true
			}
		}
	}
	return nil, false
}

// EntityCount returns the number of entities across all models.
func (s *Scene) EntityCount() int {
	n := 0
	for _, m := range s.order {
		n += len(m.Entities())
	}
	return n
}

// Camera returns the scene camera.
func (s *Scene) Camera() *camera.Camera { return s.camera }

// Projection returns the perspective projection.
func (s *Scene) Projection() *camera.Projection { return s.projection }

// Textures returns the texture cache shared by all materials.
func (s *Scene) Textures() *texture.Cache { return s.textures }

// Lights returns the scene lights.
func (s *Scene) Lights() *lighting.Lights { return s.lights }

// Selected returns the selected entity or nil.
func (s *Scene) Selected() *model.Entity { return s.selected }

// SetSelected selects e; nil clears the selection.
func (s *Scene) SetSelected(e *model.Entity) { s.selected = e }

// Resize updates the projection for a new viewport.
func (s *Scene) Resize(width, height int) {
	s.projection.Update(width, height)
}

// Clear releases every model and forgets them. Textures stay cached.
func (s *Scene) Clear() {
	for _, m := range s.order {
		m.Release()
	}
	s.models = make(map[string]*model.Model)
	s.order = nil
	s.selected = nil
}

// Release frees models and then the texture cache.
func (s *Scene) Release() {
	s.Clear()
	if s.textures != nil {
		s.textures.Release()
	}
	s.log.Debug("scene released")
}
