package picking

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/blackjack/internal/engine/model"
	"github.com/Faultbox/blackjack/internal/engine/scene"
	"github.com/Faultbox/blackjack/internal/logger"
)

// Hit is the closest intersection found by Pick.
type Hit struct {
	Entity   *model.Entity
	Distance float32
}

// Pick returns the selectable entity whose mesh bounds the ray enters
// first. Entities are visited in model registration order, then entity
// order, then material and mesh order; on equal distances the first one
// visited wins. Bounds ignore entity rotation.
func Pick(s *scene.Scene, ray Ray) (Hit, bool) {
	var best Hit
	found := false
	closest := float32(math.Inf(1))

	for _, m := range s.Models() {
		for _, e := range m.Entities() {
			if !e.Selectable() {
				continue
			}
			pos, scale := e.Position(), e.Scale()
			world := mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
			for _, mat := range m.Materials() {
				for _, mesh := range mat.Meshes() {
					min, max := mesh.AABB()
					near, _, hit := ray.IntersectAABB(TransformAABB(min, max, world))
					if hit && near < closest {
						closest = near
						best = Hit{Entity: e, Distance: near}
						found = true
					}
				}
			}
		}
	}
	return best, found
}

// SelectEntity casts a ray through the cursor and stores the result as the
// scene's selection, clearing it on a miss.
func SelectEntity(s *scene.Scene, cursorX, cursorY float32, width, height int) *model.Entity {
	if width <= 0 || height <= 0 {
		return s.Selected()
	}
	cam, proj := s.Camera(), s.Projection()
	ray := ScreenToRay(cursorX, cursorY, width, height, proj.InvMatrix(), cam.InvViewMatrix(), cam.Position())

	hit, ok := Pick(s, ray)
	if !ok {
		s.SetSelected(nil)
		return nil
	}
	s.SetSelected(hit.Entity)
	logger.Debug("entity selected",
		zap.String("entity", hit.Entity.ID()),
		zap.Float32("distance", hit.Distance),
	)
	return hit.Entity
}
