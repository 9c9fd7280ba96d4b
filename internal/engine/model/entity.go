package model

import "github.com/go-gl/mathgl/mgl32"

// Entity is one placed instance of a model. Every mutator recomputes the
// cached model matrix T * R * S.
type Entity struct {
	id          string
	modelID     string
	selectable  bool
	position    mgl32.Vec3
	rotation    mgl32.Quat
	scale       mgl32.Vec3
	modelMatrix mgl32.Mat4
}

// NewEntity creates an entity at the origin with unit scale.
func NewEntity(id, modelID string, selectable bool) *Entity {
	e := &Entity{
		id:         id,
		modelID:    modelID,
		selectable: selectable,
		rotation:   mgl32.QuatIdent(),
		scale:      mgl32.Vec3{1, 1, 1},
	}
	e.updateModelMatrix()
	return e
}

// ID returns the entity id, unique within a scene.
func (e *Entity) ID() string { return e.id }

// ModelID returns the id of the model this entity draws.
func (e *Entity) ModelID() string { return e.modelID }

// Selectable reports whether picking may select the entity.
func (e *Entity) Selectable() bool { return e.selectable }

// Position returns the world position.
func (e *Entity) Position() mgl32.Vec3 { return e.position }

// Rotation returns the orientation.
func (e *Entity) Rotation() mgl32.Quat { return e.rotation }

// Scale returns the per-axis scale.
func (e *Entity) Scale() mgl32.Vec3 { return e.scale }

// ModelMatrix returns the cached T * R * S matrix.
func (e *Entity) ModelMatrix() mgl32.Mat4 { return e.modelMatrix }

// SetSelectable enables or disables picking.
func (e *Entity) SetSelectable(v bool) { e.selectable = v }

// SetPosition moves the entity to a world position.
func (e *Entity) SetPosition(x, y, z float32) {
	e.position = mgl32.Vec3{x, y, z}
	e.updateModelMatrix()
}

// SetRotation sets the rotation from an axis and an angle in radians.
func (e *Entity) SetRotation(axis mgl32.Vec3, angle float32) {
	if axis.Len() == 0 {
		e.rotation = mgl32.QuatIdent()
	} else {
		e.rotation = mgl32.QuatRotate(angle, axis.Normalize())
	}
	e.updateModelMatrix()
}

// SetRotationQuat sets the orientation, normalizing q.
func (e *Entity) SetRotationQuat(q mgl32.Quat) {
	e.rotation = q.Normalize()
	e.updateModelMatrix()
}

// SetScale applies a uniform scale.
func (e *Entity) SetScale(s float32) {
	e.scale = mgl32.Vec3{s, s, s}
	e.updateModelMatrix()
}

// SetScaleXYZ applies a per-axis scale.
func (e *Entity) SetScaleXYZ(x, y, z float32) {
	e.scale = mgl32.Vec3{x, y, z}
	e.updateModelMatrix()
}

func (e *Entity) updateModelMatrix() {
	t := mgl32.Translate3D(e.position.X(), e.position.Y(), e.position.Z())
	s := mgl32.Scale3D(e.scale.X(), e.scale.Y(), e.scale.Z())
	e.modelMatrix = t.Mul4(e.rotation.Mat4()).Mul4(s)
}
