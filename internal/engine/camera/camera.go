// Package camera provides the first-person view camera and perspective
// projection used by the scene.
package camera

import "github.com/go-gl/mathgl/mgl32"

// Camera is a free-flying camera described by a position and a pitch/yaw
// pair in radians. View and inverse view are recomputed on every change.
type Camera struct {
	position      mgl32.Vec3
	rotation      mgl32.Vec2 // x = pitch, y = yaw
	viewMatrix    mgl32.Mat4
	invViewMatrix mgl32.Mat4
}

// New returns a camera at the origin looking down -Z.
func New() *Camera {
	c := &Camera{}
	c.recalculate()
	return c
}

// Position returns the camera position in world space.
func (c *Camera) Position() mgl32.Vec3 { return c.position }

// Rotation returns pitch and yaw in radians.
func (c *Camera) Rotation() mgl32.Vec2 { return c.rotation }

// ViewMatrix returns the world to view transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 { return c.viewMatrix }

// InvViewMatrix returns the view to world transform.
func (c *Camera) InvViewMatrix() mgl32.Mat4 { return c.invViewMatrix }

// direction returns a camera axis in world space: 0 right, 1 up, 2 back.
func (c *Camera) direction(axis int) mgl32.Vec3 {
	return c.viewMatrix.Row(axis).Vec3()
}

// MoveForward moves step units along the view direction.
func (c *Camera) MoveForward(step float32) {
	c.position = c.position.Sub(c.direction(2).Mul(step))
	c.recalculate()
}

// MoveBackwards moves step units against the view direction.
func (c *Camera) MoveBackwards(step float32) {
	c.position = c.position.Add(c.direction(2).Mul(step))
	c.recalculate()
}

// MoveLeft strafes step units to the left.
func (c *Camera) MoveLeft(step float32) {
	c.position = c.position.Sub(c.direction(0).Mul(step))
	c.recalculate()
}

// MoveRight strafes step units to the right.
func (c *Camera) MoveRight(step float32) {
	c.position = c.position.Add(c.direction(0).Mul(step))
	c.recalculate()
}

// MoveUp moves step units along the camera up axis.
func (c *Camera) MoveUp(step float32) {
	c.position = c.position.Add(c.direction(1).Mul(step))
	c.recalculate()
}

// MoveDown moves step units against the camera up axis.
func (c *Camera) MoveDown(step float32) {
	c.position = c.position.Sub(c.direction(1).Mul(step))
	c.recalculate()
}

// AddRotation adds pitch and yaw, in radians.
func (c *Camera) AddRotation(pitch, yaw float32) {
	c.rotation = c.rotation.Add(mgl32.Vec2{pitch, yaw})
	c.recalculate()
}

// SetPosition places the camera in world space.
func (c *Camera) SetPosition(x, y, z float32) {
	c.position = mgl32.Vec3{x, y, z}
	c.recalculate()
}

// SetRotation sets pitch and yaw, in radians.
func (c *Camera) SetRotation(pitch, yaw float32) {
	c.rotation = mgl32.Vec2{pitch, yaw}
	c.recalculate()
}

func (c *Camera) recalculate() {
	c.viewMatrix = mgl32.HomogRotate3DX(c.rotation.X()).
		Mul4(mgl32.HomogRotate3DY(c.rotation.Y())).
		Mul4(mgl32.Translate3D(-c.position.X(), -c.position.Y(), -c.position.Z()))
	c.invViewMatrix = c.viewMatrix.Inv()
}
