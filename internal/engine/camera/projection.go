package camera

import "github.com/go-gl/mathgl/mgl32"

// Projection defaults.
const (
	DefaultFOV  = 60.0 // degrees
	DefaultNear = 0.01
	DefaultFar  = 1000.0
)

// Projection is a perspective projection and its inverse.
type Projection struct {
	fov, near, far float32
	width, height  int
	projMatrix     mgl32.Mat4
	invProjMatrix  mgl32.Mat4
}

// NewProjection creates a projection with fov in degrees. Zero values take
// the defaults.
func NewProjection(fovDegrees, near, far float32, width, height int) *Projection {
	if fovDegrees <= 0 {
		fovDegrees = DefaultFOV
	}
	if near <= 0 {
		near = DefaultNear
	}
	if far <= 0 {
		far = DefaultFar
	}
	p := &Projection{fov: mgl32.DegToRad(fovDegrees), near: near, far: far}
	p.Update(width, height)
	return p
}

// Update rebuilds both matrices for a viewport. A zero height produces a
// degenerate matrix; callers skip updates for minimized windows.
func (p *Projection) Update(width, height int) {
	p.width, p.height = width, height
	aspect := float32(width) / float32(height)
	p.projMatrix = mgl32.Perspective(p.fov, aspect, p.near, p.far)
	p.invProjMatrix = p.projMatrix.Inv()
}

// Matrix returns the projection matrix.
func (p *Projection) Matrix() mgl32.Mat4 { return p.projMatrix }

// InvMatrix returns the inverse projection used for unprojecting.
func (p *Projection) InvMatrix() mgl32.Mat4 { return p.invProjMatrix }

// FOV returns the vertical field of view in radians.
func (p *Projection) FOV() float32 { return p.fov }

// Near returns the near clip distance.
func (p *Projection) Near() float32 { return p.near }

// Far returns the far clip distance.
func (p *Projection) Far() float32 { return p.far }

// SetFOV changes the vertical field of view, in degrees, keeping the last
// viewport size.
func (p *Projection) SetFOV(degrees float32) {
	p.fov = mgl32.DegToRad(degrees)
	p.Update(p.width, p.height)
}
