package game

// Overlay is drawn on top of the 3D scene every frame.
type Overlay interface {
	// Draw is called after the scene pass, before buffers are swapped.
	Draw()
	// WantsInput reports whether the overlay is using the mouse or
	// keyboard, in which case camera controls and picking are skipped.
	WantsInput() bool
}

// NoOverlay draws nothing and never wants input.
type NoOverlay struct{}

func (NoOverlay) Draw()            {}
func (NoOverlay) WantsInput() bool { return false }
