// Package lighting holds the scene's light sources.
package lighting

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Shader array sizes for point and spot lights.
const (
	MaxPointLights = 5
	MaxSpotLights  = 5
)

// ErrLightCapacity is returned when adding a light past its shader limit.
var ErrLightCapacity = errors.New("lighting: capacity exceeded")

// Attenuation is the constant/linear/exponent falloff of a point light.
type Attenuation struct {
	Constant float32
	Linear   float32
	Exponent float32
}

// AmbientLight lights every surface equally.
type AmbientLight struct {
	Intensity float32
	Color     mgl32.Vec3
}

// DirLight is an infinitely distant light. Direction points toward the
// light and stays in world space.
type DirLight struct {
	Color     mgl32.Vec3
	Direction mgl32.Vec3
	Intensity float32
}

// PointLight emits in all directions from Position (world space).
type PointLight struct {
	Position    mgl32.Vec3
	Color       mgl32.Vec3
	Intensity   float32
	Attenuation Attenuation
}

// NewPointLight returns a light with quadratic falloff.
func NewPointLight(color, position mgl32.Vec3, intensity float32) PointLight {
	return PointLight{
		Position:    position,
		Color:       color,
		Intensity:   intensity,
		Attenuation: Attenuation{Constant: 0, Linear: 0, Exponent: 1},
	}
}

// SpotLight is a point light restricted to a cone.
type SpotLight struct {
	PointLight    PointLight
	ConeDirection mgl32.Vec3
	cutOffAngle   float32
	cutOff        float32
}

// NewSpotLight creates a spot light with a cone half-angle in degrees.
func NewSpotLight(pl PointLight, coneDirection mgl32.Vec3, cutOffDegrees float32) SpotLight {
	s := SpotLight{PointLight: pl, ConeDirection: coneDirection}
	s.SetCutOffAngle(cutOffDegrees)
	return s
}

// SetCutOffAngle sets the cone half-angle in degrees and caches its cosine.
func (s *SpotLight) SetCutOffAngle(degrees float32) {
	s.cutOffAngle = degrees
	s.cutOff = float32(math.Cos(float64(mgl32.DegToRad(degrees))))
}

// CutOffAngle returns the cone half-angle in degrees.
func (s *SpotLight) CutOffAngle() float32 { return s.cutOffAngle }

// CutOff returns the cosine of the cone half-angle, as the shader expects.
func (s *SpotLight) CutOff() float32 { return s.cutOff }

// Lights is the full light set of a scene.
type Lights struct {
	Ambient AmbientLight
	Dir     DirLight
	points  []PointLight
	spots   []SpotLight
}

// NewLights returns white ambient light and a white overhead directional
// light, with no point or spot lights.
func NewLights() *Lights {
	return &Lights{
		Ambient: AmbientLight{Intensity: 1.0, Color: mgl32.Vec3{1, 1, 1}},
		Dir: DirLight{
			Color:     mgl32.Vec3{1, 1, 1},
			Direction: mgl32.Vec3{0, 1, 0},
			Intensity: 1.0,
		},
		points: make([]PointLight, 0, MaxPointLights),
		spots:  make([]SpotLight, 0, MaxSpotLights),
	}
}

// AddPointLight appends a point light, failing once MaxPointLights are live.
func (l *Lights) AddPointLight(pl PointLight) error {
	if len(l.points) >= MaxPointLights {
		return fmt.Errorf("%w: %d point lights", ErrLightCapacity, MaxPointLights)
	}
	l.points = append(l.points, pl)
	return nil
}

// AddSpotLight appends a spot light, failing once MaxSpotLights are live.
func (l *Lights) AddSpotLight(sl SpotLight) error {
	if len(l.spots) >= MaxSpotLights {
		return fmt.Errorf("%w: %d spot lights", ErrLightCapacity, MaxSpotLights)
	}
	l.spots = append(l.spots, sl)
	return nil
}

// PointLights returns the live point lights. Callers may modify elements
// in place.
func (l *Lights) PointLights() []PointLight { return l.points }

// SpotLights returns the live spot lights. Callers may modify elements in
// place.
func (l *Lights) SpotLights() []SpotLight { return l.spots }

// RemovePointLight removes the light at i.
func (l *Lights) RemovePointLight(i int) {
	if i < 0 || i >= len(l.points) {
		return
	}
	l.points = append(l.points[:i], l.points[i+1:]...)
}

// RemoveSpotLight removes the light at i.
func (l *Lights) RemoveSpotLight(i int) {
	if i < 0 || i >= len(l.spots) {
		return
	}
	l.spots = append(l.spots[:i], l.spots[i+1:]...)
}

// ClearDynamic removes every point and spot light.
func (l *Lights) ClearDynamic() {
	l.points = l.points[:0]
	l.spots = l.spots[:0]
}
