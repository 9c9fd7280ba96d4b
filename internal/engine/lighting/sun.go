package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SunDirection converts azimuth (rotation around Y) and elevation above the
// horizon, both in degrees, into a unit vector pointing toward the sun.
func SunDirection(azimuth, elevation float32) mgl32.Vec3 {
	az := float64(mgl32.DegToRad(azimuth))
	el := float64(mgl32.DegToRad(elevation))
	return mgl32.Vec3{
		float32(math.Cos(el) * math.Sin(az)),
		float32(math.Sin(el)),
		float32(math.Cos(el) * math.Cos(az)),
	}
}

// SunAngles is the inverse of SunDirection. The zero vector maps to (0, 0).
func SunAngles(dir mgl32.Vec3) (azimuth, elevation float32) {
	if dir.Len() == 0 {
		return 0, 0
	}
	d := dir.Normalize()
	elevation = mgl32.RadToDeg(float32(math.Asin(float64(mgl32.Clamp(d.Y(), -1, 1)))))
	azimuth = mgl32.RadToDeg(float32(math.Atan2(float64(d.X()), float64(d.Z()))))
	return azimuth, elevation
}
