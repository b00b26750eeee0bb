package lights

import (
	"math"

	"github.com/JoMedeiros/ray-tracing/pkg/core"
)

// DirectionalLight is a light infinitely far away shining along Direction
type DirectionalLight struct {
	Direction core.Vec3 // Unit direction the light travels in
	Intensity core.Color
}

// NewDirectionalLight creates a new directional light
func NewDirectionalLight(direction core.Vec3, intensity core.Color) *DirectionalLight {
	return &DirectionalLight{Direction: direction.Normalize(), Intensity: intensity}
}

// Type returns LightTypeDirectional
func (dl *DirectionalLight) Type() core.LightType {
	return core.LightTypeDirectional
}

// Illuminate returns the reversed light direction at infinite distance
func (dl *DirectionalLight) Illuminate(point core.Point3) core.LightSample {
	return core.LightSample{
		Direction: dl.Direction.Negate(),
		Distance:  math.Inf(1),
		Intensity: dl.Intensity,
	}
}
