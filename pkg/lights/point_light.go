package lights

import (
	"github.com/JoMedeiros/ray-tracing/pkg/core"
)

// PointLight emits the same intensity in every direction from a position.
// Intensity does not fall off with distance.
type PointLight struct {
	Position  core.Point3
	Intensity core.Color
}

// NewPointLight creates a new point light
func NewPointLight(position core.Point3, intensity core.Color) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

// Type returns LightTypePoint
func (pl *PointLight) Type() core.LightType {
	return core.LightTypePoint
}

// Illuminate returns the direction and distance from point to the light
func (pl *PointLight) Illuminate(point core.Point3) core.LightSample {
	toLight := pl.Position.Subtract(point)
	return core.LightSample{
		Direction: toLight.Normalize(),
		Distance:  toLight.Length(),
		Intensity: pl.Intensity,
	}
}
