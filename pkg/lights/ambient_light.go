package lights

import (
	"github.com/JoMedeiros/ray-tracing/pkg/core"
)

// AmbientLight adds a constant amount of light everywhere
type AmbientLight struct {
	Intensity core.Color
}

// NewAmbientLight creates a new ambient light
func NewAmbientLight(intensity core.Color) *AmbientLight {
	return &AmbientLight{Intensity: intensity}
}

// Type returns LightTypeAmbient
func (al *AmbientLight) Type() core.LightType {
	return core.LightTypeAmbient
}

// Illuminate returns only the intensity; ambient light has no direction
func (al *AmbientLight) Illuminate(point core.Point3) core.LightSample {
	return core.LightSample{Intensity: al.Intensity}
}
