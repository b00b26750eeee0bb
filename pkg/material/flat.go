package material

import (
	"github.com/JoMedeiros/ray-tracing/pkg/core"
)

// Flat is an unlit material that always shows its diffuse color
type Flat struct {
	Diffuse core.Color
}

// NewFlat creates a new flat material
func NewFlat(diffuse core.Color) *Flat {
	return &Flat{Diffuse: diffuse}
}

// Albedo returns the diffuse color
func (f *Flat) Albedo(si *core.SurfaceInteraction) core.Color {
	return f.Diffuse
}

// Shade ignores geometry and lighting
func (f *Flat) Shade(si *core.SurfaceInteraction, ray core.Ray, scene core.Scene) core.Color {
	return f.Diffuse
}
