package integrator

import (
	"github.com/JoMedeiros/ray-tracing/pkg/core"
)

// FlatIntegrator renders each primitive with its material's diffuse color
type FlatIntegrator struct{}

// NewFlatIntegrator creates a new flat integrator
func NewFlatIntegrator() *FlatIntegrator {
	return &FlatIntegrator{}
}

// Li returns the albedo of the hit material or the background
func (fi *FlatIntegrator) Li(ray core.Ray, uv core.Vec2, scene core.Scene, sampler core.Sampler) core.Color {
	return li(ray, uv, scene, func(si *core.SurfaceInteraction, ray core.Ray, scene core.Scene) core.Color {
		return si.Primitive.Material().Albedo(si)
	})
}
