package integrator

import (
	"github.com/JoMedeiros/ray-tracing/pkg/core"
)

// BlinnPhongIntegrator shades each hit with its own material under the scene lights
type BlinnPhongIntegrator struct{}

// NewBlinnPhongIntegrator creates a new Blinn-Phong integrator
func NewBlinnPhongIntegrator() *BlinnPhongIntegrator {
	return &BlinnPhongIntegrator{}
}

// Li delegates to the hit material's Shade
func (bi *BlinnPhongIntegrator) Li(ray core.Ray, uv core.Vec2, scene core.Scene, sampler core.Sampler) core.Color {
	return li(ray, uv, scene, func(si *core.SurfaceInteraction, ray core.Ray, scene core.Scene) core.Color {
		return si.Primitive.Material().Shade(si, ray, scene)
	})
}
