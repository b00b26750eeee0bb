package integrator

import (
	"github.com/JoMedeiros/ray-tracing/pkg/core"
	"github.com/JoMedeiros/ray-tracing/pkg/material"
)

// OverrideIntegrator shades every hit with one material, ignoring the
// materials bound to the primitives
type OverrideIntegrator struct {
	Material core.Material
}

// NewNormalIntegrator visualizes surface normals
func NewNormalIntegrator() *OverrideIntegrator {
	return &OverrideIntegrator{Material: material.NewNormal()}
}

// NewDepthMapIntegrator colors hits by their distance from the camera
func NewDepthMapIntegrator(depth *material.DepthMap) *OverrideIntegrator {
	return &OverrideIntegrator{Material: depth}
}

// Li shades hits with the override material
func (oi *OverrideIntegrator) Li(ray core.Ray, uv core.Vec2, scene core.Scene, sampler core.Sampler) core.Color {
	return li(ray, uv, scene, oi.Material.Shade)
}
