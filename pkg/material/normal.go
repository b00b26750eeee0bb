package material

import (
	"github.com/JoMedeiros/ray-tracing/pkg/core"
)

// Normal visualizes the surface normal by mapping each component from
// [-1, 1] to [0, 1]
type Normal struct{}

// NewNormal creates a normal-visualization material
func NewNormal() *Normal {
	return &Normal{}
}

// Albedo returns the normal mapped to a color
func (n *Normal) Albedo(si *core.SurfaceInteraction) core.Color {
	return si.Normal.Normalize().Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}

// Shade returns the normal mapped to a color
func (n *Normal) Shade(si *core.SurfaceInteraction, ray core.Ray, scene core.Scene) core.Color {
	return n.Albedo(si)
}
