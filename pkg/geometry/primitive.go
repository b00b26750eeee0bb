package geometry

import (
	"github.com/JoMedeiros/ray-tracing/pkg/core"
)

// GeometricPrimitive is a renderable object: a shape it owns bound to a
// material that may be shared with other primitives
type GeometricPrimitive struct {
	Name     string
	shape    core.Shape
	material core.Material
}

// NewGeometricPrimitive binds shape to material
func NewGeometricPrimitive(name string, shape core.Shape, material core.Material) *GeometricPrimitive {
	return &GeometricPrimitive{
		Name:     name,
		shape:    shape,
		material: material,
	}
}

// Intersect forwards to the shape and stamps the interaction with this primitive
func (gp *GeometricPrimitive) Intersect(ray core.Ray, tMin, tMax float64) (*core.SurfaceInteraction, bool) {
	si, ok := gp.shape.Hit(ray, tMin, tMax)
	if !ok {
		return nil, false
	}
	si.Primitive = gp
	return si, true
}

// IntersectP reports whether the ray hits the shape
func (gp *GeometricPrimitive) IntersectP(ray core.Ray, tMin, tMax float64) bool {
	return gp.shape.HitP(ray, tMin, tMax)
}

// Material returns the bound material
func (gp *GeometricPrimitive) Material() core.Material {
	return gp.material
}

// Shape returns the owned shape
func (gp *GeometricPrimitive) Shape() core.Shape {
	return gp.shape
}
