package core

// SurfaceInteraction contains information about a ray-object intersection
type SurfaceInteraction struct {
	Point     Point3    // Point of intersection
	Normal    Vec3      // Unit outward surface normal at the intersection
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether the ray hit the outside of the surface
	Primitive Primitive // Primitive that was hit, stamped by Primitive.Intersect
}

// SetFaceNormal stores the outward normal and records which side was hit
func (si *SurfaceInteraction) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	si.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	si.Normal = outwardNormal
}

// ShadingNormal returns the normal facing against the incoming ray
func (si *SurfaceInteraction) ShadingNormal() Vec3 {
	if si.FrontFace {
		return si.Normal
	}
	return si.Normal.Negate()
}

// Shape interface for geometry that can be hit by rays
type Shape interface {
	// Hit finds the nearest intersection with t in [tMin, tMax]
	Hit(ray Ray, tMin, tMax float64) (*SurfaceInteraction, bool)
	// HitP reports whether any intersection exists in [tMin, tMax]
	HitP(ray Ray, tMin, tMax float64) bool
}

// Primitive binds a shape to the material it is rendered with
type Primitive interface {
	Intersect(ray Ray, tMin, tMax float64) (*SurfaceInteraction, bool)
	IntersectP(ray Ray, tMin, tMax float64) bool
	Material() Material
}

// Material is the shading capability every surface appearance implements
type Material interface {
	// Albedo returns the authored diffuse color at the interaction
	Albedo(si *SurfaceInteraction) Color
	// Shade returns the radiance leaving the interaction towards the ray origin
	Shade(si *SurfaceInteraction, ray Ray, scene Scene) Color
}

// Background provides the color seen by rays that escape the scene
type Background interface {
	Sample(u, v float64) Color
}

// LightType distinguishes light variants
type LightType int

const (
	LightTypeAmbient LightType = iota
	LightTypePoint
	LightTypeDirectional
)

// LightSample describes the light arriving at a point from one light
type LightSample struct {
	Direction Vec3    // Unit direction from the point towards the light
	Distance  float64 // Distance to the light (+Inf for directional lights)
	Intensity Color   // Radiant intensity reaching the point
}

// Light interface for light sources used by shading materials
type Light interface {
	Type() LightType
	Illuminate(point Point3) LightSample
}

// Scene is the read-only view of the world that integrators and materials query
type Scene interface {
	// Intersect returns the closest hit along the ray
	Intersect(ray Ray) (*SurfaceInteraction, bool)
	// IntersectP reports whether anything blocks the ray before tMax
	IntersectP(ray Ray, tMax float64) bool
	Background() Background
	Lights() []Light
}

// Camera maps normalized image coordinates to world-space rays
type Camera interface {
	// GenerateRay returns the primary ray for NDC (s, t), where (0,0) is the
	// bottom-left corner of the image and (1,1) the top-right corner
	GenerateRay(s, t float64) Ray
}

// Integrator computes the color carried back along a primary ray
type Integrator interface {
	// Li returns the radiance for ray; uv is the NDC position of the sample,
	// used to look up the background on a miss
	Li(ray Ray, uv Vec2, scene Scene, sampler Sampler) Color
}
