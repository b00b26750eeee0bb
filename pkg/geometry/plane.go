package geometry

import (
	"math"

	"github.com/JoMedeiros/ray-tracing/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Point3 // A point on the plane
	Normal core.Vec3   // Unit normal
}

// NewPlane creates a new plane
func NewPlane(point core.Point3, normal core.Vec3) *Plane {
	return &Plane{
		Point:  point,
		Normal: normal.Normalize(),
	}
}

func (p *Plane) solve(ray core.Ray, tMin, tMax float64) (float64, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return 0, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return 0, false
	}
	return t, true
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*core.SurfaceInteraction, bool) {
	t, ok := p.solve(ray, tMin, tMax)
	if !ok {
		return nil, false
	}

	si := &core.SurfaceInteraction{
		T:     t,
		Point: ray.At(t),
	}
	si.SetFaceNormal(ray, p.Normal)

	return si, true
}

// HitP reports whether the ray crosses the plane within [tMin, tMax]
func (p *Plane) HitP(ray core.Ray, tMin, tMax float64) bool {
	_, ok := p.solve(ray, tMin, tMax)
	return ok
}
