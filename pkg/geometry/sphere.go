package geometry

import (
	"math"

	"github.com/JoMedeiros/ray-tracing/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Point3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Point3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// roots solves |o + t*d - center|^2 = radius^2 and returns the nearest root
// within [tMin, tMax]
func (s *Sphere) roots(ray core.Ray, tMin, tMax float64) (float64, bool) {
	// Quadratic equation coefficients: at² + 2*halfB*t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	if a == 0 {
		return 0, false
	}
	oc := ray.Origin.Subtract(s.Center)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		// Try the farther intersection point
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return 0, false
		}
	}
	return root, true
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.SurfaceInteraction, bool) {
	root, ok := s.roots(ray, tMin, tMax)
	if !ok {
		return nil, false
	}

	si := &core.SurfaceInteraction{
		T:     root,
		Point: ray.At(root),
	}

	// Outward normal (from center to hit point)
	outwardNormal := si.Point.Subtract(s.Center).Normalize()
	si.SetFaceNormal(ray, outwardNormal)

	return si, true
}

// HitP reports whether the ray intersects the sphere without building an interaction
func (s *Sphere) HitP(ray core.Ray, tMin, tMax float64) bool {
	_, ok := s.roots(ray, tMin, tMax)
	return ok
}
