package geometry

import (
	"math"
	"testing"

	"github.com/JoMedeiros/ray-tracing/pkg/core"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
	if sphere.HitP(ray, 0.001, 1000.0) {
		t.Error("Expected HitP to report a miss")
	}
}

func TestSphere_Hit_DistanceMinusRadius(t *testing.T) {
	tests := []struct {
		name      string
		direction core.Vec3
		distance  float64
		radius    float64
	}{
		{"along -Z", core.NewVec3(0, 0, -1), 5, 1},
		{"along +X", core.NewVec3(1, 0, 0), 3, 0.5},
		{"diagonal", core.NewVec3(1, 1, 1).Normalize(), 10, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origin := core.NewVec3(0.5, -0.25, 1)
			center := origin.Add(tt.direction.Multiply(tt.distance))
			sphere := NewSphere(center, tt.radius)
			ray := core.NewRay(origin, tt.direction)

			hit, isHit := sphere.Hit(ray, core.RayEpsilon, math.Inf(1))
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			expectedT := tt.distance - tt.radius
			if math.Abs(hit.T-expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", expectedT, hit.T)
			}

			if math.Abs(hit.Normal.Length()-1.0) > 1e-9 {
				t.Errorf("Expected unit normal, got length %f", hit.Normal.Length())
			}

			// Normal points away from the center
			if hit.Normal.Dot(hit.Point.Subtract(center)) <= 0 {
				t.Errorf("Expected normal pointing away from center, got %v", hit.Normal)
			}
			if !hit.FrontFace {
				t.Error("Expected front face hit")
			}
		})
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			// Inside the sphere only the larger root is in range
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}

			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// Test tMax bound
	hit, isHit := sphere.Hit(ray, 0.001, 0.5)
	if isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}

	// Test tMin bound
	hit, isHit = sphere.Hit(ray, 3.5, 1000.0)
	if isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}

	// Near root excluded, far root accepted
	hit, isHit = sphere.Hit(ray, 1.5, 1000.0)
	if !isHit || math.Abs(hit.T-3.0) > 1e-9 {
		t.Errorf("Expected fallback to far root t=3, got %v (hit=%t)", hit, isHit)
	}
}

func TestSphere_Hit_Degenerate(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1.0)

	zeroDir := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 0))
	if _, isHit := sphere.Hit(zeroDir, core.RayEpsilon, math.Inf(1)); isHit {
		t.Error("Zero-length direction must not hit")
	}
	if sphere.HitP(zeroDir, core.RayEpsilon, math.Inf(1)) {
		t.Error("Zero-length direction must not hit (HitP)")
	}

	// Tangent ray has a zero discriminant and touches at one point
	tangent := core.NewRay(core.NewVec3(1, 0, 0), core.NewVec3(0, 0, -1))
	hit, isHit := sphere.Hit(tangent, core.RayEpsilon, math.Inf(1))
	if !isHit || math.Abs(hit.T-5.0) > 1e-9 {
		t.Errorf("Expected tangent hit at t=5, got %v (hit=%t)", hit, isHit)
	}
}

func TestSphere_HitP_MatchesHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -3), 1.0)
	for x := -2.0; x <= 2.0; x += 0.25 {
		ray := core.NewRay(core.NewVec3(x, 0, 0), core.NewVec3(0, 0, -1))
		_, hit := sphere.Hit(ray, core.RayEpsilon, math.Inf(1))
		if hitP := sphere.HitP(ray, core.RayEpsilon, math.Inf(1)); hitP != hit {
			t.Errorf("x=%f: Hit=%t HitP=%t", x, hit, hitP)
		}
	}
}
