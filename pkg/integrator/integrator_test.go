package integrator

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/JoMedeiros/ray-tracing/pkg/core"
	"github.com/JoMedeiros/ray-tracing/pkg/geometry"
	"github.com/JoMedeiros/ray-tracing/pkg/material"
	"github.com/JoMedeiros/ray-tracing/pkg/scene"
)

func colorsClose(a, b core.Color) bool {
	return math.Abs(a.X-b.X) <= 1e-9 && math.Abs(a.Y-b.Y) <= 1e-9 && math.Abs(a.Z-b.Z) <= 1e-9
}

func newTestScene(t *testing.T, background *scene.Background, primitives ...core.Primitive) *scene.Scene {
	t.Helper()
	camera, err := geometry.NewPerspectiveCamera(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), core.NewVec3(0, 1, 0), 90, 1, 1)
	if err != nil {
		t.Fatalf("Unexpected camera error: %v", err)
	}
	s := scene.NewScene(camera, background, scene.DefaultSamplingConfig())
	s.Add(primitives...)
	return s
}

func newSampler() core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(42)), 1)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{"flat", Config{Type: TypeFlat}, nil},
		{"normal", Config{Type: TypeNormal}, nil},
		{"depth map", Config{Type: TypeDepthMap, NearValue: 1, FarValue: 5}, nil},
		{"blinn phong", Config{Type: TypeBlinnPhong}, nil},
		{"unknown", Config{Type: "path_tracer"}, ErrUnknownIntegrator},
		{"empty", Config{}, ErrUnknownIntegrator},
		{"bad depth range", Config{Type: TypeDepthMap, NearValue: 5, FarValue: 1}, material.ErrInvalidDepthRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integrator, err := New(tt.config)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if integrator == nil {
				t.Error("Expected an integrator, got nil")
			}
		})
	}
}

func TestFlatIntegrator_MissReturnsBackground(t *testing.T) {
	bg := scene.NewBackground(
		core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(1, 1, 0),
	)
	s := newTestScene(t, bg,
		geometry.NewGeometricPrimitive("ball", geometry.NewSphere(core.NewVec3(0, 0, -3), 1), material.NewFlat(core.NewVec3(1, 1, 1))),
	)

	// Ray aimed away from every primitive
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	for _, uv := range []core.Vec2{{X: 0, Y: 0}, {X: 0.3, Y: 0.8}, {X: 1, Y: 1}} {
		got := NewFlatIntegrator().Li(ray, uv, s, newSampler())
		if want := bg.Sample(uv.X, uv.Y); got != want {
			t.Errorf("uv=%v: expected background %v, got %v", uv, want, got)
		}
	}
}

func TestFlatIntegrator_HitReturnsMaterialColor(t *testing.T) {
	red := core.NewVec3(1, 0, 0)
	blinn := material.NewBlinnPhong(core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(0, 0, 1), core.NewVec3(1, 1, 1), 8)
	s := newTestScene(t, nil,
		geometry.NewGeometricPrimitive("flat", geometry.NewSphere(core.NewVec3(0, 0, -3), 1), material.NewFlat(red)),
		geometry.NewGeometricPrimitive("blinn", geometry.NewSphere(core.NewVec3(3, 0, -3), 1), blinn),
	)

	got := NewFlatIntegrator().Li(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), core.NewVec2(0.5, 0.5), s, newSampler())
	if got != red {
		t.Errorf("Expected flat diffuse %v, got %v", red, got)
	}

	// Blinn-Phong material under the flat integrator shows its diffuse color unlit
	got = NewFlatIntegrator().Li(core.NewRay(core.NewVec3(3, 0, 0), core.NewVec3(0, 0, -1)), core.NewVec2(0.5, 0.5), s, newSampler())
	if got != blinn.Diffuse {
		t.Errorf("Expected blinn diffuse %v, got %v", blinn.Diffuse, got)
	}
}

func TestNormalIntegrator_OverridesMaterial(t *testing.T) {
	s := newTestScene(t, nil,
		geometry.NewGeometricPrimitive("ball", geometry.NewSphere(core.NewVec3(0, 0, -3), 1), material.NewFlat(core.NewVec3(1, 0, 0))),
	)

	// Hit at (0,0,-2) with normal (0,0,1)
	got := NewNormalIntegrator().Li(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), core.NewVec2(0.5, 0.5), s, newSampler())
	if !colorsClose(got, core.NewVec3(0.5, 0.5, 1)) {
		t.Errorf("Expected normal color (0.5,0.5,1), got %v", got)
	}
}

func TestDepthMapIntegrator(t *testing.T) {
	near := core.NewVec3(1, 1, 1)
	far := core.NewVec3(0, 0, 0)
	integrator, err := New(Config{Type: TypeDepthMap, NearColor: near, FarColor: far, NearValue: 2, FarValue: 6})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Unit spheres centered at distance c along -Z are hit at t = c - 1
	tests := []struct {
		name     string
		center   float64
		expected core.Color
	}{
		{"closer than near", 2.5, near},
		{"exactly near", 3, near},
		{"midpoint", 5, core.NewVec3(0.5, 0.5, 0.5)},
		{"exactly far", 7, far},
		{"beyond far", 20, far},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScene(t, nil,
				geometry.NewGeometricPrimitive("ball", geometry.NewSphere(core.NewVec3(0, 0, -tt.center), 1), material.NewFlat(core.NewVec3(1, 0, 0))),
			)
			got := integrator.Li(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), core.NewVec2(0.5, 0.5), s, newSampler())
			if !colorsClose(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDepthMapIntegrator_NonUnitDirection(t *testing.T) {
	integrator, err := New(Config{Type: TypeDepthMap, NearColor: core.NewVec3(1, 1, 1), FarColor: core.NewVec3(0, 0, 0), NearValue: 0, FarValue: 10})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	s := newTestScene(t, nil,
		geometry.NewGeometricPrimitive("ball", geometry.NewSphere(core.NewVec3(0, 0, -11), 1), material.NewFlat(core.NewVec3(1, 0, 0))),
	)

	// The surface is 10 units away, reached at t=5 along a direction of length 2
	got := integrator.Li(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -2)), core.NewVec2(0.5, 0.5), s, newSampler())
	if !colorsClose(got, core.NewVec3(0.5, 0.5, 0.5)) {
		t.Errorf("Expected (0.5,0.5,0.5) at t=5, got %v", got)
	}
}

func TestBlinnPhongIntegrator_UsesMaterialShade(t *testing.T) {
	blinn := material.NewBlinnPhong(core.NewVec3(0.1, 0, 0), core.NewVec3(0.5, 0, 0), core.NewVec3(0.2, 0, 0), 10)
	s := newTestScene(t, nil,
		geometry.NewGeometricPrimitive("ball", geometry.NewSphere(core.NewVec3(0, 0, -3), 1), blinn),
	)

	// Head-on with the implicit camera light: ka + kd + ks
	got := NewBlinnPhongIntegrator().Li(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), core.NewVec2(0.5, 0.5), s, newSampler())
	if !colorsClose(got, core.NewVec3(0.8, 0, 0)) {
		t.Errorf("Expected (0.8,0,0), got %v", got)
	}

	// Flat material under Blinn-Phong keeps its constant color
	flat := newTestScene(t, nil,
		geometry.NewGeometricPrimitive("ball", geometry.NewSphere(core.NewVec3(0, 0, -3), 1), material.NewFlat(core.NewVec3(0, 1, 0))),
	)
	got = NewBlinnPhongIntegrator().Li(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), core.NewVec2(0.5, 0.5), flat, newSampler())
	if got != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected flat color, got %v", got)
	}
}
