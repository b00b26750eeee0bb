package scene

import (
	"math"
	"testing"

	"github.com/JoMedeiros/ray-tracing/pkg/core"
)

func TestBackground_Corners(t *testing.T) {
	c00 := core.NewVec3(1, 0, 0)
	c10 := core.NewVec3(0, 1, 0)
	c01 := core.NewVec3(0, 0, 1)
	c11 := core.NewVec3(1, 1, 1)
	bg := NewBackground(c00, c10, c01, c11)

	tests := []struct {
		u, v     float64
		expected core.Color
	}{
		{0, 0, c00},
		{1, 0, c10},
		{0, 1, c01},
		{1, 1, c11},
	}
	for _, tt := range tests {
		if got := bg.Sample(tt.u, tt.v); got != tt.expected {
			t.Errorf("Sample(%g, %g) = %v, want %v", tt.u, tt.v, got, tt.expected)
		}
	}

	avg := c00.Add(c10).Add(c01).Add(c11).Multiply(0.25)
	if got := bg.Sample(0.5, 0.5); got.Subtract(avg).Length() > 1e-12 {
		t.Errorf("Sample(0.5, 0.5) = %v, want average %v", got, avg)
	}
}

func TestBackground_Solid(t *testing.T) {
	color := core.NewColor8(100, 150, 255)
	bg := NewSolidBackground(color)
	for _, uv := range [][2]float64{{0, 0}, {0.25, 0.9}, {1, 1}, {0.5, 0.5}} {
		got := bg.Sample(uv[0], uv[1])
		if math.Abs(got.X-color.X) > 1e-12 || math.Abs(got.Y-color.Y) > 1e-12 || math.Abs(got.Z-color.Z) > 1e-12 {
			t.Errorf("Sample(%v) = %v, want %v", uv, got, color)
		}
	}
}

func TestNewBackground_ReplicatesLastColor(t *testing.T) {
	a := core.NewVec3(1, 0, 0)
	b := core.NewVec3(0, 0, 1)

	tests := []struct {
		name   string
		colors []core.Color
		want   [4]core.Color
	}{
		{"none", nil, [4]core.Color{{X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}}},
		{"one", []core.Color{a}, [4]core.Color{a, a, a, a}},
		{"two", []core.Color{a, b}, [4]core.Color{a, b, b, b}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bg := NewBackground(tt.colors...)
			got := [4]core.Color{bg.BottomLeft, bg.BottomRight, bg.TopLeft, bg.TopRight}
			if got != tt.want {
				t.Errorf("Expected corners %v, got %v", tt.want, got)
			}
		})
	}
}

func TestBackground_ClampsCoordinates(t *testing.T) {
	bg := NewBackground(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))
	if got := bg.Sample(-1, 0); got != core.NewVec3(0, 0, 0) {
		t.Errorf("Expected clamped sample at u=0, got %v", got)
	}
	if got := bg.Sample(2, 0); got != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected clamped sample at u=1, got %v", got)
	}
}
