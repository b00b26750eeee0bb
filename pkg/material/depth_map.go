package material

import (
	"errors"
	"fmt"

	"github.com/JoMedeiros/ray-tracing/pkg/core"
)

// ErrInvalidDepthRange is returned when the far value does not exceed the near value
var ErrInvalidDepthRange = errors.New("depth map far value must be greater than near value")

// DepthMap colors a hit by its ray parameter t, blending from NearColor at
// NearValue to FarColor at FarValue. t is measured in multiples of the ray
// direction length, so it only equals world distance for unit-length rays.
type DepthMap struct {
	NearColor core.Color
	FarColor  core.Color
	NearValue float64
	FarValue  float64
}

// NewDepthMap creates a depth map material
func NewDepthMap(nearColor, farColor core.Color, nearValue, farValue float64) (*DepthMap, error) {
	if farValue <= nearValue {
		return nil, fmt.Errorf("%w: near=%g far=%g", ErrInvalidDepthRange, nearValue, farValue)
	}
	return &DepthMap{
		NearColor: nearColor,
		FarColor:  farColor,
		NearValue: nearValue,
		FarValue:  farValue,
	}, nil
}

// ColorAt maps a ray parameter to the interpolated color
func (d *DepthMap) ColorAt(t float64) core.Color {
	f := (t - d.NearValue) / (d.FarValue - d.NearValue)
	switch {
	case f <= 0:
		return d.NearColor
	case f >= 1:
		return d.FarColor
	}
	return d.NearColor.Lerp(d.FarColor, f)
}

func (d *DepthMap) Albedo(si *core.SurfaceInteraction) core.Color {
	return d.ColorAt(si.T)
}

func (d *DepthMap) Shade(si *core.SurfaceInteraction, ray core.Ray, scene core.Scene) core.Color {
	return d.ColorAt(si.T)
}
