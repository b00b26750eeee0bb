package integrator

import (
	"errors"
	"fmt"

	"github.com/JoMedeiros/ray-tracing/pkg/core"
	"github.com/JoMedeiros/ray-tracing/pkg/material"
)

// ErrUnknownIntegrator is returned by New for unrecognized integrator types
var ErrUnknownIntegrator = errors.New("unknown integrator type")

// Type names accepted by New
const (
	TypeFlat       = "flat"
	TypeNormal     = "normal"
	TypeDepthMap   = "depth_map"
	TypeBlinnPhong = "blinn_phong"
)

// Config selects and parameterizes an integrator
type Config struct {
	Type string

	// Depth map parameters
	NearColor core.Color
	FarColor  core.Color
	NearValue float64
	FarValue  float64
}

// New creates the integrator named by config.Type
func New(config Config) (core.Integrator, error) {
	switch config.Type {
	case TypeFlat:
		return NewFlatIntegrator(), nil
	case TypeNormal:
		return NewNormalIntegrator(), nil
	case TypeDepthMap:
		depth, err := material.NewDepthMap(config.NearColor, config.FarColor, config.NearValue, config.FarValue)
		if err != nil {
			return nil, err
		}
		return NewDepthMapIntegrator(depth), nil
	case TypeBlinnPhong:
		return NewBlinnPhongIntegrator(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownIntegrator, config.Type)
	}
}

// shadeFunc turns a hit into a color
type shadeFunc func(si *core.SurfaceInteraction, ray core.Ray, scene core.Scene) core.Color

// li is the shared integrator loop: background on a miss, shade on a hit
func li(ray core.Ray, uv core.Vec2, scene core.Scene, shade shadeFunc) core.Color {
	si, ok := scene.Intersect(ray)
	if !ok {
		return scene.Background().Sample(uv.X, uv.Y)
	}
	return shade(si, ray, scene)
}
