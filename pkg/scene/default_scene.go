package scene

import (
	"github.com/JoMedeiros/ray-tracing/pkg/core"
	"github.com/JoMedeiros/ray-tracing/pkg/geometry"
	"github.com/JoMedeiros/ray-tracing/pkg/lights"
	"github.com/JoMedeiros/ray-tracing/pkg/material"
)

// NewDefaultScene creates a small Blinn-Phong scene: three spheres on a
// ground plane under a sky gradient, lit by one point and one ambient light
func NewDefaultScene() (*Scene, error) {
	config := DefaultSamplingConfig()
	config.Width = 400
	config.Height = 225

	camera, err := geometry.NewPerspectiveCamera(
		core.NewVec3(0, 0.75, 2.5), // position
		core.NewVec3(0, 0.5, -1),   // look at the middle sphere
		core.NewVec3(0, 1, 0),
		40.0,
		float64(config.Width)/float64(config.Height),
		1.0,
	)
	if err != nil {
		return nil, err
	}

	background := NewBackground(
		core.NewVec3(1.0, 1.0, 1.0), // bottom-left
		core.NewVec3(1.0, 1.0, 1.0), // bottom-right
		core.NewVec3(0.5, 0.7, 1.0), // top-left
		core.NewVec3(0.5, 0.7, 1.0), // top-right
	)

	s := NewScene(camera, background, config)

	ground := material.NewBlinnPhong(core.NewVec3(0.05, 0.05, 0.05), core.NewVec3(0.48, 0.48, 0.0), core.NewVec3(0, 0, 0), 1)
	red := material.NewBlinnPhong(core.NewVec3(0.1, 0.02, 0.02), core.NewVec3(0.65, 0.25, 0.2), core.NewVec3(0.8, 0.8, 0.8), 64)
	blue := material.NewBlinnPhong(core.NewVec3(0.02, 0.02, 0.1), core.NewVec3(0.1, 0.2, 0.5), core.NewVec3(0.5, 0.5, 0.5), 16)
	gold := material.NewBlinnPhong(core.NewVec3(0.08, 0.06, 0.02), core.NewVec3(0.8, 0.6, 0.2), core.NewVec3(1, 1, 1), 256)

	s.Add(
		geometry.NewGeometricPrimitive("ground", geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), ground),
		geometry.NewGeometricPrimitive("center", geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5), red),
		geometry.NewGeometricPrimitive("left", geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5), blue),
		geometry.NewGeometricPrimitive("right", geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5), gold),
	)

	s.AddLight(
		lights.NewPointLight(core.NewVec3(3, 5, 2), core.NewVec3(0.9, 0.9, 0.9)),
		lights.NewAmbientLight(core.NewVec3(0.4, 0.4, 0.4)),
	)

	return s, nil
}
