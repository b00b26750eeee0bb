package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/JoMedeiros/ray-tracing/pkg/core"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width
	Height          int   // Image height
	SamplesPerPixel int   // Number of primary rays per pixel
	Seed            int64 // Base seed for per-tile random generators
}

// DefaultSamplingConfig returns the configuration used when a scene document
// leaves fields out
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           800,
		Height:          600,
		SamplesPerPixel: 1,
		Seed:            42,
	}
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         core.Camera
	SamplingConfig SamplingConfig

	primitives []core.Primitive
	lights     []core.Light
	background *Background
}

// NewScene creates an empty scene. A nil background is replaced by solid white.
func NewScene(camera core.Camera, background *Background, config SamplingConfig) *Scene {
	if background == nil {
		background = NewSolidBackground(core.NewVec3(1, 1, 1))
	}
	return &Scene{
		Camera:         camera,
		SamplingConfig: config,
		background:     background,
	}
}

// Add appends primitives; insertion order decides exact ties in Intersect
func (s *Scene) Add(primitives ...core.Primitive) {
	s.primitives = append(s.primitives, primitives...)
}

// AddLight appends lights
func (s *Scene) AddLight(lights ...core.Light) {
	s.lights = append(s.lights, lights...)
}

// Intersect scans every primitive and returns the closest hit. On an exact
// tie in t the primitive inserted first wins.
func (s *Scene) Intersect(ray core.Ray) (*core.SurfaceInteraction, bool) {
	var closest *core.SurfaceInteraction
	closestSoFar := math.Inf(1)

	for _, primitive := range s.primitives {
		si, ok := primitive.Intersect(ray, core.RayEpsilon, closestSoFar)
		if ok && si.T < closestSoFar {
			closestSoFar = si.T
			closest = si
		}
	}

	return closest, closest != nil
}

// IntersectP reports whether any primitive is hit in [RayEpsilon, tMax]
func (s *Scene) IntersectP(ray core.Ray, tMax float64) bool {
	for _, primitive := range s.primitives {
		if primitive.IntersectP(ray, core.RayEpsilon, tMax) {
			return true
		}
	}
	return false
}

// Background returns the environment sampled on misses
func (s *Scene) Background() core.Background {
	return s.background
}

// Lights returns the scene lights
func (s *Scene) Lights() []core.Light {
	return s.lights
}

// Primitives returns the scene primitives in insertion order
func (s *Scene) Primitives() []core.Primitive {
	return s.primitives
}

// Validate checks that the scene is complete enough to render
func (s *Scene) Validate() error {
	var errs []error
	if s.Camera == nil {
		errs = append(errs, errors.New("scene has no camera"))
	}
	if s.SamplingConfig.Width <= 0 || s.SamplingConfig.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid image size %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height))
	}
	if s.SamplingConfig.SamplesPerPixel < 1 {
		errs = append(errs, fmt.Errorf("samples per pixel must be at least 1, got %d", s.SamplingConfig.SamplesPerPixel))
	}
	for i, primitive := range s.primitives {
		if primitive == nil {
			errs = append(errs, fmt.Errorf("primitive %d is nil", i))
			continue
		}
		if primitive.Material() == nil {
			errs = append(errs, fmt.Errorf("primitive %d has no material", i))
		}
	}
	return errors.Join(errs...)
}
