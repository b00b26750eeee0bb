package core

import (
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	// SamplesPerPixel is the number of primary rays averaged into one pixel
	SamplesPerPixel() int
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
	spp    int
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand, samplesPerPixel int) *RandomSampler {
	return &RandomSampler{random: random, spp: max(1, samplesPerPixel)}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// SamplesPerPixel returns the configured sample count (at least 1)
func (r *RandomSampler) SamplesPerPixel() int {
	return r.spp
}

// PixelOffset returns the sub-pixel offset for one primary sample: the pixel
// center when a single sample is taken, a jittered position otherwise
func PixelOffset(sampler Sampler) Vec2 {
	if sampler.SamplesPerPixel() <= 1 {
		return NewVec2(0.5, 0.5)
	}
	return sampler.Get2D()
}
