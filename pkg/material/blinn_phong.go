package material

import (
	"math"

	"github.com/JoMedeiros/ray-tracing/pkg/core"
)

// BlinnPhong is a local illumination material with ambient, diffuse and
// specular terms
type BlinnPhong struct {
	Ambient    core.Color // ka
	Diffuse    core.Color // kd
	Specular   core.Color // ks
	Glossiness float64    // Specular exponent
}

// NewBlinnPhong creates a new Blinn-Phong material
func NewBlinnPhong(ambient, diffuse, specular core.Color, glossiness float64) *BlinnPhong {
	return &BlinnPhong{
		Ambient:    ambient,
		Diffuse:    diffuse,
		Specular:   specular,
		Glossiness: glossiness,
	}
}

// Albedo returns the diffuse coefficient
func (b *BlinnPhong) Albedo(si *core.SurfaceInteraction) core.Color {
	return b.Diffuse
}

// Shade evaluates every light in the scene at the hit point. Without any
// direct light a unit point light at the ray origin is used, and without any
// ambient light the ambient term is taken at full strength.
func (b *BlinnPhong) Shade(si *core.SurfaceInteraction, ray core.Ray, scene core.Scene) core.Color {
	normal := si.ShadingNormal()
	viewDir := ray.Direction.Negate().Normalize()

	ambient := core.Vec3{}
	hasAmbient := false
	var direct []core.LightSample

	for _, light := range scene.Lights() {
		sample := light.Illuminate(si.Point)
		if light.Type() == core.LightTypeAmbient {
			ambient = ambient.Add(sample.Intensity)
			hasAmbient = true
			continue
		}
		direct = append(direct, sample)
	}

	if !hasAmbient {
		ambient = core.NewVec3(1, 1, 1)
	}
	if len(direct) == 0 {
		toEye := ray.Origin.Subtract(si.Point)
		direct = append(direct, core.LightSample{
			Direction: toEye.Normalize(),
			Distance:  toEye.Length(),
			Intensity: core.NewVec3(1, 1, 1),
		})
	}

	color := b.Ambient.MultiplyVec(ambient)
	for _, sample := range direct {
		if b.occluded(si, sample, scene) {
			continue
		}
		color = color.Add(b.reflect(normal, viewDir, sample))
	}
	return color
}

// reflect computes the diffuse and specular contribution of one light. A light
// behind the surface contributes neither term.
func (b *BlinnPhong) reflect(normal, viewDir core.Vec3, sample core.LightSample) core.Color {
	nDotL := normal.Dot(sample.Direction)
	if nDotL <= 0 {
		return core.Vec3{}
	}
	diffuse := b.Diffuse.Multiply(nDotL)

	half := viewDir.Add(sample.Direction).Normalize()
	nDotH := math.Max(0, normal.Dot(half))
	specular := b.Specular.Multiply(math.Pow(nDotH, b.Glossiness))

	return diffuse.Add(specular).MultiplyVec(sample.Intensity)
}

// occluded casts a shadow ray towards the light
func (b *BlinnPhong) occluded(si *core.SurfaceInteraction, sample core.LightSample, scene core.Scene) bool {
	origin := si.Point.Add(si.ShadingNormal().Multiply(core.RayEpsilon))
	shadowRay := core.NewRay(origin, sample.Direction)
	maxT := sample.Distance - core.RayEpsilon
	if math.IsInf(sample.Distance, 1) {
		maxT = math.Inf(1)
	}
	return scene.IntersectP(shadowRay, maxT)
}
