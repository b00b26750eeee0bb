package loaders

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/JoMedeiros/ray-tracing/pkg/core"
	"github.com/JoMedeiros/ray-tracing/pkg/geometry"
	"github.com/JoMedeiros/ray-tracing/pkg/integrator"
	"github.com/JoMedeiros/ray-tracing/pkg/lights"
	"github.com/JoMedeiros/ray-tracing/pkg/material"
	"github.com/JoMedeiros/ray-tracing/pkg/scene"
)

// Defaults applied to fields missing from a scene document
const (
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultFovy       = 90.0
	DefaultFDistance  = 1.0
	DefaultOutputName = "output"
	DefaultSeed       = 42
)

// MaxDimension bounds camera.width and camera.height
const MaxDimension = 16384

// OutputFile names the image the render should be written to
type OutputFile struct {
	Name   string // Path without extension
	Format string // png, jpg, bmp or tga
}

// RenderSettings holds the non-scene parts of a document
type RenderSettings struct {
	Integrator integrator.Config
	Output     OutputFile
}

// Setup is a fully built, render-ready scene document
type Setup struct {
	Scene      *scene.Scene
	Integrator core.Integrator
	Settings   RenderSettings
}

// Load reads and builds the scene document at path
func Load(path string) (*Setup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	setup, err := Parse(bytes.NewReader(data))
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		configErr.Source = path
	}
	return setup, err
}

// Parse decodes and builds a scene document. Every problem found is reported
// in a single *ConfigError; a nil error means the returned setup is complete.
func Parse(r io.Reader) (*Setup, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var doc sceneFile
	if err := decoder.Decode(&doc); err != nil {
		return nil, &ConfigError{Problems: []*FieldError{{Path: "$", Err: fmt.Errorf("%w: %w", ErrInvalidValue, err)}}}
	}

	b := &builder{}
	setup := b.build(&doc)
	if !b.problems.empty() {
		return nil, &ConfigError{Problems: b.problems.list}
	}
	return setup, nil
}

// builder turns a decoded document into scene objects, collecting problems
// instead of stopping at the first one
type builder struct {
	problems  problems
	materials map[string]core.Material
}

func (b *builder) build(doc *sceneFile) *Setup {
	settings := RenderSettings{}

	sampling := scene.SamplingConfig{SamplesPerPixel: 1, Seed: DefaultSeed}
	camera, eye := b.buildCamera(doc.Camera, &sampling, &settings.Output)
	background := b.buildBackground(doc.Background)

	sc := scene.NewScene(camera, background, sampling)
	b.buildWorld(doc.Scene, sc)

	b.buildRunning(doc.Running, sc, camera, eye, &settings.Integrator)

	if !b.problems.empty() {
		return nil
	}

	integratorInst, err := integrator.New(settings.Integrator)
	if err != nil {
		b.problems.add("running.integrator", err)
		return nil
	}
	if err := sc.Validate(); err != nil {
		b.problems.add("$", err)
		return nil
	}

	return &Setup{Scene: sc, Integrator: integratorInst, Settings: settings}
}

func (b *builder) buildCamera(cfg *cameraConfig, sampling *scene.SamplingConfig, output *OutputFile) (core.Camera, core.Point3) {
	if cfg == nil {
		b.problems.add("camera", ErrMissingField)
		return nil, core.Point3{}
	}

	sampling.Width = b.dimension("camera.width", cfg.Width, DefaultWidth)
	sampling.Height = b.dimension("camera.height", cfg.Height, DefaultHeight)

	position := b.vector("camera.position", cfg.Position, core.NewVec3(0, 0, 0))
	target := b.vector("camera.target", cfg.Target, core.NewVec3(0, 0, -1))
	up := b.vector("camera.up", cfg.Up, core.NewVec3(0, 1, 0))

	aspect := float64(sampling.Width) / float64(sampling.Height)
	if cfg.Aspect != nil {
		if *cfg.Aspect <= 0 {
			b.problems.addf("camera.aspect", ErrInvalidValue, "must be positive, got %g", *cfg.Aspect)
		} else {
			aspect = *cfg.Aspect
		}
	}

	*output = OutputFile{Name: DefaultOutputName, Format: FormatPNG}
	if cfg.ImgFile != nil {
		if cfg.ImgFile.Name != "" {
			output.Name = cfg.ImgFile.Name
		}
		if cfg.ImgFile.Type != "" {
			format, err := ParseFormat(cfg.ImgFile.Type)
			if err != nil {
				b.problems.add("camera.img_file.type", err)
			}
			output.Format = format
		}
	}

	var (
		camera core.Camera
		err    error
	)
	switch strings.ToLower(cfg.Type) {
	case "", "perspective":
		fovy := valueOr(cfg.Fovy, DefaultFovy)
		fdistance := valueOr(cfg.FDistance, DefaultFDistance)
		camera, err = geometry.NewPerspectiveCamera(position, target, up, fovy, aspect, fdistance)
	case "orthographic":
		window := geometry.DefaultScreenWindow(aspect)
		if cfg.ScreenWindow != nil {
			if len(cfg.ScreenWindow) != 4 {
				b.problems.addf("camera.screen_window", ErrInvalidValue, "expected [l, r, b, t], got %d values", len(cfg.ScreenWindow))
				return nil, position
			}
			window = geometry.ScreenWindow{Left: cfg.ScreenWindow[0], Right: cfg.ScreenWindow[1], Bottom: cfg.ScreenWindow[2], Top: cfg.ScreenWindow[3]}
		}
		camera, err = geometry.NewOrthographicCamera(position, target, up, window)
	default:
		b.problems.addf("camera.type", ErrUnknownType, "%q", cfg.Type)
		return nil, position
	}
	if err != nil {
		b.problems.add("camera", err)
		return nil, position
	}
	return camera, position
}

func (b *builder) buildBackground(cfg *backgroundConfig) *scene.Background {
	if cfg == nil {
		return scene.NewBackground()
	}
	if cfg.Color != nil && cfg.Colors != nil {
		b.problems.addf("background", ErrConflictingOptions, "use either color or colors")
		return nil
	}
	if cfg.Color != nil {
		return scene.NewSolidBackground(b.color("background.color", cfg.Color, core.Color{}))
	}
	if len(cfg.Colors) > 4 {
		b.problems.addf("background.colors", ErrInvalidValue, "at most 4 corner colors, got %d", len(cfg.Colors))
		return nil
	}
	colors := make([]core.Color, len(cfg.Colors))
	for i, c := range cfg.Colors {
		colors[i] = b.color(fmt.Sprintf("background.colors[%d]", i), c, core.Color{})
	}
	return scene.NewBackground(colors...)
}

func (b *builder) buildWorld(cfg *worldConfig, sc *scene.Scene) {
	if cfg == nil {
		b.problems.add("scene", ErrMissingField)
		return
	}

	b.materials = make(map[string]core.Material, len(cfg.Materials))
	for i, m := range cfg.Materials {
		path := fmt.Sprintf("scene.materials[%d]", i)
		if m.Name == "" {
			b.problems.add(path+".name", ErrMissingField)
			continue
		}
		if _, exists := b.materials[m.Name]; exists {
			b.problems.addf(path+".name", ErrDuplicateMaterial, "%q", m.Name)
			continue
		}
		if mat := b.buildMaterial(path, m); mat != nil {
			b.materials[m.Name] = mat
		}
	}

	for i, o := range cfg.Objects {
		path := fmt.Sprintf("scene.objects[%d]", i)
		if prim := b.buildObject(path, i, o); prim != nil {
			sc.Add(prim)
		}
	}

	for i, l := range cfg.Lights {
		if light := b.buildLight(fmt.Sprintf("scene.lights[%d]", i), l); light != nil {
			sc.AddLight(light)
		}
	}
}

func (b *builder) buildMaterial(path string, cfg materialConfig) core.Material {
	switch strings.ToLower(cfg.Type) {
	case "flat":
		if cfg.Diffuse == nil {
			b.problems.add(path+".diffuse", ErrMissingField)
			return nil
		}
		return material.NewFlat(b.color(path+".diffuse", cfg.Diffuse, core.Color{}))
	case "blinn", "blinn_phong":
		if cfg.Diffuse == nil {
			b.problems.add(path+".diffuse", ErrMissingField)
			return nil
		}
		glossiness := valueOr(cfg.Glossiness, 0)
		if glossiness < 0 {
			b.problems.addf(path+".glossiness", ErrInvalidValue, "must not be negative, got %g", glossiness)
		}
		return material.NewBlinnPhong(
			b.color(path+".ambient", cfg.Ambient, core.Color{}),
			b.color(path+".diffuse", cfg.Diffuse, core.Color{}),
			b.color(path+".specular", cfg.Specular, core.Color{}),
			glossiness,
		)
	case "normal":
		return material.NewNormal()
	case "":
		b.problems.add(path+".type", ErrMissingField)
	default:
		b.problems.addf(path+".type", ErrUnknownType, "%q", cfg.Type)
	}
	return nil
}

func (b *builder) buildObject(path string, index int, cfg objectConfig) core.Primitive {
	mat, ok := b.materials[cfg.Material]
	switch {
	case cfg.Material == "":
		b.problems.add(path+".material", ErrMissingField)
	case !ok:
		b.problems.addf(path+".material", ErrUndefinedMaterial, "%q", cfg.Material)
	}

	name := cfg.Name
	if name == "" {
		name = fmt.Sprintf("%s%d", strings.ToLower(cfg.Type), index)
	}

	var shape core.Shape
	switch strings.ToLower(cfg.Type) {
	case "sphere":
		if cfg.Radius == nil {
			b.problems.add(path+".radius", ErrMissingField)
			return nil
		}
		if *cfg.Radius <= 0 {
			b.problems.addf(path+".radius", ErrInvalidValue, "must be positive, got %g", *cfg.Radius)
			return nil
		}
		shape = geometry.NewSphere(b.vector(path+".center", cfg.Center, core.Point3{}), *cfg.Radius)
	case "plane":
		normal := b.vector(path+".normal", cfg.Normal, core.NewVec3(0, 1, 0))
		if normal.IsZero() {
			b.problems.addf(path+".normal", ErrInvalidValue, "must not be zero")
			return nil
		}
		shape = geometry.NewPlane(b.vector(path+".point", cfg.Point, core.Point3{}), normal)
	case "":
		b.problems.add(path+".type", ErrMissingField)
		return nil
	default:
		b.problems.addf(path+".type", ErrUnknownType, "%q", cfg.Type)
		return nil
	}

	if !ok {
		return nil
	}
	return geometry.NewGeometricPrimitive(name, shape, mat)
}

func (b *builder) buildLight(path string, cfg lightConfig) core.Light {
	intensity := b.color(path+".intensity", cfg.Intensity, core.NewVec3(1, 1, 1))
	switch strings.ToLower(cfg.Type) {
	case "point":
		if cfg.Position == nil {
			b.problems.add(path+".position", ErrMissingField)
			return nil
		}
		return lights.NewPointLight(b.vector(path+".position", cfg.Position, core.Point3{}), intensity)
	case "directional":
		direction := b.vector(path+".direction", cfg.Direction, core.Vec3{})
		if direction.IsZero() {
			b.problems.addf(path+".direction", ErrInvalidValue, "must be a non-zero vector")
			return nil
		}
		return lights.NewDirectionalLight(direction, intensity)
	case "ambient":
		return lights.NewAmbientLight(intensity)
	case "":
		b.problems.add(path+".type", ErrMissingField)
	default:
		b.problems.addf(path+".type", ErrUnknownType, "%q", cfg.Type)
	}
	return nil
}

func (b *builder) buildRunning(cfg *runningConfig, sc *scene.Scene, camera core.Camera, eye core.Point3, out *integrator.Config) {
	*out = integrator.Config{Type: integrator.TypeFlat}
	if cfg == nil {
		return
	}
	if cfg.Seed != nil {
		sc.SamplingConfig.Seed = *cfg.Seed
	}

	ic := cfg.Integrator
	if ic == nil {
		return
	}

	if ic.Type != "" {
		out.Type = strings.ToLower(ic.Type)
	}
	switch out.Type {
	case integrator.TypeFlat, integrator.TypeNormal, integrator.TypeBlinnPhong:
	case integrator.TypeDepthMap:
		out.NearColor = b.color("running.integrator.near_color", ic.NearColor, core.NewVec3(1, 1, 1))
		out.FarColor = b.color("running.integrator.far_color", ic.FarColor, core.NewVec3(0, 0, 0))
		near, far := depthRange(sc, camera, eye)
		out.NearValue = valueOr(ic.NearValue, near)
		out.FarValue = valueOr(ic.FarValue, far)
		if out.FarValue <= out.NearValue {
			b.problems.addf("running.integrator.far_value", material.ErrInvalidDepthRange, "near=%g far=%g", out.NearValue, out.FarValue)
		}
	default:
		b.problems.addf("running.integrator.type", integrator.ErrUnknownIntegrator, "%q", ic.Type)
	}

	if ic.Spp != nil {
		switch {
		case *ic.Spp < 0:
			b.problems.addf("running.integrator.spp", ErrInvalidValue, "must not be negative, got %d", *ic.Spp)
		case *ic.Spp > 0:
			sc.SamplingConfig.SamplesPerPixel = *ic.Spp
		}
	}
}

// depthRange derives a depth map range, in ray parameter units, from the
// distances between the eye and the bounding spheres of the finite shapes in
// the scene. Camera rays are not unit length, so world distances are divided
// by the longest (frame corner) and shortest (frame centre) primary directions.
func depthRange(sc *scene.Scene, camera core.Camera, eye core.Point3) (near, far float64) {
	shortest, longest := 1.0, 1.0
	if camera != nil {
		shortest = camera.GenerateRay(0.5, 0.5).Direction.Length()
		longest = camera.GenerateRay(0, 0).Direction.Length()
	}

	near, far = math.Inf(1), 0
	for _, p := range sc.Primitives() {
		gp, ok := p.(*geometry.GeometricPrimitive)
		if !ok {
			continue
		}
		sphere, ok := gp.Shape().(*geometry.Sphere)
		if !ok {
			continue
		}
		d := sphere.Center.Subtract(eye).Length()
		near = min(near, max(0, d-sphere.Radius)/longest)
		far = max(far, (d+sphere.Radius)/shortest)
	}
	if far <= near || math.IsInf(near, 1) {
		return 0, 10
	}
	return near, far
}

func (b *builder) dimension(path string, value *int, fallback int) int {
	n := b.positiveInt(path, value, fallback)
	if n > MaxDimension {
		b.problems.addf(path, ErrInvalidValue, "must be at most %d, got %d", MaxDimension, n)
		return fallback
	}
	return n
}

func (b *builder) positiveInt(path string, value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	if *value <= 0 {
		b.problems.addf(path, ErrInvalidValue, "must be positive, got %d", *value)
		return fallback
	}
	return *value
}

// vector reads an [x, y, z] triple
func (b *builder) vector(path string, values []float64, fallback core.Vec3) core.Vec3 {
	if values == nil {
		return fallback
	}
	if len(values) != 3 {
		b.problems.addf(path, ErrInvalidValue, "expected [x, y, z], got %d values", len(values))
		return fallback
	}
	return core.NewVec3(values[0], values[1], values[2])
}

// color reads an [r, g, b] triple. Triples with every component <= 1 are
// linear [0, 1] colors; anything larger is read as 8-bit and divided by 255.
func (b *builder) color(path string, values []float64, fallback core.Color) core.Color {
	if values == nil {
		return fallback
	}
	if len(values) != 3 {
		b.problems.addf(path, ErrInvalidValue, "expected [r, g, b], got %d values", len(values))
		return fallback
	}
	c := core.NewVec3(values[0], values[1], values[2])
	if c.X < 0 || c.Y < 0 || c.Z < 0 {
		b.problems.addf(path, ErrInvalidValue, "color components must not be negative, got %v", values)
		return fallback
	}
	if c.X > 1 || c.Y > 1 || c.Z > 1 {
		return core.NewVec3(c.X/255.0, c.Y/255.0, c.Z/255.0)
	}
	return c
}

func valueOr(value *float64, fallback float64) float64 {
	if value == nil {
		return fallback
	}
	return *value
}
