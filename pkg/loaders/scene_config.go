package loaders

// The raw scene document. Pointer fields distinguish "absent" from zero so
// that defaults can be applied after decoding.

type sceneFile struct {
	Camera     *cameraConfig     `json:"camera"`
	Background *backgroundConfig `json:"background,omitempty"`
	Scene      *worldConfig      `json:"scene"`
	Running    *runningConfig    `json:"running,omitempty"`
}

type cameraConfig struct {
	Type         string         `json:"type,omitempty"` // perspective (default) or orthographic
	Width        *int           `json:"width,omitempty"`
	Height       *int           `json:"height,omitempty"`
	Position     []float64      `json:"position,omitempty"`
	Target       []float64      `json:"target,omitempty"`
	Up           []float64      `json:"up,omitempty"`
	Fovy         *float64       `json:"fovy,omitempty"` // degrees
	Aspect       *float64       `json:"aspect,omitempty"`
	FDistance    *float64       `json:"fdistance,omitempty"`
	ScreenWindow []float64      `json:"screen_window,omitempty"` // l, r, b, t
	ImgFile      *imgFileConfig `json:"img_file,omitempty"`
}

type imgFileConfig struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
}

type backgroundConfig struct {
	Color  []float64   `json:"color,omitempty"`
	Colors [][]float64 `json:"colors,omitempty"` // bottom-left, bottom-right, top-left, top-right
}

type worldConfig struct {
	Materials []materialConfig `json:"materials"`
	Objects   []objectConfig   `json:"objects"`
	Lights    []lightConfig    `json:"lights,omitempty"`
}

type materialConfig struct {
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Diffuse    []float64 `json:"diffuse,omitempty"`
	Ambient    []float64 `json:"ambient,omitempty"`
	Specular   []float64 `json:"specular,omitempty"`
	Glossiness *float64  `json:"glossiness,omitempty"`
}

type objectConfig struct {
	Type     string    `json:"type"`
	Name     string    `json:"name,omitempty"`
	Material string    `json:"material"`
	Center   []float64 `json:"center,omitempty"` // sphere
	Radius   *float64  `json:"radius,omitempty"`
	Point    []float64 `json:"point,omitempty"` // plane
	Normal   []float64 `json:"normal,omitempty"`
}

type lightConfig struct {
	Type      string    `json:"type"`
	Intensity []float64 `json:"intensity,omitempty"`
	Position  []float64 `json:"position,omitempty"`
	Direction []float64 `json:"direction,omitempty"`
}

type runningConfig struct {
	Integrator *integratorConfig `json:"integrator,omitempty"`
	Seed       *int64            `json:"seed,omitempty"`
}

type integratorConfig struct {
	Type      string    `json:"type,omitempty"`
	Spp       *int      `json:"spp,omitempty"`
	NearColor []float64 `json:"near_color,omitempty"`
	FarColor  []float64 `json:"far_color,omitempty"`
	NearValue *float64  `json:"near_value,omitempty"`
	FarValue  *float64  `json:"far_value,omitempty"`
}
