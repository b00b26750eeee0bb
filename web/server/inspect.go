package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/JoMedeiros/ray-tracing/pkg/core"
	"github.com/JoMedeiros/ray-tracing/pkg/geometry"
	"github.com/JoMedeiros/ray-tracing/pkg/material"
	"github.com/JoMedeiros/ray-tracing/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool           `json:"hit"`
	Name         string         `json:"name,omitempty"`
	MaterialType string         `json:"materialType,omitempty"`
	GeometryType string         `json:"geometryType,omitempty"`
	Point        [3]float64     `json:"point"`
	Normal       [3]float64     `json:"normal"`
	Distance     float64        `json:"distance"`
	FrontFace    bool           `json:"frontFace"`
	Properties   map[string]any `json:"properties,omitempty"`
}

// handleInspect casts the center ray of pixel (x, y) and describes the first hit
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	job, ok := s.lookupJob(w, r)
	if !ok {
		return
	}

	cfg := job.Setup.Scene.SamplingConfig
	x, err := parsePixelParam(r, "x", cfg.Width)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	y, err := parsePixelParam(r, "y", cfg.Height)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	s.writeJSON(w, http.StatusOK, inspectPixel(job.Setup.Scene, x, y))
}

// parsePixelParam parses an integer pixel coordinate in [0, limit)
func parsePixelParam(r *http.Request, key string, limit int) (int, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0, fmt.Errorf("missing %s", key)
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", key, value)
	}
	if parsed < 0 || parsed >= limit {
		return 0, fmt.Errorf("%s must be between 0 and %d, got: %d", key, limit-1, parsed)
	}
	return parsed, nil
}

// inspectPixel casts a ray through the center of pixel (x, y), row 0 being the top
func inspectPixel(sc *scene.Scene, x, y int) InspectResponse {
	cfg := sc.SamplingConfig
	s := (float64(x) + 0.5) / float64(cfg.Width)
	t := 1 - (float64(y)+0.5)/float64(cfg.Height)
	ray := sc.Camera.GenerateRay(s, t)

	si, hit := sc.Intersect(ray)
	if !hit {
		return InspectResponse{Hit: false}
	}

	response := InspectResponse{
		Hit:       true,
		Point:     [3]float64{si.Point.X, si.Point.Y, si.Point.Z},
		Normal:    [3]float64{si.Normal.X, si.Normal.Y, si.Normal.Z},
		Distance:  si.T * ray.Direction.Length(),
		FrontFace: si.FrontFace,
	}
	if gp, ok := si.Primitive.(*geometry.GeometricPrimitive); ok {
		response.Name = gp.Name
		response.GeometryType = geometryType(gp.Shape())
	}
	response.MaterialType, response.Properties = materialInfo(si.Primitive.Material(), si)
	return response
}

func geometryType(shape core.Shape) string {
	switch shape.(type) {
	case *geometry.Sphere:
		return "sphere"
	case *geometry.Plane:
		return "plane"
	default:
		return "unknown"
	}
}

// materialInfo describes a material for display
func materialInfo(mat core.Material, si *core.SurfaceInteraction) (string, map[string]any) {
	properties := map[string]any{}
	albedo := mat.Albedo(si)
	properties["color"] = hexColor(albedo)

	switch m := mat.(type) {
	case *material.Flat:
		properties["diffuse"] = vecArray(m.Diffuse)
		return "flat", properties
	case *material.BlinnPhong:
		properties["ambient"] = vecArray(m.Ambient)
		properties["diffuse"] = vecArray(m.Diffuse)
		properties["specular"] = vecArray(m.Specular)
		properties["glossiness"] = m.Glossiness
		return "blinn_phong", properties
	case *material.Normal:
		return "normal", properties
	case *material.DepthMap:
		properties["nearValue"] = m.NearValue
		properties["farValue"] = m.FarValue
		return "depth_map", properties
	default:
		return "unknown", properties
	}
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Color) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}
