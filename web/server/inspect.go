package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool           `json:"hit"`
	GeometryType string         `json:"geometryType,omitempty"`
	Point        [3]float64     `json:"point"`
	Normal       [3]float64     `json:"normal"` // Oriented against the camera ray
	Distance     float64        `json:"distance"`
	FrontFace    bool           `json:"frontFace"`
	Geometry     map[string]any `json:"geometry,omitempty"`
	Material     map[string]any `json:"material,omitempty"`
}

// inspectPixel casts the primary ray through a pixel center and describes
// the first surface it hits
func inspectPixel(sc *scene.Scene, width, height, x, y int) InspectResponse {
	ray := sc.GetCamera().GetRay(x, y, width, height)
	hit, ok := sc.NearestHit(ray)
	if !ok {
		return InspectResponse{}
	}

	normal, frontFace := geometry.FaceForward(ray, hit.Shape.OutwardNormal(hit.Point))
	geometryType, props := describeShape(hit.Shape)
	return InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        toArray(hit.Point),
		Normal:       toArray(normal),
		Distance:     hit.T,
		FrontFace:    frontFace,
		Geometry:     props,
		Material:     describeMaterial(hit.Shape.GetMaterial()),
	}
}

func describeShape(shape geometry.Shape) (string, map[string]any) {
	switch s := shape.(type) {
	case *geometry.Sphere:
		return "sphere", map[string]any{"center": toArray(s.Center), "radius": s.Radius}
	case *geometry.Plane:
		return "plane", map[string]any{"normal": toArray(s.Normal), "d": s.D}
	case *geometry.Triangle:
		return "triangle", map[string]any{"v0": toArray(s.V0), "v1": toArray(s.V1), "v2": toArray(s.V2)}
	case *geometry.Disc:
		return "disc", map[string]any{"center": toArray(s.Center), "normal": toArray(s.Normal), "radius": s.Radius}
	case *geometry.Quad:
		return "quad", map[string]any{"corner": toArray(s.Corner), "u": toArray(s.U), "v": toArray(s.V)}
	case *geometry.Box:
		return "box", map[string]any{"center": toArray(s.Center), "size": toArray(s.Size)}
	default:
		return fmt.Sprintf("%T", shape), map[string]any{}
	}
}

func describeMaterial(m *material.Material) map[string]any {
	return map[string]any{
		"color":           toArray(m.Color),
		"ambient":         m.Ambient,
		"diffuse":         m.Diffuse,
		"specular":        m.Specular,
		"shininess":       m.Shininess,
		"reflectivity":    m.Reflectivity,
		"transparency":    m.Transparency,
		"refractiveIndex": m.RefractiveIndex,
	}
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, sc, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	query := r.URL.Query()
	x, err := parseIntParam(query, "x", -1, 0, req.Width-1)
	if err != nil || x < 0 {
		writeError(w, http.StatusBadRequest, "pixel coordinates out of bounds")
		return
	}
	y, err := parseIntParam(query, "y", -1, 0, req.Height-1)
	if err != nil || y < 0 {
		writeError(w, http.StatusBadRequest, "pixel coordinates out of bounds")
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sc, req.Width, req.Height, x, y))
}
