package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// InspectResponse represents the response for pixel inspection
type InspectResponse struct {
	Hit      bool          `json:"hit"`
	Color    string        `json:"color"` // Traced pixel color as #rrggbb
	Point    [3]float64    `json:"point"`
	Normal   [3]float64    `json:"normal"`
	Distance float64       `json:"distance,omitempty"`
	Material *MaterialInfo `json:"material,omitempty"`
	Box      *BoxInfo      `json:"box,omitempty"`
}

// MaterialInfo describes the material at the inspected point
type MaterialInfo struct {
	Color           [3]float64 `json:"color"`
	Shininess       float64    `json:"shininess"`
	Diffuse         float64    `json:"diffuse"`
	Specular        float64    `json:"specular"`
	Reflectivity    float64    `json:"reflectivity"`
	Transparency    float64    `json:"transparency"`
	RefractiveIndex float64    `json:"refractiveIndex"`
	Emission        [3]float64 `json:"emission"`
	Textured        bool       `json:"textured"`
}

// BoxInfo describes the box that was hit
type BoxInfo struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// handleInspect casts the primary ray through one pixel and reports what it hits
func (s *Server) handleInspect(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
	}

	pixelX, err := strconv.Atoi(c.QueryParam("x"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid x coordinate")
	}
	pixelY, err := strconv.Atoi(c.QueryParam("y"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid y coordinate")
	}

	pipeline, err := setupScene(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	width, height := pipeline.Config.Width, pipeline.Config.Height
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		return echo.NewHTTPError(http.StatusBadRequest, "Pixel coordinates out of bounds")
	}

	light := pipeline.Scene.LightAt(req.Time)
	env := &integrator.Environment{
		Shapes:     pipeline.Scene.GetShapes(),
		Light:      light,
		Background: pipeline.Scene.SkyAt(light),
	}

	eye := pipeline.Camera.Eye
	direction := pipeline.Camera.PrimaryRayDirection(pixelX, pixelY, width, height, pipeline.Config.FOV)
	traced := integrator.NewWhitted().Trace(eye, direction, env, 0)

	response := InspectResponse{Color: hexColor(traced)}

	hit, ok := integrator.Inspect(eye, direction, env)
	if !ok {
		return c.JSON(http.StatusOK, response)
	}

	response.Hit = true
	response.Point = vecArray(hit.Point)
	response.Normal = vecArray(hit.Normal)
	response.Distance = hit.T
	response.Material = materialInfo(hit.Material)
	if box, ok := hit.Shape.(*geometry.Box); ok {
		response.Box = &BoxInfo{Min: vecArray(box.Min), Max: vecArray(box.Max)}
	}

	return c.JSON(http.StatusOK, response)
}

func materialInfo(mat *material.Material) *MaterialInfo {
	if mat == nil {
		return nil
	}
	return &MaterialInfo{
		Color:           colorArray(mat.Color),
		Shininess:       mat.Shininess,
		Diffuse:         mat.Diffuse(),
		Specular:        mat.Specular(),
		Reflectivity:    mat.Reflectivity(),
		Transparency:    mat.Transparency(),
		RefractiveIndex: mat.RefractiveIndex,
		Emission:        colorArray(mat.Emission),
		Textured:        mat.IsTextured(),
	}
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func colorArray(c core.Color) [3]float64 {
	return [3]float64{c.R, c.G, c.B}
}

func hexColor(c core.Color) string {
	return fmt.Sprintf("#%06x", c.ToHex())
}
