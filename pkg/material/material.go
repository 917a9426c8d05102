package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Indices into Material.Properties
const (
	DiffuseIndex = iota
	SpecularIndex
	ReflectivityIndex
	TransparencyIndex
)

// Material describes how a surface responds to light.
// Materials are built once at scene setup and shared by pointer between
// every box that uses them; they must not be mutated while rendering.
type Material struct {
	Color           core.Color    // Base color for untextured surfaces
	Shininess       float64       // Specular exponent
	Properties      [4]float64    // Diffuse, specular, reflectivity, transparency
	RefractiveIndex float64       // 1.0 = vacuum
	Emission        core.Color    // Additive self-illumination
	Texture         *ImageTexture // Optional; replaces Phong lighting when set
}

// NewMaterial creates an untextured material
func NewMaterial(color core.Color, shininess float64, properties [4]float64, refractiveIndex float64) *Material {
	return &Material{
		Color:           color,
		Shininess:       shininess,
		Properties:      properties,
		RefractiveIndex: refractiveIndex,
	}
}

// NewTexturedMaterial creates a material sampling its color from a texture.
// The base color is white.
func NewTexturedMaterial(texture *ImageTexture, shininess float64, properties [4]float64, refractiveIndex float64) *Material {
	return &Material{
		Color:           core.NewColor(255, 255, 255),
		Shininess:       shininess,
		Properties:      properties,
		RefractiveIndex: refractiveIndex,
		Texture:         texture,
	}
}

// Black returns a material with no response at all
func Black() *Material {
	return &Material{RefractiveIndex: 1.0}
}

// WithEmission returns a copy of the material emitting the given color
func (m *Material) WithEmission(emission core.Color) *Material {
	copied := *m
	copied.Emission = emission
	return &copied
}

func (m *Material) Diffuse() float64      { return m.Properties[DiffuseIndex] }
func (m *Material) Specular() float64     { return m.Properties[SpecularIndex] }
func (m *Material) Reflectivity() float64 { return m.Properties[ReflectivityIndex] }
func (m *Material) Transparency() float64 { return m.Properties[TransparencyIndex] }

// IsDiffuse reports whether the material has neither specular highlights nor reflection
func (m *Material) IsDiffuse() bool {
	return m.Specular() == 0 && m.Reflectivity() == 0
}

// IsReflective reports whether secondary reflection rays are spawned
func (m *Material) IsReflective() bool {
	return m.Reflectivity() > 0
}

// IsTransparent reports whether secondary refraction rays are spawned
func (m *Material) IsTransparent() bool {
	return m.Transparency() > 0
}

// IsEmissive reports whether the material adds its own light
func (m *Material) IsEmissive() bool {
	return !m.Emission.IsBlack()
}

// IsTextured reports whether the material samples a texture
func (m *Material) IsTextured() bool {
	return m.Texture != nil
}
