package model

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// --- Material Types ---

// Material holds the Phong surface parameters of one named material.
type Material struct {
	// Name is the material identifier referenced by geometry.
	Name string

	// Ambient is the ambient reflectivity (RGB).
	Ambient [3]float32

	// Diffuse is the diffuse reflectivity (RGB). Used as the flat color when no texture is bound.
	Diffuse [3]float32

	// Specular is the specular reflectivity (RGB).
	Specular [3]float32

	// Emissive is the emitted color (RGB).
	Emissive [3]float32

	// Shininess is the specular exponent.
	Shininess float32

	// Opacity is the dissolve factor (1 = opaque).
	Opacity float32

	// Illum is the illumination model number. Kept for completeness; the renderer always shades Blinn-Phong.
	Illum int

	// DiffuseMapPath is the asset path of the diffuse texture, relative to the asset root. Empty when untextured.
	DiffuseMapPath string

	// DiffuseMap holds decoded RGBA pixels for DiffuseMapPath once the library has been preloaded.
	// Nil when there is no texture or decoding failed.
	DiffuseMap *common.TextureStagingData
}

// DefaultMaterial returns the material used for faces with no usemtl or an unknown material name:
// light grey, slightly glossy and opaque.
//
// Returns:
//   - *Material: a new default material
func DefaultMaterial() *Material {
	return &Material{
		Name:      "default",
		Ambient:   [3]float32{0.1, 0.1, 0.1},
		Diffuse:   [3]float32{0.8, 0.8, 0.8},
		Specular:  [3]float32{0.2, 0.2, 0.2},
		Shininess: 30,
		Opacity:   1,
		Illum:     2,
	}
}

// MaterialLibrary is a named collection of materials parsed from one material file.
type MaterialLibrary struct {
	// Path is the asset path the library was read from.
	Path string

	materials map[string]*Material
	order     []string
}

// NewMaterialLibrary creates an empty library.
//
// Parameters:
//   - path: the asset path of the library
//
// Returns:
//   - *MaterialLibrary: an empty library
func NewMaterialLibrary(path string) *MaterialLibrary {
	return &MaterialLibrary{
		Path:      path,
		materials: make(map[string]*Material),
	}
}

// Add inserts or replaces a material by name.
//
// Parameters:
//   - m: the material to add
func (l *MaterialLibrary) Add(m *Material) {
	if _, ok := l.materials[m.Name]; !ok {
		l.order = append(l.order, m.Name)
	}
	l.materials[m.Name] = m
}

// Get looks up a material by name. A nil library never finds anything.
//
// Parameters:
//   - name: the material name
//
// Returns:
//   - *Material: the material, or nil
//   - bool: whether the material exists
func (l *MaterialLibrary) Get(name string) (*Material, bool) {
	if l == nil {
		return nil, false
	}
	m, ok := l.materials[name]
	return m, ok
}

// Materials returns the materials in definition order.
func (l *MaterialLibrary) Materials() []*Material {
	if l == nil {
		return nil
	}
	out := make([]*Material, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.materials[name])
	}
	return out
}

// Len returns the number of materials.
func (l *MaterialLibrary) Len() int {
	if l == nil {
		return 0
	}
	return len(l.materials)
}

// TexturePaths returns the distinct diffuse texture paths referenced by the library, sorted.
func (l *MaterialLibrary) TexturePaths() []string {
	if l == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, m := range l.materials {
		if m.DiffuseMapPath == "" {
			continue
		}
		if _, ok := seen[m.DiffuseMapPath]; ok {
			continue
		}
		seen[m.DiffuseMapPath] = struct{}{}
		out = append(out, m.DiffuseMapPath)
	}
	sort.Strings(out)
	return out
}

// --- Geometry Types ---

// Mesh is one drawable group of triangles sharing a single material.
type Mesh struct {
	// Name is the object/group name the mesh came from.
	Name string

	// Material is the resolved material. Never nil on meshes produced by the loader.
	Material *Material

	// Vertices are de-indexed per unique (position, uv, normal) corner.
	Vertices []GPUVertex

	// Indices are triangle-list indices into Vertices.
	Indices []uint32
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Empty reports whether the bounds contain no points.
func (b Bounds) Empty() bool {
	return b.Min.X() > b.Max.X()
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Radius returns half the box diagonal.
func (b Bounds) Radius() float32 {
	if b.Empty() {
		return 0
	}
	return b.Max.Sub(b.Min).Len() * 0.5
}

// ComputeBounds returns the bounds of every vertex in meshes. The result is Empty when there are no vertices.
//
// Parameters:
//   - meshes: the meshes to measure
//
// Returns:
//   - Bounds: the enclosing box
func ComputeBounds(meshes []*Mesh) Bounds {
	inf := float32(3.4e38)
	b := Bounds{Min: mgl32.Vec3{inf, inf, inf}, Max: mgl32.Vec3{-inf, -inf, -inf}}
	for _, m := range meshes {
		for _, v := range m.Vertices {
			for i := 0; i < 3; i++ {
				b.Min[i] = min(b.Min[i], v.Position[i])
				b.Max[i] = max(b.Max[i], v.Position[i])
			}
		}
	}
	return b
}
