package loader

import (
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/g3n/engine/loader/obj"
	"github.com/go-gl/mathgl/mgl32"
)

// loaderBackend defines the format-specific half of a two-file model: a material library
// and the geometry that references it. Fetching, progress and caching live in the Loader.
type loaderBackend interface {
	// ParseMaterials parses a material library.
	//
	// Parameters:
	//   - r: the library contents
	//   - p: the asset path of the library, used to resolve texture paths
	//
	// Returns:
	//   - *model.MaterialLibrary: the parsed library
	//   - error: wraps ErrMalformed if the contents cannot be parsed
	ParseMaterials(r io.Reader, p string) (*model.MaterialLibrary, error)

	// ParseGeometry parses geometry, resolving material names against materials.
	//
	// Parameters:
	//   - r: the geometry contents
	//   - name: the model name, used for unnamed meshes and error messages
	//   - materials: the library to resolve material names against; may be nil
	//
	// Returns:
	//   - []*model.Mesh: the parsed meshes
	//   - error: wraps ErrMalformed if the contents cannot be parsed
	ParseGeometry(r io.Reader, name string, materials *model.MaterialLibrary) ([]*model.Mesh, error)

	// MaterialExt and GeometryExt return the file extensions (with dot) of the two files.
	MaterialExt() string
	GeometryExt() string
}

// objLoaderBackend reads Wavefront .mtl/.obj pairs through the g3n decoder and converts
// its objects and materials into viewer meshes.
type objLoaderBackend struct{}

var _ loaderBackend = &objLoaderBackend{}

func newOBJLoaderBackend() loaderBackend {
	return &objLoaderBackend{}
}

func (b *objLoaderBackend) ParseMaterials(r io.Reader, p string) (*model.MaterialLibrary, error) {
	dec, err := obj.DecodeReader(strings.NewReader(""), r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, p, err)
	}

	names := make([]string, 0, len(dec.Materials))
	for name := range dec.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	lib := model.NewMaterialLibrary(p)
	dir := path.Dir(p)
	for _, name := range names {
		lib.Add(convertMaterial(dec.Materials[name], dir))
	}
	return lib, nil
}

// convertMaterial maps a decoded material onto the viewer's material. The decoder leaves
// unset fields zero, so a zero opacity reads as opaque and a textured material with no
// diffuse color is tinted white.
func convertMaterial(src *obj.Material, dir string) *model.Material {
	m := &model.Material{
		Name:      src.Name,
		Ambient:   [3]float32{src.Ambient.R, src.Ambient.G, src.Ambient.B},
		Diffuse:   [3]float32{src.Diffuse.R, src.Diffuse.G, src.Diffuse.B},
		Specular:  [3]float32{src.Specular.R, src.Specular.G, src.Specular.B},
		Emissive:  [3]float32{src.Emissive.R, src.Emissive.G, src.Emissive.B},
		Shininess: src.Shininess,
		Opacity:   src.Opacity,
		Illum:     src.Illum,
	}
	if m.Opacity <= 0 {
		m.Opacity = 1
	}
	if src.MapKd != "" {
		m.DiffuseMapPath = path.Join(dir, strings.ReplaceAll(src.MapKd, "\\", "/"))
		if m.Diffuse == [3]float32{} {
			m.Diffuse = [3]float32{1, 1, 1}
		}
	}
	return m
}

func (b *objLoaderBackend) ParseGeometry(r io.Reader, name string, materials *model.MaterialLibrary) ([]*model.Mesh, error) {
	// Faces before the first o/g statement land in an object named after the model.
	dec, err := obj.DecodeReader(io.MultiReader(strings.NewReader("o "+name+"\n"), r), strings.NewReader(""))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}

	c := &objConverter{
		dec:       dec,
		materials: materials,
		fallback:  model.DefaultMaterial(),
	}
	var meshes []*model.Mesh
	for i := range dec.Objects {
		out, err := c.object(&dec.Objects[i], name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
		}
		meshes = append(meshes, out...)
	}
	if len(meshes) == 0 {
		return nil, fmt.Errorf("%w: %s: no faces", ErrMalformed, name)
	}
	return meshes, nil
}

// objCorner is one face corner as zero-based attribute indices; -1 marks an absent attribute.
type objCorner struct {
	v, vt, vn int
}

// objConverter de-indexes decoded faces into per-material vertex and index buffers.
type objConverter struct {
	dec       *obj.Decoder
	materials *model.MaterialLibrary
	fallback  *model.Material

	mesh   *model.Mesh
	lookup map[objCorner]uint32
}

// object converts one decoded object into one mesh per consecutive run of faces sharing
// a material. Polygons are fan-triangulated.
func (c *objConverter) object(o *obj.Object, modelName string) ([]*model.Mesh, error) {
	meshName := o.Name
	if meshName == "" {
		meshName = modelName
	}

	var meshes []*model.Mesh
	c.mesh = nil
	for fi := range o.Faces {
		f := &o.Faces[fi]
		if len(f.Vertices) < 3 {
			return nil, fmt.Errorf("object %s face %d has %d vertices", meshName, fi, len(f.Vertices))
		}
		mat := c.material(f.Material)
		if c.mesh == nil || c.mesh.Material != mat {
			c.mesh = &model.Mesh{Name: meshName, Material: mat}
			c.lookup = make(map[objCorner]uint32)
			meshes = append(meshes, c.mesh)
		}

		corners := make([]objCorner, len(f.Vertices))
		for i := range f.Vertices {
			corner, err := c.corner(f, i)
			if err != nil {
				return nil, fmt.Errorf("object %s face %d: %w", meshName, fi, err)
			}
			corners[i] = corner
		}

		faceNormal := c.faceNormal(corners)
		for i := 1; i+1 < len(corners); i++ {
			for _, corner := range [3]objCorner{corners[0], corners[i], corners[i+1]} {
				c.mesh.Indices = append(c.mesh.Indices, c.vertexIndex(corner, faceNormal))
			}
		}
	}
	return meshes, nil
}

func (c *objConverter) material(name string) *model.Material {
	if m, ok := c.materials.Get(name); ok {
		return m
	}
	return c.fallback
}

// corner resolves face corner i. An out-of-range position is an error; an out-of-range
// texture coordinate or normal is treated as absent.
func (c *objConverter) corner(f *obj.Face, i int) (objCorner, error) {
	out := objCorner{v: f.Vertices[i], vt: -1, vn: -1}
	if out.v < 0 || out.v >= len(c.dec.Vertices)/3 {
		return out, fmt.Errorf("position index %d out of range (have %d)", out.v+1, len(c.dec.Vertices)/3)
	}
	if i < len(f.Uvs) && f.Uvs[i] >= 0 && f.Uvs[i] < len(c.dec.Uvs)/2 {
		out.vt = f.Uvs[i]
	}
	if i < len(f.Normals) && f.Normals[i] >= 0 && f.Normals[i] < len(c.dec.Normals)/3 {
		out.vn = f.Normals[i]
	}
	return out, nil
}

func (c *objConverter) position(i int) mgl32.Vec3 {
	return mgl32.Vec3{c.dec.Vertices[3*i], c.dec.Vertices[3*i+1], c.dec.Vertices[3*i+2]}
}

func (c *objConverter) faceNormal(corners []objCorner) mgl32.Vec3 {
	a := c.position(corners[0].v)
	b := c.position(corners[1].v)
	d := c.position(corners[2].v)
	n := b.Sub(a).Cross(d.Sub(a))
	if n.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize()
}

// vertexIndex returns the mesh-local index of a corner, appending a new vertex if needed.
// Corners without a normal take the flat face normal and are never shared between faces.
func (c *objConverter) vertexIndex(corner objCorner, faceNormal mgl32.Vec3) uint32 {
	if corner.vn >= 0 {
		if idx, ok := c.lookup[corner]; ok {
			return idx
		}
	}

	v := model.GPUVertex{}
	pos := c.position(corner.v)
	v.Position = [3]float32{pos.X(), pos.Y(), pos.Z()}
	n := faceNormal
	if corner.vn >= 0 {
		n = mgl32.Vec3{c.dec.Normals[3*corner.vn], c.dec.Normals[3*corner.vn+1], c.dec.Normals[3*corner.vn+2]}
		if n.Len() > 0 {
			n = n.Normalize()
		}
	}
	v.Normal = [3]float32{n.X(), n.Y(), n.Z()}
	if corner.vt >= 0 {
		v.TexCoord = [2]float32{c.dec.Uvs[2*corner.vt], c.dec.Uvs[2*corner.vt+1]}
	}

	idx := uint32(len(c.mesh.Vertices))
	c.mesh.Vertices = append(c.mesh.Vertices, v)
	if corner.vn >= 0 {
		c.lookup[corner] = idx
	}
	return idx
}

func (b *objLoaderBackend) MaterialExt() string {
	return ".mtl"
}

func (b *objLoaderBackend) GeometryExt() string {
	return ".obj"
}
