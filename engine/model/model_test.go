package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

func triangle(offset float32) *Mesh {
	return &Mesh{
		Name:     "tri",
		Material: DefaultMaterial(),
		Vertices: []GPUVertex{
			{Position: [3]float32{offset, 0, 0}},
			{Position: [3]float32{offset + 1, 0, 0}},
			{Position: [3]float32{offset, 2, -1}},
		},
		Indices: []uint32{0, 1, 2},
	}
}

func TestNewModel(t *testing.T) {
	lib := NewMaterialLibrary("car.mtl")
	m := NewModel("car", WithMeshes(triangle(0), nil, triangle(3)), WithMaterials(lib))

	if m.NodeKind() != scene.NodeKindModel || m.NodeName() != "car" {
		t.Fatalf("node = (%q, %v)", m.NodeName(), m.NodeKind())
	}
	if len(m.Meshes()) != 2 {
		t.Fatalf("len(Meshes()) = %d, want 2", len(m.Meshes()))
	}
	if m.VertexCount() != 6 || m.TriangleCount() != 2 {
		t.Fatalf("counts = %d vertices, %d triangles", m.VertexCount(), m.TriangleCount())
	}
	if m.Materials() != lib {
		t.Fatal("Materials() did not return the library")
	}

	b := m.Bounds()
	if b.Min != (mgl32.Vec3{0, 0, -1}) || b.Max != (mgl32.Vec3{4, 2, 0}) {
		t.Fatalf("Bounds() = %+v", b)
	}
	if b.Center() != (mgl32.Vec3{2, 1, -0.5}) {
		t.Fatalf("Center() = %v", b.Center())
	}
}

func TestEmptyBounds(t *testing.T) {
	b := ComputeBounds(nil)
	if !b.Empty() || b.Radius() != 0 {
		t.Fatalf("ComputeBounds(nil) = %+v, want empty", b)
	}
}

func TestMaterialLibrary(t *testing.T) {
	lib := NewMaterialLibrary("a.mtl")
	lib.Add(&Material{Name: "paint", DiffuseMapPath: "tex/paint.png"})
	lib.Add(&Material{Name: "glass"})
	lib.Add(&Material{Name: "rubber", DiffuseMapPath: "tex/paint.png"})
	lib.Add(&Material{Name: "paint", DiffuseMapPath: "tex/b.png"})

	if lib.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", lib.Len())
	}
	names := []string{}
	for _, m := range lib.Materials() {
		names = append(names, m.Name)
	}
	if len(names) != 3 || names[0] != "paint" || names[1] != "glass" || names[2] != "rubber" {
		t.Fatalf("Materials() order = %v", names)
	}
	if m, ok := lib.Get("paint"); !ok || m.DiffuseMapPath != "tex/b.png" {
		t.Fatalf("Get(paint) = %+v, %v", m, ok)
	}
	if paths := lib.TexturePaths(); len(paths) != 2 || paths[0] != "tex/b.png" || paths[1] != "tex/paint.png" {
		t.Fatalf("TexturePaths() = %v", paths)
	}

	var nilLib *MaterialLibrary
	if _, ok := nilLib.Get("x"); ok || nilLib.Len() != 0 {
		t.Fatal("nil library reported contents")
	}
}

func TestMarshalVertices(t *testing.T) {
	v := GPUVertex{Position: [3]float32{1, 2, 3}, Normal: [3]float32{0, 1, 0}, TexCoord: [2]float32{0.5, 0.25}}
	if v.Size() != GPUVertexStride {
		t.Fatalf("Size() = %d, want %d", v.Size(), GPUVertexStride)
	}

	buf := MarshalVertices([]GPUVertex{{}, v})
	if len(buf) != 2*GPUVertexStride {
		t.Fatalf("len = %d, want %d", len(buf), 2*GPUVertexStride)
	}
	f := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	base := GPUVertexStride
	if f(base) != 1 || f(base+8) != 3 || f(base+16) != 1 || f(base+24) != 0.5 || f(base+28) != 0.25 {
		t.Fatalf("second vertex decoded wrong: % x", buf[base:])
	}
}

func TestMarshalIndices(t *testing.T) {
	buf := MarshalIndices([]uint32{0, 1, 70000})
	if len(buf) != 12 || binary.LittleEndian.Uint32(buf[8:]) != 70000 {
		t.Fatalf("MarshalIndices = % x", buf)
	}
}

func TestGPUMaterial(t *testing.T) {
	m := DefaultMaterial()
	g := ToGPUMaterial(m)
	if g.Size() != 64 {
		t.Fatalf("Size() = %d, want 64", g.Size())
	}
	if g.HasTexture != 0 {
		t.Fatal("untextured material reported a texture")
	}

	m.DiffuseMap = &common.TextureStagingData{Pixels: make([]byte, 4), Width: 1, Height: 1}
	m.Shininess = 0
	g = ToGPUMaterial(m)
	if g.HasTexture != 1 {
		t.Fatal("textured material reported no texture")
	}
	if g.Shininess != 1 {
		t.Fatalf("Shininess = %v, want clamped to 1", g.Shininess)
	}

	buf := g.Marshal()
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[16:])); got != 0.8 {
		t.Fatalf("diffuse.r = %v, want 0.8", got)
	}
	if binary.LittleEndian.Uint32(buf[44:]) != 1 {
		t.Fatal("hasTexture not packed at offset 44")
	}
}
