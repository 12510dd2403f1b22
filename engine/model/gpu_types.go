package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertexSource is the WGSL VertexInput struct matching the GPUVertex layout.
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUMaterialSource is the WGSL definition of the Material uniform struct.
//
//go:embed assets/material.wgsl
var GPUMaterialSource string

// GPUVertexStride is the byte size of one GPUVertex in a vertex buffer.
const GPUVertexStride = 32

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Matches the vertex buffer layout declared by the renderer pipeline.
// Size: 32 bytes (no padding required).
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: vertex normal for lighting (12 bytes)
	TexCoord [2]float32 // offset 24: UV texture coordinate (8 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, GPUVertexStride)
	g.marshalInto(buf)
	return buf
}

func (g *GPUVertex) marshalInto(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Normal[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Normal[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Normal[2]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.TexCoord[0]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.TexCoord[1]))
}

// MarshalVertices packs vertices back to back for a single vertex buffer upload.
//
// Parameters:
//   - vertices: the vertices to pack
//
// Returns:
//   - []byte: len(vertices) * GPUVertexStride bytes
func MarshalVertices(vertices []GPUVertex) []byte {
	buf := make([]byte, len(vertices)*GPUVertexStride)
	for i := range vertices {
		vertices[i].marshalInto(buf[i*GPUVertexStride:])
	}
	return buf
}

// MarshalIndices packs uint32 indices in little-endian order.
//
// Parameters:
//   - indices: the indices to pack
//
// Returns:
//   - []byte: len(indices) * 4 bytes
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

// GPUMaterial is the GPU-aligned representation of a Material's shading parameters.
// Matches the WGSL Material struct layout exactly.
// Size: 64 bytes (uniform aligned).
type GPUMaterial struct {
	Ambient    [3]float32 // offset  0: ambient reflectivity
	Shininess  float32    // offset 12: specular exponent
	Diffuse    [3]float32 // offset 16: diffuse reflectivity
	Opacity    float32    // offset 28: dissolve factor
	Specular   [3]float32 // offset 32: specular reflectivity
	HasTexture uint32     // offset 44: 1 = sample the diffuse map, 0 = use Diffuse
	Emissive   [3]float32 // offset 48: emitted color
	_pad       uint32     // offset 60: padding to 64-byte alignment
}

// ToGPUMaterial converts a Material into its GPU representation.
//
// Parameters:
//   - m: the material to convert
//
// Returns:
//   - GPUMaterial: the packed material
func ToGPUMaterial(m *Material) GPUMaterial {
	g := GPUMaterial{
		Ambient:   m.Ambient,
		Shininess: max(m.Shininess, 1),
		Diffuse:   m.Diffuse,
		Opacity:   m.Opacity,
		Specular:  m.Specular,
		Emissive:  m.Emissive,
	}
	if m.DiffuseMap != nil {
		g.HasTexture = 1
	}
	return g
}

// Size returns the size of the GPUMaterial struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPUMaterial) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterial struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPUMaterial) Marshal() []byte {
	buf := make([]byte, 64)
	putVec3 := func(off int, v [3]float32) {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v[0]))
		binary.LittleEndian.PutUint32(buf[off+4:off+8], math.Float32bits(v[1]))
		binary.LittleEndian.PutUint32(buf[off+8:off+12], math.Float32bits(v[2]))
	}
	putVec3(0, g.Ambient)
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Shininess))
	putVec3(16, g.Diffuse)
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Opacity))
	putVec3(32, g.Specular)
	binary.LittleEndian.PutUint32(buf[44:48], g.HasTexture)
	putVec3(48, g.Emissive)
	return buf
}
