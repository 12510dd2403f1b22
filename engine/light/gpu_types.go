package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxGPULights is the number of directional light slots in the renderer's frame uniform.
// Enabled lights beyond this count are not shaded.
const MaxGPULights = 4

// GPULightSource is the WGSL definition of the DirectionalLight struct.
//
//go:embed assets/light.wgsl
var GPULightSource string

// GPULight is the GPU-aligned representation of a single directional light.
// Matches the WGSL DirectionalLight struct layout exactly.
// Size: 32 bytes (uniform aligned).
type GPULight struct {
	Direction    [3]float32 // offset  0: normalized travel direction
	CastsShadows uint32     // offset 12: 1 = casts shadows, 0 = does not
	Color        [3]float32 // offset 16: RGB color
	Intensity    float32    // offset 28: scalar multiplier
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Direction[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Direction[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Direction[2]))
	binary.LittleEndian.PutUint32(buf[12:16], g.CastsShadows)
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Intensity))
	return buf
}

// ToGPULight converts a Light into its GPU representation.
//
// Parameters:
//   - l: the light to convert
//
// Returns:
//   - GPULight: the packed light
func ToGPULight(l Light) GPULight {
	d := l.Direction()
	c := l.Color()
	g := GPULight{
		Direction: [3]float32{d.X(), d.Y(), d.Z()},
		Color:     [3]float32{c.R, c.G, c.B},
		Intensity: l.Intensity(),
	}
	if l.CastsShadows() {
		g.CastsShadows = 1
	}
	return g
}

// PackLights converts up to MaxGPULights enabled lights into their GPU form, in order.
//
// Parameters:
//   - lights: the candidate lights
//
// Returns:
//   - []GPULight: at most MaxGPULights packed lights
func PackLights(lights []Light) []GPULight {
	out := make([]GPULight, 0, MaxGPULights)
	for _, l := range lights {
		if len(out) == MaxGPULights {
			break
		}
		if l == nil || !l.Enabled() {
			continue
		}
		out = append(out, ToGPULight(l))
	}
	return out
}
