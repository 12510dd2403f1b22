package renderer

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
)

// FrameUniform is the GPU-aligned per-frame uniform bound at group 0.
// Matches the WGSL Frame struct layout exactly.
// Size: 224 bytes (uniform aligned).
type FrameUniform struct {
	ViewProjection [16]float32                        // offset   0: column-major view-projection matrix
	CameraPosition [3]float32                         // offset  64: world-space eye position
	LightCount     uint32                             // offset  76: number of valid entries in Lights
	Ambient        [3]float32                         // offset  80: ambient light color
	_              float32                            // offset  92: padding
	Lights         [light.MaxGPULights]light.GPULight // offset  96: directional lights
}

// NewFrameUniform packs the camera and enabled lights for a frame.
//
// Parameters:
//   - cam: the camera whose committed matrices are used
//   - lights: the scene lights; disabled lights are skipped and at most light.MaxGPULights are kept
//   - ambient: the ambient light color
//
// Returns:
//   - FrameUniform: the packed frame uniform
func NewFrameUniform(cam camera.Camera, lights []light.Light, ambient common.Color) FrameUniform {
	f := FrameUniform{
		ViewProjection: cam.ViewProjectionMatrix(),
		Ambient:        [3]float32{ambient.R, ambient.G, ambient.B},
	}
	pos := cam.Position()
	f.CameraPosition = [3]float32{pos.X(), pos.Y(), pos.Z()}

	packed := light.PackLights(lights)
	f.LightCount = uint32(copy(f.Lights[:], packed))
	return f
}

// Size returns the size of the FrameUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (224)
func (f *FrameUniform) Size() int {
	return int(unsafe.Sizeof(*f))
}

// Marshal serializes the FrameUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 224-byte buffer ready for GPU upload
func (f *FrameUniform) Marshal() []byte {
	buf := make([]byte, 96, 96+light.MaxGPULights*32)
	for i, v := range f.ViewProjection {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	binary.LittleEndian.PutUint32(buf[64:], math.Float32bits(f.CameraPosition[0]))
	binary.LittleEndian.PutUint32(buf[68:], math.Float32bits(f.CameraPosition[1]))
	binary.LittleEndian.PutUint32(buf[72:], math.Float32bits(f.CameraPosition[2]))
	binary.LittleEndian.PutUint32(buf[76:], f.LightCount)
	binary.LittleEndian.PutUint32(buf[80:], math.Float32bits(f.Ambient[0]))
	binary.LittleEndian.PutUint32(buf[84:], math.Float32bits(f.Ambient[1]))
	binary.LittleEndian.PutUint32(buf[88:], math.Float32bits(f.Ambient[2]))
	for i := range f.Lights {
		buf = append(buf, f.Lights[i].Marshal()...)
	}
	return buf
}
