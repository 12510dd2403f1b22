package renderer

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/viewer.wgsl
var viewerShaderSource string

// FrameUniformSource is the WGSL definition of the Frame uniform struct.
//
//go:embed assets/frame.wgsl
var FrameUniformSource string

const (
	frameGroup    = 0
	materialGroup = 1

	frameUniformBinding    = 0
	materialUniformBinding = 0
	diffuseMapBinding      = 1
	diffuseSamplerBinding  = 2
)

// newViewerShader pre-processes the embedded viewer shader against the GPU struct sources
// and checks that its declared bindings match the layouts the backend creates.
func newViewerShader() (shader.Shader, error) {
	pp := shader.NewPreProcessor(
		shader.WithStruct(shader.AnnotationArgLight, light.GPULightSource, "DirectionalLight"),
		shader.WithStruct(shader.AnnotationArgFrame, FrameUniformSource, "Frame"),
		shader.WithStruct(shader.AnnotationArgMaterial, model.GPUMaterialSource, "Material"),
		shader.WithStruct(shader.AnnotationArgVertex, model.GPUVertexSource, "VertexInput"),
	)
	s, err := shader.NewShader("viewer.wgsl", viewerShaderSource, shader.WithPreProcessor(pp))
	if err != nil {
		return nil, err
	}

	expected := []struct {
		group, binding int
		arg            shader.AnnotationArg
	}{
		{frameGroup, frameUniformBinding, shader.AnnotationArgFrame},
		{materialGroup, materialUniformBinding, shader.AnnotationArgMaterial},
		{materialGroup, diffuseMapBinding, shader.AnnotationArgRoleDiffuseTexture},
		{materialGroup, diffuseSamplerBinding, shader.AnnotationArgRoleDiffuseSampler},
	}
	for _, e := range expected {
		d, ok := s.Declaration(e.group, e.binding)
		if !ok {
			return nil, fmt.Errorf("viewer shader declares nothing at group %d binding %d", e.group, e.binding)
		}
		var got shader.AnnotationArg
		switch d.Type {
		case shader.AnnotationTypeBindingGroup:
			got = d.Args[2]
		case shader.AnnotationTypeProvider:
			got = d.Args[1]
		}
		if got != e.arg {
			return nil, fmt.Errorf("viewer shader group %d binding %d is %q, want %q", e.group, e.binding, got, e.arg)
		}
	}
	return s, nil
}

// newViewerPipeline describes the single pipeline the viewer draws with. OBJ winding is not
// reliable across exporters, so nothing is culled.
func newViewerPipeline(s shader.Shader, sampleCount MSAASampleCount) pipeline.Pipeline {
	return pipeline.NewPipeline("Viewer",
		pipeline.WithShader(s),
		pipeline.WithSampleCount(uint32(sampleCount)),
		pipeline.WithCullMode(wgpu.CullModeNone),
		pipeline.WithVertexLayouts(wgpu.VertexBufferLayout{
			ArrayStride: model.GPUVertexStride,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
				{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
			},
		}),
	)
}
