package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("viewer")

	if p.PipelineKey() != "viewer" {
		t.Errorf("PipelineKey() = %q", p.PipelineKey())
	}
	if !p.DepthTestEnabled() || !p.DepthWriteEnabled() {
		t.Error("depth test and write should default to enabled")
	}
	if p.BlendEnabled() {
		t.Error("blending should default to disabled")
	}
	if p.CullMode() != wgpu.CullModeNone {
		t.Errorf("CullMode() = %v, want none", p.CullMode())
	}
	if p.Topology() != wgpu.PrimitiveTopologyTriangleList {
		t.Errorf("Topology() = %v", p.Topology())
	}
	if p.SampleCount() != 1 {
		t.Errorf("SampleCount() = %d, want 1", p.SampleCount())
	}
	if p.RenderPipeline() != nil {
		t.Error("RenderPipeline() should be nil before creation")
	}
	p.Release()
}

func TestDescriptor(t *testing.T) {
	layout := wgpu.VertexBufferLayout{
		ArrayStride: 32,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		},
	}

	tests := []struct {
		name        string
		opts        []PipelineBuilderOption
		wantCompare wgpu.CompareFunction
		wantWrite   bool
		wantBlend   bool
		wantSamples uint32
	}{
		{
			name:        "defaults",
			wantCompare: wgpu.CompareFunctionLess,
			wantWrite:   true,
			wantSamples: 1,
		},
		{
			name:        "msaa",
			opts:        []PipelineBuilderOption{WithSampleCount(4)},
			wantCompare: wgpu.CompareFunctionLess,
			wantWrite:   true,
			wantSamples: 4,
		},
		{
			name:        "zero samples clamp",
			opts:        []PipelineBuilderOption{WithSampleCount(0)},
			wantCompare: wgpu.CompareFunctionLess,
			wantWrite:   true,
			wantSamples: 1,
		},
		{
			name:        "no depth test",
			opts:        []PipelineBuilderOption{WithDepthTestEnabled(false), WithDepthWriteEnabled(false)},
			wantCompare: wgpu.CompareFunctionAlways,
			wantSamples: 1,
		},
		{
			name:        "blended",
			opts:        []PipelineBuilderOption{WithBlendEnabled(true)},
			wantCompare: wgpu.CompareFunctionLess,
			wantWrite:   true,
			wantBlend:   true,
			wantSamples: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]PipelineBuilderOption{WithVertexLayouts(layout)}, tt.opts...)
			d := NewPipeline("viewer", opts...).Descriptor(nil, nil, wgpu.TextureFormatBGRA8Unorm)

			if d.Label != "viewer Render Pipeline" {
				t.Errorf("Label = %q", d.Label)
			}
			if d.Vertex.EntryPoint != shader.DefaultVertexEntryPoint || d.Fragment.EntryPoint != shader.DefaultFragmentEntryPoint {
				t.Errorf("entry points = %q, %q", d.Vertex.EntryPoint, d.Fragment.EntryPoint)
			}
			if len(d.Vertex.Buffers) != 1 || d.Vertex.Buffers[0].ArrayStride != 32 {
				t.Errorf("vertex buffers = %+v", d.Vertex.Buffers)
			}
			if len(d.Fragment.Targets) != 1 || d.Fragment.Targets[0].Format != wgpu.TextureFormatBGRA8Unorm {
				t.Fatalf("targets = %+v", d.Fragment.Targets)
			}
			if got := d.Fragment.Targets[0].Blend != nil; got != tt.wantBlend {
				t.Errorf("blend set = %v, want %v", got, tt.wantBlend)
			}
			if d.DepthStencil == nil || d.DepthStencil.Format != DepthFormat {
				t.Fatalf("depth stencil = %+v", d.DepthStencil)
			}
			if d.DepthStencil.DepthCompare != tt.wantCompare {
				t.Errorf("DepthCompare = %v, want %v", d.DepthStencil.DepthCompare, tt.wantCompare)
			}
			if d.DepthStencil.DepthWriteEnabled != tt.wantWrite {
				t.Errorf("DepthWriteEnabled = %v, want %v", d.DepthStencil.DepthWriteEnabled, tt.wantWrite)
			}
			if d.Multisample.Count != tt.wantSamples {
				t.Errorf("Multisample.Count = %d, want %d", d.Multisample.Count, tt.wantSamples)
			}
		})
	}
}

func TestDescriptorUsesShaderEntryPoints(t *testing.T) {
	src := "@vertex\nfn vert() {}\n@fragment\nfn frag() {}\n"
	s, err := shader.NewShader("custom.wgsl", src,
		shader.WithEntryPoint(shader.ShaderTypeVertex, "vert"),
		shader.WithEntryPoint(shader.ShaderTypeFragment, "frag"),
	)
	if err != nil {
		t.Fatalf("NewShader() error = %v", err)
	}

	d := NewPipeline("custom", WithShader(s)).Descriptor(nil, nil, wgpu.TextureFormatRGBA8Unorm)
	if d.Vertex.EntryPoint != "vert" || d.Fragment.EntryPoint != "frag" {
		t.Errorf("entry points = %q, %q", d.Vertex.EntryPoint, d.Fragment.EntryPoint)
	}
}
