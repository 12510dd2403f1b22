package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithBuffer stores a buffer at a specific binding index.
//
// Parameters:
//   - binding: the binding index for this buffer
//   - buf: the buffer to associate with this binding
//
// Returns:
//   - BindGroupProviderOption: a function that sets the buffer for the specified binding
func WithBuffer(binding int, buf *wgpu.Buffer) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.buffers[binding] = buf
	}
}

// WithMesh stores the vertex and index buffers of a mesh.
//
// Parameters:
//   - vertexBuffer: the vertex buffer
//   - indexBuffer: the uint32 index buffer
//   - indexCount: number of indices in indexBuffer
//
// Returns:
//   - BindGroupProviderOption: a function that sets the mesh buffers
func WithMesh(vertexBuffer, indexBuffer *wgpu.Buffer, indexCount uint32) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.vertexBuffer = vertexBuffer
		p.indexBuffer = indexBuffer
		p.indexCount = indexCount
	}
}
