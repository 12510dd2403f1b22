package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// meshDraw pairs a mesh's buffers with the material bind group it is drawn with.
type meshDraw struct {
	mesh     bind_group_provider.BindGroupProvider
	material bind_group_provider.BindGroupProvider
}

// modelResources holds the GPU copies of one uploaded model.
// Materials are shared between draws and released once.
type modelResources struct {
	draws     []meshDraw
	materials []bind_group_provider.BindGroupProvider
}

func (m *modelResources) release() {
	for _, d := range m.draws {
		d.mesh.Release()
	}
	for _, p := range m.materials {
		p.Release()
	}
	m.draws = nil
	m.materials = nil
}

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode // defaults to PresentModeImmediate (Uncapped)
	sampleCount MSAASampleCount  // MSAA sample count for the main render pass

	viewerPipeline pipeline.Pipeline
	frameLayout    *wgpu.BindGroupLayout
	materialLayout *wgpu.BindGroupLayout
	frame          bind_group_provider.BindGroupProvider

	// Shared by every material bind group; never stored on a provider.
	sampler         *wgpu.Sampler
	fallbackTexture *wgpu.Texture
	fallbackView    *wgpu.TextureView

	models map[model.Model]*modelResources

	// Frame state between BeginFrame and Present
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// newWGPURendererBackend creates the WebGPU instance, surface, adapter and device, then builds
// the viewer pipeline and its shared resources. The calling goroutine is locked to its OS thread.
//
// Parameters:
//   - surfaceDescriptor: the platform surface descriptor from the window
//   - forceFallbackAdapter: request the software fallback adapter
//   - sampleCount: MSAA sample count for the main render pass
//
// Returns:
//   - wgpuRendererBackend: the initialized backend
//   - error: an error if any step of device setup fails
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) (wgpuRendererBackend, error) {
	if surfaceDescriptor == nil {
		return nil, errors.New("window has no surface descriptor")
	}
	runtime.LockOSThread()

	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeImmediate,
		sampleCount: sampleCount,
		models:      make(map[model.Model]*modelResources),
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)
	if b.surface == nil {
		b.Release()
		return nil, errors.New("failed to create surface")
	}

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Viewer Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		b.Release()
		return nil, errors.New("surface reports no supported formats")
	}
	b.surfaceFormat = &capabilities.Formats[0]

	if err := b.initSharedResources(); err != nil {
		b.Release()
		return nil, err
	}
	if err := b.initPipeline(); err != nil {
		b.Release()
		return nil, err
	}

	return b, nil
}

// initSharedResources creates the frame uniform, the default sampler and the 1x1 white texture
// bound for materials without a diffuse map.
func (b *wgpuRendererBackendImpl) initSharedResources() error {
	var err error
	b.frameLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    frameUniformBinding,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64((&FrameUniform{}).Size()),
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create frame bind group layout: %w", err)
	}

	b.materialLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Material Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    materialUniformBinding,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64((&model.GPUMaterial{}).Size()),
				},
			},
			{
				Binding:    diffuseMapBinding,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    diffuseSamplerBinding,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create material bind group layout: %w", err)
	}

	b.frame = bind_group_provider.NewBindGroupProvider("Frame")
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: b.frame.Label() + " Uniform Buffer",
		Size:  uint64((&FrameUniform{}).Size()),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create frame uniform buffer: %w", err)
	}
	b.frame.SetBuffer(frameUniformBinding, buf)

	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  b.frame.Label() + " Bind Group",
		Layout: b.frameLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: frameUniformBinding, Buffer: buf, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create frame bind group: %w", err)
	}
	b.frame.SetBindGroup(bg)

	b.sampler, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Diffuse Sampler",
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0.0,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to create sampler: %w", err)
	}

	white := common.TextureStagingData{Pixels: []byte{255, 255, 255, 255}, Width: 1, Height: 1}
	b.fallbackTexture, b.fallbackView, err = b.createTexture("Fallback", white)
	if err != nil {
		return fmt.Errorf("failed to create fallback texture: %w", err)
	}

	return nil
}

// initPipeline compiles the embedded WGSL and creates the single render pipeline the viewer uses.
func (b *wgpuRendererBackendImpl) initPipeline() error {
	s, err := newViewerShader()
	if err != nil {
		return fmt.Errorf("failed to prepare viewer shader: %w", err)
	}

	module, err := b.device.CreateShaderModule(s.Module())
	if err != nil {
		return fmt.Errorf("failed to compile viewer shader: %w", err)
	}
	defer module.Release()

	layout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Viewer Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.frameLayout, b.materialLayout},
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline layout: %w", err)
	}
	defer layout.Release()

	p := newViewerPipeline(s, b.sampleCount)
	rp, err := b.device.CreateRenderPipeline(p.Descriptor(layout, module, *b.surfaceFormat))
	if err != nil {
		return fmt.Errorf("failed to create render pipeline: %w", err)
	}
	p.SetRenderPipeline(rp)
	b.viewerPipeline = p
	return nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseAttachments()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1
	size := wgpu.Extent3D{
		Width:              uint32(width),
		Height:             uint32(height),
		DepthOrArrayLayers: 1,
	}

	var err error
	if msaaEnabled {
		// The render pass draws into the MSAA texture and resolves into the swapchain view.
		b.msaaTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return fmt.Errorf("failed to create MSAA texture: %w", err)
		}
		b.msaaTextureView, err = b.msaaTexture.CreateView(nil)
		if err != nil {
			return fmt.Errorf("failed to create MSAA texture view: %w", err)
		}
	}

	// Depth texture sample count must match the color attachment.
	b.depthTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        pipeline.DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("failed to create depth texture: %w", err)
	}
	b.depthTextureView, err = b.depthTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("failed to create depth texture view: %w", err)
	}

	// With MSAA, View is the MSAA texture and ResolveTarget is set per frame.
	// Without it, View is set per frame to the swapchain view.
	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
	return nil
}

// releaseAttachments frees the size-dependent MSAA and depth textures. Caller holds b.mu.
func (b *wgpuRendererBackendImpl) releaseAttachments() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeVSync:
		b.presentMode = wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeImmediate
	}
}

func (b *wgpuRendererBackendImpl) UploadModel(m model.Model) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.models[m]; ok {
		return nil
	}

	res := &modelResources{}
	materials := make(map[*model.Material]bind_group_provider.BindGroupProvider)
	fallback := model.DefaultMaterial()
	for i, mesh := range m.Meshes() {
		if len(mesh.Indices) == 0 || len(mesh.Vertices) == 0 {
			continue
		}
		mat := common.Coalesce(mesh.Material, fallback)
		matProvider, ok := materials[mat]
		if !ok {
			var err error
			matProvider, err = b.createMaterial(m.Name()+"/"+mat.Name, mat)
			if err != nil {
				res.release()
				return err
			}
			materials[mat] = matProvider
			res.materials = append(res.materials, matProvider)
		}

		meshProvider, err := b.createMesh(fmt.Sprintf("%s/%s#%d", m.Name(), mesh.Name, i), mesh)
		if err != nil {
			res.release()
			return err
		}
		res.draws = append(res.draws, meshDraw{mesh: meshProvider, material: matProvider})
	}

	b.models[m] = res
	return nil
}

// createMesh uploads the vertex and index buffers of a single mesh. Caller holds b.mu.
func (b *wgpuRendererBackendImpl) createMesh(label string, mesh *model.Mesh) (bind_group_provider.BindGroupProvider, error) {
	vertexData := model.MarshalVertices(mesh.Vertices)
	indexData := model.MarshalIndices(mesh.Indices)

	vb, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex buffer for %s: %w", label, err)
	}
	b.queue.WriteBuffer(vb, 0, vertexData)

	ib, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vb.Release()
		return nil, fmt.Errorf("failed to create index buffer for %s: %w", label, err)
	}
	b.queue.WriteBuffer(ib, 0, indexData)

	return bind_group_provider.NewBindGroupProvider(label,
		bind_group_provider.WithMesh(vb, ib, uint32(len(mesh.Indices))),
	), nil
}

// createMaterial uploads the material uniform and diffuse map and builds its bind group.
// Materials without a decoded diffuse map bind the shared fallback texture. Caller holds b.mu.
func (b *wgpuRendererBackendImpl) createMaterial(label string, mat *model.Material) (bind_group_provider.BindGroupProvider, error) {
	p := bind_group_provider.NewBindGroupProvider(label)

	gpuMat := model.ToGPUMaterial(mat)
	data := gpuMat.Marshal()
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Material Buffer",
		Size:  uint64(len(data)),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create material buffer for %s: %w", label, err)
	}
	b.queue.WriteBuffer(buf, 0, data)
	p.SetBuffer(materialUniformBinding, buf)

	view := b.fallbackView
	if mat.DiffuseMap != nil {
		tex, texView, err := b.createTexture(label, *mat.DiffuseMap)
		if err != nil {
			p.Release()
			return nil, fmt.Errorf("failed to create diffuse map for %s: %w", label, err)
		}
		p.SetTexture(diffuseMapBinding, tex, texView)
		view = texView
	}

	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Bind Group",
		Layout: b.materialLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: materialUniformBinding, Buffer: buf, Offset: 0, Size: wgpu.WholeSize},
			{Binding: diffuseMapBinding, TextureView: view},
			{Binding: diffuseSamplerBinding, Sampler: b.sampler},
		},
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("failed to create material bind group for %s: %w", label, err)
	}
	p.SetBindGroup(bg)

	return p, nil
}

// createTexture uploads RGBA8 pixels into a new sRGB texture.
func (b *wgpuRendererBackendImpl) createTexture(label string, stagingData common.TextureStagingData) (*wgpu.Texture, *wgpu.TextureView, error) {
	if stagingData.Width == 0 || stagingData.Height == 0 || len(stagingData.Pixels) < int(stagingData.Width*stagingData.Height*4) {
		return nil, nil, fmt.Errorf("invalid texture data %dx%d with %d bytes", stagingData.Width, stagingData.Height, len(stagingData.Pixels))
	}

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     label + " Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, nil, err
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		stagingData.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  stagingData.Width * 4,
			RowsPerImage: stagingData.Height,
		},
		&wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, nil, err
	}
	return tex, view, nil
}

func (b *wgpuRendererBackendImpl) ReleaseModel(m model.Model) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if res, ok := b.models[m]; ok {
		res.release()
		delete(b.models, m)
	}
}

func (b *wgpuRendererBackendImpl) BeginFrame(clear common.Color, frameUniform []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.renderPassDescriptor == nil {
		return errors.New("surface is not configured")
	}
	// A held surface texture means the previous frame was never presented.
	if b.frameSurface != nil {
		return errors.New("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	b.queue.WriteBuffer(b.frame.Buffer(frameUniformBinding), 0, frameUniform)

	attachment := &b.renderPassDescriptor.ColorAttachments[0]
	if b.sampleCount > 1 {
		attachment.ResolveTarget = view
	} else {
		attachment.View = view
	}
	attachment.ClearValue = wgpu.Color{
		R: float64(clear.R),
		G: float64(clear.G),
		B: float64(clear.B),
		A: float64(clear.A),
	}
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)
	pass.SetPipeline(b.viewerPipeline.RenderPipeline())
	pass.SetBindGroup(0, b.frame.BindGroup(), nil)

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *wgpuRendererBackendImpl) DrawModel(m model.Model) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	res, ok := b.models[m]
	if !ok || b.framePass == nil {
		return 0
	}

	for _, d := range res.draws {
		b.framePass.SetBindGroup(1, d.material.BindGroup(), nil)
		b.framePass.SetVertexBuffer(0, d.mesh.VertexBuffer(), 0, wgpu.WholeSize)
		b.framePass.SetIndexBuffer(d.mesh.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		b.framePass.DrawIndexed(d.mesh.IndexCount(), 1, 0, 0, 0)
	}
	return len(res.draws)
}

func (b *wgpuRendererBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return errors.New("no frame in progress")
	}
	b.framePass.End()
	b.framePass.Release()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	b.frameEncoder.Release()
	b.frameEncoder = nil
	if err != nil {
		b.releaseFrameSurface()
		return fmt.Errorf("failed to finish command encoder: %w", err)
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	return nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}
	b.surface.Present()
	b.releaseFrameSurface()
}

// releaseFrameSurface drops the acquired surface texture and its view. Caller holds b.mu.
func (b *wgpuRendererBackendImpl) releaseFrameSurface() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for m, res := range b.models {
		res.release()
		delete(b.models, m)
	}
	b.releaseFrameSurface()
	b.releaseAttachments()

	if b.frame != nil {
		b.frame.Release()
		b.frame = nil
	}
	if b.fallbackView != nil {
		b.fallbackView.Release()
		b.fallbackView = nil
	}
	if b.fallbackTexture != nil {
		b.fallbackTexture.Release()
		b.fallbackTexture = nil
	}
	if b.sampler != nil {
		b.sampler.Release()
		b.sampler = nil
	}
	if b.viewerPipeline != nil {
		b.viewerPipeline.Release()
		b.viewerPipeline = nil
	}
	if b.materialLayout != nil {
		b.materialLayout.Release()
		b.materialLayout = nil
	}
	if b.frameLayout != nil {
		b.frameLayout.Release()
		b.frameLayout = nil
	}
	b.queue = nil
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
