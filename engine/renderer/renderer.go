// Package renderer owns the render pipeline, the camera bind group, and the
// per-frame command recording for the cube draw.
package renderer

import (
	_ "embed"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pulsar3d/pulsar-go/engine/camera"
	"github.com/pulsar3d/pulsar-go/engine/mesh"
	"github.com/pulsar3d/pulsar-go/engine/renderer/bind_group_provider"
	"github.com/pulsar3d/pulsar-go/engine/renderer/pipeline"
	"github.com/pulsar3d/pulsar-go/engine/renderer/shader"
)

// CubeShaderSource is the WGSL body of the cube pipeline. The CameraUniform
// declaration is prepended from the camera package so both sides share one
// canonical definition.
//
//go:embed assets/cube.wgsl
var CubeShaderSource string

// DepthFormat is the texture format used for the depth attachment.
const DepthFormat = wgpu.TextureFormatDepth32Float

const cameraUniformBinding = 0

type rendererImpl struct {
	device *wgpu.Device

	cubePipeline   pipeline.Pipeline
	cameraProvider bind_group_provider.BindGroupProvider

	renderPassDescriptor *wgpu.RenderPassDescriptor
}

// Renderer records and submits the commands for one frame. It holds the cube
// render pipeline and the camera uniform bind group, both created once at
// engine startup.
type Renderer interface {
	// SyncCamera uploads the camera uniform to the GPU. Call before Render
	// whenever the camera or surface aspect changed.
	//
	// Parameters:
	//   - queue: the wgpu queue to write with
	//   - uniform: the camera uniform to upload
	SyncCamera(queue *wgpu.Queue, uniform *camera.GPUCameraUniform)

	// WriteBuffers performs a batch of GPU buffer writes. Each BufferWrite
	// targets a specific buffer on a BindGroupProvider at a given binding and
	// offset. Writes targeting unset bindings are skipped.
	//
	// Parameters:
	//   - queue: the wgpu queue to write with
	//   - writes: the writes to perform
	WriteBuffers(queue *wgpu.Queue, writes []bind_group_provider.BufferWrite)

	// Render records and submits a single frame: one render pass that clears
	// the color and depth attachments and draws the mesh.
	//
	// Parameters:
	//   - colorView: the swapchain texture view to render into
	//   - depthView: the depth texture view
	//   - queue: the wgpu queue to submit to
	//   - m: the mesh to draw
	//
	// Returns:
	//   - error: non-nil if command recording failed; the frame is skipped
	Render(colorView, depthView *wgpu.TextureView, queue *wgpu.Queue, m mesh.Mesh) error

	// Release frees the pipeline and camera bind group resources.
	Release()
}

var _ Renderer = &rendererImpl{}

// NewRenderer creates the cube render pipeline and the camera uniform bind
// group for the given surface configuration. Pipeline or bind group creation
// failure means the device cannot render at all, so it panics.
//
// Parameters:
//   - device: the wgpu device
//   - config: the current surface configuration (provides the color format)
//
// Returns:
//   - Renderer: the initialized renderer
func NewRenderer(device *wgpu.Device, config *wgpu.SurfaceConfiguration) Renderer {
	r := &rendererImpl{device: device}

	if err := r.initCameraBindGroup(); err != nil {
		panic(fmt.Errorf("failed to create camera bind group: %w", err))
	}
	if err := r.initCubePipeline(config.Format); err != nil {
		panic(fmt.Errorf("failed to create cube pipeline: %w", err))
	}

	r.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    nil, // set per-frame to the swapchain view
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: 0.1, G: 0.2, B: 0.3, A: 1.0,
				},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            nil, // set per-frame to the current depth view
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	}

	return r
}

func (r *rendererImpl) initCameraBindGroup() error {
	provider := bind_group_provider.NewBindGroupProvider("Camera")

	uniform := camera.NewGPUCameraUniform()
	buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            provider.Label() + " Uniform Buffer",
		Size:             uint64(uniform.Size()),
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return err
	}
	provider.SetBuffer(cameraUniformBinding, buf)

	layout, err := r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: provider.Label() + " Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    cameraUniformBinding,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type: wgpu.BufferBindingTypeUniform,
				},
			},
		},
	})
	if err != nil {
		return err
	}
	provider.SetBindGroupLayout(layout)

	bindGroup, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  provider.Label() + " Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: cameraUniformBinding,
				Buffer:  buf,
				Size:    uint64(uniform.Size()),
			},
		},
	})
	if err != nil {
		return err
	}
	provider.SetBindGroup(bindGroup)

	r.cameraProvider = provider
	return nil
}

func (r *rendererImpl) initCubePipeline(surfaceFormat wgpu.TextureFormat) error {
	source := camera.GPUCameraUniformSource + "\n" + CubeShaderSource
	p := pipeline.NewPipeline("cube",
		pipeline.WithVertexShader(shader.NewShader("Cube Vertex Shader", shader.ShaderTypeVertex, source)),
		pipeline.WithFragmentShader(shader.NewShader("Cube Fragment Shader", shader.ShaderTypeFragment, source)),
		pipeline.WithVertexLayouts(mesh.VertexBufferLayout()),
	)

	vertexShader := p.Shader(shader.ShaderTypeVertex)
	fragmentShader := p.Shader(shader.ShaderTypeFragment)

	vs, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: vertexShader.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: vertexShader.Source(),
		},
	})
	if err != nil {
		return err
	}
	fs, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: fragmentShader.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: fragmentShader.Source(),
		},
	})
	if err != nil {
		return err
	}

	pipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.cameraProvider.BindGroupLayout()},
	})
	if err != nil {
		return err
	}

	created, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vertexShader.EntryPoint(),
			Buffers:    p.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: fragmentShader.EntryPoint(),
			Targets: []wgpu.ColorTargetState{
				{
					Format:    surfaceFormat,
					WriteMask: p.WriteMask(),
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: func() *wgpu.DepthStencilState {
			depthCompare := wgpu.CompareFunctionLess
			if !p.DepthTestEnabled() {
				depthCompare = wgpu.CompareFunctionAlways
			}
			return &wgpu.DepthStencilState{
				Format:            DepthFormat,
				DepthWriteEnabled: p.DepthWriteEnabled(),
				DepthCompare:      depthCompare,
				StencilFront: wgpu.StencilFaceState{
					Compare: wgpu.CompareFunctionAlways,
				},
				StencilBack: wgpu.StencilFaceState{
					Compare: wgpu.CompareFunctionAlways,
				},
			}
		}(),
	})
	if err != nil {
		return err
	}

	p.SetRenderPipeline(created)
	r.cubePipeline = p
	return nil
}

func (r *rendererImpl) SyncCamera(queue *wgpu.Queue, uniform *camera.GPUCameraUniform) {
	r.WriteBuffers(queue, []bind_group_provider.BufferWrite{
		{
			Provider: r.cameraProvider,
			Binding:  cameraUniformBinding,
			Data:     uniform.Marshal(),
		},
	})
}

func (r *rendererImpl) WriteBuffers(queue *wgpu.Queue, writes []bind_group_provider.BufferWrite) {
	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil {
			continue
		}
		queue.WriteBuffer(buf, w.Offset, w.Data)
	}
}

func (r *rendererImpl) Render(colorView, depthView *wgpu.TextureView, queue *wgpu.Queue, m mesh.Mesh) error {
	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("failed to create command encoder: %w", err)
	}
	defer encoder.Release()

	r.renderPassDescriptor.ColorAttachments[0].View = colorView
	r.renderPassDescriptor.DepthStencilAttachment.View = depthView
	pass := encoder.BeginRenderPass(r.renderPassDescriptor)

	pass.SetPipeline(r.cubePipeline.RenderPipeline())
	pass.SetBindGroup(0, r.cameraProvider.BindGroup(), nil)
	pass.SetVertexBuffer(0, m.VertexBuffer(), 0, wgpu.WholeSize)
	pass.SetIndexBuffer(m.IndexBuffer(), wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	pass.DrawIndexed(uint32(m.IndexCount()), 1, 0, 0, 0)
	pass.End()
	pass.Release()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("failed to finish command encoder: %w", err)
	}
	defer commandBuffer.Release()

	queue.Submit(commandBuffer)
	return nil
}

func (r *rendererImpl) Release() {
	if r.cubePipeline != nil && r.cubePipeline.RenderPipeline() != nil {
		r.cubePipeline.RenderPipeline().Release()
	}
	if r.cameraProvider != nil {
		r.cameraProvider.Release()
	}
}
