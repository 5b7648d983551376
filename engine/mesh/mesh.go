// Package mesh holds CPU-side mesh data and its GPU buffer lifecycle. The
// only built-in shape is the unit cube used by the render loop.
package mesh

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pulsar3d/pulsar-go/common"
	"github.com/pulsar3d/pulsar-go/engine/renderer/bind_group_provider"
)

type meshImpl struct {
	provider bind_group_provider.BindGroupProvider
}

// Mesh is the GPU-resident geometry drawn by the renderer. The vertex and
// index buffers are uploaded once at creation and are immutable afterwards.
type Mesh interface {
	// VertexBuffer returns the GPU vertex buffer.
	//
	// Returns:
	//   - *wgpu.Buffer: the vertex buffer
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the GPU index buffer (uint16 indices).
	//
	// Returns:
	//   - *wgpu.Buffer: the index buffer
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices to draw.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// Release frees the GPU buffers. The mesh must not be used afterwards.
	Release()
}

var _ Mesh = &meshImpl{}

// CubeVertices returns the 24 vertices of the unit cube centered at the
// origin, 4 per face, with a distinct flat color per face.
//
// Returns:
//   - []GPUVertex: the cube vertices
func CubeVertices() []GPUVertex {
	face := func(color [3]float32, positions ...[3]float32) []GPUVertex {
		out := make([]GPUVertex, 0, len(positions))
		for _, p := range positions {
			out = append(out, GPUVertex{Position: p, Color: color})
		}
		return out
	}

	var vertices []GPUVertex
	// front, red
	vertices = append(vertices, face([3]float32{1, 0, 0},
		[3]float32{-0.5, -0.5, 0.5}, [3]float32{0.5, -0.5, 0.5},
		[3]float32{0.5, 0.5, 0.5}, [3]float32{-0.5, 0.5, 0.5})...)
	// back, green
	vertices = append(vertices, face([3]float32{0, 1, 0},
		[3]float32{-0.5, -0.5, -0.5}, [3]float32{-0.5, 0.5, -0.5},
		[3]float32{0.5, 0.5, -0.5}, [3]float32{0.5, -0.5, -0.5})...)
	// top, blue
	vertices = append(vertices, face([3]float32{0, 0, 1},
		[3]float32{-0.5, 0.5, -0.5}, [3]float32{-0.5, 0.5, 0.5},
		[3]float32{0.5, 0.5, 0.5}, [3]float32{0.5, 0.5, -0.5})...)
	// bottom, yellow
	vertices = append(vertices, face([3]float32{1, 1, 0},
		[3]float32{-0.5, -0.5, -0.5}, [3]float32{0.5, -0.5, -0.5},
		[3]float32{0.5, -0.5, 0.5}, [3]float32{-0.5, -0.5, 0.5})...)
	// right, magenta
	vertices = append(vertices, face([3]float32{1, 0, 1},
		[3]float32{0.5, -0.5, -0.5}, [3]float32{0.5, 0.5, -0.5},
		[3]float32{0.5, 0.5, 0.5}, [3]float32{0.5, -0.5, 0.5})...)
	// left, cyan
	vertices = append(vertices, face([3]float32{0, 1, 1},
		[3]float32{-0.5, -0.5, -0.5}, [3]float32{-0.5, -0.5, 0.5},
		[3]float32{-0.5, 0.5, 0.5}, [3]float32{-0.5, 0.5, -0.5})...)

	return vertices
}

// CubeIndices returns the 36 uint16 indices of the unit cube, two
// counter-clockwise triangles per face.
//
// Returns:
//   - []uint16: the cube indices
func CubeIndices() []uint16 {
	indices := make([]uint16, 0, 36)
	for f := uint16(0); f < 6; f++ {
		base := f * 4
		indices = append(indices,
			base+0, base+1, base+2,
			base+2, base+3, base+0,
		)
	}
	return indices
}

// Cube creates the unit cube mesh and uploads its vertex and index buffers to
// the GPU. Buffer creation failure at this stage means the device is unusable,
// so it panics.
//
// Parameters:
//   - device: the wgpu device to allocate buffers on
//   - queue: the wgpu queue to upload data with
//
// Returns:
//   - Mesh: the uploaded cube mesh
func Cube(device *wgpu.Device, queue *wgpu.Queue) Mesh {
	vertices := CubeVertices()
	indices := CubeIndices()

	provider := bind_group_provider.NewBindGroupProvider("Cube Mesh")

	vertexData := common.SliceToBytes(vertices)
	vertexBuffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            provider.Label() + " Vertex Buffer",
		Size:             uint64(len(vertexData)),
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		panic(fmt.Errorf("failed to create cube vertex buffer: %w", err))
	}
	queue.WriteBuffer(vertexBuffer, 0, vertexData)
	provider.SetVertexBuffer(vertexBuffer)

	indexData := common.SliceToBytes(indices)
	indexBuffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            provider.Label() + " Index Buffer",
		Size:             uint64(len(indexData)),
		Usage:            wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		panic(fmt.Errorf("failed to create cube index buffer: %w", err))
	}
	queue.WriteBuffer(indexBuffer, 0, indexData)
	provider.SetIndexBuffer(indexBuffer)

	provider.SetIndexCount(len(indices))

	return &meshImpl{provider: provider}
}

func (m *meshImpl) VertexBuffer() *wgpu.Buffer {
	return m.provider.VertexBuffer()
}

func (m *meshImpl) IndexBuffer() *wgpu.Buffer {
	return m.provider.IndexBuffer()
}

func (m *meshImpl) IndexCount() int {
	return m.provider.IndexCount()
}

func (m *meshImpl) Release() {
	m.provider.Release()
}
