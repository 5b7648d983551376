package mesh

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Matches the WGSL VertexInput struct layout exactly (see the cube shader).
// Size: 24 bytes.
type GPUVertex struct {
	Position [3]float32 // offset  0: object-space position (vec3<f32>, location 0)
	Color    [3]float32 // offset 12: vertex color (vec3<f32>, location 1)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (24)
func (v *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*v))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU
// upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (v *GPUVertex) Marshal() []byte {
	buf := make([]byte, v.Size())
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v.Position[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[12+i*4:], math.Float32bits(v.Color[i]))
	}
	return buf
}

// VertexBufferLayout returns the wgpu vertex buffer layout matching GPUVertex:
// position at shader location 0 and color at shader location 1, interleaved
// with a 24-byte stride.
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout descriptor
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(unsafe.Sizeof(GPUVertex{})),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{
				Format:         wgpu.VertexFormatFloat32x3,
				Offset:         0,
				ShaderLocation: 0,
			},
			{
				Format:         wgpu.VertexFormatFloat32x3,
				Offset:         uint64(unsafe.Offsetof(GPUVertex{}.Color)),
				ShaderLocation: 1,
			},
		},
	}
}
