package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/pulsar3d/pulsar-go/common"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform
// struct, bound at group 0, binding 0. Matches GPUCameraUniform layout exactly
// (64 bytes).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned representation of the camera uniform
// buffer. Matches the WGSL CameraUniform struct layout exactly (see
// GPUCameraUniformSource). Size: 64 bytes.
type GPUCameraUniform struct {
	ViewProj [16]float32 // offset 0: combined view-projection matrix (mat4x4<f32>)
}

// NewGPUCameraUniform creates a GPUCameraUniform initialized to the identity
// matrix.
//
// Returns:
//   - *GPUCameraUniform: the new uniform
func NewGPUCameraUniform() *GPUCameraUniform {
	g := &GPUCameraUniform{}
	common.Identity(g.ViewProj[:])
	return g
}

// UpdateFrom copies the camera's current view-projection matrix into the
// uniform. Calling it again for an unchanged camera leaves the uniform
// bit-identical.
//
// Parameters:
//   - c: the camera to read from
func (g *GPUCameraUniform) UpdateFrom(c Camera) {
	g.ViewProj = c.ViewProjectionMatrix()
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable
// for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
	}
	return buf
}
