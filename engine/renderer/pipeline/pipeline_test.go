package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pulsar3d/pulsar-go/engine/renderer/shader"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("cube")

	if p.PipelineKey() != "cube" {
		t.Errorf("PipelineKey() = %q, want %q", p.PipelineKey(), "cube")
	}
	if !p.DepthTestEnabled() {
		t.Error("depth test disabled by default, want enabled")
	}
	if !p.DepthWriteEnabled() {
		t.Error("depth write disabled by default, want enabled")
	}
	if p.CullMode() != wgpu.CullModeBack {
		t.Errorf("CullMode() = %v, want CullModeBack", p.CullMode())
	}
	if p.Topology() != wgpu.PrimitiveTopologyTriangleList {
		t.Errorf("Topology() = %v, want TriangleList", p.Topology())
	}
	if p.FrontFace() != wgpu.FrontFaceCCW {
		t.Errorf("FrontFace() = %v, want CCW", p.FrontFace())
	}
	if p.WriteMask() != wgpu.ColorWriteMaskAll {
		t.Errorf("WriteMask() = %v, want ColorWriteMaskAll", p.WriteMask())
	}
	if p.RenderPipeline() != nil {
		t.Error("RenderPipeline() non-nil before registration")
	}
}

func TestNewPipelineOptions(t *testing.T) {
	vs := shader.NewShader("vs", shader.ShaderTypeVertex, "@vertex fn vs_main() {}")
	fs := shader.NewShader("fs", shader.ShaderTypeFragment, "@fragment fn fs_main() {}")
	layout := wgpu.VertexBufferLayout{ArrayStride: 24}

	p := NewPipeline("custom",
		WithVertexShader(vs),
		WithFragmentShader(fs),
		WithDepthTestEnabled(false),
		WithDepthWriteEnabled(false),
		WithCullMode(wgpu.CullModeNone),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithFrontFace(wgpu.FrontFaceCW),
		WithVertexLayouts(layout),
	)

	if p.Shader(shader.ShaderTypeVertex) != vs {
		t.Error("vertex shader not set")
	}
	if p.Shader(shader.ShaderTypeFragment) != fs {
		t.Error("fragment shader not set")
	}
	if p.DepthTestEnabled() || p.DepthWriteEnabled() {
		t.Error("depth settings not overridden")
	}
	if p.CullMode() != wgpu.CullModeNone {
		t.Errorf("CullMode() = %v, want CullModeNone", p.CullMode())
	}
	if p.Topology() != wgpu.PrimitiveTopologyLineList {
		t.Errorf("Topology() = %v, want LineList", p.Topology())
	}
	if p.FrontFace() != wgpu.FrontFaceCW {
		t.Errorf("FrontFace() = %v, want CW", p.FrontFace())
	}
	layouts := p.VertexLayouts()
	if len(layouts) != 1 || layouts[0].ArrayStride != 24 {
		t.Errorf("VertexLayouts() = %+v, want single layout with stride 24", layouts)
	}
}
