// Package shader wraps the fixed WGSL programs used by the renderer. The
// engine renders with a single hard-coded vertex+fragment program whose
// binding and vertex layouts are known at compile time, so shaders here carry
// only their source, type, and entry point.
package shader

// ShaderType identifies the pipeline stage a shader belongs to.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, paired with a vertex shader in render pipelines.
	ShaderTypeFragment
)

// shader is the implementation of the Shader interface.
type shader struct {
	key        string
	source     string
	shaderType ShaderType
	entryPoint string
}

// Shader defines the interface for a WGSL shader stage. It exposes the
// shader's unique key, source code, type, and entry point needed for shader
// module and pipeline creation.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for labels and caching.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// Type retrieves the shader stage type.
	//
	// Returns:
	//   - ShaderType: vertex or fragment
	Type() ShaderType

	// EntryPoint retrieves the entry point function name for this shader stage.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string
}

var _ Shader = &shader{}

// NewShader creates a Shader from in-memory WGSL source.
// The default entry point is "vs_main" for vertex shaders and "fs_main" for
// fragment shaders, matching the fixed cube program.
//
// Parameters:
//   - key: unique identifier for labels and caching
//   - shaderType: the shader stage type
//   - source: the WGSL source code
//
// Returns:
//   - Shader: the constructed shader
func NewShader(key string, shaderType ShaderType, source string) Shader {
	entry := "fs_main"
	if shaderType == ShaderTypeVertex {
		entry = "vs_main"
	}
	return &shader{
		key:        key,
		source:     source,
		shaderType: shaderType,
		entryPoint: entry,
	}
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) Type() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}
