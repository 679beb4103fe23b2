package shader

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies the pipeline stage a shader provides.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

// shader is the implementation of the Shader interface.
// It holds the WGSL source plus the hand-declared bind group layout descriptors
// and vertex buffer layouts required for pipeline creation.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	entryPoint                 string
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	vertexLayouts              []wgpu.VertexBufferLayout
}

// Shader defines the interface for a WGSL shader stage. It exposes the shader's
// unique key, source code, entry point, bind group layout descriptors, and vertex
// buffer layouts needed for pipeline creation and resource wiring.
//
// Layout descriptors are declared in Go alongside the WGSL source rather than
// parsed out of it; the two must be kept in sync by hand.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Type retrieves the pipeline stage this shader provides.
	//
	// Returns:
	//   - ShaderType: the shader type (vertex or fragment)
	Type() ShaderType

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// EntryPoint retrieves the entry point function name for this shader stage.
	//
	// Returns:
	//   - string: the entry point name
	EntryPoint() string

	// BindGroupLayoutDescriptor retrieves the bind group layout descriptor for a specific group index.
	//
	// Parameters:
	//   - group: the bind group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor for the group, or an empty descriptor if not declared
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves all declared bind group layout descriptors keyed by group index.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// VertexLayouts retrieves the vertex buffer layouts consumed by this shader.
	// Only meaningful for vertex shaders; empty otherwise.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the vertex buffer layouts
	VertexLayouts() []wgpu.VertexBufferLayout
}

var _ Shader = &shader{}

// NewShader creates a Shader from WGSL source with the provided options.
// The default entry point is "vs_main" for vertex shaders and "fs_main" for
// fragment shaders.
//
// Parameters:
//   - key: the unique identifier for this shader
//   - shaderType: the pipeline stage this shader provides
//   - source: the WGSL source code
//   - options: variadic list of ShaderBuilderOption functions to configure the shader
//
// Returns:
//   - Shader: a new Shader instance
func NewShader(key string, shaderType ShaderType, source string, options ...ShaderBuilderOption) Shader {
	s := &shader{
		key:                        key,
		shaderType:                 shaderType,
		source:                     source,
		bindGroupLayoutDescriptors: make(map[int]wgpu.BindGroupLayoutDescriptor),
	}
	switch shaderType {
	case ShaderTypeVertex:
		s.entryPoint = "vs_main"
	case ShaderTypeFragment:
		s.entryPoint = "fs_main"
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Type() ShaderType {
	return s.shaderType
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}
